package config

import "sort"

var Presets = map[string]*Config{
	"shm": {
		Mass: 1.0, Damping: 0.0, SpringConstant: 1.0, Y0: 1.0, V0: 0.0,
		Forcing: "none", Dt: 0.01, Duration: 20.0,
	},
	"underdamped": {
		Mass: 1.0, Damping: 0.5, SpringConstant: 10.0, Y0: 1.0, V0: 0.0,
		Forcing: "none", Dt: 0.01, Duration: 15.0,
	},
	"critical": {
		Mass: 1.0, Damping: 2.0, SpringConstant: 1.0, Y0: 1.0, V0: 0.0,
		Forcing: "none", Dt: 0.01, Duration: 10.0,
	},
	"overdamped": {
		Mass: 1.0, Damping: 8.0, SpringConstant: 1.0, Y0: 1.0, V0: 0.0,
		Forcing: "none", Dt: 0.01, Duration: 20.0,
	},
	"resonance": {
		Mass: 1.0, Damping: 0.1, SpringConstant: 1.0, Y0: 0.0, V0: 0.0,
		Forcing: "sine", ForcingParams: map[string]float64{"frequency": 0.159155},
		Dt: 0.01, Duration: 60.0,
	},
	"beats": {
		Mass: 1.0, Damping: 0.0, SpringConstant: 1.0, Y0: 0.0, V0: 0.0,
		Forcing: "sine", ForcingParams: map[string]float64{"frequency": 0.18},
		Dt: 0.01, Duration: 120.0,
	},
	"step-response": {
		Mass: 1.0, Damping: 0.8, SpringConstant: 4.0, Y0: 0.0, V0: 0.0,
		Forcing: "step", ForcingParams: map[string]float64{"amplitude": 2.0, "stepTime": 1.0},
		Dt: 0.01, Duration: 15.0,
	},
	"impulse-response": {
		Mass: 1.0, Damping: 0.3, SpringConstant: 9.0, Y0: 0.0, V0: 0.0,
		Forcing: "impulse", ForcingParams: map[string]float64{"amplitude": 3.0, "impulseTime": 1.0},
		Dt: 0.001, Duration: 15.0,
	},
	"free-particle": {
		Mass: 1.0, Damping: 0.0, SpringConstant: 0.0, Y0: 0.0, V0: 1.0,
		Forcing: "none", Dt: 0.01, Duration: 10.0,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	out := *cfg
	if cfg.ForcingParams != nil {
		out.ForcingParams = make(map[string]float64, len(cfg.ForcingParams))
		for k, v := range cfg.ForcingParams {
			out.ForcingParams[k] = v
		}
	}
	return &out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
