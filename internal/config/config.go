package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMass           = 1.0
	DefaultDamping        = 0.5
	DefaultSpringConstant = 10.0
	DefaultDt             = 0.01
	DefaultDuration       = 10.0
)

// Config is one simulation scenario: physical parameters, initial
// conditions, forcing selection, and run length.
type Config struct {
	Mass           float64            `yaml:"mass"`
	Damping        float64            `yaml:"damping"`
	SpringConstant float64            `yaml:"spring_constant"`
	Y0             float64            `yaml:"y0"`
	V0             float64            `yaml:"v0"`
	Forcing        string             `yaml:"forcing"`
	ForcingParams  map[string]float64 `yaml:"forcing_params,omitempty"`
	Dt             float64            `yaml:"dt"`
	Duration       float64            `yaml:"duration"`
}

func DefaultConfig() *Config {
	return &Config{
		Mass:           DefaultMass,
		Damping:        DefaultDamping,
		SpringConstant: DefaultSpringConstant,
		Y0:             1.0,
		V0:             0.0,
		Forcing:        "none",
		Dt:             DefaultDt,
		Duration:       DefaultDuration,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
