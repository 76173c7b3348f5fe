package forcing

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrUnknownPreset is returned by New when the requested waveform name
// is not in the catalog.
var ErrUnknownPreset = errors.New("forcing: unknown preset")

// Func is an external driving force f(t). Implementations are pure and
// total: any real t is a valid input, including times before the
// waveform's active window.
type Func interface {
	Name() string
	Eval(t float64) float64
	// Params returns a copy of the resolved parameter set.
	Params() map[string]float64
}

// defaults holds the per-preset default parameter records. New starts
// from a copy of the record and overwrites only the fields present in
// the caller's overrides, so a resolved set never has missing fields.
var defaults = map[string]map[string]float64{
	"none":     {},
	"constant": {"force": 1.0},
	"sine":     {"amplitude": 1.0, "frequency": 1.0},
	"cosine":   {"amplitude": 1.0, "frequency": 1.0},
	"step":     {"amplitude": 1.0, "stepTime": 1.0},
	"square":   {"amplitude": 1.0, "frequency": 1.0},
	"impulse":  {"amplitude": 1.0, "impulseTime": 1.0, "width": 0.01},
}

// New builds the named waveform with its defaults shallow-merged with
// overrides (caller values win). Unknown names fail here, at selection
// time, never at evaluation time.
func New(name string, overrides map[string]float64) (Func, error) {
	p, err := resolve(name, overrides)
	if err != nil {
		return nil, err
	}

	switch name {
	case "none":
		return None{}, nil
	case "constant":
		return Constant{Force: p["force"]}, nil
	case "sine":
		return Sine{Amplitude: p["amplitude"], Frequency: p["frequency"]}, nil
	case "cosine":
		return Cosine{Amplitude: p["amplitude"], Frequency: p["frequency"]}, nil
	case "step":
		return Step{Amplitude: p["amplitude"], StepTime: p["stepTime"]}, nil
	case "square":
		return Square{Amplitude: p["amplitude"], Frequency: p["frequency"]}, nil
	case "impulse":
		return Impulse{Amplitude: p["amplitude"], ImpulseTime: p["impulseTime"], Width: p["width"]}, nil
	}
	// resolve already rejected the name
	return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
}

func resolve(name string, overrides map[string]float64) (map[string]float64, error) {
	d, ok := defaults[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	p := make(map[string]float64, len(d))
	for k, v := range d {
		p[k] = v
	}
	for k, v := range overrides {
		p[k] = v
	}
	return p, nil
}

// Defaults returns a copy of the named preset's default parameters.
func Defaults(name string) (map[string]float64, error) {
	return resolve(name, nil)
}

// Names lists the catalog in sorted order.
func Names() []string {
	names := make([]string, 0, len(defaults))
	for name := range defaults {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// None is the zero force.
type None struct{}

func (None) Name() string               { return "none" }
func (None) Eval(float64) float64       { return 0 }
func (None) Params() map[string]float64 { return map[string]float64{} }

// Constant applies a fixed force at all times.
type Constant struct {
	Force float64
}

func (Constant) Name() string           { return "constant" }
func (c Constant) Eval(float64) float64 { return c.Force }
func (c Constant) Params() map[string]float64 {
	return map[string]float64{"force": c.Force}
}

// Sine is amplitude*sin(2*pi*frequency*t).
type Sine struct {
	Amplitude float64
	Frequency float64
}

func (Sine) Name() string { return "sine" }
func (s Sine) Eval(t float64) float64 {
	return s.Amplitude * math.Sin(2*math.Pi*s.Frequency*t)
}
func (s Sine) Params() map[string]float64 {
	return map[string]float64{"amplitude": s.Amplitude, "frequency": s.Frequency}
}

// Cosine is amplitude*cos(2*pi*frequency*t).
type Cosine struct {
	Amplitude float64
	Frequency float64
}

func (Cosine) Name() string { return "cosine" }
func (c Cosine) Eval(t float64) float64 {
	return c.Amplitude * math.Cos(2*math.Pi*c.Frequency*t)
}
func (c Cosine) Params() map[string]float64 {
	return map[string]float64{"amplitude": c.Amplitude, "frequency": c.Frequency}
}

// Step turns on at StepTime and stays on.
type Step struct {
	Amplitude float64
	StepTime  float64
}

func (Step) Name() string { return "step" }
func (s Step) Eval(t float64) float64 {
	if t >= s.StepTime {
		return s.Amplitude
	}
	return 0
}
func (s Step) Params() map[string]float64 {
	return map[string]float64{"amplitude": s.Amplitude, "stepTime": s.StepTime}
}

// Square alternates between +Amplitude and -Amplitude with period
// 1/Frequency, positive for the first half of each period.
type Square struct {
	Amplitude float64
	Frequency float64
}

func (Square) Name() string { return "square" }
func (s Square) Eval(t float64) float64 {
	period := 1.0 / s.Frequency
	phase := math.Mod(t, period) / period
	if phase < 0.5 {
		return s.Amplitude
	}
	return -s.Amplitude
}
func (s Square) Params() map[string]float64 {
	return map[string]float64{"amplitude": s.Amplitude, "frequency": s.Frequency}
}

// Impulse delivers total impulse Amplitude over a window of Width
// seconds starting at ImpulseTime, i.e. force Amplitude/Width inside
// the window and zero outside.
type Impulse struct {
	Amplitude   float64
	ImpulseTime float64
	Width       float64
}

func (Impulse) Name() string { return "impulse" }
func (i Impulse) Eval(t float64) float64 {
	if t >= i.ImpulseTime && t < i.ImpulseTime+i.Width {
		return i.Amplitude / i.Width
	}
	return 0
}
func (i Impulse) Params() map[string]float64 {
	return map[string]float64{"amplitude": i.Amplitude, "impulseTime": i.ImpulseTime, "width": i.Width}
}
