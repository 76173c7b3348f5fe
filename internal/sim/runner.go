package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/springlab/internal/dynamo"
	"github.com/san-kum/springlab/internal/oscillator"
)

// Config fixes the timestep and length of a run.
type Config struct {
	Dt       float64
	Duration float64
}

// Result is the accumulated trajectory of one run.
type Result struct {
	Times      []float64
	Positions  []float64
	Velocities []float64
	Energies   []float64
	Metrics    map[string]float64
	Steps      int
}

// Runner drives one oscillator at a fixed cadence, fanning each
// snapshot out to metrics and observers. It owns no entropy source;
// two runs with the same system configuration produce identical
// results.
type Runner struct {
	sys       *oscillator.System
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

func New(sys *oscillator.System) *Runner {
	return &Runner{sys: sys}
}

func (r *Runner) AddMetric(m dynamo.Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o dynamo.Observer) { r.observers = append(r.observers, o) }

// Run advances the system Duration/Dt steps, recording every snapshot
// including the initial one. Cancelling the context returns the partial
// result with the context error.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:      make([]float64, 0, steps+1),
		Positions:  make([]float64, 0, steps+1),
		Velocities: make([]float64, 0, steps+1),
		Energies:   make([]float64, 0, steps+1),
		Metrics:    make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	r.record(result, r.sys.State())

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		s := r.sys.Step(cfg.Dt)
		result.Steps++
		r.record(result, s)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback streams snapshots to cb after every step until the
// duration elapses or cb returns false.
func (r *Runner) RunWithCallback(ctx context.Context, cfg Config, cb func(dynamo.State) bool) error {
	if err := validate(cfg); err != nil {
		return err
	}

	steps := int(cfg.Duration / cfg.Dt)
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !cb(r.sys.Step(cfg.Dt)) {
			return nil
		}
	}
	return nil
}

func (r *Runner) record(result *Result, s dynamo.State) {
	for _, m := range r.metrics {
		m.Observe(s)
	}
	for _, o := range r.observers {
		o.OnStep(s)
	}

	result.Times = append(result.Times, s.Time)
	result.Positions = append(result.Positions, s.Position)
	result.Velocities = append(result.Velocities, s.Velocity)
	result.Energies = append(result.Energies, r.sys.Energy())
}

func validate(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("sim: dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("sim: duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
