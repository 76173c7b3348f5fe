package dynamo

import "math"

// State is the instantaneous condition of a second-order mechanical
// system. It is a plain value: assignment copies it, so snapshots
// handed to callers never alias internal state.
type State struct {
	Position float64
	Velocity float64
	Time     float64
}

func (s State) IsValid() bool {
	for _, v := range [3]float64{s.Position, s.Velocity, s.Time} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Derivative is the time derivative of (position, velocity).
type Derivative struct {
	DPos float64
	DVel float64
}

// DerivFunc evaluates dX/dt at a point. Implementations must be pure:
// same inputs, same outputs, no observable side effects.
type DerivFunc func(pos, vel, t float64) Derivative

// Integrator advances a state by one fixed step of size dt.
// Integrators do not validate their inputs; NaN in, NaN out.
type Integrator interface {
	Step(f DerivFunc, s State, dt float64) State
}

// Metric accumulates a scalar statistic over a trajectory.
type Metric interface {
	Name() string
	Observe(s State)
	Value() float64
	Reset()
}

// Observer is notified of every snapshot a run produces.
type Observer interface {
	OnStep(s State)
}
