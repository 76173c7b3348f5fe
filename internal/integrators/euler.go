package integrators

import "github.com/san-kum/springlab/internal/dynamo"

// Euler is the forward Euler stepper. One derivative evaluation per
// step, global error O(dt). Kept as an accuracy baseline for RK4; the
// system wrapper never uses it.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(f dynamo.DerivFunc, s dynamo.State, dt float64) dynamo.State {
	d := f(s.Position, s.Velocity, s.Time)
	return dynamo.State{
		Position: s.Position + dt*d.DPos,
		Velocity: s.Velocity + dt*d.DVel,
		Time:     s.Time + dt,
	}
}
