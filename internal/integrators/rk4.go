package integrators

import "github.com/san-kum/springlab/internal/dynamo"

// RK4 is the classical fourth-order Runge-Kutta stepper. Local
// truncation error is O(dt^5), global error O(dt^4).
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(f dynamo.DerivFunc, s dynamo.State, dt float64) dynamo.State {
	y, v, t := s.Position, s.Velocity, s.Time
	half := 0.5 * dt

	k1 := f(y, v, t)
	k2 := f(y+half*k1.DPos, v+half*k1.DVel, t+half)
	k3 := f(y+half*k2.DPos, v+half*k2.DVel, t+half)
	k4 := f(y+dt*k3.DPos, v+dt*k3.DVel, t+dt)

	dt6 := dt / 6.0
	return dynamo.State{
		Position: y + dt6*(k1.DPos+2*k2.DPos+2*k3.DPos+k4.DPos),
		Velocity: v + dt6*(k1.DVel+2*k2.DVel+2*k3.DVel+k4.DVel),
		Time:     t + dt,
	}
}
