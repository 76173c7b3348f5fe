package oscillator

import (
	"fmt"

	"github.com/san-kum/springlab/internal/dynamo"
	"github.com/san-kum/springlab/internal/forcing"
	"github.com/san-kum/springlab/internal/integrators"
)

// Params are the physical parameters of the mass-spring-damper:
// m*y'' = -b*y' - k*y + f(t).
type Params struct {
	Mass           float64
	Damping        float64
	SpringConstant float64
}

// System is a driven mass-spring-damper with mutable parameters and
// forcing. Time advances only through Step and only by exactly dt per
// call; nothing here reads a wall clock, so identical call sequences
// reproduce identical trajectories.
type System struct {
	params Params
	state  dynamo.State
	force  forcing.Func
	integ  dynamo.Integrator

	// initial conditions, captured at construction, used only by Reset
	y0, v0 float64
}

// New validates the physical parameters and returns a system at rest
// time zero with forcing "none".
func New(mass, damping, springConstant, y0, v0 float64) (*System, error) {
	p := Params{Mass: mass, Damping: damping, SpringConstant: springConstant}
	if err := p.validate(); err != nil {
		return nil, err
	}

	f, _ := forcing.New("none", nil)
	return &System{
		params: p,
		state:  dynamo.State{Position: y0, Velocity: v0, Time: 0},
		force:  f,
		integ:  integrators.NewRK4(),
		y0:     y0,
		v0:     v0,
	}, nil
}

func (p Params) validate() error {
	if !(p.Mass > 0) {
		return fmt.Errorf("%w: mass must be positive, got %g", ErrInvalidParameter, p.Mass)
	}
	if p.Damping < 0 {
		return fmt.Errorf("%w: damping must be non-negative, got %g", ErrInvalidParameter, p.Damping)
	}
	if p.SpringConstant < 0 {
		return fmt.Errorf("%w: springConstant must be non-negative, got %g", ErrInvalidParameter, p.SpringConstant)
	}
	return nil
}

// Step advances the system by dt and returns the new state. The
// derivative closes over a snapshot of the current parameters and
// forcing, not the system itself, so the integrator stays a pure unit.
// Step never fails: degenerate parameters or forcing may produce
// non-finite values, which propagate as ordinary floats.
func (s *System) Step(dt float64) dynamo.State {
	p := s.params
	f := s.force

	deriv := func(pos, vel, t float64) dynamo.Derivative {
		return dynamo.Derivative{
			DPos: vel,
			DVel: (-p.Damping*vel - p.SpringConstant*pos + f.Eval(t)) / p.Mass,
		}
	}

	s.state = s.integ.Step(deriv, s.state, dt)
	return s.state
}

// SetParameters applies a partial update: only named fields change,
// omitted fields keep their value. The whole batch is validated before
// any assignment; one bad entry (value or name) rejects the call and
// leaves the parameter set untouched.
func (s *System) SetParameters(update map[string]float64) error {
	next := s.params
	for name, value := range update {
		switch name {
		case "mass":
			next.Mass = value
		case "damping":
			next.Damping = value
		case "springConstant":
			next.SpringConstant = value
		default:
			return fmt.Errorf("%w: unknown parameter %q", ErrInvalidParameter, name)
		}
	}
	if err := next.validate(); err != nil {
		return err
	}
	s.params = next
	return nil
}

// SetForcing replaces the forcing selection. The resolved parameters
// are the preset's defaults overridden by params. On failure the prior
// selection stays active.
func (s *System) SetForcing(name string, params map[string]float64) error {
	f, err := forcing.New(name, params)
	if err != nil {
		return err
	}
	s.force = f
	return nil
}

// Reset restores the initial conditions and rewinds time to zero.
// Parameters and forcing selection are deliberately left alone.
func (s *System) Reset() {
	s.state = dynamo.State{Position: s.y0, Velocity: s.v0, Time: 0}
}

// State returns the current state snapshot.
func (s *System) State() dynamo.State {
	return s.state
}

// Parameters returns the current physical parameters.
func (s *System) Parameters() Params {
	return s.params
}

// Forcing returns the active preset name and a copy of its resolved
// parameters.
func (s *System) Forcing() (string, map[string]float64) {
	return s.force.Name(), s.force.Params()
}

// Energy is the instantaneous mechanical energy
// E = 1/2*k*y^2 + 1/2*m*v^2. It is a conserved quantity only for the
// undamped, unforced case but is computed unconditionally.
func (s *System) Energy() float64 {
	y, v := s.state.Position, s.state.Velocity
	return 0.5*s.params.SpringConstant*y*y + 0.5*s.params.Mass*v*v
}
