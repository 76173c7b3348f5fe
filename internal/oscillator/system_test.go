package oscillator

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/springlab/internal/forcing"
)

func TestNewRejectsBadParams(t *testing.T) {
	cases := []struct {
		name                   string
		mass, damping, springK float64
		field                  string
	}{
		{"zero mass", 0, 0.1, 1, "mass"},
		{"negative mass", -1, 0.1, 1, "mass"},
		{"negative damping", 1, -0.1, 1, "damping"},
		{"negative spring", 1, 0.1, -1, "springConstant"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.mass, tc.damping, tc.springK, 1, 0)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("error should name %q: %v", tc.field, err)
			}
		})
	}
}

func TestSHMTracksCosine(t *testing.T) {
	sys, err := New(1, 0, 1, 1, 0)
	if err != nil {
		t.Fatal(err)
	}

	dt := 0.01
	steps := int(10 * 2 * math.Pi / dt)
	for i := 0; i < steps; i++ {
		s := sys.Step(dt)
		if math.Abs(s.Position-math.Cos(s.Time)) > 0.001 {
			t.Fatalf("at t=%.2f: position %.6f, expected %.6f", s.Time, s.Position, math.Cos(s.Time))
		}
	}
}

func TestEnergyConservation(t *testing.T) {
	sys, _ := New(1, 0, 1, 1, 0)

	e0 := sys.Energy()
	dt := 0.01
	for i := 0; i < 1000; i++ {
		sys.Step(dt)
		drift := math.Abs(sys.Energy()-e0) / e0
		if drift > 0.0001 {
			t.Fatalf("energy drift %.2e at t=%.2f", drift, sys.State().Time)
		}
	}
}

func TestStepReturnsIndependentCopy(t *testing.T) {
	sys, _ := New(1, 0.2, 5, 1, 0)

	snap := sys.Step(0.01)
	snap.Position = 1e9
	snap.Time = -1

	if sys.State().Position == 1e9 || sys.State().Time == -1 {
		t.Error("mutating a returned snapshot changed internal state")
	}
}

func TestSetParametersPartial(t *testing.T) {
	sys, _ := New(1, 0.3, 4, 1, 0)

	if err := sys.SetParameters(map[string]float64{"mass": 2}); err != nil {
		t.Fatal(err)
	}

	p := sys.Parameters()
	if p.Mass != 2 {
		t.Errorf("mass not updated: %f", p.Mass)
	}
	if p.Damping != 0.3 || p.SpringConstant != 4 {
		t.Errorf("untouched fields changed: %+v", p)
	}
}

func TestSetParametersAtomic(t *testing.T) {
	sys, _ := New(1, 0.3, 4, 1, 0)

	err := sys.SetParameters(map[string]float64{"damping": 0.9, "mass": -5})
	if err == nil {
		t.Fatal("expected error for negative mass")
	}

	p := sys.Parameters()
	if p.Mass != 1 || p.Damping != 0.3 || p.SpringConstant != 4 {
		t.Errorf("failed batch update leaked a change: %+v", p)
	}
}

func TestSetParametersUnknownName(t *testing.T) {
	sys, _ := New(1, 0.3, 4, 1, 0)

	err := sys.SetParameters(map[string]float64{"stiffness": 2})
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for unknown name, got %v", err)
	}
}

func TestSetForcingUnknownKeepsPrior(t *testing.T) {
	sys, _ := New(1, 0, 1, 1, 0)

	if err := sys.SetForcing("sine", map[string]float64{"amplitude": 2}); err != nil {
		t.Fatal(err)
	}

	err := sys.SetForcing("noise", nil)
	if !errors.Is(err, forcing.ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}

	name, params := sys.Forcing()
	if name != "sine" {
		t.Errorf("prior forcing lost: %s", name)
	}
	if params["amplitude"] != 2 {
		t.Errorf("prior forcing params lost: %v", params)
	}
}

func TestForcingReplacedNotAccumulated(t *testing.T) {
	sys, _ := New(1, 0, 1, 1, 0)

	sys.SetForcing("sine", map[string]float64{"frequency": 3})
	sys.SetForcing("sine", map[string]float64{"amplitude": 2})

	_, params := sys.Forcing()
	if params["frequency"] != 1.0 {
		t.Errorf("forcing params accumulated across calls: frequency = %f", params["frequency"])
	}
	if params["amplitude"] != 2.0 {
		t.Errorf("override lost: amplitude = %f", params["amplitude"])
	}
}

func TestResetIdempotence(t *testing.T) {
	sys, _ := New(1, 0.5, 2, 0.7, -0.2)

	for i := 0; i < 500; i++ {
		sys.Step(0.01)
	}
	sys.SetParameters(map[string]float64{"mass": 3})
	sys.SetForcing("step", nil)
	sys.Reset()

	s := sys.State()
	if s.Position != 0.7 || s.Velocity != -0.2 || s.Time != 0 {
		t.Errorf("reset state: %+v", s)
	}

	// parameters and forcing survive reset
	if sys.Parameters().Mass != 3 {
		t.Errorf("reset should not touch parameters")
	}
	if name, _ := sys.Forcing(); name != "step" {
		t.Errorf("reset should not touch forcing, got %s", name)
	}

	sys.Reset()
	if sys.State() != s {
		t.Error("second reset changed the state")
	}
}

func TestFreeParticleDrift(t *testing.T) {
	sys, _ := New(1, 0, 0, 0, 1)

	dt := 0.01
	for i := 0; i < 1000; i++ {
		s := sys.Step(dt)
		if math.Abs(s.Position-s.Time) > 0.001 {
			t.Fatalf("free particle at t=%.2f: position %.6f", s.Time, s.Position)
		}
		if math.Abs(s.Velocity-1) > 0.001 {
			t.Fatalf("free particle velocity drifted: %.6f", s.Velocity)
		}
	}
}

func TestZeroAmplitudeForcingMatchesNone(t *testing.T) {
	a, _ := New(1, 0.1, 2, 1, 0)
	b, _ := New(1, 0.1, 2, 1, 0)
	b.SetForcing("sine", map[string]float64{"amplitude": 0})

	for i := 0; i < 1000; i++ {
		sa := a.Step(0.01)
		sb := b.Step(0.01)
		if math.Abs(sa.Position-sb.Position) > 1e-12 {
			t.Fatalf("trajectories diverged at t=%.2f: %.12f vs %.12f", sa.Time, sa.Position, sb.Position)
		}
	}
}

func TestDeterministicTrajectories(t *testing.T) {
	run := func() []float64 {
		sys, _ := New(1.3, 0.4, 6, 0.5, 0.1)
		sys.SetForcing("square", map[string]float64{"frequency": 0.7})
		out := make([]float64, 0, 300)
		for i := 0; i < 300; i++ {
			out = append(out, sys.Step(0.016).Position)
		}
		return out
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("trajectories not bit-identical at step %d", i)
		}
	}
}

func TestDrivenResonanceGrows(t *testing.T) {
	// drive at the natural frequency of an undamped oscillator starting
	// at rest; the amplitude must grow without bound
	sys, _ := New(1, 0, 1, 0, 0)
	sys.SetForcing("sine", map[string]float64{"frequency": 1 / (2 * math.Pi)})

	var peak float64
	for i := 0; i < 5000; i++ {
		s := sys.Step(0.01)
		peak = math.Max(peak, math.Abs(s.Position))
	}
	if peak < 5 {
		t.Errorf("resonant response too small: peak %.3f", peak)
	}
}
