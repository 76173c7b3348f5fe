package metrics

import (
	"math"

	"github.com/san-kum/springlab/internal/dynamo"
)

// EnergyDrift tracks the maximum relative deviation of mechanical
// energy from its first observed value. Only meaningful for undamped,
// unforced runs, where it measures integration error directly.
type EnergyDrift struct {
	mass     float64
	springK  float64
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(mass, springConstant float64) *EnergyDrift {
	return &EnergyDrift{mass: mass, springK: springConstant}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(s dynamo.State) {
	energy := 0.5*e.springK*s.Position*s.Position + 0.5*e.mass*s.Velocity*s.Velocity

	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// PeakAmplitude records the largest |position| seen.
type PeakAmplitude struct {
	peak float64
}

func NewPeakAmplitude() *PeakAmplitude {
	return &PeakAmplitude{}
}

func (p *PeakAmplitude) Name() string { return "peak_amplitude" }

func (p *PeakAmplitude) Observe(s dynamo.State) {
	p.peak = math.Max(p.peak, math.Abs(s.Position))
}

func (p *PeakAmplitude) Value() float64 { return p.peak }
func (p *PeakAmplitude) Reset()         { p.peak = 0 }

// SettlingTime reports the last time |position| exceeded the threshold,
// i.e. the time after which the response stayed inside the band.
type SettlingTime struct {
	threshold float64
	last      float64
}

func NewSettlingTime(threshold float64) *SettlingTime {
	return &SettlingTime{threshold: threshold}
}

func (s *SettlingTime) Name() string { return "settling_time" }

func (s *SettlingTime) Observe(st dynamo.State) {
	if math.Abs(st.Position) > s.threshold {
		s.last = st.Time
	}
}

func (s *SettlingTime) Value() float64 { return s.last }
func (s *SettlingTime) Reset()         { s.last = 0 }
