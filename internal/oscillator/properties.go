package oscillator

import "math"

// Regime classifies the damped response.
type Regime string

const (
	Underdamped Regime = "underdamped"
	Critical    Regime = "critical"
	Overdamped  Regime = "overdamped"
)

// discriminant values within this band of zero count as critical
const regimeTolerance = 1e-10

// Properties are quantities derived from the current parameters. They
// are computed on demand and never stored.
type Properties struct {
	Omega0 float64 // natural angular frequency sqrt(k/m)
	F0     float64 // natural frequency omega0/2pi
	Period float64 // 1/F0
	Zeta   float64 // damping ratio b/(2*sqrt(m*k))
	Regime Regime
	OmegaD float64 // damped angular frequency, underdamped only
	FD     float64
	Q      float64 // quality factor; +Inf at zero damping
}

// Properties derives the spectral characteristics of the system from
// its current parameters. Zero damping is an explicit special case:
// zeta 0, underdamped, Q positive infinity.
func (s *System) Properties() Properties {
	m, b, k := s.params.Mass, s.params.Damping, s.params.SpringConstant

	p := Properties{
		Omega0: math.Sqrt(k / m),
	}
	p.F0 = p.Omega0 / (2 * math.Pi)
	p.Period = 1 / p.F0

	if b == 0 {
		p.Zeta = 0
		p.Regime = Underdamped
		p.Q = math.Inf(1)
	} else {
		p.Zeta = b / (2 * math.Sqrt(m*k))
		p.Q = math.Sqrt(m*k) / b

		d := b*b - 4*m*k
		switch {
		case d > regimeTolerance:
			p.Regime = Overdamped
		case d < -regimeTolerance:
			p.Regime = Underdamped
		default:
			p.Regime = Critical
		}
	}

	if p.Regime == Underdamped {
		p.OmegaD = p.Omega0 * math.Sqrt(1-p.Zeta*p.Zeta)
		p.FD = p.OmegaD / (2 * math.Pi)
	}

	return p
}
