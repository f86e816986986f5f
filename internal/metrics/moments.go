package metrics

import "github.com/san-kum/isingsim/internal/physics"

// Moments accumulates first and second moments of energy and magnetization
// over the measurement phase of one temperature.
type Moments struct {
	Energy   float64
	EnergySq float64
	Magnet   float64
	MagnetSq float64
	Samples  int
}

func (m *Moments) Observe(e, mag float64) {
	m.Energy += e
	m.EnergySq += e * e
	m.Magnet += mag
	m.MagnetSq += mag * mag
	m.Samples++
}

func (m *Moments) Reset() {
	*m = Moments{}
}

// Observables are the thermodynamic estimates for one temperature.
type Observables struct {
	Energy         float64
	Magnetization  float64
	HeatCapacity   float64
	Susceptibility float64
}

// Estimate reduces accumulated moments using the fluctuation-dissipation
// relations. A single sample yields exactly zero heat capacity and
// susceptibility. Zero samples yield zero observables.
func Estimate(m Moments, temperature float64, units physics.Units) Observables {
	if m.Samples == 0 {
		return Observables{}
	}
	n := float64(m.Samples)
	return Observables{
		Energy:         m.Energy / n,
		Magnetization:  m.Magnet / n,
		HeatCapacity:   (m.EnergySq/n - (m.Energy/n)*(m.Energy/n)) / (units.Boltzmann * temperature * temperature),
		Susceptibility: (m.MagnetSq/n - (m.Magnet/n)*(m.Magnet/n)) / (units.Boltzmann * temperature),
	}
}
