package dynamo

import (
	"fmt"
	"math/rand/v2"

	"github.com/san-kum/isingsim/internal/lattice"
	"github.com/san-kum/isingsim/internal/metrics"
	"github.com/san-kum/isingsim/internal/physics"
)

// Source is the random generator shared by the sampler and the initial
// configuration. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// NewSource returns a deterministic PCG generator for seed.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

type EnergyModel interface {
	SiteContribution(l *lattice.Lattice, i, j int) float64
	TotalEnergy(l *lattice.Lattice) float64
	Magnetization(l *lattice.Lattice) float64
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

type Metric interface {
	Name() string
	Observe(energy, magnetization float64)
	Value() float64
	Reset()
}

// Observer is notified after every measurement sample.
type Observer interface {
	OnSample(l *lattice.Lattice, energy, magnetization float64, sample int)
}

// Phases sets how many trial moves are discarded for equilibration and how
// many samples are measured afterwards.
type Phases struct {
	Equilibration int
	Measurement   int
}

// Combined uses n for both phases.
func Combined(n int) Phases {
	return Phases{Equilibration: n, Measurement: n}
}

func (p Phases) Validate() error {
	if p.Equilibration <= 0 {
		return fmt.Errorf("%w: equilibration steps must be positive, got %d", ErrInvalidConfig, p.Equilibration)
	}
	if p.Measurement <= 0 {
		return fmt.Errorf("%w: measurement samples must be positive, got %d", ErrInvalidConfig, p.Measurement)
	}
	return nil
}

// Result holds everything measured at one temperature.
type Result struct {
	Temperature float64
	Moments     metrics.Moments
	Observables metrics.Observables
	Series      *metrics.Series
	Metrics     map[string]float64
	Attempts    int
	Accepted    int
}

func (r *Result) AcceptanceRate() float64 {
	if r.Attempts == 0 {
		return 0
	}
	return float64(r.Accepted) / float64(r.Attempts)
}

// ensure the physics model satisfies the interfaces used here
var (
	_ EnergyModel  = (*physics.Ising)(nil)
	_ Configurable = (*physics.Ising)(nil)
)
