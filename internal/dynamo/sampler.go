package dynamo

import (
	"math"

	"github.com/san-kum/isingsim/internal/lattice"
)

// Sampler performs Metropolis single-spin-flip trial moves.
type Sampler struct {
	model     EnergyModel
	boltzmann float64
	src       Source
	attempts  int
	accepted  int
}

func NewSampler(model EnergyModel, boltzmann float64, src Source) *Sampler {
	return &Sampler{model: model, boltzmann: boltzmann, src: src}
}

// Step picks a row then a column uniformly at random and flips that spin if
// the energy change is non-positive, or otherwise with probability
// exp(-ΔE/(k_B·T)). It reports whether the flip was accepted.
func (s *Sampler) Step(l *lattice.Lattice, temperature float64) bool {
	n := l.Size()
	i := s.src.IntN(n)
	j := s.src.IntN(n)
	s.attempts++

	dE := s.model.SiteContribution(l, i, j)
	if dE <= 0 || s.src.Float64() < math.Exp(-dE/(s.boltzmann*temperature)) {
		l.Flip(i, j)
		s.accepted++
		return true
	}
	return false
}

// Sweep applies n independent trial moves and returns how many were accepted.
// Sites are reselected every move, so a sweep need not visit every site.
func (s *Sampler) Sweep(l *lattice.Lattice, temperature float64, n int) int {
	accepted := 0
	for k := 0; k < n; k++ {
		if s.Step(l, temperature) {
			accepted++
		}
	}
	return accepted
}

func (s *Sampler) Attempts() int { return s.attempts }
func (s *Sampler) Accepted() int { return s.accepted }

func (s *Sampler) ResetStats() {
	s.attempts = 0
	s.accepted = 0
}
