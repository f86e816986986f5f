package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// DefaultBins is the number of blocks used for binned error estimates.
const DefaultBins = 10

// Series keeps every measured sample so that correlated errors can be estimated.
type Series struct {
	Energy        []float64
	Magnetization []float64
}

func NewSeries(capacity int) *Series {
	return &Series{
		Energy:        make([]float64, 0, capacity),
		Magnetization: make([]float64, 0, capacity),
	}
}

func (s *Series) Observe(e, m float64) {
	s.Energy = append(s.Energy, e)
	s.Magnetization = append(s.Magnetization, m)
}

func (s *Series) Reset() {
	s.Energy = s.Energy[:0]
	s.Magnetization = s.Magnetization[:0]
}

func (s *Series) Len() int { return len(s.Energy) }

// BinnedError returns the standard error of the mean of xs computed from the
// spread of block averages. Trailing samples that do not fill a block are
// dropped. Fewer than two blocks give zero.
func BinnedError(xs []float64, bins int) float64 {
	if bins < 2 || len(xs) < bins {
		return 0
	}
	size := len(xs) / bins
	means := make([]float64, bins)
	for b := 0; b < bins; b++ {
		means[b] = stat.Mean(xs[b*size:(b+1)*size], nil)
	}
	return math.Sqrt(stat.Variance(means, nil) / float64(bins))
}
