package analysis

import "gonum.org/v1/gonum/stat"

// Autocorrelation returns the normalized autocorrelation of xs at lag.
// A constant series, or a lag outside [0, len(xs)), gives 0.
func Autocorrelation(xs []float64, lag int) float64 {
	n := len(xs)
	if lag < 0 || lag >= n {
		return 0
	}

	mean := stat.Mean(xs, nil)
	c0 := 0.0
	for _, x := range xs {
		c0 += (x - mean) * (x - mean)
	}
	if c0 == 0 {
		return 0
	}
	c0 /= float64(n)

	ck := 0.0
	for i := 0; i < n-lag; i++ {
		ck += (xs[i] - mean) * (xs[i+lag] - mean)
	}
	ck /= float64(n - lag)

	return ck / c0
}

// IntegratedTime returns τ = 1/2 + Σ ρ(k) for k = 1..maxLag, truncating the
// sum at the first non-positive ρ.
func IntegratedTime(xs []float64, maxLag int) float64 {
	tau := 0.5
	for lag := 1; lag <= maxLag && lag < len(xs); lag++ {
		rho := Autocorrelation(xs, lag)
		if rho <= 0 {
			break
		}
		tau += rho
	}
	return tau
}
