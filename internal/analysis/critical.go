package analysis

import (
	"errors"
	"math"

	"github.com/montanaflynn/stats"
	"github.com/san-kum/isingsim/internal/experiment"
)

// OnsagerTc is the exact critical temperature of the infinite zero-field
// lattice in natural units, 2/ln(1+√2).
var OnsagerTc = 2 / math.Log(1+math.Sqrt2)

var ErrNoRecords = errors.New("analysis: no records")

type Critical struct {
	HeatCapacityPeak   float64
	SusceptibilityPeak float64
	Estimate           float64
}

// CriticalTemperature takes the temperatures at which heat capacity and
// susceptibility peak and averages them.
func CriticalTemperature(records []experiment.Record) (Critical, error) {
	if len(records) == 0 {
		return Critical{}, ErrNoRecords
	}

	temps := make(stats.Float64Data, len(records))
	heat := make(stats.Float64Data, len(records))
	chi := make(stats.Float64Data, len(records))
	for i, r := range records {
		temps[i] = r.Temperature
		heat[i] = r.HeatCapacity
		chi[i] = r.Susceptibility
	}

	cPeak, err := peakAt(temps, heat)
	if err != nil {
		return Critical{}, err
	}
	xPeak, err := peakAt(temps, chi)
	if err != nil {
		return Critical{}, err
	}

	est, err := stats.Mean(stats.Float64Data{cPeak, xPeak})
	if err != nil {
		return Critical{}, err
	}

	return Critical{
		HeatCapacityPeak:   cPeak,
		SusceptibilityPeak: xPeak,
		Estimate:           est,
	}, nil
}

// peakAt returns the x of the first maximum of ys.
func peakAt(xs, ys stats.Float64Data) (float64, error) {
	top, err := stats.Max(ys)
	if err != nil {
		return 0, err
	}
	for i, y := range ys {
		if y == top {
			return xs[i], nil
		}
	}
	return xs[0], nil
}
