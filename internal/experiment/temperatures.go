package experiment

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidTemperature indicates a non-positive or non-finite temperature,
	// or a malformed range.
	ErrInvalidTemperature = errors.New("experiment: invalid temperature")

	// ErrEmptySequence indicates a sweep with no temperatures.
	ErrEmptySequence = errors.New("experiment: empty temperature sequence")
)

// rangeTolerance absorbs float noise when deciding whether a range point lies
// strictly below stop+step.
const rangeTolerance = 1e-9

// MaxTemperatures caps the length of a range.
const MaxTemperatures = 1 << 20

// Temperatures is an ordered sequence of positive temperatures. Order matters:
// the lattice carries over from one temperature to the next.
type Temperatures []float64

func Single(t float64) (Temperatures, error) {
	if err := checkTemperature(t); err != nil {
		return nil, err
	}
	return Temperatures{t}, nil
}

// Range returns start, start+step, ... for every point below stop+step, so
// stop itself is included when it lies on the grid.
func Range(start, stop, step float64) (Temperatures, error) {
	if err := checkTemperature(start); err != nil {
		return nil, err
	}
	if !(step > 0) || math.IsInf(step, 0) {
		return nil, fmt.Errorf("%w: step must be positive, got %f", ErrInvalidTemperature, step)
	}
	if stop < start || math.IsInf(stop, 0) || math.IsNaN(stop) {
		return nil, fmt.Errorf("%w: stop %f below start %f", ErrInvalidTemperature, stop, start)
	}

	count := math.Ceil((stop-start)/step + 1 - rangeTolerance)
	if math.IsInf(count, 0) || math.IsNaN(count) || count > MaxTemperatures {
		return nil, fmt.Errorf("%w: range %g..%g step %g exceeds %d temperatures", ErrInvalidTemperature, start, stop, step, MaxTemperatures)
	}
	temps := make(Temperatures, int(count))
	for k := range temps {
		temps[k] = start + float64(k)*step
	}
	return temps, nil
}

func (ts Temperatures) Validate() error {
	if len(ts) == 0 {
		return ErrEmptySequence
	}
	for _, t := range ts {
		if err := checkTemperature(t); err != nil {
			return err
		}
	}
	return nil
}

func checkTemperature(t float64) error {
	if !(t > 0) || math.IsInf(t, 0) {
		return fmt.Errorf("%w: %f", ErrInvalidTemperature, t)
	}
	return nil
}
