package dynamo

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/isingsim/internal/lattice"
	"github.com/san-kum/isingsim/internal/metrics"
	"github.com/san-kum/isingsim/internal/physics"
)

// checkInterval is how many trial moves run between context polls.
const checkInterval = 4096

type Simulator struct {
	model      EnergyModel
	units      physics.Units
	sampler    *Sampler
	metrics    []Metric
	observers  []Observer
	keepSeries bool
}

func New(model EnergyModel, units physics.Units, src Source) *Simulator {
	return &Simulator{
		model:     model,
		units:     units,
		sampler:   NewSampler(model, units.Boltzmann, src),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// KeepSeries records every measured sample in Result.Series.
func (s *Simulator) KeepSeries(keep bool) { s.keepSeries = keep }

func (s *Simulator) Sampler() *Sampler { return s.sampler }

// Run equilibrates l at temperature for phases.Equilibration trial moves,
// discarding them, then takes phases.Measurement samples of one trial move
// each, recording energy and magnetization per site after every move.
// The lattice is mutated in place and keeps its final configuration.
func (s *Simulator) Run(ctx context.Context, l *lattice.Lattice, temperature float64, phases Phases) (*Result, error) {
	if err := s.validate(l, temperature, phases); err != nil {
		return nil, err
	}

	s.sampler.ResetStats()
	for _, m := range s.metrics {
		m.Reset()
	}

	for k := 0; k < phases.Equilibration; k++ {
		if k%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		s.sampler.Step(l, temperature)
	}

	result := &Result{
		Temperature: temperature,
		Metrics:     make(map[string]float64),
	}
	if s.keepSeries {
		result.Series = metrics.NewSeries(phases.Measurement)
	}

	for k := 0; k < phases.Measurement; k++ {
		if k%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		s.sampler.Step(l, temperature)

		e := s.model.TotalEnergy(l)
		m := s.model.Magnetization(l)
		result.Moments.Observe(e, m)
		if result.Series != nil {
			result.Series.Observe(e, m)
		}
		for _, metric := range s.metrics {
			metric.Observe(e, m)
		}
		for _, obs := range s.observers {
			obs.OnSample(l, e, m, k)
		}
	}

	result.Observables = metrics.Estimate(result.Moments, temperature, s.units)
	result.Attempts = s.sampler.Attempts()
	result.Accepted = s.sampler.Accepted()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) validate(l *lattice.Lattice, temperature float64, phases Phases) error {
	if l == nil {
		return ErrNilLattice
	}
	if temperature <= 0 || math.IsNaN(temperature) || math.IsInf(temperature, 0) {
		return fmt.Errorf("%w: temperature must be positive and finite, got %f", ErrInvalidConfig, temperature)
	}
	if s.units.Boltzmann <= 0 {
		return fmt.Errorf("%w: boltzmann constant must be positive, got %f", ErrInvalidConfig, s.units.Boltzmann)
	}
	return phases.Validate()
}
