package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/isingsim/internal/dynamo"
	"github.com/san-kum/isingsim/internal/lattice"
	"github.com/san-kum/isingsim/internal/metrics"
	"github.com/san-kum/isingsim/internal/physics"
)

type Config struct {
	Size         int
	Field        float64
	Units        physics.Units
	Phases       dynamo.Phases
	Temperatures Temperatures
	Seed         int64
	KeepSeries   bool
}

// Record is the outcome for one temperature.
type Record struct {
	Temperature      float64            `json:"temperature"`
	Energy           float64            `json:"energy"`
	Magnetization    float64            `json:"magnetization"`
	HeatCapacity     float64            `json:"heat_capacity"`
	Susceptibility   float64            `json:"susceptibility"`
	EnergyErr        float64            `json:"energy_err,omitempty"`
	MagnetizationErr float64            `json:"magnetization_err,omitempty"`
	AcceptanceRate   float64            `json:"acceptance_rate"`
	Metrics          map[string]float64 `json:"metrics,omitempty"`
}

// NewRecord converts a single-temperature result into a record.
func NewRecord(r *dynamo.Result) Record {
	rec := Record{
		Temperature:    r.Temperature,
		Energy:         r.Observables.Energy,
		Magnetization:  r.Observables.Magnetization,
		HeatCapacity:   r.Observables.HeatCapacity,
		Susceptibility: r.Observables.Susceptibility,
		AcceptanceRate: r.AcceptanceRate(),
		Metrics:        r.Metrics,
	}
	if r.Series != nil {
		rec.EnergyErr = metrics.BinnedError(r.Series.Energy, metrics.DefaultBins)
		rec.MagnetizationErr = metrics.BinnedError(r.Series.Magnetization, metrics.DefaultBins)
	}
	return rec
}

// Sweep is the ordered outcome of a temperature sweep.
type Sweep struct {
	Records []Record
	Series  []*metrics.Series
	Elapsed time.Duration
	Final   *lattice.Lattice
}

// Temperatures and the observable accessors return parallel arrays aligned
// with Records, as consumed by plotting and export.
func (s *Sweep) Temperatures() []float64 {
	return s.column(func(r Record) float64 { return r.Temperature })
}

func (s *Sweep) Energies() []float64 {
	return s.column(func(r Record) float64 { return r.Energy })
}

func (s *Sweep) Magnetizations() []float64 {
	return s.column(func(r Record) float64 { return r.Magnetization })
}

func (s *Sweep) HeatCapacities() []float64 {
	return s.column(func(r Record) float64 { return r.HeatCapacity })
}

func (s *Sweep) Susceptibilities() []float64 {
	return s.column(func(r Record) float64 { return r.Susceptibility })
}

func (s *Sweep) column(fn func(Record) float64) []float64 {
	out := make([]float64, len(s.Records))
	for i, r := range s.Records {
		out[i] = fn(r)
	}
	return out
}

// ProgressFunc is called after each temperature completes.
type ProgressFunc func(done, total int, rec Record)

type Experiment struct {
	cfg      Config
	src      dynamo.Source
	progress ProgressFunc
	metrics  []dynamo.Metric
}

func New(cfg Config) *Experiment {
	return NewWithSource(cfg, dynamo.NewSource(cfg.Seed))
}

// NewWithSource uses src for both the initial lattice and the sampler.
func NewWithSource(cfg Config, src dynamo.Source) *Experiment {
	return &Experiment{cfg: cfg, src: src}
}

func (e *Experiment) OnProgress(fn ProgressFunc) { e.progress = fn }
func (e *Experiment) AddMetric(m dynamo.Metric)  { e.metrics = append(e.metrics, m) }

func (e *Experiment) validate() error {
	if e.cfg.Size <= 0 {
		return fmt.Errorf("%w: lattice size must be positive, got %d", dynamo.ErrInvalidConfig, e.cfg.Size)
	}
	if err := e.cfg.Phases.Validate(); err != nil {
		return err
	}
	return e.cfg.Temperatures.Validate()
}

// Run draws a random initial lattice and sweeps every temperature in order.
func (e *Experiment) Run(ctx context.Context) (*Sweep, error) {
	if err := e.validate(); err != nil {
		return nil, err
	}
	l, err := lattice.NewRandom(e.cfg.Size, e.src)
	if err != nil {
		return nil, err
	}
	return e.RunOn(ctx, l)
}

// RunOn sweeps every temperature against l, which persists between
// temperatures: each one starts from the configuration the previous one left.
func (e *Experiment) RunOn(ctx context.Context, l *lattice.Lattice) (*Sweep, error) {
	if err := e.validate(); err != nil {
		return nil, err
	}

	model := physics.NewIsing(e.cfg.Field, e.cfg.Units)
	sim := dynamo.New(model, e.cfg.Units, e.src)
	sim.KeepSeries(e.cfg.KeepSeries)
	for _, m := range e.metrics {
		sim.AddMetric(m)
	}

	temps := e.cfg.Temperatures
	sweep := &Sweep{
		Records: make([]Record, 0, len(temps)),
		Series:  make([]*metrics.Series, 0, len(temps)),
		Final:   l,
	}

	start := time.Now()
	for i, t := range temps {
		result, err := sim.Run(ctx, l, t, e.cfg.Phases)
		if err != nil {
			return sweep, fmt.Errorf("temperature %g: %w", t, err)
		}

		rec := NewRecord(result)
		sweep.Records = append(sweep.Records, rec)
		sweep.Series = append(sweep.Series, result.Series)

		if e.progress != nil {
			e.progress(i+1, len(temps), rec)
		}
	}
	sweep.Elapsed = time.Since(start)

	return sweep, nil
}
