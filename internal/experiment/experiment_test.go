package experiment_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/isingsim/internal/dynamo"
	"github.com/san-kum/isingsim/internal/experiment"
	"github.com/san-kum/isingsim/internal/lattice"
	"github.com/san-kum/isingsim/internal/metrics"
	"github.com/san-kum/isingsim/internal/physics"
)

var _ = Describe("Experiment", func() {
	var cfg experiment.Config

	BeforeEach(func() {
		cfg = experiment.Config{
			Size:         4,
			Field:        0,
			Units:        physics.NaturalUnits(),
			Phases:       dynamo.Combined(200),
			Temperatures: experiment.Temperatures{2.0},
			Seed:         42,
		}
	})

	Context("with a single temperature", func() {
		It("produces exactly one record matching a direct simulator run", func() {
			sweep, err := experiment.New(cfg).Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(sweep.Records).To(HaveLen(1))

			src := dynamo.NewSource(cfg.Seed)
			l, err := lattice.NewRandom(cfg.Size, src)
			Expect(err).NotTo(HaveOccurred())
			sim := dynamo.New(physics.NewIsing(cfg.Field, cfg.Units), cfg.Units, src)
			result, err := sim.Run(context.Background(), l, 2.0, cfg.Phases)
			Expect(err).NotTo(HaveOccurred())

			Expect(sweep.Records[0]).To(Equal(experiment.NewRecord(result)))
			Expect(sweep.Final.Rows()).To(Equal(l.Rows()))
		})

		It("reports the observables of the estimator", func() {
			sweep, err := experiment.New(cfg).Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			rec := sweep.Records[0]
			Expect(rec.Temperature).To(Equal(2.0))
			Expect(rec.Magnetization).To(BeNumerically(">=", 0))
			Expect(rec.Magnetization).To(BeNumerically("<=", 1))
			Expect(rec.AcceptanceRate).To(BeNumerically(">", 0))
		})
	})

	Context("with a temperature sequence", func() {
		BeforeEach(func() {
			temps, err := experiment.Range(1.0, 3.0, 0.5)
			Expect(err).NotTo(HaveOccurred())
			cfg.Temperatures = temps
		})

		It("returns one record per temperature in order", func() {
			var seen []int
			exp := experiment.New(cfg)
			exp.OnProgress(func(done, total int, rec experiment.Record) {
				Expect(total).To(Equal(5))
				seen = append(seen, done)
			})

			sweep, err := exp.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(sweep.Temperatures()).To(Equal([]float64{1.0, 1.5, 2.0, 2.5, 3.0}))
			Expect(sweep.Energies()).To(HaveLen(5))
			Expect(sweep.HeatCapacities()).To(HaveLen(5))
			Expect(sweep.Susceptibilities()).To(HaveLen(5))
			Expect(sweep.Magnetizations()).To(HaveLen(5))
			Expect(seen).To(Equal([]int{1, 2, 3, 4, 5}))
			Expect(sweep.Elapsed).To(BeNumerically(">", 0))
		})

		It("carries the lattice from one temperature to the next", func() {
			l, err := lattice.New(cfg.Size)
			Expect(err).NotTo(HaveOccurred())

			sweep, err := experiment.NewWithSource(cfg, dynamo.NewSource(7)).RunOn(context.Background(), l)
			Expect(err).NotTo(HaveOccurred())
			Expect(sweep.Final).To(BeIdenticalTo(l))

			fresh, _ := lattice.New(cfg.Size)
			src := dynamo.NewSource(7)
			sim := dynamo.New(physics.NewIsing(0, cfg.Units), cfg.Units, src)
			for i, t := range cfg.Temperatures {
				result, err := sim.Run(context.Background(), fresh, t, cfg.Phases)
				Expect(err).NotTo(HaveOccurred())
				Expect(sweep.Records[i]).To(Equal(experiment.NewRecord(result)))
			}
		})

		It("is reproducible for a fixed seed", func() {
			a, err := experiment.New(cfg).Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			b, err := experiment.New(cfg).Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Records).To(Equal(b.Records))
		})
	})

	Context("with series recording", func() {
		It("fills error bars and series", func() {
			cfg.KeepSeries = true
			cfg.Phases = dynamo.Phases{Equilibration: 100, Measurement: 500}
			exp := experiment.New(cfg)
			exp.AddMetric(metrics.NewOrderedFraction(0.5))

			sweep, err := exp.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(sweep.Series).To(HaveLen(1))
			Expect(sweep.Series[0].Len()).To(Equal(500))
			Expect(sweep.Records[0].EnergyErr).To(BeNumerically(">=", 0))
		})
	})

	Context("with an invalid configuration", func() {
		It("rejects a non-positive size", func() {
			cfg.Size = 0
			_, err := experiment.New(cfg).Run(context.Background())
			Expect(errors.Is(err, dynamo.ErrInvalidConfig)).To(BeTrue())
		})

		It("rejects zero steps", func() {
			cfg.Phases = dynamo.Combined(0)
			_, err := experiment.New(cfg).Run(context.Background())
			Expect(errors.Is(err, dynamo.ErrInvalidConfig)).To(BeTrue())
		})

		It("rejects an empty sequence", func() {
			cfg.Temperatures = nil
			_, err := experiment.New(cfg).Run(context.Background())
			Expect(errors.Is(err, experiment.ErrEmptySequence)).To(BeTrue())
		})

		It("stops on a canceled context", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := experiment.New(cfg).Run(ctx)
			Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		})
	})
})
