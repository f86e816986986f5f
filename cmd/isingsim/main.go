package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/isingsim/internal/analysis"
	"github.com/san-kum/isingsim/internal/config"
	"github.com/san-kum/isingsim/internal/dynamo"
	"github.com/san-kum/isingsim/internal/experiment"
	"github.com/san-kum/isingsim/internal/export"
	"github.com/san-kum/isingsim/internal/lattice"
	"github.com/san-kum/isingsim/internal/metrics"
	"github.com/san-kum/isingsim/internal/physics"
	"github.com/san-kum/isingsim/internal/storage"
	"github.com/san-kum/isingsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir       string
	field         float64
	size          int
	steps         int
	equilibration int
	measurement   int
	temperature   float64
	tempStart     float64
	tempStop      float64
	tempStep      float64
	seed          int64
	keepSeries    bool
	// Config file
	configFile string
	// Preset name
	preset string
	// Output files
	textOut    string
	latticeOut string
	svgOut     string
	// Live view
	stepsPerFrame int
)

const orderedThreshold = 0.9

// main registers the isingsim commands and executes the root command.
func main() {
	rootCmd := &cobra.Command{
		Use:   "isingsim",
		Short: "2D Ising model Metropolis simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".isingsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a temperature sweep",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addModelFlags(runCmd)
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "metropolis steps for equilibration and measurement")
	runCmd.Flags().IntVar(&equilibration, "equilibration", 0, "equilibration steps (overrides --steps)")
	runCmd.Flags().IntVar(&measurement, "measurement", 0, "measurement steps (overrides --steps)")
	runCmd.Flags().Float64Var(&temperature, "temp", 0, "single temperature (overrides range)")
	runCmd.Flags().Float64Var(&tempStart, "start", config.DefaultTempStart, "range start temperature")
	runCmd.Flags().Float64Var(&tempStop, "stop", config.DefaultTempStop, "range stop temperature")
	runCmd.Flags().Float64Var(&tempStep, "step", config.DefaultTempStep, "range temperature increment")
	runCmd.Flags().BoolVar(&keepSeries, "keep-series", false, "keep samples for error and autocorrelation estimates")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().StringVar(&textOut, "out", "", "write results table to this file")
	runCmd.Flags().StringVar(&latticeOut, "lattice-svg", "", "write final lattice as svg to this file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot observables against temperature",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata and records as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportTextCmd := &cobra.Command{
		Use:   "export-txt [run_id]",
		Short: "export run as a tab-separated results table",
		Args:  cobra.ExactArgs(1),
		RunE:  exportText,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export observable plots as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "estimate the critical temperature of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIZE\tFIELD\tEQUIL\tMEASURE\tTEMPERATURES")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				p := cfg.Phases()
				fmt.Fprintf(w, "%s\t%d\t%g\t%d\t%d\t%s\n", name, cfg.Size, cfg.Field, p.Equilibration, p.Measurement, describeTemperatures(cfg))
			}
			return w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if preset != "" {
				if cfg = config.GetPreset(preset); cfg == nil {
					return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
				}
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the lattice evolve at one temperature",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addModelFlags(liveCmd)
	liveCmd.Flags().Float64Var(&temperature, "temp", 2.269, "temperature")
	liveCmd.Flags().IntVar(&stepsPerFrame, "steps-per-frame", 0, "trial moves per frame (0 = one per site)")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportTextCmd, exportSVGCmd, analyzeCmd, presetsCmd, initCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&field, "field", 0, "external magnetic field B")
	cmd.Flags().IntVar(&size, "size", config.DefaultSize, "lattice side length N")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
}

func describeTemperatures(cfg *config.Config) string {
	if cfg.SingleTemperature() {
		return fmt.Sprintf("%g", cfg.Temperature.Value)
	}
	t := cfg.Temperature
	return fmt.Sprintf("%g..%g step %g", t.Start, t.Stop, t.Step)
}

// resolveConfig layers preset, config file and flags, later sources winning.
// Flags only override when set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		if cfg = config.GetPreset(preset); cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	fromFile := preset != "" || configFile != ""
	apply := func(name string) bool { return flags.Changed(name) || !fromFile }

	if apply("field") {
		cfg.Field = field
	}
	if apply("size") {
		cfg.Size = size
	}
	if apply("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("equilibration") {
		cfg.Equilibration = equilibration
	}
	if flags.Changed("measurement") {
		cfg.Measurement = measurement
	}
	if flags.Changed("temp") {
		cfg.Temperature = config.TemperatureConfig{Value: temperature}
	} else if flags.Changed("start") || flags.Changed("stop") || flags.Changed("step") || !fromFile {
		cfg.Temperature.Value = 0
		if apply("start") {
			cfg.Temperature.Start = tempStart
		}
		if apply("stop") {
			cfg.Temperature.Stop = tempStop
		}
		if apply("step") {
			cfg.Temperature.Step = tempStep
		}
	}
	if flags.Changed("keep-series") {
		cfg.KeepSeries = keepSeries
	}
	if flags.Changed("seed") || !cfg.HasSeed() {
		cfg.SetSeed(seed)
	}

	return cfg, cfg.Validate()
}

func runSweep(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	expCfg, err := cfg.Experiment()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(expCfg)
	exp.AddMetric(metrics.NewOrderedFraction(orderedThreshold))
	exp.AddMetric(metrics.NewMinEnergy())
	exp.OnProgress(func(done, total int, rec experiment.Record) {
		fmt.Fprintf(out, "[%d/%d] T=%-8.4g E=%-10.5f |M|=%-8.5f C=%-10.5f X=%-10.5f acc=%.3f\n",
			done, total, rec.Temperature, rec.Energy, rec.Magnetization, rec.HeatCapacity, rec.Susceptibility, rec.AcceptanceRate)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	phases := expCfg.Phases
	fmt.Fprintf(out, "running %dx%d lattice, B=%g, %d temperatures, %d+%d steps each (seed %d)\n",
		cfg.Size, cfg.Size, cfg.Field, len(expCfg.Temperatures), phases.Equilibration, phases.Measurement, expCfg.Seed)

	sweep, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	meta := &storage.RunMetadata{
		Seed:           expCfg.Seed,
		Size:           cfg.Size,
		Field:          cfg.Field,
		Equilibration:  phases.Equilibration,
		Measurement:    phases.Measurement,
		Units:          cfg.Units,
		Temperatures:   len(sweep.Records),
		ElapsedSeconds: sweep.Elapsed.Seconds(),
		Metrics:        make(map[string]float64),
	}
	if len(sweep.Records) > 1 {
		if crit, err := analysis.CriticalTemperature(sweep.Records); err == nil {
			meta.Metrics["tc_heat_capacity"] = crit.HeatCapacityPeak
			meta.Metrics["tc_susceptibility"] = crit.SusceptibilityPeak
			meta.Metrics["tc_estimate"] = crit.Estimate
		}
	}

	runID, err := st.Save(meta, sweep.Records)
	if err != nil {
		return err
	}

	if textOut != "" {
		if err := writeTextFile(textOut, cfg, phases, sweep.Records, sweep.Elapsed); err != nil {
			return err
		}
		fmt.Fprintf(out, "results written to %s\n", textOut)
	}
	if latticeOut != "" {
		if err := os.WriteFile(latticeOut, []byte(export.LatticeToSVG(sweep.Final, 8)), 0644); err != nil {
			return err
		}
		fmt.Fprintf(out, "final lattice written to %s\n", latticeOut)
	}

	fmt.Fprintf(out, "\ncompleted in %v\n", sweep.Elapsed)
	fmt.Fprintf(out, "run id: %s\n\n", runID)
	fmt.Fprint(out, viz.RenderSummary(sweep.Records))

	if expCfg.KeepSeries {
		fmt.Fprintln(out, "\nintegrated autocorrelation times:")
		for i, s := range sweep.Series {
			if s == nil || s.Len() < 2 {
				continue
			}
			maxLag := s.Len() / 10
			fmt.Fprintf(out, "  T=%-8.4g tau_E=%-10.2f tau_M=%.2f\n",
				sweep.Records[i].Temperature,
				analysis.IntegratedTime(s.Energy, maxLag),
				analysis.IntegratedTime(s.Magnetization, maxLag))
		}
	}

	if len(meta.Metrics) > 0 {
		fmt.Fprintln(out, "\nmetrics:")
		for _, name := range []string{"tc_heat_capacity", "tc_susceptibility", "tc_estimate"} {
			if v, ok := meta.Metrics[name]; ok {
				fmt.Fprintf(out, "  %s: %.4f\n", name, v)
			}
		}
		fmt.Fprintf(out, "  onsager_tc: %.4f\n", analysis.OnsagerTc)
	}

	return nil
}

func writeTextFile(path string, cfg *config.Config, phases dynamo.Phases, records []experiment.Record, elapsed time.Duration) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	h := export.TextHeader{Size: cfg.Size, Field: cfg.Field, Phases: phases}
	if err := export.WriteText(f, h, records, elapsed); err != nil {
		return err
	}
	return f.Close()
}

func listRuns(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSIZE\tFIELD\tTEMPS\tEQUIL\tMEASURE\tELAPSED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%g\t%d\t%d\t%d\t%.2fs\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Size,
			run.Field,
			run.Temperatures,
			run.Equilibration,
			run.Measurement,
			run.ElapsedSeconds,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []experiment.Record, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	records, err := st.LoadRecords(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("no data in run %s", runID)
	}
	return meta, records, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	meta, records, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "lattice: %dx%d, B=%g\n", meta.Size, meta.Size, meta.Field)
	fmt.Fprintf(out, "temperatures: %d\n\n", len(records))

	s := &experiment.Sweep{Records: records}
	fmt.Fprint(out, viz.PlotSweep(s))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, records, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(cmd.OutOrStdout(), meta, records)
}

func exportText(cmd *cobra.Command, args []string) error {
	meta, records, err := loadRun(args[0])
	if err != nil {
		return err
	}
	h := export.TextHeader{
		Size:   meta.Size,
		Field:  meta.Field,
		Phases: dynamo.Phases{Equilibration: meta.Equilibration, Measurement: meta.Measurement},
	}
	elapsed := time.Duration(meta.ElapsedSeconds * float64(time.Second))
	return export.WriteText(cmd.OutOrStdout(), h, records, elapsed)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, records, err := loadRun(args[0])
	if err != nil {
		return err
	}

	s := &experiment.Sweep{Records: records}
	panels := export.ObservablePanels(s.Energies(), s.HeatCapacities(), s.Magnetizations(), s.Susceptibilities())
	svg := export.PanelsToSVG(s.Temperatures(), panels, 900, 600)

	if svgOut == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), svg)
		return err
	}
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", svgOut)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	meta, records, err := loadRun(args[0])
	if err != nil {
		return err
	}

	crit, err := analysis.CriticalTemperature(records)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "critical temperature analysis: %s\n", meta.ID)
	fmt.Fprintf(out, "lattice: %dx%d, B=%g\n\n", meta.Size, meta.Size, meta.Field)
	fmt.Fprintf(out, "heat capacity peak:   T=%.4f\n", crit.HeatCapacityPeak)
	fmt.Fprintf(out, "susceptibility peak:  T=%.4f\n", crit.SusceptibilityPeak)
	fmt.Fprintf(out, "estimate:             T=%.4f\n", crit.Estimate)
	fmt.Fprintf(out, "onsager (N=inf, B=0): T=%.4f\n", analysis.OnsagerTc)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	if temperature <= 0 {
		return fmt.Errorf("%w: temperature must be positive, got %g", dynamo.ErrInvalidConfig, temperature)
	}

	src := dynamo.NewSource(seed)
	l, err := lattice.NewRandom(size, src)
	if err != nil {
		return err
	}

	m := viz.NewModel(l, physics.NewIsing(field, physics.NaturalUnits()), src, temperature, stepsPerFrame)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
