package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/drawdown/internal/config"
	"github.com/san-kum/drawdown/internal/field"
	"github.com/san-kum/drawdown/internal/grid"
	"github.com/san-kum/drawdown/internal/laplace"
	"github.com/san-kum/drawdown/internal/parallel"
	"github.com/san-kum/drawdown/internal/transient"
	"github.com/san-kum/drawdown/internal/viz"
)

var (
	// Scenario
	configFile string
	preset     string
	modelName  string
	workers    int
	logLevel   string
	// Inversion
	degree    int
	precision string
	capDegree bool
	// Observation and time grid
	obsX, obsY, obsZ float64
	tStart, tEnd     float64
	tPoints          int
	spacing          string
	// Spatial grid
	plane     string
	extent    float64
	points    int
	layers    int
	fixed     float64
	fieldTime float64
	// Output
	format   string
	output   string
	pngPath  string
	svgPath  string
	htmlPath string
	// Diagnostics
	transformName string
	decayRate     float64
	invertTimes   string
	benchRuns     int
)

// main registers the drawdown commands; with no subcommand it starts the
// terminal explorer.
func main() {
	rootCmd := &cobra.Command{
		Use:           "drawdown",
		Short:         "transient pressure drawdown around wells",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runExplore,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "scenario file (yaml)")
	pf.StringVar(&preset, "preset", "", "use a named scenario")
	pf.StringVar(&modelName, "model", "", "line_source or finite_radius")
	pf.IntVar(&degree, "degree", laplace.DefaultDegree, "stehfest degree (even)")
	pf.StringVar(&precision, "precision", "float64", "stehfest summation: float64 or exact")
	pf.BoolVar(&capDegree, "cap", false, "clamp unstable stehfest degrees")
	pf.IntVar(&workers, "workers", 0, "inversion workers (0 = one per cpu)")
	pf.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")

	seriesCmd := &cobra.Command{
		Use:   "series",
		Short: "drawdown history at the observation point",
		Args:  cobra.NoArgs,
		RunE:  runSeries,
	}
	addObservationFlags(seriesCmd)
	addOutputFlags(seriesCmd)

	fieldCmd := &cobra.Command{
		Use:   "field",
		Short: "drawdown over a spatial grid at one time",
		Args:  cobra.NoArgs,
		RunE:  runField,
	}
	fieldCmd.Flags().StringVar(&plane, "plane", "xy", "xy, xz, yz or xyz")
	fieldCmd.Flags().Float64Var(&extent, "extent", config.DefaultExtent, "half width of the grid, m")
	fieldCmd.Flags().IntVar(&points, "points", config.DefaultGridPoints, "nodes per horizontal axis")
	fieldCmd.Flags().IntVar(&layers, "layers", 0, "vertical nodes for xyz")
	fieldCmd.Flags().Float64Var(&fixed, "fixed", 0, "coordinate of the axis held constant, m")
	fieldCmd.Flags().Float64Var(&fieldTime, "at", config.DefaultFieldTime, "evaluation time, s")
	addOutputFlags(fieldCmd)

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "line source against finite radius on the same time grid",
		Args:  cobra.NoArgs,
		RunE:  runCompare,
	}
	addObservationFlags(compareCmd)
	addOutputFlags(compareCmd)

	invertCmd := &cobra.Command{
		Use:   "invert",
		Short: "invert known transforms and report the error",
		Args:  cobra.NoArgs,
		RunE:  runInvert,
	}
	invertCmd.Flags().StringVar(&transformName, "transform", "all", "step, ramp, decay or all")
	invertCmd.Flags().Float64Var(&decayRate, "a", 1, "decay rate of 1/(s+a)")
	invertCmd.Flags().StringVar(&invertTimes, "times", "0.1,1,10,100", "comma separated times, s")
	invertCmd.Flags().StringVar(&format, "format", "table", "table, csv or json")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available scenarios",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive terminal explorer",
		Args:  cobra.NoArgs,
		RunE:  runExplore,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time spatial field evaluation per model and pool size",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&points, "points", 50, "nodes per axis")
	benchCmd.Flags().IntVar(&benchRuns, "runs", 3, "evaluations per row")

	rootCmd.AddCommand(seriesCmd, fieldCmd, compareCmd, invertCmd, presetsCmd, exploreCmd, benchCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, viz.ErrorText.Render("error: ")+err.Error())
		stop()
		os.Exit(1)
	}
}

func addObservationFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&obsX, "x", 0, "observation x, m")
	cmd.Flags().Float64Var(&obsY, "y", 0, "observation y, m")
	cmd.Flags().Float64Var(&obsZ, "z", 0, "observation z, m")
	cmd.Flags().Float64Var(&tStart, "t-start", config.DefaultTimeStart, "first time, s")
	cmd.Flags().Float64Var(&tEnd, "t-end", config.DefaultTimeEnd, "last time, s")
	cmd.Flags().IntVar(&tPoints, "t-points", config.DefaultTimePoints, "number of times")
	cmd.Flags().StringVar(&spacing, "spacing", "log", "log or linear")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&format, "format", "table", "table, csv or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write csv/json here instead of stdout")
	cmd.Flags().StringVar(&pngPath, "png", "", "save a png plot")
	cmd.Flags().StringVar(&svgPath, "svg", "", "save an svg plot")
	cmd.Flags().StringVar(&htmlPath, "html", "", "save an interactive html chart")
}

func newLogger() (*log.Logger, error) {
	lvl, err := log.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	logger.SetLevel(lvl)
	return logger, nil
}

// loadConfig layers defaults, preset, scenario file and the flags the user
// actually set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	// config file overrides preset
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("model") {
		cfg.Model = modelName
	}
	if f.Changed("workers") {
		cfg.Workers = workers
	}
	if f.Changed("degree") {
		cfg.Inversion.Degree = degree
	}
	if f.Changed("precision") {
		cfg.Inversion.Precision = precision
	}
	if f.Changed("cap") {
		cfg.Inversion.Cap = capDegree
	}

	if f.Changed("x") {
		cfg.Observation.X = obsX
	}
	if f.Changed("y") {
		cfg.Observation.Y = obsY
	}
	if f.Changed("z") {
		cfg.Observation.Z = obsZ
	}
	if f.Changed("t-start") {
		cfg.Time.Start = tStart
	}
	if f.Changed("t-end") {
		cfg.Time.End = tEnd
	}
	if f.Changed("t-points") {
		cfg.Time.Points = tPoints
	}
	if f.Changed("spacing") {
		cfg.Time.Spacing = spacing
	}

	if f.Changed("plane") {
		cfg.Grid.Plane = plane
	}
	if f.Changed("extent") {
		cfg.Grid.Extent = extent
	}
	if f.Changed("points") {
		cfg.Grid.Points = points
	}
	if f.Changed("layers") {
		cfg.Grid.Layers = layers
	}
	if f.Changed("fixed") {
		cfg.Grid.Fixed = fixed
	}
	if f.Changed("at") {
		cfg.Grid.Time = fieldTime
	}

	return cfg, nil
}

func runSeries(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	ev, err := cfg.Evaluator(logger)
	if err != nil {
		return err
	}
	tg, err := cfg.TimeGrid()
	if err != nil {
		return err
	}

	obs := cfg.ObservationPoint()
	s, err := ev.TimeSeries(cmd.Context(), obs, tg)
	if err != nil {
		return fmt.Errorf("evaluate series: %w", err)
	}

	title := fmt.Sprintf("%s drawdown at (%g, %g, %g) m", s.Model, obs.X, obs.Y, obs.Z)
	if err := saveSeriesPlots(title, curve(s)); err != nil {
		return err
	}
	return writeSeries(title, s, ev.Warning())
}

func runField(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	ev, err := cfg.Evaluator(logger)
	if err != nil {
		return err
	}
	sg, err := cfg.SpatialGrid()
	if err != nil {
		return err
	}

	start := time.Now()
	f, err := ev.SpatialField(cmd.Context(), sg, cfg.Grid.Time)
	if err != nil {
		return fmt.Errorf("evaluate field: %w", err)
	}
	logger.Info("field evaluated", "model", f.Model, "nodes", sg.Len(), "elapsed", time.Since(start))

	title := fmt.Sprintf("%s drawdown at t=%g s", f.Model, f.Time)
	if err := saveFieldPlots(title, f); err != nil {
		return err
	}
	return writeField(title, f, ev.Warning())
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	params, err := cfg.Params()
	if err != nil {
		return err
	}
	wells, err := cfg.WellSources()
	if err != nil {
		return err
	}
	tg, err := cfg.TimeGrid()
	if err != nil {
		return err
	}
	inv, err := cfg.InversionSettings()
	if err != nil {
		return err
	}

	c, err := field.Compare(cmd.Context(), params, wells, cfg.ObservationPoint(), tg, field.Config{
		Inversion: inv,
		Workers:   cfg.Workers,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("compare models: %w", err)
	}

	title := "line source vs finite radius"
	if err := saveSeriesPlots(title, curve(c.LineSource), curve(c.FiniteRadius)); err != nil {
		return err
	}
	return writeComparison(title, c)
}

func runInvert(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup(cmd)
	if err != nil {
		return err
	}
	invCfg, err := cfg.InversionSettings()
	if err != nil {
		return err
	}
	inv, err := laplace.New(invCfg)
	if err != nil {
		return err
	}
	if w := inv.Warning(); w != nil {
		fmt.Fprintln(os.Stderr, viz.WarningText.Render(w.String()))
	}

	ts, err := parseTimes(invertTimes)
	if err != nil {
		return err
	}

	known := laplace.KnownTransforms(decayRate)
	names := []string{transformName}
	if transformName == "all" {
		names = laplace.KnownNames()
	}

	results := make(map[string][]laplace.Diagnostic, len(names))
	for _, name := range names {
		k, ok := known[name]
		if !ok {
			return fmt.Errorf("unknown transform: %s (available: %v)", name, laplace.KnownNames())
		}
		d, err := laplace.Diagnose(inv, k, ts)
		if err != nil {
			return err
		}
		results[name] = d
	}

	return writeDiagnostics(inv, names, results)
}

func parseTimes(s string) ([]float64, error) {
	var ts []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		t, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("bad time %q: %w", part, err)
		}
		ts = append(ts, t)
	}
	tg, err := grid.NewTimeGrid(ts)
	if err != nil {
		return nil, err
	}
	return tg.Times(), nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMODEL\tWELLS\tOBSERVATION")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		names := make([]string, len(cfg.Wells))
		for i, wl := range cfg.Wells {
			names[i] = wl.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t(%g, %g, %g)\n",
			name, cfg.Model, strings.Join(names, ","),
			cfg.Observation.X, cfg.Observation.Y, cfg.Observation.Z)
	}
	return w.Flush()
}

func runExplore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return viz.RunExplorer(cfg, nil)
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	params, err := cfg.Params()
	if err != nil {
		return err
	}
	wells, err := cfg.WellSources()
	if err != nil {
		return err
	}
	inv, err := cfg.InversionSettings()
	if err != nil {
		return err
	}
	sg, err := grid.Plane(grid.XY, cfg.Grid.Extent, points, params.Thickness(), cfg.Grid.Fixed)
	if err != nil {
		return err
	}

	pools := []int{1, parallel.Workers(cfg.Workers)}
	if pools[1] == 1 {
		pools = pools[:1]
	}

	fmt.Printf("benchmarking %d nodes, %d wells, degree %d\n\n", sg.Len(), len(wells), inv.Degree)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tWORKERS\tNODES\tTIME\tNODES/SEC")

	for _, kind := range []transient.ModelKind{transient.LineSource, transient.FiniteRadius} {
		for _, n := range pools {
			ev, err := field.New(params, wells, field.Config{Model: kind, Inversion: inv, Workers: n, Logger: logger})
			if err != nil {
				return err
			}

			start := time.Now()
			for i := 0; i < benchRuns; i++ {
				if _, err := ev.SpatialField(cmd.Context(), sg, cfg.Grid.Time); err != nil {
					return err
				}
			}
			elapsed := time.Since(start) / time.Duration(max(benchRuns, 1))

			fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\n",
				kind, n, sg.Len(), elapsed, float64(sg.Len())/elapsed.Seconds())
			if kind == transient.LineSource {
				// the vectorized path ignores the pool size
				break
			}
		}
	}

	return w.Flush()
}

func setup(cmd *cobra.Command) (*config.Config, *log.Logger, error) {
	logger, err := newLogger()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
