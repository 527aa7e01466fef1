package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/heatsim/internal/config"
	"github.com/san-kum/heatsim/internal/dynamo"
	"github.com/san-kum/heatsim/internal/experiment"
	"github.com/san-kum/heatsim/internal/export"
	"github.com/san-kum/heatsim/internal/physics"
	"github.com/san-kum/heatsim/internal/storage"
	"github.com/san-kum/heatsim/internal/viz"
)

var (
	dataDir string
	verbose bool
	logger  = zap.NewNop()

	// Run parameters
	material    string
	length      float64
	tmax        float64
	u0          float64
	source      float64
	points      int
	sampleEvery int
	maxSweeps   int
	tolerance   float64
	// Config file
	configFile string
	saveConfig string
	// Preset name
	preset string
	// Render output
	outPath string
	sample  int
	// Live view
	allMaterials bool
	// Compare
	saveRuns bool
)

// interactive commands own the terminal, so they keep the no-op logger.
var interactive = map[string]bool{"heatsim": true, "live": true}

// main is the entry point for the heatsim CLI; it registers commands and flags, launches the interactive viewer when no subcommand is provided, and executes the root command.
// It exits the process with status 1 if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "heatsim",
		Short: "implicit heat equation simulator",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if interactive[cmd.Name()] {
				return nil
			}
			cfg := zap.NewProductionConfig()
			if verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			l, err := cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.Run(viz.NewInteractiveApp(physics.Names(), experiment.NewRegistry().ListGeometries(), buildDefault))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".heatsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [bar|plate]",
		Short: "run a simulation to its horizon and store it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&saveConfig, "save-config", "", "write the resolved configuration to this yaml file")

	compareCmd := &cobra.Command{
		Use:   "compare [bar|plate]",
		Short: "run every material concurrently and compare",
		Args:  cobra.MaximumNArgs(1),
		RunE:  compareMaterials,
	}
	addRunFlags(compareCmd)
	compareCmd.Flags().BoolVar(&saveRuns, "save", false, "store every run")

	benchCmd := &cobra.Command{
		Use:   "bench [bar|plate]",
		Short: "benchmark a full run per material",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchGeometry,
	}
	addRunFlags(benchCmd)

	liveCmd := &cobra.Command{
		Use:   "live [bar|plate]",
		Short: "run simulation with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().BoolVar(&allMaterials, "all", false, "show all four materials side by side")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	renderCmd := &cobra.Command{
		Use:   "render [run_id]",
		Short: "render a stored field to an image (png, svg or pdf)",
		Args:  cobra.ExactArgs(1),
		RunE:  renderRun,
	}
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <run_id>.png)")
	renderCmd.Flags().IntVar(&sample, "sample", -1, "sample index to render (default last)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [geometry]",
		Short: "list available presets for a geometry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for geometry: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				cfg := config.GetPreset(args[0], p)
				fmt.Printf("  %-10s %s, n=%d, tmax=%gs\n", p, cfg.Material, cfg.N, cfg.TMax)
			}
			return nil
		},
	}

	materialsCmd := &cobra.Command{
		Use:   "materials",
		Short: "list the material table",
		RunE:  listMaterials,
	}

	rootCmd.AddCommand(runCmd, compareCmd, benchCmd, liveCmd, listCmd, plotCmd, renderCmd, exportCSVCmd, exportJSONCmd, presetsCmd, materialsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&material, "material", "m", config.DefaultMaterial, "material ("+strings.Join(physics.Names(), ", ")+")")
	cmd.Flags().Float64Var(&length, "length", config.DefaultLength, "domain length L (m)")
	cmd.Flags().Float64Var(&tmax, "tmax", config.DefaultTMax, "simulated time T (s)")
	cmd.Flags().Float64Var(&u0, "u0", config.DefaultU0, "initial and boundary temperature (°C)")
	cmd.Flags().Float64Var(&source, "f", config.DefaultF, "source amplitude")
	cmd.Flags().IntVar(&points, "n", 0, "grid points per axis (default 1001 bar, 101 plate)")
	cmd.Flags().IntVar(&sampleEvery, "sample-every", config.DefaultSampleEvery, "record the field every k steps")
	cmd.Flags().IntVar(&maxSweeps, "max-sweeps", 100, "relaxation sweep cap (plate)")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 1e-6, "relaxation tolerance (plate)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order. The geometry argument beats every layer.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	geometry := config.GeometryBar
	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		geometry = fileCfg.Geometry
	}
	if len(args) > 0 {
		geometry = args[0]
	}

	cfg := config.DefaultConfig()
	cfg.Geometry = geometry
	cfg.N = config.DefaultPoints(geometry)

	if preset != "" {
		cfg = config.GetPreset(geometry, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(geometry))
		}
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg.Geometry = geometry
	}

	flags := cmd.Flags()
	if flags.Changed("material") {
		cfg.Material = material
	}
	if flags.Changed("length") {
		cfg.Length = length
	}
	if flags.Changed("tmax") {
		cfg.TMax = tmax
	}
	if flags.Changed("u0") {
		cfg.U0 = u0
	}
	if flags.Changed("f") {
		cfg.F = source
	}
	if flags.Changed("n") {
		cfg.N = points
	}
	if flags.Changed("sample-every") {
		cfg.SampleEvery = sampleEvery
	}
	if flags.Changed("max-sweeps") {
		cfg.Relaxation.MaxSweeps = maxSweeps
	}
	if flags.Changed("tolerance") {
		cfg.Relaxation.Tolerance = tolerance
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if saveConfig != "" {
		if err := config.Save(saveConfig, cfg); err != nil {
			return err
		}
		logger.Info("config saved", zap.String("path", saveConfig))
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(cfg, experiment.NewRegistry(), logger)
	if err := exp.Setup(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %s %s simulation...\n", cfg.Material, cfg.Geometry)
	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	runID, err := st.Save(storage.Describe(exp.Solver()), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d (t = %.4gs)\n", result.StepsTaken, exp.Solver().Time())
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)

	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func compareMaterials(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	exp := experiment.New(cfg, experiment.NewRegistry(), logger)
	solvers, results, err := exp.Compare(ctx, physics.All())
	if err != nil {
		return err
	}

	fmt.Printf("comparing materials for %s (n=%d, tmax=%.1fs)\n\n", cfg.Geometry, cfg.N, cfg.TMax)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MATERIAL\tALPHA\tR\tPEAK_K\tMEAN_K\tHEAT_GAIN\tTIME_MS")
	for i, s := range solvers {
		res := results[i]
		fmt.Fprintf(w, "%s\t%.3e\t%.3e\t%.3f\t%.3f\t%.4g\t%.2f\n",
			s.Material().Name,
			s.Material().Alpha(),
			s.Grid().DiffusionNumber(s.Material().Alpha()),
			res.Metrics["peak_temperature"],
			res.Metrics["mean_temperature"],
			res.Metrics["heat_gain"],
			float64(res.Elapsed.Microseconds())/1000,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !saveRuns {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	fmt.Println()
	for i, s := range solvers {
		runID, err := st.Save(storage.Describe(s), results[i])
		if err != nil {
			return err
		}
		fmt.Printf("saved %s\n", runID)
	}
	return nil
}

func benchGeometry(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	registry := experiment.NewRegistry()

	fmt.Printf("benchmarking %s (n=%d, %d steps)\n\n", cfg.Geometry, cfg.N, dynamo.StepsPerRun)
	fmt.Printf("%-12s  %12s  %12s\n", "material", "time_ms", "steps/s")
	fmt.Println(strings.Repeat("-", 40))

	for _, m := range physics.All() {
		s, err := registry.NewSolver(m, cfg)
		if err != nil {
			return err
		}
		start := time.Now()
		for s.Step() {
		}
		elapsed := time.Since(start)
		fmt.Printf("%-12s  %12.2f  %12.0f\n", m.Name, float64(elapsed.Microseconds())/1000, float64(dynamo.StepsPerRun)/elapsed.Seconds())
	}
	return nil
}

// buildDefault backs the interactive menu: default parameters for the
// geometry with the chosen material.
func buildDefault(geometry, name string) (*dynamo.Solver, error) {
	cfg := config.DefaultConfig()
	cfg.Geometry = geometry
	cfg.N = config.DefaultPoints(geometry)
	cfg.Material = name
	return experiment.NewRegistry().Solver(cfg)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	registry := experiment.NewRegistry()

	var solvers []*dynamo.Solver
	if allMaterials {
		for _, m := range physics.All() {
			s, err := registry.NewSolver(m, cfg)
			if err != nil {
				return err
			}
			solvers = append(solvers, s)
		}
	} else {
		s, err := registry.Solver(cfg)
		if err != nil {
			return err
		}
		solvers = append(solvers, s)
	}

	return viz.Run(viz.NewModel(solvers...))
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGEOMETRY\tMATERIAL\tTIME\tN\tTMAX\tSTEPS\tPEAK_K")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.2fs\t%d\t%.3f\n",
			run.ID,
			run.Geometry,
			run.Material,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.N,
			run.TMax,
			run.Steps,
			run.Metrics["peak_temperature"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, result, err := st.Result(runID)
	if err != nil {
		return err
	}

	final := result.Final()
	if final == nil {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("%s %s, n=%d\n", meta.Material, meta.Geometry, meta.N)
	fmt.Printf("samples: %d\n\n", len(result.Fields))

	profile, caption := final, fmt.Sprintf("T (K) along x at t=%.2fs", result.Times[len(result.Times)-1])
	if result.Dims == 2 {
		mid := meta.N / 2
		profile = final[mid*meta.N : (mid+1)*meta.N]
		caption = fmt.Sprintf("T (K) along the centre row y=%.3gm at t=%.2fs", float64(mid)*meta.Dx, result.Times[len(result.Times)-1])
	}

	fmt.Println(asciigraph.Plot(profile,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	))
	fmt.Println()

	peaks := make([]float64, len(result.Fields))
	for i, f := range result.Fields {
		peaks[i] = floats.Max(f)
	}
	if len(peaks) > 1 {
		fmt.Println(asciigraph.Plot(peaks,
			asciigraph.Height(6),
			asciigraph.Width(80),
			asciigraph.Caption("peak T (K) per sample"),
		))
	}

	return nil
}

func renderRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, result, err := st.Result(runID)
	if err != nil {
		return err
	}
	if len(result.Fields) == 0 {
		return fmt.Errorf("no data to render")
	}

	idx := len(result.Fields) - 1
	if sample >= 0 {
		if sample > idx {
			return fmt.Errorf("sample %d out of range (0..%d)", sample, idx)
		}
		idx = sample
	}
	field := result.Fields[idx]

	path := outPath
	if path == "" {
		path = runID + ".png"
	}
	title := fmt.Sprintf("%s %s, t = %.2fs", meta.Material, meta.Geometry, result.Times[idx])

	if result.Dims == 2 {
		err = export.HeatmapPNG(path, field, meta.N, meta.Dx, title)
	} else {
		x := make([]float64, len(field))
		for i := range x {
			x[i] = float64(i) * meta.Dx
		}
		err = export.ProfilePNG(path, x, field, title)
	}
	if err != nil {
		return err
	}

	logger.Info("rendered", zap.String("run", runID), zap.String("path", absPath(path)), zap.Int("sample", idx))
	fmt.Printf("wrote %s\n", path)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	_, result, err := st.Result(args[0])
	if err != nil {
		return err
	}
	if len(result.Fields) == 0 {
		return fmt.Errorf("no data to export")
	}
	return storage.WriteFieldsCSV(os.Stdout, result)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, result, err := st.Result(args[0])
	if err != nil {
		return err
	}
	return export.WriteJSON(os.Stdout, export.NewExportData(meta.Geometry, meta.Material, meta.Dx, meta.Dt, result))
}

func listMaterials(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLAMBDA\tRHO\tC\tALPHA")
	for _, m := range physics.All() {
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%.4e\n", strings.ToLower(m.Name), m.Lambda, m.Rho, m.C, m.Alpha())
	}
	return w.Flush()
}

// absPath resolves path for logging, keeping it as given when the working
// directory is unavailable.
func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
