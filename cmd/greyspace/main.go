package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/greyspace/internal/analysis"
	"github.com/san-kum/greyspace/internal/automation"
	"github.com/san-kum/greyspace/internal/bridge"
	"github.com/san-kum/greyspace/internal/config"
	"github.com/san-kum/greyspace/internal/export"
	"github.com/san-kum/greyspace/internal/integrators"
	"github.com/san-kum/greyspace/internal/level"
	"github.com/san-kum/greyspace/internal/sim"
	"github.com/san-kum/greyspace/internal/space"
	"github.com/san-kum/greyspace/internal/storage"
	"github.com/san-kum/greyspace/internal/viz"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	preset     string
	dt         float64
	subSteps   int
	frames     int
	integrator string
	fireFlags  []string
	noSave     bool
	frameRate  int
	addr       string
	scale      float64
	// Sweep and sensitivity
	angleMin  float64
	angleMax  float64
	numSteps  int
	shots     int
	angle     float64
	deviation float64
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88")).Bold(true)
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Bold(true)
)

// main registers the greyspace commands and executes the root command.
// It exits with status 1 if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "greyspace",
		Short: "potential-field reaction drive simulator",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := config.ParseLogLevel(logLevel)
			if err != nil {
				return err
			}
			slog.SetDefault(newLogger(os.Stderr, lvl))
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".greyspace", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")

	runCmd := &cobra.Command{
		Use:   "run [level]",
		Short: "run a level headless",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset run configuration")
	runCmd.Flags().StringSliceVar(&fireFlags, "fire", nil, "fire commands as frame:angle (radians)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	playCmd := &cobra.Command{
		Use:   "play [level]",
		Short: "play a level in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  playLevel,
	}
	addRunFlags(playCmd)
	playCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")

	serveCmd := &cobra.Command{
		Use:   "serve [level]",
		Short: "stream a level to browser renderers over websocket",
		Args:  cobra.MaximumNArgs(1),
		RunE:  serveLevel,
	}
	addRunFlags(serveCmd)
	serveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	levelsCmd := &cobra.Command{
		Use:   "levels",
		Short: "list built-in levels",
		RunE:  listLevels,
	}

	exportLevelCmd := &cobra.Command{
		Use:   "export-level [level] [path]",
		Short: "write a level to a yaml or json file",
		Args:  cobra.ExactArgs(2),
		RunE:  exportLevel,
	}

	renderCmd := &cobra.Command{
		Use:   "render [level] [path]",
		Short: "render a level to SVG",
		Args:  cobra.ExactArgs(2),
		RunE:  renderLevel,
	}
	renderCmd.Flags().Float64Var(&scale, "scale", 4, "pixels per field cell")

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

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id] [path]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(2),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [path]",
		Short: "export the ship path of a run to SVG",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [level]",
		Short: "list run presets for a level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for level: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	compareCmd := &cobra.Command{
		Use:   "compare [level] [integrator1] [integrator2] ...",
		Short: "compare integrators on the same level",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	addRunFlags(compareCmd)
	compareCmd.Flags().StringSliceVar(&fireFlags, "fire", nil, "fire commands as frame:angle (radians), default 1:0")

	sweepCmd := &cobra.Command{
		Use:   "sweep [level]",
		Short: "sweep launch angles and report which reach the exit",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepAngles,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&angleMin, "min", -3.14159, "first angle (radians)")
	sweepCmd.Flags().Float64Var(&angleMax, "max", 3.14159, "last angle (radians)")
	sweepCmd.Flags().IntVar(&numSteps, "steps", 16, "number of angles")
	sweepCmd.Flags().IntVar(&shots, "shots", 1, "shots fired per launch")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run every step of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sensitivityCmd := &cobra.Command{
		Use:   "sensitivity [level]",
		Short: "measure how fast two nearby launches diverge",
		Args:  cobra.ExactArgs(1),
		RunE:  launchSensitivity,
	}
	addRunFlags(sensitivityCmd)
	sensitivityCmd.Flags().Float64Var(&angle, "angle", 0, "launch angle (radians)")
	sensitivityCmd.Flags().Float64Var(&deviation, "delta", 1e-6, "angle perturbation (radians)")

	rootCmd.AddCommand(runCmd, playCmd, serveCmd, levelsCmd, exportLevelCmd, renderCmd, listCmd, plotCmd,
		exportJSONCmd, exportSVGCmd, presetsCmd, compareCmd, sweepCmd, scenarioCmd, sensitivityCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "frame time delta")
	cmd.Flags().IntVar(&subSteps, "sub-steps", config.DefaultSubSteps, "sub-steps per frame")
	cmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames to simulate")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator ("+strings.Join(integrators.Names(), "|")+")")
}

func newLogger(w io.Writer, lvl slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// loadConfig resolves the run configuration: preset, then config file, then
// flags the user set explicitly. The level argument wins over all of them.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.LogLevel = logLevel

	if preset != "" {
		if len(args) == 0 {
			return nil, fmt.Errorf("--preset needs a level argument")
		}
		p := config.GetPreset(args[0], preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(args[0]))
		}
		cfg = p
	}

	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("dt") || (preset == "" && configFile == "") {
		cfg.Dt = dt
	}
	if flags.Changed("sub-steps") || (preset == "" && configFile == "") {
		cfg.SubSteps = subSteps
	}
	if flags.Changed("frames") || (preset == "" && configFile == "") {
		cfg.Frames = frames
	}
	if flags.Changed("integrator") || (preset == "" && configFile == "") {
		cfg.Integrator = integrator
	}
	if flags.Lookup("fps") != nil && flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Lookup("fire") != nil && (flags.Changed("fire") || len(cfg.Script) == 0) {
		script, err := parseFire(fireFlags)
		if err != nil {
			return nil, err
		}
		if len(script) > 0 {
			cfg.Script = script
		}
	}
	if len(args) > 0 {
		cfg.Level = args[0]
	}
	return cfg, cfg.Validate()
}

// parseFire reads "frame:angle" pairs.
func parseFire(specs []string) ([]config.FireCommand, error) {
	script := make([]config.FireCommand, 0, len(specs))
	for _, spec := range specs {
		f, a, ok := strings.Cut(spec, ":")
		if !ok {
			return nil, fmt.Errorf("bad fire command %q, want frame:angle", spec)
		}
		frame, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bad fire frame %q: %w", f, err)
		}
		ang, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("bad fire angle %q: %w", a, err)
		}
		script = append(script, config.FireCommand{Frame: frame, Angle: ang})
	}
	return script, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("running level", "level", cfg.Level, "integrator", cfg.Integrator, "frames", cfg.Frames)
	start := time.Now()

	result, err := automation.RunConfig(ctx, cfg, slog.Default())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID := ""
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err = st.Save(storage.RunMetadata{
			Level:      cfg.Level,
			Dt:         cfg.Dt,
			SubSteps:   cfg.SubSteps,
			Frames:     len(result.Frames),
			Integrator: cfg.Integrator,
			Completed:  result.Completed,
			Lost:       result.Lost,
			Metrics:    result.Metrics,
		}, result.Frames)
		if err != nil {
			return err
		}
	}

	printSummary(cfg, result, runID, elapsed)
	return nil
}

func printSummary(cfg *config.Config, result *sim.Result, runID string, elapsed time.Duration) {
	fmt.Println(titleStyle.Render(strings.ToUpper(cfg.Level)))

	outcome := valueStyle.Render("running")
	switch {
	case result.Completed:
		outcome = goodStyle.Render("level complete")
	case result.Lost:
		outcome = badStyle.Render("ship lost")
	}
	row := func(label, value string) {
		fmt.Println(labelStyle.Render(label) + valueStyle.Render(value))
	}
	row("outcome", outcome)
	row("frames", strconv.Itoa(len(result.Frames)))
	row("elapsed", elapsed.String())
	if runID != "" {
		row("run id", runID)
	}

	if len(result.Frames) > 1 {
		speed := make([]float64, len(result.Frames))
		for i, fr := range result.Frames {
			speed[i] = fr.ShipVX*fr.ShipVX + fr.ShipVY*fr.ShipVY
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(speed, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("speed² per frame")))
	}

	fmt.Println("\nmetrics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Fprintf(w, "  %s\t%.6g\n", name, result.Metrics[name])
	}
	w.Flush()
}

func playLevel(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	lvl, err := level.Resolve(cfg.Level)
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal, so logs go to a file.
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}
	logFile, err := os.OpenFile(filepath.Join(dataDir, "play.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer logFile.Close()
	lv, _ := config.ParseLogLevel(cfg.LogLevel)
	logger := newLogger(logFile, lv)

	return viz.Run(lvl, cfg, cfg.SpaceOptions(logger))
}

func serveLevel(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	lvl, err := level.Resolve(cfg.Level)
	if err != nil {
		return err
	}

	srv, err := bridge.NewServer(lvl, cfg, cfg.SpaceOptions(slog.Default()))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	httpSrv := &http.Server{Addr: addr, Handler: srv.Handler(ctx)}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpSrv.Shutdown(shutdownCtx)
	}()

	errc := make(chan error, 1)
	go func() {
		err := srv.Run(ctx)
		if err != nil {
			stop()
		}
		errc <- err
	}()

	slog.Info("serving", "addr", addr, "level", lvl.Name, "fps", cfg.FPS)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		stop()
		return err
	}
	return <-errc
}

func listLevels(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tGRAVITY\tEXITS\tFUELS\tBOMBS\tPLANETS")
	for _, name := range level.PresetNames() {
		l := level.Preset(name)
		fmt.Fprintf(w, "%s\t%dx%d\t%g\t%d\t%d\t%d\t%d\n",
			name, l.Width, l.Height, l.Gravity, len(l.Exits), len(l.Fuels), len(l.Bombs), len(l.Planets))
	}
	return w.Flush()
}

func exportLevel(cmd *cobra.Command, args []string) error {
	lvl, err := level.Resolve(args[0])
	if err != nil {
		return err
	}
	if err := level.Save(args[1], lvl); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[1])
	return nil
}

func renderLevel(cmd *cobra.Command, args []string) error {
	lvl, err := level.Resolve(args[0])
	if err != nil {
		return err
	}
	sp, err := level.Build(lvl, space.DefaultOptions())
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[1], []byte(export.SpaceToSVG(sp, scale)), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[1])
	return nil
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
	fmt.Fprintln(w, "ID\tLEVEL\tTIME\tFRAMES\tDT\tINTEG\tOUTCOME")

	for _, run := range runs {
		outcome := "-"
		if run.Completed {
			outcome = "complete"
		} else if run.Lost {
			outcome = "lost"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4g\t%s\t%s\n",
			run.ID,
			run.Level,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Dt,
			run.Integrator,
			outcome,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("level: %s\n", meta.Level)
	fmt.Printf("frames: %d\n\n", len(frames))

	series := []struct {
		caption string
		value   func(storage.FrameRecord) float64
	}{
		{"ship x", func(f storage.FrameRecord) float64 { return f.ShipX }},
		{"ship y", func(f storage.FrameRecord) float64 { return f.ShipY }},
		{"potential under ship", func(f storage.FrameRecord) float64 { return f.Potential }},
		{"energy invariant", func(f storage.FrameRecord) float64 { return f.ShipEnergy }},
		{"particles", func(f storage.FrameRecord) float64 { return float64(f.Particles) }},
	}

	for _, s := range series {
		data := make([]float64, len(frames))
		for i, f := range frames {
			data[i] = s.value(f)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	fmt.Println("ship path:")
	fmt.Println(analysis.PlotASCII(analysis.Path(frames), 80, 24, true))
	fmt.Println("speed vs potential:")
	fmt.Println(analysis.PlotASCII(analysis.SpeedPotential(frames), 80, 16, false))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(args[1], *meta, frames)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	svg := export.TrajectoryToSVG(frames, 800, 800, "#00ff88")
	if svg == "" {
		return fmt.Errorf("run %s has too few frames", args[0])
	}
	return os.WriteFile(args[1], []byte(svg), 0644)
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[:1])
	if err != nil {
		return err
	}
	lvl, err := level.Resolve(cfg.Level)
	if err != nil {
		return err
	}

	if len(cfg.Script) == 0 {
		cfg.Script = []config.FireCommand{{Frame: 1, Angle: 0}}
	}

	names := args[1:]
	variants := make([]sim.Variant, 0, len(names))
	for _, name := range names {
		if _, err := integrators.New(name); err != nil {
			return err
		}
		variants = append(variants, sim.Variant{Name: name, Build: func() (*space.Space, error) {
			opts := cfg.SpaceOptions(slog.Default())
			opts.Integrator = name
			return level.Build(lvl, opts)
		}})
	}

	fmt.Printf("comparing integrators for %s (dt=%.4g, frames=%d)\n\n", cfg.Level, cfg.Dt, cfg.Frames)
	start := time.Now()
	results, err := sim.NewEnsemble(variants...).Run(context.Background(), sim.Config{
		Frames: cfg.Frames, Dt: cfg.Dt, SubSteps: cfg.SubSteps, StopOnEnd: true,
	}, cfg.FireAt)
	if err != nil {
		return err
	}

	fmt.Printf("%-10s  %-10s  %-10s  %-8s  %-12s\n", "integrator", "final_x", "final_y", "frames", "energy_exc")
	fmt.Println(strings.Repeat("-", 58))
	for i, r := range results {
		last := r.Frames[len(r.Frames)-1]
		fmt.Printf("%-10s  %10.4f  %10.4f  %8d  %12.2e\n", variants[i].Name, last.ShipX, last.ShipY, len(r.Frames), r.Metrics["energy_excess"])
	}
	fmt.Printf("\ncompleted in %v\n", time.Since(start))
	return nil
}

func sweepAngles(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	results, err := automation.RunSweep(context.Background(), &automation.AngleSweep{
		Level:      cfg.Level,
		Integrator: cfg.Integrator,
		Dt:         cfg.Dt,
		SubSteps:   cfg.SubSteps,
		Frames:     cfg.Frames,
		Shots:      shots,
		AngleMin:   angleMin,
		AngleMax:   angleMax,
		NumSteps:   numSteps,
	}, slog.Default())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ANGLE\tOUTCOME\tFRAMES\tMEAN SPEED")
	for _, r := range results {
		outcome := "-"
		if r.Completed {
			outcome = goodStyle.Render("complete")
		} else if r.Lost {
			outcome = badStyle.Render("lost")
		}
		fmt.Fprintf(w, "%.4f\t%s\t%d\t%.4g\n", r.Angle, outcome, r.Frames, r.Metrics["speed_mean"])
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	results, err := automation.RunScenario(context.Background(), sc, slog.Default())
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(sc.Name))
	if sc.Description != "" {
		fmt.Println(sc.Description)
	}
	st := storage.New(dataDir)
	for i, r := range results {
		status := "-"
		if r.Result.Completed {
			status = "complete"
		} else if r.Result.Lost {
			status = "lost"
		}
		fmt.Printf("step %d: %s %s after %d frames\n", i+1, r.Step.Level, status, len(r.Result.Frames))
		if r.Step.SaveAs == "" {
			continue
		}
		cfg := r.Step.Config()
		if _, err := st.Save(storage.RunMetadata{
			ID:         r.Step.SaveAs,
			Level:      cfg.Level,
			Dt:         cfg.Dt,
			SubSteps:   cfg.SubSteps,
			Frames:     len(r.Result.Frames),
			Integrator: cfg.Integrator,
			Completed:  r.Result.Completed,
			Lost:       r.Result.Lost,
			Metrics:    r.Result.Metrics,
		}, r.Result.Frames); err != nil {
			return err
		}
	}
	return nil
}

func launchSensitivity(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	lvl, err := level.Resolve(cfg.Level)
	if err != nil {
		return err
	}
	build := func() (*space.Space, error) {
		return level.Build(lvl, cfg.SpaceOptions(slog.Default()))
	}
	d, err := analysis.LaunchSensitivity(context.Background(), build, angle, deviation, analysis.SensitivityConfig{
		Dt: cfg.Dt, SubSteps: cfg.SubSteps, Frames: cfg.Frames,
	})
	if err != nil {
		return err
	}
	fmt.Printf("final separation: %.6g\n", d.Final)
	fmt.Printf("divergence rate:  %.6g per frame\n", d.Rate)
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
