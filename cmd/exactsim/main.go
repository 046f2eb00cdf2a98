package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/exactsim/internal/config"
	"github.com/san-kum/exactsim/internal/experiment"
	"github.com/san-kum/exactsim/internal/logging"
	"github.com/san-kum/exactsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	mode       string
	logLevel   string
	tolerance  float64
	dt         float64
	duration   float64
	x0         float64
	v0         float64
	// triplet coefficients
	coefA float64
	coefB float64
	coefC float64
	coefK float64
	// spring
	stiffness   float64
	mass        float64
	friction    float64
	equilibrium float64
	newtonian   bool
	// pendulum
	length  float64
	gravity float64
	// scene
	theme       string
	gifPath     string
	snapshot    bool
	snapshotSVG string
	frames      int
	frameRate   int
	// plot
	showImag  bool
	showPhase bool
	pngPath   string
	svgPath   string
	rows      int
	// compare
	comparePhase bool
	// sweep
	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
	// sonify
	wavPath    string
	audioSpeed float64
	baseFreq   float64
	// export
	outPath string
)

// main registers the exactsim commands and runs the root command. With no
// subcommand it opens the pendulums scene.
func main() {
	rootCmd := &cobra.Command{
		Use:               "exactsim",
		Short:             "closed-form linear ODE animation lab",
		PersistentPreRunE: setupLogging,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScene(cmd, []string{"pendulums"})
		},
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", "", "run directory (default from config)")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&mode, "mode", "exact", "solver mode: exact or literal")
	pf.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error, silent")
	pf.Float64Var(&tolerance, "tol", 0, "root comparison tolerance (0 = default)")
	pf.Float64Var(&dt, "dt", config.DefaultDt, "sample spacing / frame timestep")
	pf.Float64Var(&duration, "time", config.DefaultDuration, "duration")
	pf.Float64Var(&x0, "x0", config.DefaultTheta, "initial position (angle for pendulum)")
	pf.Float64Var(&v0, "v0", 0, "initial velocity")
	pf.Float64Var(&coefA, "a", 1, "triplet a (x'' coefficient)")
	pf.Float64Var(&coefB, "b", 1, "triplet b (x' coefficient)")
	pf.Float64Var(&coefC, "c", 2, "triplet c (x coefficient)")
	pf.Float64Var(&coefK, "k", 0, "triplet forcing constant")
	pf.Float64Var(&stiffness, "stiffness", config.DefaultK, "spring stiffness")
	pf.Float64Var(&mass, "mass", config.DefaultMass, "spring mass")
	pf.Float64Var(&friction, "friction", 0, "spring friction")
	pf.Float64Var(&equilibrium, "equilibrium", config.DefaultXe, "spring rest length")
	pf.BoolVar(&newtonian, "newtonian", false, "use the m·x'' = −k·(x−xe) − f·x' spring mapping")
	pf.Float64Var(&length, "length", config.DefaultLength, "pendulum length")
	pf.Float64Var(&gravity, "gravity", config.DefaultGravity, "gravitational acceleration")

	solveCmd := &cobra.Command{
		Use:   "solve [system]",
		Short: "classify an equation and print its closed form",
		Args:  cobra.MaximumNArgs(1),
		RunE:  solveSystem,
	}
	solveCmd.Flags().IntVar(&rows, "rows", 11, "sample rows to print")

	sceneCmd := &cobra.Command{
		Use:   "scene [name]",
		Short: "animate a named scene in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScene,
	}
	sceneCmd.Flags().StringVar(&theme, "theme", "", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	sceneCmd.Flags().StringVar(&gifPath, "gif", "", "record frames to a GIF")
	sceneCmd.Flags().BoolVar(&snapshot, "snapshot", false, "print one frame instead of the live view")
	sceneCmd.Flags().IntVar(&frames, "frames", 60, "frames to advance before a snapshot")
	sceneCmd.Flags().StringVar(&snapshotSVG, "svg", "", "also write the snapshot as SVG")
	sceneCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")

	plotCmd := &cobra.Command{
		Use:   "plot [system]",
		Short: "plot x(t)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotSystem,
	}
	plotCmd.Flags().BoolVar(&showImag, "imag", false, "also plot Im x(t)")
	plotCmd.Flags().BoolVar(&showPhase, "phase", false, "also print the (x, v) phase portrait")
	plotCmd.Flags().StringVar(&pngPath, "png", "", "write a PNG line plot")
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "write an SVG trajectory")

	recordCmd := &cobra.Command{
		Use:   "record [system]",
		Short: "solve and store a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  recordRun,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVar(&outPath, "out", "-", "output file (- for stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and samples to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&outPath, "out", "-", "output file (- for stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [system]",
		Short: "compare analytic, spectral and crossing period estimates",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeSystem,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [system] [integrator...]",
		Short: "compare numeric steppers against the closed form",
		Args:  cobra.ArbitraryArgs,
		RunE:  compareIntegrators,
	}
	compareCmd.Flags().BoolVar(&comparePhase, "phase", false, "print closed-form and rk4 phase portraits")

	sweepCmd := &cobra.Command{
		Use:   "sweep [system]",
		Short: "sweep a parameter and tabulate period and decay",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepParameter,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "b", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 4, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 9, "number of values")

	sonifyCmd := &cobra.Command{
		Use:   "sonify [system]",
		Short: "render a trajectory as a WAV file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sonify,
	}
	sonifyCmd.Flags().StringVar(&wavPath, "out", "trajectory.wav", "output WAV file")
	sonifyCmd.Flags().Float64Var(&audioSpeed, "speed", 1, "simulated seconds per audio second")
	sonifyCmd.Flags().Float64Var(&baseFreq, "base", 220, "pitch at the center of the swing (Hz)")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted scenario of solves",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [system]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			systems := config.ListSystems()
			if len(args) > 0 {
				systems = args
			}
			for _, sys := range systems {
				presets := config.ListPresets(sys)
				if len(presets) == 0 {
					fmt.Printf("no presets for system: %s\n", sys)
					continue
				}
				fmt.Printf("presets for %s:\n", sys)
				for _, p := range presets {
					fmt.Printf("  %s\n", p)
				}
			}
			return nil
		},
	}

	rootCmd.AddCommand(solveCmd, sceneCmd, plotCmd, recordCmd, listCmd, exportCSVCmd, exportJSONCmd,
		analyzeCmd, compareCmd, sweepCmd, sonifyCmd, batchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logging.SetDefault(logging.New(level))
	return nil
}

// loadConfig resolves the configuration for a command: a config file, else a
// preset, else defaults. The system argument and any flag the user set on
// the command line override it.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config
	system := ""
	if len(args) > 0 {
		system = args[0]
	}

	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	case preset != "":
		sys := system
		if sys == "" {
			sys = config.DefaultConfig().System
		}
		cfg = config.GetPreset(sys, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(sys))
		}
	default:
		cfg = config.DefaultConfig()
	}
	if system != "" {
		cfg.System = system
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Mode = mode
	}
	if flags.Changed("tol") {
		cfg.Tolerance = tolerance
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("x0") {
		cfg.InitState.X0 = x0
	}
	if flags.Changed("v0") {
		cfg.InitState.V0 = v0
	}
	if flags.Changed("a") {
		cfg.Triplet.A = coefA
	}
	if flags.Changed("b") {
		cfg.Triplet.B = coefB
	}
	if flags.Changed("c") {
		cfg.Triplet.C = coefC
	}
	if flags.Changed("k") {
		cfg.Triplet.K = coefK
	}
	if flags.Changed("stiffness") {
		cfg.Spring.Stiffness = stiffness
	}
	if flags.Changed("mass") {
		cfg.Spring.Mass = mass
	}
	if flags.Changed("friction") {
		cfg.Spring.Friction = friction
	}
	if flags.Changed("equilibrium") {
		cfg.Spring.Equilibrium = equilibrium
	}
	if flags.Changed("newtonian") {
		cfg.Spring.Newtonian = newtonian
	}
	if flags.Changed("length") {
		cfg.Pendulum.Length = length
	}
	if flags.Changed("gravity") {
		cfg.Pendulum.Gravity = gravity
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Lookup("theme") != nil && flags.Changed("theme") {
		if _, ok := viz.GetTheme(theme); !ok {
			return nil, fmt.Errorf("unknown theme %q (available: %s)", theme, strings.Join(viz.ThemeNames(), ", "))
		}
		cfg.Render.Theme = theme
	}
	if flags.Lookup("fps") != nil && flags.Changed("fps") {
		cfg.FPS = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newExperiment(cfg *config.Config) *experiment.Experiment {
	return experiment.New(cfg, experiment.NewRegistry(logging.Provide()))
}
