package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/exactsim/internal/analysis"
	"github.com/san-kum/exactsim/internal/audio"
	"github.com/san-kum/exactsim/internal/automation"
	"github.com/san-kum/exactsim/internal/config"
	"github.com/san-kum/exactsim/internal/dynamo"
	"github.com/san-kum/exactsim/internal/experiment"
	"github.com/san-kum/exactsim/internal/export"
	"github.com/san-kum/exactsim/internal/integrators"
	"github.com/san-kum/exactsim/internal/linode"
	"github.com/san-kum/exactsim/internal/logging"
	"github.com/san-kum/exactsim/internal/metrics"
	"github.com/san-kum/exactsim/internal/physics"
	"github.com/san-kum/exactsim/internal/storage"
	"github.com/san-kum/exactsim/internal/viz"
)

func solveSystem(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	res, err := newExperiment(cfg).Run(cmd.Context())
	if err != nil {
		return err
	}
	sol := res.Solution
	tr := res.Triplet

	fmt.Printf("system:     %s\n", res.System)
	fmt.Printf("equation:   %g·x'' + %g·x' + %g·x = %g\n", tr.A, tr.B, tr.C, tr.K)
	fmt.Printf("initial:    x0=%g v0=%g\n", res.Initial.X0, res.Initial.V0)
	fmt.Printf("mode:       %s\n", sol.Mode)
	fmt.Printf("kind:       %s\n", sol.Kind)
	fmt.Printf("roots:      r1=%v r2=%v\n", sol.Roots.R1, sol.Roots.R2)
	fmt.Printf("amplitudes: A1=%v B1=%v A2=%v\n", sol.A1, sol.B1, sol.A2)
	fmt.Printf("particular: %g + %g·t + %g·t²\n", sol.P0, sol.P1, sol.P2)
	printPeriodDecay(res)
	printModeGap(cfg, res)

	if rows <= 0 || len(res.Samples) == 0 {
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nT\tX\tV")
	stride := max(1, (len(res.Samples)-1)/max(1, rows-1))
	for i := 0; i < len(res.Samples); i += stride {
		s := res.Samples[i]
		fmt.Fprintf(w, "%.4f\t%.6f\t%.6f\n", s.T, s.X, s.V)
	}
	return w.Flush()
}

// printModeGap notes when the other solver mode would draw a different curve.
func printModeGap(cfg *config.Config, res *experiment.Result) {
	opts, err := cfg.Options()
	if err != nil {
		return
	}
	gap, err := linode.ModeGap(res.Triplet, res.Initial, opts, cfg.Dt, cfg.Steps()+1)
	switch {
	case err != nil:
		fmt.Printf("note:       the other mode cannot solve this equation (%v)\n", err)
	case gap > 1e-9:
		fmt.Printf("note:       exact and literal modes differ here, max |Δx| = %.3e\n", gap)
	}
}

func printPeriodDecay(res *experiment.Result) {
	if res.HasPeriod {
		fmt.Printf("period:     %.6f s\n", res.Period)
	} else {
		fmt.Println("period:     none")
	}
	if res.HasDecay {
		fmt.Printf("decay:      %.6f 1/s\n", res.Decay)
	} else {
		fmt.Println("decay:      undefined")
	}
}

func runScene(cmd *cobra.Command, args []string) error {
	name := "pendulums"
	if len(args) > 0 {
		name = args[0]
	}
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	log := logging.Provide()
	reg := experiment.NewRegistry(log)
	s, err := reg.GetScene(name, cfg)
	if err != nil {
		return err
	}

	if snapshot {
		canvas, err := viz.Snapshot(s, frames, cfg.Dt, cfg.Render.Width, cfg.Render.Height)
		if err != nil {
			return err
		}
		fmt.Print(canvas.String())
		if snapshotSVG != "" {
			th, _ := viz.GetTheme(cfg.Render.Theme)
			if err := os.WriteFile(snapshotSVG, []byte(export.CanvasToSVG(canvas, 4, th)), 0644); err != nil {
				return err
			}
			fmt.Printf("svg written to %s\n", snapshotSVG)
		}
		return nil
	}
	if snapshotSVG != "" {
		return errors.New("--svg needs --snapshot")
	}

	// stderr shares the terminal with the live view
	if !cmd.Flags().Changed("log-level") {
		log.SetLevel(logging.LevelWarn)
	}
	return viz.Run(s, viz.Options{
		FPS:      cfg.FPS,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Width:    cfg.Render.Width,
		Height:   cfg.Render.Height,
		Theme:    cfg.Render.Theme,
		GIFPath:  gifPath,
		Log:      log.Named("viz"),
	})
}

func plotSystem(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	res, err := newExperiment(cfg).Run(cmd.Context())
	if err != nil {
		return err
	}

	xs := make([]float64, len(res.Samples))
	for i, s := range res.Samples {
		xs[i] = s.X
	}
	caption := "x(t)"
	if res.System == "pendulum" {
		caption = "theta(t)"
	}
	fmt.Println(asciigraph.Plot(xs,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s  %s, %s", caption, res.Solution.Kind, res.Solution.Mode)),
	))

	if showImag {
		im := make([]float64, len(res.Samples))
		for i, s := range res.Samples {
			im[i] = imag(res.Solution.At(s.T))
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(im,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption("Im x(t)"),
		))
	}

	if showPhase {
		fmt.Println()
		fmt.Print(analysis.PhasePortraitToASCII(analysis.PhaseFromSamples(res.Samples), 70, 20))
	}

	if pngPath != "" {
		lp := export.LinePlot{
			Title:  fmt.Sprintf("%s (%s)", caption, res.System),
			XLabel: "t (s)",
			YLabel: "x",
			Series: []export.Series{{Name: res.Solution.Kind.String(), Points: export.TimeSeries(res.Samples)}},
		}
		if err := lp.SavePNG(pngPath); err != nil {
			return err
		}
		fmt.Printf("png written to %s\n", pngPath)
	}

	if svgPath != "" {
		svg := export.TrajectoryToSVG(export.TimeSeries(res.Samples), 800, 400, "#00ffff")
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("svg written to %s\n", svgPath)
	}
	return nil
}

func recordRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	sys, err := physics.FromConfig(cfg)
	if err != nil {
		return err
	}
	res, err := newExperiment(cfg).Run(cmd.Context())
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(res.ToRun(cfg, sys.GetParams()))
	if err != nil {
		return err
	}

	logging.Provide().Info("run recorded",
		logging.String("id", runID),
		logging.String("system", res.System),
		logging.Int("samples", len(res.Samples)),
	)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(res.Samples))
	printPeriodDecay(res)
	printMetrics(res.Metrics)
	return nil
}

func printMetrics(ms map[string]float64) {
	if len(ms) == 0 {
		return
	}
	names := make([]string, 0, len(ms))
	for name := range ms {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, ms[name])
	}
}

func openStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.DataDir), nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSYSTEM\tKIND\tMODE\tTIME\tDURATION\tDT\tPERIOD")
	for _, run := range runs {
		period := "-"
		if run.Period != nil {
			period = fmt.Sprintf("%.4fs", *run.Period)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.2fs\t%.4fs\t%s\n",
			run.ID,
			run.System,
			run.Kind,
			run.Mode,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			period,
		)
	}
	return w.Flush()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	run, err := st.LoadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSVFile(outPath, run)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	run, err := st.LoadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSONFile(outPath, run)
}

func analyzeSystem(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	res, err := newExperiment(cfg).Run(cmd.Context())
	if err != nil {
		return err
	}
	tr := res.Triplet

	fmt.Printf("system: %s (%s, %s)\n\n", res.System, res.Solution.Kind, res.Solution.Mode)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ESTIMATE\tPERIOD")
	if res.HasPeriod {
		fmt.Fprintf(w, "analytic\t%.6f\n", res.Period)
	} else {
		fmt.Fprintln(w, "analytic\t-")
	}
	if res.FFTPeriod > 0 {
		fmt.Fprintf(w, "fft\t%.6f\n", res.FFTPeriod)
	} else {
		fmt.Fprintln(w, "fft\t-")
	}
	if tr.C != 0 {
		if p, err := analysis.CrossingPeriod(res.Samples, tr.K/tr.C); err == nil {
			fmt.Fprintf(w, "crossings\t%.6f\n", p)
		} else {
			fmt.Fprintln(w, "crossings\t-")
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()
	printPeriodDecay(res)
	printMetrics(res.Metrics)

	ps, df, err := analysis.Spectrum(res.Samples)
	if err != nil {
		return nil
	}
	bins := min(len(ps), 128)
	fmt.Println()
	fmt.Println(asciigraph.Plot(ps[1:bins],
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("magnitude spectrum, %.4f Hz per bin", df)),
	))
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	var system []string
	names := []string{"euler", "rk4", "verlet"}
	if len(args) > 0 {
		system = args[:1]
	}
	if len(args) > 1 {
		names = args[1:]
	}

	cfg, err := loadConfig(cmd, system)
	if err != nil {
		return err
	}
	res, err := newExperiment(cfg).Run(cmd.Context())
	if err != nil {
		return err
	}
	ode, err := physics.NewODE(res.Triplet)
	if err != nil {
		return err
	}
	if res.Solution.Mode == linode.ModeLiteral {
		fmt.Println("note: literal mode closed forms need not satisfy the ODE")
	}

	type stepper struct {
		name  string
		integ dynamo.Integrator
	}
	var steppers []stepper
	for _, name := range names {
		integ, err := integrators.New(name)
		if err != nil {
			return err
		}
		steppers = append(steppers, stepper{name, integ})
	}
	if h, err := integrators.NewHarmonica(res.Triplet); err == nil {
		steppers = append(steppers, stepper{"harmonica", h})
	} else if !errors.Is(err, integrators.ErrNotASpring) {
		return err
	}

	x0 := dynamo.State{res.Initial.X0, res.Initial.V0}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tMAX ERR\tRMS ERR\tENERGY DRIFT\tTIME")
	for _, s := range steppers {
		ref := metrics.NewReferenceError(res.Solution)
		drift := metrics.NewEnergyDrift(ode)
		start := time.Now()
		_, err := dynamo.Integrate(s.integ, ode, x0, cfg.Dt, cfg.Steps(), ref, drift)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\tfailed: %v\t\t\t\n", s.name, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%.3e\t%.3e\t%.3e\t%v\n", s.name, ref.Value(), ref.RMS(), drift.Value(), elapsed)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if comparePhase {
		numeric := analysis.GeneratePhasePortrait(ode, integrators.NewRK4(), x0, 0, 1, cfg.Dt, cfg.Duration)
		if numeric == nil {
			return errors.New("rk4 phase portrait failed")
		}
		exact := analysis.PhaseFromSamples(res.Samples[1:])
		fmt.Println("\nclosed form (x, v):")
		fmt.Print(analysis.PhasePortraitToASCII(exact, 70, 16))
		fmt.Println("\nrk4 (x, v):")
		fmt.Print(analysis.PhasePortraitToASCII(numeric, 70, 16))
		if dev, err := analysis.MaxDeviation(exact, numeric); err == nil {
			fmt.Printf("max phase deviation: %.3e\n", dev)
		}
	}
	return nil
}

func sweepParameter(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	values := experiment.Linspace(sweepFrom, sweepTo, sweepSteps)
	points, err := newExperiment(cfg).Sweep(ctx, sweepParam, values)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tKIND\tPERIOD\tDECAY\n", sweepParam)
	for _, pt := range points {
		if pt.Err != nil {
			fmt.Fprintf(w, "%g\terror: %v\t\t\n", pt.Value, pt.Err)
			continue
		}
		period, decay := "-", "-"
		if pt.HasPeriod {
			period = fmt.Sprintf("%.6f", pt.Period)
		}
		if pt.HasDecay {
			decay = fmt.Sprintf("%.6f", pt.Decay)
		}
		fmt.Fprintf(w, "%g\t%s\t%s\t%s\n", pt.Value, pt.Kind, period, decay)
	}
	return w.Flush()
}

func sonify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	res, err := newExperiment(cfg).Run(cmd.Context())
	if err != nil {
		return err
	}

	opts := audio.DefaultOptions()
	opts.Speed = audioSpeed
	opts.BaseFreq = baseFreq

	f, err := os.Create(wavPath)
	if err != nil {
		return err
	}
	if err := audio.WriteWAV(f, res.Samples, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	secs := (res.Samples[len(res.Samples)-1].T - res.Samples[0].T) / opts.Speed
	fmt.Printf("wav written to %s (%.1fs of audio)\n", wavPath, math.Max(secs, 0))
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	if err := st.Init(); err != nil {
		return err
	}

	log := logging.Provide()
	outcomes, err := automation.RunScenario(cmd.Context(), scenario, experiment.NewRegistry(log), st, log.Named("batch"))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tSYSTEM\tKIND\tPERIOD\tRUN")
	for _, out := range outcomes {
		period, runID := "-", "-"
		if out.Result.HasPeriod {
			period = fmt.Sprintf("%.6f", out.Result.Period)
		}
		if out.RunID != "" {
			runID = out.RunID
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", out.Step, out.Result.System, out.Result.Solution.Kind, period, runID)
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}
