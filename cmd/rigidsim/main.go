package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/rigidsim/internal/analysis"
	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/diag"
	"github.com/san-kum/rigidsim/internal/export"
	"github.com/san-kum/rigidsim/internal/gui"
	"github.com/san-kum/rigidsim/internal/metrics"
	"github.com/san-kum/rigidsim/internal/sim"
	"github.com/san-kum/rigidsim/internal/storage"
	"github.com/san-kum/rigidsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	frames     int
	fps        int
	particles  int
	seed       int64
	out        string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rigidsim",
		Short: "rigid body and particle simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return gui.Run(cfg, diag.Stderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rigidsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().IntVar(&particles, "particles", config.DefaultParticles, "particle count")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and record frame diagnostics",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&frames, "frames", 600, "frames to simulate")
	runCmd.Flags().IntVar(&fps, "fps", 60, "simulated frame rate")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with terminal visualization",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return viz.Run(cfg, diag.Discard())
		},
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run with 3D window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return gui.Run(cfg, diag.Stderr())
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export frame diagnostics to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVar(&out, "out", "-", "output path, - for stdout")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&out, "out", "-", "output path, - for stdout")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure simulation throughput",
		RunE:  benchRun,
	}
	benchCmd.Flags().IntVar(&frames, "frames", 1000, "frames to simulate")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "summarize and frequency-analyze run diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render the world to an SVG after simulating",
		RunE:  snapshotRun,
	}
	snapshotCmd.Flags().IntVar(&frames, "frames", 300, "frames to simulate first")
	snapshotCmd.Flags().StringVar(&out, "out", "world.svg", "output path")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd, benchCmd, analyzeCmd, snapshotCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig builds the effective configuration: preset, then config
// file, then CLI flags, later sources winning only where set.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("particles") {
		cfg.Particles = particles
	}
	if cfg.Seed == 0 || cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func presetName() string {
	if preset != "" {
		return preset
	}
	return "demo"
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	w, err := sim.New(cfg, diag.Stderr())
	if err != nil {
		return err
	}
	defer w.Close()

	ms := []sim.Metric{metrics.NewKineticEnergy(), metrics.NewContacts(), metrics.NewConvergence(), metrics.NewMaxPenetration()}
	for _, m := range ms {
		w.AddMetric(m)
	}
	rec := &storage.Recorder{}
	w.AddObserver(rec)

	fmt.Printf("simulating %d frames at %d fps...\n", frames, fps)
	start := time.Now()
	step := 1.0 / float64(fps)
	for i := 0; i < frames; i++ {
		w.Step(step)
	}
	elapsed := time.Since(start)

	vals := make(map[string]float64, len(ms))
	for _, m := range ms {
		vals[m.Name()] = m.Value()
	}

	runID, err := st.Save(presetName(), cfg.Seed, len(w.Particles()), len(w.Boxes()), vals, rec.Frames)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Println("\nmetrics:")
	for name, val := range vals {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tFRAMES\tPARTICLES\tBOXES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Particles,
			run.Boxes,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	fs, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(fs) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("frames: %d\n\n", len(fs))

	contacts := make([]float64, len(fs))
	iterations := make([]float64, len(fs))
	for i, f := range fs {
		contacts[i] = float64(f.ParticleContacts + f.BoxContacts)
		iterations[i] = float64(f.Iterations)
	}

	fmt.Println(asciigraph.Plot(contacts,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("contacts per frame"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(iterations,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("resolver iterations per frame"),
	))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	fs, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSV(out, fs)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	fs, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(out, meta, fs)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	fs, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(fs) == 0 {
		return fmt.Errorf("no data to analyze")
	}

	contacts := make([]float64, len(fs))
	iterations := make([]float64, len(fs))
	for i, f := range fs {
		contacts[i] = float64(f.ParticleContacts + f.BoxContacts)
		iterations[i] = float64(f.Iterations)
	}

	report := func(name string, data []float64) {
		s := analysis.Summarize(data)
		fmt.Printf("%s:\n", name)
		fmt.Printf("  mean %.3f  min %.0f  max %.0f  stddev %.3f\n", s.Mean, s.Min, s.Max, s.StdDev)
		if freq := analysis.DominantFrequency(data); freq > 0 {
			fmt.Printf("  dominant frequency: %.4f cycles/frame\n", freq)
		}
	}
	report("contacts", contacts)
	report("resolver iterations", iterations)
	return nil
}

func snapshotRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	w, err := sim.New(cfg, diag.Discard())
	if err != nil {
		return err
	}
	defer w.Close()

	for i := 0; i < frames; i++ {
		w.Step(1.0 / 60.0)
	}

	canvas := viz.NewCanvas(160, 48)
	viz.RenderWorld(canvas, viz.NewCamera(), w)
	if err := export.WriteSVG(out, canvas, 4); err != nil {
		return err
	}
	fmt.Printf("wrote %s after %d frames\n", out, frames)
	return nil
}

func benchRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	w, err := sim.New(cfg, diag.Discard())
	if err != nil {
		return err
	}
	defer w.Close()

	start := time.Now()
	for i := 0; i < frames; i++ {
		w.Step(1.0 / 60.0)
	}
	elapsed := time.Since(start)

	fmt.Printf("%d frames, %d particles, %d boxes\n", frames, len(w.Particles()), len(w.Boxes()))
	fmt.Printf("total: %v\n", elapsed)
	fmt.Printf("per frame: %v\n", elapsed/time.Duration(frames))
	fmt.Printf("rate: %.1f frames/sec\n", float64(frames)/elapsed.Seconds())
	return nil
}
