package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/basinsim/internal/basin"
	"github.com/san-kum/basinsim/internal/config"
	"github.com/san-kum/basinsim/internal/dynamo"
	"github.com/san-kum/basinsim/internal/export"
	"github.com/san-kum/basinsim/internal/physics"
	"github.com/san-kum/basinsim/internal/storage"
	"github.com/san-kum/basinsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	// render settings
	output  string
	size    int
	samples int
	seed    int64
	cores   int
	// physics
	distance         float64
	attraction       float64
	friction         float64
	pendulum         float64
	height           float64
	timeStep         float64
	maxSteps         int
	requiredVelocity float64
	requiredDistance float64
	// Config file
	configFile string
	// Preset name
	preset string
	// name=value parameter assignments
	assignments []string
	// progress and persistence
	useTUI  bool
	save    bool
	preview int
	// show
	previewCols int
	// trace
	every   int
	svgPath string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "basinsim",
		Short:        "double-pole pendulum basin renderer",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".basinsim", "data directory")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render the basins of attraction to a png",
		Example: `  basinsim render --size 512 -o image.png
  basinsim render --size 256 --samples 32 --seed 42 --preset sticky > basins.png`,
		Args: cobra.NoArgs,
		RunE: runRender,
	}
	renderCmd.Flags().StringVarP(&output, "output", "o", "", "output png (stdout when empty)")
	renderCmd.Flags().IntVar(&size, "size", config.DefaultSize, "quadrant size; the image is twice as wide")
	renderCmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "samples per pixel, rounded up to a multiple of --cores")
	renderCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (entropy when unset)")
	renderCmd.Flags().IntVar(&cores, "cores", 0, "number of workers (cpu count when unset)")
	renderCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml or ini)")
	renderCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	renderCmd.Flags().BoolVar(&useTUI, "tui", false, "interactive progress view")
	renderCmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")
	renderCmd.Flags().IntVar(&preview, "preview", 0, "print a braille preview this many columns wide")
	addPhysicsFlags(renderCmd)

	traceCmd := &cobra.Command{
		Use:   "trace [x] [y]",
		Short: "follow a single release point",
		Args:  cobra.ExactArgs(2),
		RunE:  runTrace,
	}
	traceCmd.Flags().IntVar(&every, "every", 10, "record every n-th step")
	traceCmd.Flags().StringVar(&svgPath, "svg", "", "write the trajectory as svg")
	traceCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml or ini)")
	traceCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	addPhysicsFlags(traceCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "summarize a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().IntVar(&previewCols, "preview", 60, "preview width in columns")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDISTANCE\tATTRACTION\tFRICTION")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%g\t%g\t%g\n", name, p.Distance, p.Attraction, p.Friction)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(renderCmd, traceCmd, listCmd, showCmd, presetsCmd)
	return rootCmd
}

func addPhysicsFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&distance, "distance", config.DefaultDistance, "distance of each pole from the origin")
	cmd.Flags().Float64Var(&attraction, "attraction", config.DefaultAttraction, "attraction of the poles")
	cmd.Flags().Float64Var(&friction, "friction", config.DefaultFriction, "friction coefficient")
	cmd.Flags().Float64Var(&pendulum, "pendulum", config.DefaultPendulum, "restoring coefficient of the pendulum")
	cmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "height of the pendulum above the poles")
	cmd.Flags().Float64Var(&timeStep, "timeStep", config.DefaultTimeStep, "integration time step")
	cmd.Flags().IntVar(&maxSteps, "maxCountSteps", config.DefaultMaxSteps, "maximal number of steps per sample")
	cmd.Flags().Float64Var(&requiredVelocity, "requiredVelocity", config.DefaultRequiredVelocity, "speed below which the pendulum counts as stopped")
	cmd.Flags().Float64Var(&requiredDistance, "requiredDistance", config.DefaultRequiredDistance, "distance below which the pendulum counts as at a pole")
	cmd.Flags().StringArrayVar(&assignments, "set", nil, "set a parameter by name, e.g. --set height=0.1 (repeatable, applied last)")
}

// loadConfig layers preset, config file, explicitly set flags and --set
// assignments, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	var overrides []config.Override
	set := func(name string, apply func(*config.Config)) {
		if f := flags.Lookup(name); f != nil && f.Changed {
			overrides = append(overrides, func(c *config.Config) error {
				apply(c)
				return nil
			})
		}
	}
	set("output", func(c *config.Config) { c.Output = output })
	set("size", func(c *config.Config) { c.Size = size })
	set("samples", func(c *config.Config) { c.Samples = samples })
	set("seed", func(c *config.Config) { s := seed; c.Seed = &s })
	set("cores", func(c *config.Config) { w := cores; c.Workers = &w })
	set("distance", func(c *config.Config) { c.Distance = distance })
	set("attraction", func(c *config.Config) { c.Attraction = attraction })
	set("friction", func(c *config.Config) { c.Friction = friction })
	set("pendulum", func(c *config.Config) { c.Pendulum = pendulum })
	set("height", func(c *config.Config) { c.Height = height })
	set("timeStep", func(c *config.Config) { c.TimeStep = timeStep })
	set("maxCountSteps", func(c *config.Config) { c.MaxSteps = maxSteps })
	set("requiredVelocity", func(c *config.Config) { c.RequiredVelocity = requiredVelocity })
	set("requiredDistance", func(c *config.Config) { c.RequiredDistance = requiredDistance })

	for _, a := range assignments {
		overrides = append(overrides, config.SetOverride(a))
	}

	return config.Resolve(preset, configFile, overrides...)
}

func runRender(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("size") && configFile == "" {
		return fmt.Errorf("--size is required")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	workers := cfg.ResolveWorkers()
	effective := basin.RoundUpSamples(cfg.Samples, workers)
	if effective != cfg.Samples {
		fmt.Fprintf(os.Stderr, "samples rounded up from %d to %d for %d workers\n", cfg.Samples, effective, workers)
	}

	progress := basin.NewProgress(int64(effective) * int64(cfg.Size) * int64(cfg.Size))
	opts := basin.Options{
		Size:       cfg.Size,
		Samples:    cfg.Samples,
		Workers:    workers,
		Seed:       cfg.ResolveSeed(),
		OnProgress: progress.Add,
	}

	start := time.Now()
	done := make(chan struct{})
	var (
		render    *basin.Render
		renderErr error
	)
	go func() {
		defer close(done)
		render, renderErr = basin.RenderQuadrant(cfg.Params(), opts)
	}()

	if useTUI {
		title := fmt.Sprintf("rendering %dx%d, %d samples on %d workers", 2*cfg.Size, 2*cfg.Size, effective, workers)
		if err := viz.RunProgress(os.Stderr, title, progress, start, done); err != nil {
			if errors.Is(err, viz.ErrInterrupted) {
				os.Exit(130)
			}
			return err
		}
	} else {
		viz.Watch(os.Stderr, progress, start, time.Second, done)
	}
	<-done

	if renderErr != nil {
		return renderErr
	}
	elapsed := time.Since(start)

	canvas, err := basin.ExpandToCanvas(render.Quadrant)
	if err != nil {
		return err
	}

	if err := export.SavePNG(cfg.Output, canvas); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}

	summary := basin.Stats(render.Quadrant)
	fmt.Fprintln(os.Stderr, viz.SummaryTable(summary))
	if preview > 0 {
		fmt.Fprint(os.Stderr, viz.Preview(canvas, preview))
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.RunMetadata{
			Size:             cfg.Size,
			RequestedSamples: cfg.Samples,
			Samples:          render.Samples,
			Workers:          render.Workers,
			Seed:             render.Seed,
			Params:           cfg.Params(),
			Elapsed:          elapsed,
			Output:           cfg.Output,
			Summary:          summary,
		}, canvas)
		if err != nil {
			return err
		}
		replay := filepath.Join(st.RunDir(runID), "config.yaml")
		if err := config.Save(replay, cfg.Pinned(render.Seed, render.Workers)); err != nil {
			return fmt.Errorf("failed to save run config: %w", err)
		}
		fmt.Fprintf(os.Stderr, "run id: %s (replay with --config %s)\n", runID, replay)
	}

	fmt.Fprintf(os.Stderr, "completed in %v\n", elapsed)
	return nil
}

func runTrace(cmd *cobra.Command, args []string) error {
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid x: %w", err)
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid y: %w", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	params := cfg.Params()
	start := dynamo.Vec2{X: x, Y: y}

	tr := physics.Trace(start, params, every)

	fmt.Printf("start: %v\n", start)
	fmt.Printf("outcome: %s after %d steps\n", tr.Outcome, tr.Steps)
	if n := len(tr.Points); n > 0 {
		last := tr.Points[n-1]
		fmt.Printf("final: pos %v, speed %.4f\n\n", last.Pos, last.Vel.Length())
	}

	if len(tr.Points) < 2 {
		return nil
	}

	d1 := make([]float64, len(tr.Points))
	d2 := make([]float64, len(tr.Points))
	speed := make([]float64, len(tr.Points))
	path := make([]dynamo.Vec2, len(tr.Points))
	for i, p := range tr.Points {
		d1[i], d2[i], speed[i], path[i] = p.Dist1, p.Dist2, p.Vel.Length(), p.Pos
	}

	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{d1, "distance to pole 1"},
		{d2, "distance to pole 2"},
		{speed, "speed"},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if svgPath != "" {
		svg := export.TrajectoryToSVG(path, [2]dynamo.Vec2{params.Pole1(), params.Pole2()}, 600, 600, "#00ff88")
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("trajectory written to %s\n", svgPath)
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
	fmt.Fprintln(w, "ID\tTIME\tSIZE\tSAMPLES\tWORKERS\tSEED\tELAPSED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%v\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Size,
			run.Samples,
			run.Workers,
			run.Seed,
			run.Elapsed.Round(time.Millisecond),
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	canvas, err := st.LoadCanvas(runID)
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render("run: " + meta.ID))
	fmt.Printf("size: %d (canvas %d)\n", meta.Size, canvas.Size)
	fmt.Printf("samples: %d (requested %d) on %d workers\n", meta.Samples, meta.RequestedSamples, meta.Workers)
	fmt.Printf("seed: %d\n", meta.Seed)
	fmt.Printf("poles: %v %v\n", meta.Params.Pole1(), meta.Params.Pole2())
	fmt.Println(viz.ParamTable(meta.Params.GetParams()))
	fmt.Println(viz.SummaryTable(basin.Stats(canvas)))
	fmt.Println(viz.Separator(previewCols))
	fmt.Print(viz.Preview(canvas, previewCols))
	fmt.Println()

	// pole 1 share along the row through the poles
	row := make([]float64, canvas.Size)
	for x := range row {
		row[x] = canvas.At(x, canvas.Size/2).X
	}
	fmt.Println(asciigraph.Plot(row,
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Caption("pole 1 share along the pole axis"),
	))

	return nil
}
