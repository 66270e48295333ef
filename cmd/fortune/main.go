package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/fortune/internal/announce"
	"github.com/san-kum/fortune/internal/config"
	"github.com/san-kum/fortune/internal/cue"
	"github.com/san-kum/fortune/internal/export"
	"github.com/san-kum/fortune/internal/gui"
	"github.com/san-kum/fortune/internal/logging"
	"github.com/san-kum/fortune/internal/sim"
	"github.com/san-kum/fortune/internal/viz"
	"github.com/san-kum/fortune/internal/wheel"
)

var (
	// Config file
	configFile string
	// Preset name
	preset   string
	seed     int64
	sound    bool
	logFile  string
	logLevel string
	// Headless commands
	angle    float64
	velocity float64
	cols     int
	rows     int
	svgOut   string
	gifOut   string
	every    int
	runs     int
)

// main registers the commands and flags and runs the terminal app when no
// subcommand is given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "fortune",
		Short:        "spin a wheel of fortune",
		SilenceUsage: true,
		RunE:         runApp,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", config.DefaultPreset, "segment preset")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	rootCmd.PersistentFlags().BoolVar(&sound, "sound", false, "play click and chime cues")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	spinCmd := &cobra.Command{
		Use:   "spin",
		Short: "open the wheel directly in the terminal",
		RunE:  runSpin,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the wheel in a desktop window",
		RunE:  runGUI,
	}

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "run one spin without a display",
		RunE:  runSimulate,
	}
	simulateCmd.Flags().Float64Var(&velocity, "velocity", 0, "initial velocity (default: random)")
	simulateCmd.Flags().StringVar(&svgOut, "svg", "", "write the velocity curve as svg")
	simulateCmd.Flags().IntVar(&runs, "runs", 1, "spin this many seeded wheels and tally the outcomes")

	resolveCmd := &cobra.Command{
		Use:   "resolve [angle]",
		Short: "print the segment under the pointer at an angle (radians)",
		Args:  cobra.ExactArgs(1),
		RunE:  runResolve,
	}

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "draw the wheel at a fixed angle",
		RunE:  runRender,
	}
	renderCmd.Flags().Float64Var(&angle, "angle", 0, "rotation in radians")
	renderCmd.Flags().IntVar(&cols, "width", 60, "surface width in terminal cells")
	renderCmd.Flags().IntVar(&rows, "height", 30, "surface height in terminal cells")
	renderCmd.Flags().StringVar(&svgOut, "svg", "", "write svg instead of printing")

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "record one spin as an animated gif",
		RunE:  runRecord,
	}
	recordCmd.Flags().StringVar(&gifOut, "out", "spin.gif", "output file")
	recordCmd.Flags().IntVar(&cols, "width", 60, "surface width in terminal cells")
	recordCmd.Flags().IntVar(&rows, "height", 30, "surface height in terminal cells")
	recordCmd.Flags().IntVar(&every, "every", 2, "keep one frame out of this many ticks")
	recordCmd.Flags().Float64Var(&velocity, "velocity", 0, "initial velocity (default: random)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list segment presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSEGMENTS\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%s\n", name, len(p.Segments), p.Description)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "inspect or write configuration",
	}
	configCmd.AddCommand(
		&cobra.Command{
			Use:   "init [path]",
			Short: "write the resolved configuration to a file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig(cmd)
				if err != nil {
					return err
				}
				if err := config.Save(args[0], cfg); err != nil {
					return fmt.Errorf("save config: %w", err)
				}
				fmt.Printf("wrote %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "print the resolved configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig(cmd)
				if err != nil {
					return err
				}
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return err
				}
				_, err = os.Stdout.Write(data)
				return err
			},
		},
	)

	rootCmd.AddCommand(spinCmd, guiCmd, simulateCmd, resolveCmd, renderCmd, recordCmd, presetsCmd, configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves defaults, the config file, the preset and the flags,
// in that order of precedence from lowest to highest.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if configFile == "" || cmd.Flags().Changed("preset") {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("sound") {
		cfg.Sound.Enabled = sound
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// session is what every interactive command needs.
type session struct {
	cfg    *config.Config
	log    *slog.Logger
	cues   cue.Player
	closer func()
}

func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, closer, err := logging.New(logFile, logLevel)
	if err != nil {
		return nil, err
	}
	cues := newCues(cfg, log)
	return &session{
		cfg:  cfg,
		log:  log,
		cues: cues,
		closer: func() {
			cues.Close()
			closer.Close()
		},
	}, nil
}

func newCues(cfg *config.Config, log *slog.Logger) cue.Player {
	if !cfg.Sound.Enabled {
		return cue.Silent{}
	}
	sp, err := cue.NewSpeaker(cfg.Sound.Volume)
	if err != nil {
		log.Warn("sound disabled", logging.Err(err))
		return cue.Silent{}
	}
	return sp
}

func newRNG(cfg *config.Config) wheel.RNG {
	if cfg.Seed == 0 {
		return wheel.NewRNG(time.Now().UnixNano())
	}
	return wheel.NewRNG(cfg.Seed)
}

func (s *session) buildModel() (viz.Model, error) {
	w, err := wheel.New(s.cfg.Segments, s.cfg.WheelPhysics())
	if err != nil {
		return viz.Model{}, err
	}
	return viz.NewModel(w, viz.Options{
		Config: s.cfg,
		Cues:   s.cues,
		RNG:    newRNG(s.cfg),
		Logger: s.log,
	})
}

func runApp(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.closer()
	title := fmt.Sprintf("%d segments · preset %s", len(s.cfg.Segments), preset)
	return viz.Run(viz.NewApp(title, s.cfg.Display.OpenDelay, s.buildModel, s.log))
}

func runSpin(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.closer()
	m, err := s.buildModel()
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func runGUI(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.closer()
	return gui.Run(gui.Options{
		Config: s.cfg,
		Cues:   s.cues,
		RNG:    newRNG(s.cfg),
		Logger: s.log,
	})
}

// spinConfig turns the --seed and --velocity flags into a run config.
func spinConfig(cmd *cobra.Command, cfg *config.Config) sim.Config {
	sc := sim.Config{Seed: cfg.Seed}
	if sc.Seed == 0 {
		sc.Seed = time.Now().UnixNano()
	}
	if cmd.Flags().Changed("velocity") {
		sc.Velocity = velocity
	}
	return sc
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	s := sim.New(cfg.Segments, cfg.WheelPhysics())
	if runs > 1 {
		return runEnsemble(ctx, s, cfg)
	}

	result, err := s.Run(ctx, spinConfig(cmd, cfg))
	if err != nil {
		return err
	}

	fmt.Printf("seed              %d\n", result.Seed)
	fmt.Printf("initial velocity  %.4f\n", result.Velocity)
	fmt.Printf("ticks             %d (bound %d)\n", result.Ticks, result.Bound)
	fmt.Printf("travel            %.4f rad (%.2f turns)\n", result.Travel, result.Travel/(2*math.Pi))
	fmt.Printf("outcome           %s\n\n", result.Outcome)

	graph := asciigraph.Plot(result.Trace,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption("velocity per tick"))
	fmt.Println(graph)

	if svgOut != "" {
		if err := os.WriteFile(svgOut, []byte(export.SeriesToSVG(result.Trace, 600, 240, "#00ff88")), 0644); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", svgOut)
	}
	return nil
}

// runEnsemble spins many seeded wheels and prints where they landed.
func runEnsemble(ctx context.Context, s *sim.Simulator, cfg *config.Config) error {
	start := cfg.Seed
	if start == 0 {
		start = time.Now().UnixNano()
	}
	results, err := sim.NewEnsemble(s, runs, start).Run(ctx)
	if err != nil {
		return err
	}
	sum := sim.Tally(results, len(cfg.Segments))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tLABEL\tCOUNT\tSHARE")
	for i, n := range sum.Counts {
		fmt.Fprintf(w, "%d\t%s\t%d\t%.1f%%\n", i, cfg.Segments[i], n, 100*float64(n)/float64(sum.Runs))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%d runs, %d winners (%.1f%%), ticks min %d mean %.1f max %d\n",
		sum.Runs, sum.Winners, 100*float64(sum.Winners)/float64(sum.Runs), sum.MinTicks, sum.MeanTicks, sum.MaxTicks)

	counts := make([]float64, len(sum.Counts))
	for i, n := range sum.Counts {
		counts[i] = float64(n)
	}
	fmt.Printf("landings          %s\n", viz.SparklineChart(counts, len(counts)))
	if len(counts) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(counts, asciigraph.Height(8), asciigraph.Caption("landings per segment")))
	}
	return nil
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	a, err := parseAngle(args[0])
	if err != nil {
		return err
	}
	segs, err := wheel.NewSegments(cfg.Segments)
	if err != nil {
		return err
	}
	fmt.Println(segs.Resolve(a))
	return nil
}

// errBadAngle rejects angles that have no position on the wheel.
var errBadAngle = errors.New("angle must be a finite number of radians")

func checkAngle(a float64) error {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return fmt.Errorf("%w, got %v", errBadAngle, a)
	}
	return nil
}

func parseAngle(s string) (float64, error) {
	a, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid angle %q: %w", s, err)
	}
	return a, checkAngle(a)
}

func surface(cfg *config.Config) (*viz.Renderer, viz.Geometry, *viz.Canvas, error) {
	fills, err := cfg.Colors()
	if err != nil {
		return nil, viz.Geometry{}, nil, err
	}
	g := viz.Layout(cols*2, rows*4, cfg.Display.Scale, cfg.Display.Margin)
	return viz.NewRenderer(viz.NewPalette(fills)), g, viz.NewCanvas(g.Cells()), nil
}

func runRender(cmd *cobra.Command, args []string) error {
	if err := checkAngle(angle); err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	segs, err := wheel.NewSegments(cfg.Segments)
	if err != nil {
		return err
	}
	r, g, c, err := surface(cfg)
	if err != nil {
		return err
	}
	r.Draw(c, g, segs, angle)
	if svgOut != "" {
		if err := os.WriteFile(svgOut, []byte(export.CanvasToSVG(c, 4)), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%s)\n", svgOut, segs.Resolve(angle))
		return nil
	}
	fmt.Print(c.String())
	fmt.Println(segs.Resolve(angle))
	return nil
}

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	r, g, c, err := surface(cfg)
	if err != nil {
		return err
	}
	if every < 1 {
		every = 1
	}
	delay := int(math.Round(100 * float64(every) / float64(cfg.Display.FrameRate)))
	rec := export.NewRecorder(2, delay)

	segs, err := wheel.NewSegments(cfg.Segments)
	if err != nil {
		return err
	}
	s := sim.New(cfg.Segments, cfg.WheelPhysics())
	s.AddObserver(sim.ObserverFunc(func(w *wheel.Wheel) {
		if w.Ticks()%every == 0 || !w.Spinning() {
			r.Draw(c, g, w.Segments(), w.Angle())
			rec.Add(c)
		}
	}))
	result, err := s.Run(cmd.Context(), spinConfig(cmd, cfg))
	if err != nil {
		return err
	}
	out := result.Outcome

	board := announce.NewBoard(cfg.AnnounceTiming())
	posted := time.Now()
	a := board.Post(out, posted)
	r.Draw(c, g, segs, result.Travel)
	viz.DrawCard(c, a, posted.Add(time.Second), viz.GetTheme(cfg.Theme))
	rec.Add(c)
	rec.Hold(int(cfg.Display.Lifetime / (10 * time.Millisecond)))

	f, err := os.Create(gifOut)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := rec.Encode(f); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	fmt.Printf("wrote %s: %d frames, %s\n", gifOut, rec.Len(), out)
	return nil
}
