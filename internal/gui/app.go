package gui

import (
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/fortune/internal/announce"
	"github.com/san-kum/fortune/internal/config"
	"github.com/san-kum/fortune/internal/cue"
	"github.com/san-kum/fortune/internal/logging"
	"github.com/san-kum/fortune/internal/viz"
	"github.com/san-kum/fortune/internal/wheel"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)    // Deep Black
	ColAccent  = rl.NewColor(180, 180, 180, 255) // Soft White
	ColSelect  = rl.NewColor(255, 255, 255, 255) // Bright White
	ColText    = rl.NewColor(140, 140, 140, 255) // Neutral Gray
	ColTextDim = rl.NewColor(60, 60, 60, 255)    // Dark Gray (Subtle)
	ColButton  = rl.NewColor(189, 73, 50, 255)
)

const (
	windowWidth  = 1280
	windowHeight = 720
	footerHeight = 80
)

// Options configures the window.
type Options struct {
	Config *config.Config
	Cues   cue.Player
	RNG    wheel.RNG
	Logger *slog.Logger
}

type App struct {
	cfg     *config.Config
	cues    cue.Player
	rng     wheel.RNG
	log     *slog.Logger
	palette viz.Palette
	font    rl.Font

	InMenu    bool
	quit      bool
	openAt    time.Time
	opening   bool
	wheel     *wheel.Wheel
	board     *announce.Board
	geom      viz.Geometry
	resizeAt  time.Time
	resizing  bool
	lastW     int
	lastH     int
	Telemetry []float64
}

// initWindow initializes a resizable Raylib window, sets the target FPS and
// disables the default exit key.
func initWindow(frameRate int) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, "fortune")
	rl.SetTargetFPS(int32(frameRate))
	rl.SetExitKey(0)
}

// NewApp creates the window state. The wheel itself is built the first time
// it is opened from the menu.
func NewApp(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	fills, err := cfg.Colors()
	if err != nil {
		return nil, err
	}
	if opts.Cues == nil {
		opts.Cues = cue.Silent{}
	}
	if opts.RNG == nil {
		opts.RNG = wheel.NewRNG(cfg.Seed)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	return &App{
		cfg:       cfg,
		cues:      opts.Cues,
		rng:       opts.RNG,
		log:       opts.Logger,
		palette:   viz.NewPalette(fills),
		font:      rl.GetFontDefault(),
		InMenu:    true,
		board:     announce.NewBoard(cfg.AnnounceTiming()),
		Telemetry: make([]float64, 0, 600),
	}, nil
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	initWindow(cfg.Display.FrameRate)
	defer rl.CloseWindow()
	app, err := NewApp(opts)
	if err != nil {
		return err
	}
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update(time.Now())
		a.Draw(time.Now())
	}
}

// Update handles input, the open delay, resize debouncing and one physics
// step per frame.
func (a *App) Update(now time.Time) {
	if rl.IsWindowResized() {
		a.resizing = true
		a.resizeAt = now.Add(a.cfg.Display.ResizeDebounce)
	}
	if a.resizing && !now.Before(a.resizeAt) {
		a.resizing = false
		a.relayout()
	}

	if a.InMenu {
		a.updateMenu(now)
	} else {
		a.updateWheel()
	}

	if a.wheel != nil && a.wheel.Spinning() {
		prev := a.wheel.Angle()
		out, done := a.wheel.Tick()
		if n := wheel.Crossings(prev, a.wheel.Angle(), len(a.wheel.Segments())); n > 0 {
			a.cues.Click(n)
		}
		if len(a.Telemetry) < cap(a.Telemetry) {
			a.Telemetry = append(a.Telemetry, a.wheel.Velocity())
		}
		if done {
			a.settle(out, now)
		}
	}
	a.board.Prune(now)
}

func (a *App) updateMenu(now time.Time) {
	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		a.quit = true
	case rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace):
		if !a.opening {
			a.opening = true
			a.openAt = now.Add(a.cfg.Display.OpenDelay)
		}
	}
	if a.opening && !now.Before(a.openAt) {
		a.opening = false
		a.open()
	}
}

// open shows the wheel, creating it on first use and re-syncing its layout
// on later opens.
func (a *App) open() {
	if a.wheel == nil {
		w, err := wheel.New(a.cfg.Segments, a.cfg.WheelPhysics())
		if err != nil {
			a.log.Error("wheel build failed", logging.Err(err))
			return
		}
		a.wheel = w
		a.log.Info("wheel created", "segments", len(a.cfg.Segments))
	}
	a.InMenu = false
	a.relayout()
}

func (a *App) relayout() {
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	a.lastW, a.lastH = w, h
	a.geom = viz.Layout(w, h-footerHeight, a.cfg.Display.Scale, a.cfg.Display.WindowMargin)
	a.log.Debug("layout", "width", w, "height", h, "radius", a.geom.Radius)
}

func (a *App) updateWheel() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		a.InMenu = true
		return
	}
	pressed := rl.IsKeyPressed(rl.KeySpace) || rl.IsKeyPressed(rl.KeyEnter)
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && a.wheel.TriggerVisible() {
		pressed = pressed || rl.CheckCollisionPointRec(rl.GetMousePosition(), a.buttonRect())
	}
	if pressed {
		a.spin()
	}
}

func (a *App) spin() {
	if !a.wheel.Spin(a.rng) {
		a.log.Debug("spin ignored while spinning")
		return
	}
	a.Telemetry = a.Telemetry[:0]
	a.log.Info("spin started", "velocity", a.wheel.Velocity(), "generation", a.wheel.Generation())
}

func (a *App) settle(out wheel.Outcome, now time.Time) {
	a.log.Info("spin settled", "index", out.Index, "label", out.Label, "winner", out.Winner, "ticks", a.wheel.Ticks())
	a.cues.Settle(out.Winner)
	a.board.Post(out, now)
}

// origin is the top-left corner of the square wheel surface in the window.
func (a *App) origin() rl.Vector2 {
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight() - footerHeight)
	return rl.NewVector2((w-float32(a.geom.Width))/2, (h-float32(a.geom.Height))/2)
}

func (a *App) buttonRect() rl.Rectangle {
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	return rl.NewRectangle(w/2-80, h-footerHeight+15, 160, 50)
}
