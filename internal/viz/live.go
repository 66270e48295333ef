package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fortune/internal/announce"
	"github.com/san-kum/fortune/internal/config"
	"github.com/san-kum/fortune/internal/cue"
	"github.com/san-kum/fortune/internal/wheel"
)

const (
	historyCapacity = 600
	statsWidth      = 45
	legendRows      = 8
)

var (
	canvasStyle      = lipgloss.NewStyle().Padding(1, 2)
	statsStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(statsWidth)
	labelStyle       = MetricLabel.Width(12)
	activeLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// frameMsg advances the spin that started with generation gen. Frames left
// over from an earlier spin are dropped.
type frameMsg struct{ gen int }

// resizeMsg applies the pending terminal size if no newer resize arrived.
type resizeMsg struct{ seq int }

// announceMsg re-renders an announcement at a scheduled moment.
type announceMsg struct{ id int }

// VisibleMsg tells the wheel screen it was shown again and should re-sync
// its geometry with the last known terminal size.
type VisibleMsg struct{}

// Options carries the collaborators of the wheel screen.
type Options struct {
	Config *config.Config
	Cues   cue.Player
	RNG    wheel.RNG
	Logger *slog.Logger
	Now    func() time.Time
}

// Model is the wheel screen: the wheel drawing, a stats panel and the
// result overlay.
type Model struct {
	wheel    *wheel.Wheel
	renderer *Renderer
	canvas   *Canvas
	geom     Geometry
	board    *announce.Board
	cues     cue.Player
	rng      wheel.RNG
	log      *slog.Logger
	now      func() time.Time
	display  config.DisplayConfig
	interval time.Duration
	theme    Theme

	cols, rows int
	pendCols   int
	pendRows   int
	resizeSeq  int
	frame      int
	velocities []float64
	landings   []int
	last       *wheel.Outcome
	showHelp   bool
}

// NewModel builds the wheel screen around an existing wheel.
func NewModel(w *wheel.Wheel, opts Options) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	fills, err := cfg.Colors()
	if err != nil {
		return Model{}, err
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
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return Model{
		wheel:      w,
		renderer:   NewRenderer(NewPalette(fills)),
		canvas:     NewCanvas(0, 0),
		board:      announce.NewBoard(cfg.AnnounceTiming()),
		cues:       opts.Cues,
		rng:        opts.RNG,
		log:        opts.Logger,
		now:        opts.Now,
		display:    cfg.Display,
		interval:   cfg.FrameInterval(),
		theme:      GetTheme(cfg.Theme),
		velocities: make([]float64, 0, historyCapacity),
		landings:   make([]int, len(w.Segments())),
	}, nil
}

func (m Model) Init() tea.Cmd { return nil }

// Wheel returns the wheel driven by this screen.
func (m Model) Wheel() *wheel.Wheel { return m.wheel }

// Geometry is the drawing surface currently in use.
func (m Model) Geometry() Geometry { return m.geom }

// Canvas is the surface the wheel was last painted on.
func (m Model) Canvas() *Canvas { return m.canvas }

// Board holds the result overlays.
func (m Model) Board() *announce.Board { return m.board }

// Update handles input, animation frames, resizes and overlay timers.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "enter":
			cmd := m.spin()
			return m, cmd
		case "t":
			m.theme = m.theme.Next()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.pendCols, m.pendRows = msg.Width, msg.Height
		if m.display.ResizeDebounce <= 0 {
			m = m.Resize(msg.Width, msg.Height)
			return m, nil
		}
		m.resizeSeq++
		seq := m.resizeSeq
		return m, tea.Tick(m.display.ResizeDebounce, func(time.Time) tea.Msg { return resizeMsg{seq} })
	case resizeMsg:
		if msg.seq == m.resizeSeq {
			m = m.Resize(m.pendCols, m.pendRows)
		}
	case VisibleMsg:
		m = m.Resize(m.cols, m.rows)
	case frameMsg:
		cmd := m.step(msg.gen)
		return m, cmd
	case announceMsg:
		if n := m.board.Prune(m.now()); n > 0 {
			m.log.Debug("announcement removed", "id", msg.id, "pruned", n)
		}
	}
	return m, nil
}

func (m *Model) spin() tea.Cmd {
	if !m.wheel.Spin(m.rng) {
		m.log.Debug("spin ignored while spinning")
		return nil
	}
	m.velocities = m.velocities[:0]
	m.velocities = append(m.velocities, m.wheel.Velocity())
	m.log.Info("spin started", "velocity", m.wheel.Velocity(), "generation", m.wheel.Generation())
	return m.nextFrame()
}

func (m *Model) nextFrame() tea.Cmd {
	gen := m.wheel.Generation()
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return frameMsg{gen} })
}

func (m *Model) step(gen int) tea.Cmd {
	if gen != m.wheel.Generation() || !m.wheel.Spinning() {
		return nil
	}
	prev := m.wheel.Angle()
	out, done := m.wheel.Tick()
	m.frame++
	if n := wheel.Crossings(prev, m.wheel.Angle(), len(m.wheel.Segments())); n > 0 {
		m.cues.Click(n)
	}
	if len(m.velocities) < historyCapacity {
		m.velocities = append(m.velocities, m.wheel.Velocity())
	}
	m.redraw()
	if !done {
		return m.nextFrame()
	}
	return m.settle(out)
}

func (m *Model) settle(out wheel.Outcome) tea.Cmd {
	m.last = &out
	if out.Index < len(m.landings) {
		m.landings[out.Index]++
	}
	m.log.Info("spin settled", "index", out.Index, "label", out.Label, "winner", out.Winner, "ticks", m.wheel.Ticks())
	m.cues.Settle(out.Winner)
	a := m.board.Post(out, m.now())
	cmds := make([]tea.Cmd, 0, 8)
	for _, at := range m.board.Timing().Schedule() {
		id := a.ID
		cmds = append(cmds, tea.Tick(at, func(time.Time) tea.Msg { return announceMsg{id} }))
	}
	return tea.Batch(cmds...)
}

// Resize recomputes the geometry for a terminal of cols x rows cells and
// repaints. The same size always gives the same surface.
func (m Model) Resize(cols, rows int) Model {
	m.cols, m.rows = cols, rows
	cw, ch := containerSize(cols, rows)
	m.geom = Layout(cw, ch, m.display.Scale, m.display.Margin)
	gc, gr := m.geom.Cells()
	if m.canvas == nil || m.canvas.Width != gc || m.canvas.Height != gr {
		m.canvas = NewCanvas(gc, gr)
	}
	m.redraw()
	m.log.Debug("layout", "cols", cols, "rows", rows, "size", m.geom.Width, "radius", m.geom.Radius)
	return m
}

// containerSize is the space left for the wheel, in sub-pixels.
func containerSize(cols, rows int) (int, int) {
	w := cols - statsWidth - 1 - 4
	h := rows - 2
	return max(w, 0) * 2, max(h, 0) * 4
}

func (m *Model) redraw() {
	m.renderer.Draw(m.canvas, m.geom, m.wheel.Segments(), m.wheel.Angle())
}

// View renders the TUI interface.
func (m Model) View() string {
	now := m.now()
	m.redraw()
	DrawCard(m.canvas, m.board.Latest(now), now, m.theme)
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(GradientText("WHEEL OF FORTUNE", m.theme.Primary, m.theme.Secondary) + "\n")
	s.WriteString(HeaderStyle.Render(fmt.Sprintf("%d segments", len(m.wheel.Segments()))) + "\n\n")

	if m.wheel.Spinning() {
		s.WriteString(StatusSpinning.Render(AnimatedSpinner(m.frame)+" SPINNING") + "\n\n")
	} else {
		s.WriteString(StatusIdle.Render("IDLE") + "   " + TriggerStyle.Render("SPIN") + "\n\n")
	}

	v := m.wheel.Velocity()
	p := m.wheel.Physics()
	s.WriteString(labelStyle.Render("Velocity") + MetricValue.Render(fmt.Sprintf("%6.2f ", v)) + ProgressBar(v/p.MaxVelocity, 16) + "\n")
	s.WriteString(labelStyle.Render("Angle") + MetricValue.Render(fmt.Sprintf("%.3f rad", wheel.Normalize(m.wheel.Angle()))) + "\n")
	s.WriteString(labelStyle.Render("Ticks") + MetricValue.Render(fmt.Sprintf("%d", m.wheel.Ticks())) + "\n")
	if m.last != nil {
		s.WriteString(labelStyle.Render("Landings") + SparklineChart(m.landingCounts(), len(m.landings)) + "\n")
		s.WriteString(GlassPanel.Foreground(m.resultColor(*m.last)).Render(m.last.String()) + "\n")
	}
	if len(m.velocities) > 1 {
		chart := asciigraph.Plot(m.velocities, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Velocity"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	s.WriteString("\n" + m.legend() + "\n")
	s.WriteString(helpStyle.Foreground(m.theme.Muted).Render(Separator(30)) + "\n")
	s.WriteString(KeyHint.Render("SP:Spin  T:Theme  ?:Help\nESC:Menu Q:Quit"))
	statsView := statsStyle.Render(s.String())

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return helpBox + "\n\n" + mainView
	}
	return mainView
}

// landingCounts is the per-segment tally of this session's spins.
func (m Model) landingCounts() []float64 {
	out := make([]float64, len(m.landings))
	for i, n := range m.landings {
		out[i] = float64(n)
	}
	return out
}

// Landings returns how often each segment was selected since the screen was
// built.
func (m Model) Landings() []int { return append([]int(nil), m.landings...) }

func (m Model) resultColor(out wheel.Outcome) lipgloss.Color {
	if out.Winner {
		return m.theme.Success
	}
	return m.theme.Warning
}

// legend lists the segments around the one under the pointer.
func (m Model) legend() string {
	segs := m.wheel.Segments()
	ptr := m.wheel.Pointer()
	pal := m.renderer.Palette()
	first := max(0, min(ptr-legendRows/2, len(segs)-legendRows))
	var b strings.Builder
	for i := first; i < len(segs) && i < first+legendRows; i++ {
		line := fmt.Sprintf("%2d %s", i, segs[i])
		if i == ptr {
			b.WriteString(swatch(pal.Fill(i)) + " " + activeLabelStyle.Render("▸ "+line) + "\n")
		} else {
			b.WriteString(swatch(pal.Fill(i)) + "   " + labelStyle.Width(0).Render(line) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

const helpBox = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space/Enter - Spin the wheel        ║
║  T           - Cycle themes          ║
║  Esc         - Back to menu          ║
║  Q           - Quit                  ║
║  ?           - Toggle this help      ║
╚══════════════════════════════════════╝`
