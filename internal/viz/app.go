package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fortune/internal/logging"
)

const (
	stateMenu = iota
	stateOpening
	stateWheel
)

// Builder creates the wheel screen. The app calls it once, the first time
// the wheel is opened.
type Builder func() (Model, error)

// openMsg shows the wheel once the open delay has passed.
type openMsg struct{}

var menuItems = []string{"spin the wheel", "quit"}

var menuInfo = map[string]string{
	"spin the wheel": "open the wheel and spin it",
	"quit":           "leave the program",
}

// App is the top-level program: a small menu that opens the wheel screen.
type App struct {
	state, cursor int
	title         string
	openDelay     time.Duration
	build         Builder
	live          Model
	built         bool
	width, height int
	err           error
	theme         Theme
	log           *slog.Logger
}

func NewApp(title string, openDelay time.Duration, build Builder, log *slog.Logger) *App {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &App{
		state:     stateMenu,
		title:     title,
		openDelay: openDelay,
		build:     build,
		width:     80,
		height:    24,
		theme:     ThemeCyberpunk,
		log:       log,
	}
}

func (m App) Init() tea.Cmd { return tea.SetWindowTitle("fortune") }

// Built reports whether the wheel screen exists yet.
func (m App) Built() bool { return m.built }

// Live is the wheel screen. It is the zero Model until the wheel is opened.
func (m App) Live() Model { return m.live }

// Err is the error from building the wheel screen, if any.
func (m App) Err() error { return m.err }

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.built {
			return m.forward(msg)
		}
		return m, nil
	case openMsg:
		if m.state != stateOpening {
			return m, nil
		}
		return m.open()
	default:
		// Frames and overlay timers keep flowing while the menu is shown.
		if m.built {
			return m.forward(msg)
		}
	}
	return m, nil
}

func (m App) forward(msg tea.Msg) (App, tea.Cmd) {
	next, cmd := m.live.Update(msg)
	m.live = next.(Model)
	return m, cmd
}

func (m App) handleKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateOpening:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case stateWheel:
		if msg.String() == "esc" {
			m.state = stateMenu
			return m, nil
		}
		return m.forward(msg)
	}
	return m, nil
}

func (m App) menuKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
	case "enter", " ":
		if menuItems[m.cursor] == "quit" {
			return m, tea.Quit
		}
		m.state = stateOpening
		if m.openDelay <= 0 {
			return m.open()
		}
		return m, tea.Tick(m.openDelay, func(time.Time) tea.Msg { return openMsg{} })
	}
	return m, nil
}

// open shows the wheel screen, building it on first use. Later opens only
// re-sync its layout with the terminal.
func (m App) open() (App, tea.Cmd) {
	if !m.built {
		live, err := m.build()
		if err != nil {
			m.err = err
			m.state = stateMenu
			m.log.Error("wheel build failed", logging.Err(err))
			return m, nil
		}
		m.live = live.Resize(m.width, m.height)
		m.built = true
		m.state = stateWheel
		m.log.Info("wheel created", "cols", m.width, "rows", m.height)
		return m, m.live.Init()
	}
	m.state = stateWheel
	return m.forward(VisibleMsg{})
}

func (m App) View() string {
	switch m.state {
	case stateWheel:
		return m.live.View()
	case stateOpening:
		return m.viewMenu() + "\n    " + Subtle.Render("opening…") + "\n"
	}
	return m.viewMenu()
}

func (m App) viewMenu() string {
	var b strings.Builder
	theme := m.theme
	if m.built {
		theme = m.live.theme
	}
	h, sub := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true), lipgloss.NewStyle().Foreground(theme.Muted)
	b.WriteString("\n\n    " + h.Render("FORTUNE") + "\n    " + sub.Render(m.title) + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, name := range menuItems {
		desc := menuInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true).Render("▸"), lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true).Render(fmt.Sprintf("%-16s", name)), lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff")).Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", lipgloss.NewStyle().Foreground(lipgloss.Color("#555566")).Render(fmt.Sprintf("  %-16s", name)), lipgloss.NewStyle().Foreground(lipgloss.Color("#444455")).Render(desc)))
		}
	}
	if m.built && m.live.last != nil {
		b.WriteString("\n    " + sub.Render("last result: ") + activeLabelStyle.Render(m.live.last.String()) + "\n")
	}
	if m.err != nil {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(theme.Error).Render(m.err.Error()) + "\n")
	}
	key, hint := lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true), lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	b.WriteString("\n    " + key.Render("j/k") + hint.Render(" navigate  ") + key.Render("enter") + hint.Render(" select  ") + key.Render("q") + hint.Render(" quit") + "\n")
	return b.String()
}

// Run starts the program on the alternate screen.
func Run(app *App) error {
	_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}
