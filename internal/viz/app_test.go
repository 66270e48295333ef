package viz

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/fortune/internal/config"
	"github.com/san-kum/fortune/internal/wheel"
)

func countingBuilder(t *testing.T, calls *int) Builder {
	return func() (Model, error) {
		*calls++
		cfg := config.DefaultConfig()
		w, err := wheel.New(cfg.Segments, cfg.WheelPhysics())
		if err != nil {
			t.Fatal(err)
		}
		return NewModel(w, Options{Config: cfg})
	}
}

func appUpdate(m App, msg tea.Msg) (App, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(App), cmd
}

func TestAppOpensWheelLazily(t *testing.T) {
	calls := 0
	m := *NewApp("test", 100*time.Millisecond, countingBuilder(t, &calls), nil)

	m, _ = appUpdate(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.Built() || calls != 0 {
		t.Fatal("wheel built before it was opened")
	}

	m, cmd := appUpdate(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || m.Built() {
		t.Fatal("open should wait for the delay")
	}
	m, _ = appUpdate(m, openMsg{})
	if !m.Built() || calls != 1 || m.state != stateWheel {
		t.Fatalf("wheel not opened: built=%v calls=%d", m.Built(), calls)
	}
	cw, ch := containerSize(120, 40)
	if want := Layout(cw, ch, config.DefaultScale, config.DefaultMargin); m.Live().Geometry() != want {
		t.Errorf("geometry = %+v, want %+v", m.Live().Geometry(), want)
	}

	m, _ = appUpdate(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != stateMenu {
		t.Fatal("esc should return to the menu")
	}
	m, _ = appUpdate(m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = appUpdate(m, openMsg{})
	if calls != 1 {
		t.Errorf("wheel rebuilt on reopen: %d builds", calls)
	}
	if m.state != stateWheel {
		t.Error("reopen should show the wheel")
	}
}

func TestAppIgnoresStrayOpen(t *testing.T) {
	calls := 0
	m := *NewApp("test", 0, countingBuilder(t, &calls), nil)
	m, _ = appUpdate(m, openMsg{})
	if m.Built() || calls != 0 {
		t.Error("open without a request should be ignored")
	}
}

func TestAppBuildError(t *testing.T) {
	boom := errors.New("boom")
	m := *NewApp("test", 0, func() (Model, error) { return Model{}, boom }, nil)
	m, _ = appUpdate(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !errors.Is(m.Err(), boom) || m.Built() || m.state != stateMenu {
		t.Errorf("build error not surfaced: %v", m.Err())
	}
	if !strings.Contains(m.View(), "boom") {
		t.Error("menu should show the build error")
	}
}

func TestAppQuit(t *testing.T) {
	m := *NewApp("test", 0, nil, nil)
	m, _ = appUpdate(m, tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := appUpdate(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("quit item should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit item should quit")
	}
}
