// Package announce models the transient result overlay shown after a spin.
//
// An announcement's lifecycle is a pure function of time since it was posted:
// it enters, stays for its lifetime while a countdown runs once per second,
// fades, and is removed. It is independent of the wheel's spin state, so a new
// spin may start while an older announcement is still on screen.
package announce

import (
	"math"
	"time"

	"github.com/san-kum/fortune/internal/wheel"
)

type Phase int

const (
	Entering Phase = iota
	Shown
	Fading
	Removed
)

func (p Phase) String() string {
	switch p {
	case Entering:
		return "entering"
	case Shown:
		return "shown"
	case Fading:
		return "fading"
	default:
		return "removed"
	}
}

// Timing holds the fixed delays of the overlay.
type Timing struct {
	Enter    time.Duration
	Lifetime time.Duration
	Fade     time.Duration
}

func DefaultTiming() Timing {
	return Timing{
		Enter:    100 * time.Millisecond,
		Lifetime: 5 * time.Second,
		Fade:     500 * time.Millisecond,
	}
}

// Total is the time from posting to removal.
func (t Timing) Total() time.Duration { return t.Lifetime + t.Fade }

// Announcement is one result overlay.
type Announcement struct {
	ID      int
	Outcome wheel.Outcome
	Posted  time.Time
	timing  Timing
}

func (a *Announcement) Title() string {
	if a.Outcome.Winner {
		return "WINNER!"
	}
	return "SELECTED:"
}

func (a *Announcement) Message() string {
	if a.Outcome.Winner {
		return "Congratulations on the win!"
	}
	return "Better luck next time!"
}

func (a *Announcement) Badge() string {
	if a.Outcome.Winner {
		return "👑"
	}
	return "🎯"
}

func (a *Announcement) elapsed(now time.Time) time.Duration {
	d := now.Sub(a.Posted)
	if d < 0 {
		return 0
	}
	return d
}

func (a *Announcement) PhaseAt(now time.Time) Phase {
	e := a.elapsed(now)
	switch {
	case e < a.timing.Enter:
		return Entering
	case e < a.timing.Lifetime:
		return Shown
	case e < a.timing.Total():
		return Fading
	default:
		return Removed
	}
}

// RemainingAt is the countdown value: whole seconds of lifetime left, ticking
// down once per second and never below zero.
func (a *Announcement) RemainingAt(now time.Time) int {
	total := int(math.Ceil(a.timing.Lifetime.Seconds()))
	left := total - int(a.elapsed(now)/time.Second)
	if left < 0 {
		return 0
	}
	return left
}

// OpacityAt ramps in while entering and out while fading.
func (a *Announcement) OpacityAt(now time.Time) float64 {
	e := a.elapsed(now)
	switch a.PhaseAt(now) {
	case Entering:
		if a.timing.Enter <= 0 {
			return 1
		}
		return float64(e) / float64(a.timing.Enter)
	case Shown:
		return 1
	case Fading:
		if a.timing.Fade <= 0 {
			return 0
		}
		return 1 - float64(e-a.timing.Lifetime)/float64(a.timing.Fade)
	default:
		return 0
	}
}

// Schedule lists the offsets from posting at which the overlay's appearance
// changes: the end of the entrance, each countdown second, the fade start,
// and removal.
func (t Timing) Schedule() []time.Duration {
	out := []time.Duration{t.Enter}
	for s := time.Second; s < t.Lifetime; s += time.Second {
		out = append(out, s)
	}
	return append(out, t.Lifetime, t.Total())
}
