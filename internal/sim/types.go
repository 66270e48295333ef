package sim

import (
	"errors"

	"github.com/san-kum/fortune/internal/wheel"
)

var ErrBadVelocity = errors.New("sim: initial velocity out of range")

// MaxVelocityFactor bounds a forced initial velocity relative to the
// configured MaxVelocity.
const MaxVelocityFactor = 100

// Observer sees the wheel after every tick of a headless spin.
type Observer interface {
	OnTick(w *wheel.Wheel)
}

type ObserverFunc func(w *wheel.Wheel)

func (f ObserverFunc) OnTick(w *wheel.Wheel) { f(w) }

type Config struct {
	Seed int64
	// Velocity forces the initial velocity. Zero draws one from Seed.
	Velocity float64
	// NoTrace skips recording the velocity of every tick.
	NoTrace bool
}

// Result describes one finished spin.
type Result struct {
	Seed     int64
	Velocity float64
	Ticks    int
	Bound    int
	Travel   float64
	Outcome  wheel.Outcome
	Trace    []float64
}
