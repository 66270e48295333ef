package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/fortune/internal/wheel"
)

// Simulator runs spins to completion without a display.
type Simulator struct {
	labels    []string
	physics   wheel.Physics
	observers []Observer
}

func New(labels []string, p wheel.Physics) *Simulator {
	return &Simulator{
		labels:    append([]string(nil), labels...),
		physics:   p,
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run spins a fresh wheel and ticks it until it settles. Unless NoTrace is
// set, Trace holds the velocity before the first tick and after every tick.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	v := cfg.Velocity
	if math.IsNaN(v) || v < 0 || v > s.physics.MaxVelocity*MaxVelocityFactor {
		return nil, fmt.Errorf("%w: %v", ErrBadVelocity, v)
	}
	w, err := wheel.New(s.labels, s.physics)
	if err != nil {
		return nil, err
	}
	if v > 0 {
		w.SpinWith(v)
	} else {
		w.Spin(wheel.NewRNG(cfg.Seed))
	}

	v0 := w.Velocity()
	result := &Result{
		Seed:     cfg.Seed,
		Velocity: v0,
		Bound:    s.physics.SettleBound(v0),
	}
	if !cfg.NoTrace {
		result.Trace = make([]float64, 0, s.physics.SettleBound(v0)+1)
		result.Trace = append(result.Trace, v0)
	}

	for {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		out, done := w.Tick()
		if !cfg.NoTrace {
			result.Trace = append(result.Trace, w.Velocity())
		}
		for _, obs := range s.observers {
			obs.OnTick(w)
		}
		if done {
			result.Ticks = w.Ticks()
			result.Travel = w.Angle()
			result.Outcome = out
			return result, nil
		}
	}
}
