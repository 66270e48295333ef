package wheel

import (
	"errors"
	"math"
	"testing"
)

type fixedRNG float64

func (f fixedRNG) Float64() float64 { return float64(f) }

func TestPhysics_Step(t *testing.T) {
	p := DefaultPhysics()
	angle, vel := p.Step(1.0, 10.0)
	if math.Abs(angle-1.5) > 1e-12 {
		t.Errorf("angle = %v, want 1.5", angle)
	}
	if math.Abs(vel-9.8) > 1e-12 {
		t.Errorf("velocity = %v, want 9.8", vel)
	}
}

func TestPhysics_TicksToSettle(t *testing.T) {
	p := DefaultPhysics()

	tests := []struct {
		v0   float64
		want int
	}{
		{20, 297},
		{8, 252},
		{0.01, 1},
	}
	for _, tt := range tests {
		if got := p.TicksToSettle(tt.v0); got != tt.want {
			t.Errorf("TicksToSettle(%v) = %d, want %d", tt.v0, got, tt.want)
		}
	}

	if got := p.SettleBound(20); got != 297 {
		t.Errorf("SettleBound(20) = %d, want 297", got)
	}
}

func TestPhysics_DecayTerminatesAcrossRange(t *testing.T) {
	p := DefaultPhysics()
	limit := p.SettleBound(p.MaxVelocity)
	for v := p.MinVelocity; v < p.MaxVelocity; v += 0.37 {
		n := p.TicksToSettle(v)
		if n != p.SettleBound(v) {
			t.Errorf("v0=%v: iterated %d ticks, closed form %d", v, n, p.SettleBound(v))
		}
		if n > limit || n >= p.MaxTicks {
			t.Errorf("v0=%v: %d ticks exceeds bound %d", v, n, limit)
		}
	}
}

func TestPhysics_Draw(t *testing.T) {
	p := DefaultPhysics()
	tests := []struct {
		r    float64
		want float64
	}{
		{0, 8},
		{0.5, 14},
	}
	for _, tt := range tests {
		if got := p.Draw(fixedRNG(tt.r)); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Draw(%v) = %v, want %v", tt.r, got, tt.want)
		}
	}
	if got := p.Draw(fixedRNG(0.999999)); got >= p.MaxVelocity {
		t.Errorf("Draw near 1 reached the open upper bound: %v", got)
	}

	rng := NewRNG(7)
	for i := 0; i < 1000; i++ {
		v := p.Draw(rng)
		if v < p.MinVelocity || v >= p.MaxVelocity {
			t.Fatalf("draw %d out of range: %v", i, v)
		}
	}
}

func TestPhysics_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Physics)
		valid  bool
	}{
		{"default", func(p *Physics) {}, true},
		{"no friction", func(p *Physics) { p.Friction = 1 }, false},
		{"zero friction", func(p *Physics) { p.Friction = 0 }, false},
		{"zero time scale", func(p *Physics) { p.TimeScale = 0 }, false},
		{"zero threshold", func(p *Physics) { p.StopThreshold = 0 }, false},
		{"inverted range", func(p *Physics) { p.MinVelocity, p.MaxVelocity = 20, 8 }, false},
		{"no tick cap", func(p *Physics) { p.MaxTicks = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPhysics()
			tt.mutate(&p)
			err := p.Validate()
			if tt.valid && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrBadPhysics) {
				t.Errorf("expected ErrBadPhysics, got %v", err)
			}
		})
	}
}

func TestPhysics_Travel(t *testing.T) {
	p := DefaultPhysics()
	slow, fast := p.Travel(8), p.Travel(20)
	if slow <= 0 || fast <= slow {
		t.Errorf("travel should grow with velocity: %v, %v", slow, fast)
	}
	// geometric series bound: v0 * scale / (1 - friction)
	if max := 20 * p.TimeScale / (1 - p.Friction); fast > max {
		t.Errorf("travel %v exceeds series limit %v", fast, max)
	}
}
