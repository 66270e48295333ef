package wheel

import (
	"fmt"
	"math"
)

const (
	DefaultMinVelocity   = 8.0
	DefaultMaxVelocity   = 20.0
	DefaultTimeScale     = 0.05
	DefaultFriction      = 0.98
	DefaultStopThreshold = 0.05
	DefaultMaxTicks      = 10000
)

// Physics holds the constants of the spin-and-decay model.
type Physics struct {
	MinVelocity   float64
	MaxVelocity   float64
	TimeScale     float64
	Friction      float64
	StopThreshold float64
	MaxTicks      int
}

func DefaultPhysics() Physics {
	return Physics{
		MinVelocity:   DefaultMinVelocity,
		MaxVelocity:   DefaultMaxVelocity,
		TimeScale:     DefaultTimeScale,
		Friction:      DefaultFriction,
		StopThreshold: DefaultStopThreshold,
		MaxTicks:      DefaultMaxTicks,
	}
}

// Validate reports ErrBadPhysics when the decay could not terminate or the
// velocity range is empty.
func (p Physics) Validate() error {
	switch {
	case p.Friction <= 0 || p.Friction >= 1:
		return fmt.Errorf("%w: friction %.4f not in (0, 1)", ErrBadPhysics, p.Friction)
	case p.TimeScale <= 0:
		return fmt.Errorf("%w: time scale %.4f must be positive", ErrBadPhysics, p.TimeScale)
	case p.StopThreshold <= 0:
		return fmt.Errorf("%w: stop threshold %.4f must be positive", ErrBadPhysics, p.StopThreshold)
	case p.MinVelocity < 0 || p.MaxVelocity < p.MinVelocity:
		return fmt.Errorf("%w: velocity range [%.2f, %.2f)", ErrBadPhysics, p.MinVelocity, p.MaxVelocity)
	case p.MaxTicks <= 0:
		return fmt.Errorf("%w: max ticks %d must be positive", ErrBadPhysics, p.MaxTicks)
	}
	return nil
}

// Step advances one animation tick. It is pure: no state, no drawing.
func (p Physics) Step(angle, velocity float64) (float64, float64) {
	return angle + velocity*p.TimeScale, velocity * p.Friction
}

// Settled reports whether a post-step velocity ends the spin.
func (p Physics) Settled(velocity float64) bool {
	return velocity < p.StopThreshold
}

// Draw picks an initial velocity uniformly from [MinVelocity, MaxVelocity).
func (p Physics) Draw(rng RNG) float64 {
	return p.MinVelocity + rng.Float64()*(p.MaxVelocity-p.MinVelocity)
}

// TicksToSettle counts the ticks a spin starting at v0 runs before it settles,
// replaying the same multiplications as Step. The result never exceeds MaxTicks.
func (p Physics) TicksToSettle(v0 float64) int {
	v := v0
	for n := 1; n <= p.MaxTicks; n++ {
		_, v = p.Step(0, v)
		if p.Settled(v) {
			return n
		}
	}
	return p.MaxTicks
}

// SettleBound is the closed form ⌈ln(threshold/v0) / ln(friction)⌉, the
// number of geometric decay steps needed to fall below the threshold.
func (p Physics) SettleBound(v0 float64) int {
	if v0 < p.StopThreshold {
		return 1
	}
	return int(math.Ceil(math.Log(p.StopThreshold/v0) / math.Log(p.Friction)))
}

// Travel is the total rotation a spin starting at v0 accumulates before it settles.
func (p Physics) Travel(v0 float64) float64 {
	var angle float64
	v := v0
	for n := 0; n < p.MaxTicks; n++ {
		angle, v = p.Step(angle, v)
		if p.Settled(v) {
			break
		}
	}
	return angle
}
