package wheel

// Wheel owns the rotation state and the Idle/Spinning state machine.
// It is not safe for concurrent use; one UI loop owns it.
type Wheel struct {
	segments Segments
	physics  Physics
	angle    float64
	velocity float64
	spinning bool
	ticks    int
	spins    int
}

// New validates the labels and physics and returns an idle wheel at angle 0.
func New(labels []string, p Physics) (*Wheel, error) {
	segs, err := NewSegments(labels)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Wheel{segments: segs, physics: p}, nil
}

// Spin starts a trial with a random initial velocity. It is ignored, and
// returns false, while a spin is in progress.
func (w *Wheel) Spin(rng RNG) bool {
	if w.spinning {
		return false
	}
	return w.SpinWith(w.physics.Draw(rng))
}

// SpinWith starts a trial with an explicit initial velocity.
func (w *Wheel) SpinWith(velocity float64) bool {
	if w.spinning {
		return false
	}
	w.spinning = true
	w.velocity = velocity
	w.ticks = 0
	w.spins++
	return true
}

// Tick advances the animation one step. When this step settles the wheel, it
// returns the outcome and true. Ticking an idle wheel does nothing.
func (w *Wheel) Tick() (Outcome, bool) {
	if !w.spinning {
		return Outcome{}, false
	}
	w.angle, w.velocity = w.physics.Step(w.angle, w.velocity)
	w.ticks++
	if w.physics.Settled(w.velocity) || w.ticks >= w.physics.MaxTicks {
		w.velocity = 0
		w.spinning = false
		return w.Resolve(), true
	}
	return Outcome{}, false
}

// SetAngle forces the rotation, bypassing the physics. Ignored while spinning.
func (w *Wheel) SetAngle(angle float64) bool {
	if w.spinning {
		return false
	}
	w.angle = angle
	return true
}

// Resolve reports the segment currently under the pointer.
func (w *Wheel) Resolve() Outcome {
	return w.segments.Resolve(w.angle)
}

// Pointer is the index of the segment currently under the pointer.
func (w *Wheel) Pointer() int {
	return w.segments.At(LocalAngle(PointerAngle, w.angle))
}

func (w *Wheel) Angle() float64     { return w.angle }
func (w *Wheel) Velocity() float64  { return w.velocity }
func (w *Wheel) Spinning() bool     { return w.spinning }
func (w *Wheel) Ticks() int         { return w.ticks }
func (w *Wheel) Segments() Segments { return w.segments }
func (w *Wheel) Physics() Physics   { return w.physics }

// Generation counts started spins. Frame callbacks carry it so a stale tick
// from an earlier spin can be told apart.
func (w *Wheel) Generation() int { return w.spins }

// TriggerVisible reports whether the spin control should be shown.
func (w *Wheel) TriggerVisible() bool { return !w.spinning }
