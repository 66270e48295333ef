// Package wheel implements the spin-and-settle core of the picker.
//
// The package has no display dependencies:
//
//   - [Segments]: the ordered, fixed label set and its angular layout
//   - [Physics]: the pure per-tick decay step and its termination bound
//   - [Wheel]: the Idle/Spinning state machine driven one tick at a time
//   - [Outcome]: the segment under the pointer once the wheel settles
//
// # Pointer
//
// The pointer sits at [PointerAngle] on screen. Every surface point is mapped
// into wheel-local coordinates with [LocalAngle], and the resolver uses the
// same mapping, so the wedge drawn under the pointer is the resolved one.
//
// # Example
//
//	w, _ := wheel.New([]string{"A", "B", "C", "D"}, wheel.DefaultPhysics())
//	w.Spin(wheel.NewRNG(42))
//	for {
//	    if out, done := w.Tick(); done {
//	        fmt.Println(out.Label)
//	        break
//	    }
//	}
package wheel
