package wheel

import "errors"

// Configuration errors reported at construction time.
var (
	// ErrNoSegments indicates an empty label set; the segment angle would be undefined.
	ErrNoSegments = errors.New("wheel: at least one segment is required")

	// ErrBadPhysics indicates a friction, time scale or threshold outside its valid range.
	ErrBadPhysics = errors.New("wheel: physics parameters out of valid bounds")
)
