package wheel

import "math"

const fullTurn = 2 * math.Pi

// PointerAngle is the fixed screen angle of the pointer, measured like atan2
// on a y-down surface.
const PointerAngle = 0.0

// Segments is the ordered label set. Order defines each segment's index and span.
type Segments []string

// NewSegments copies labels into a validated segment list.
func NewSegments(labels []string) (Segments, error) {
	if len(labels) == 0 {
		return nil, ErrNoSegments
	}
	s := make(Segments, len(labels))
	copy(s, labels)
	return s, nil
}

// Angle is the angular span of one segment, 2π/N.
func (s Segments) Angle() float64 {
	return SegmentAngle(len(s))
}

// Span returns the half-open range [start, end) of segment i in wheel-local radians.
// The last segment ends exactly at 2π so the spans tile the full turn.
func (s Segments) Span(i int) (start, end float64) {
	seg := s.Angle()
	start = float64(i) * seg
	end = float64(i+1) * seg
	if i == len(s)-1 {
		end = fullTurn
	}
	return start, end
}

// At returns the index of the segment containing a wheel-local angle.
func (s Segments) At(local float64) int {
	return SegmentAt(local, len(s))
}

// Resolve maps an accumulated rotation angle to the segment under the pointer.
func (s Segments) Resolve(angle float64) Outcome {
	i := s.At(LocalAngle(PointerAngle, angle))
	return Outcome{
		Index:  i,
		Label:  s[i],
		Winner: i%2 == 0,
		Angle:  angle,
	}
}

// SegmentAngle is 2π/n.
func SegmentAngle(n int) float64 {
	return fullTurn / float64(n)
}

// SegmentAt returns the segment whose half-open span [i·seg, (i+1)·seg)
// contains the normalized angle. The floor of the quotient is corrected
// against the same products Span uses, so a boundary angle belongs to the
// segment that starts there.
func SegmentAt(local float64, n int) int {
	a := Normalize(local)
	seg := SegmentAngle(n)
	i := int(math.Floor(a / seg))
	if float64(i+1)*seg <= a {
		i++
	} else if float64(i)*seg > a {
		i--
	}
	return max(0, min(i, n-1))
}

// Normalize reduces any finite angle, negative or very large, into [0, 2π).
// NaN and infinities map to 0.
func Normalize(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	a := math.Mod(angle, fullTurn)
	if a < 0 {
		a += fullTurn
	}
	if a >= fullTurn {
		a = 0
	}
	return a
}

// LocalAngle converts a screen angle into wheel-local coordinates for a wheel
// rotated by rotation radians. It is the single zero reference shared by the
// renderers and the resolver.
func LocalAngle(screen, rotation float64) float64 {
	return Normalize(screen + rotation)
}

// ScreenAngle is the inverse of LocalAngle: where a wheel-local angle appears
// on screen. The result is not normalized.
func ScreenAngle(local, rotation float64) float64 {
	return local - rotation
}

// Crossings counts the segment boundaries that pass the pointer while the
// rotation advances from prev to next.
func Crossings(prev, next float64, n int) int {
	if n <= 0 {
		return 0
	}
	seg := SegmentAngle(n)
	c := int(math.Floor(next/seg)) - int(math.Floor(prev/seg))
	if c < 0 {
		c = -c
	}
	return c
}
