package viz

import "math"

// Geometry is the square drawing surface derived from a container, in
// sub-pixels.
type Geometry struct {
	Width, Height    int
	CenterX, CenterY float64
	Radius           float64
}

// Layout sizes the surface to scale times the smaller container side and
// leaves margin between the wheel rim and the surface edge. The result
// depends only on its inputs, so repeating it for an unchanged container
// yields the same geometry.
func Layout(containerW, containerH int, scale, margin float64) Geometry {
	size := int(scale * float64(min(containerW, containerH)))
	if size < 0 {
		size = 0
	}
	g := Geometry{
		Width:   size,
		Height:  size,
		CenterX: float64(size) / 2,
		CenterY: float64(size) / 2,
	}
	g.Radius = math.Max(0, math.Min(g.CenterX, g.CenterY)-margin)
	return g
}

// Cells is the character grid needed to hold the surface.
func (g Geometry) Cells() (cols, rows int) {
	return (g.Width + 1) / 2, (g.Height + 3) / 4
}

// Empty reports whether there is no room to draw a wheel.
func (g Geometry) Empty() bool { return g.Radius <= 0 }
