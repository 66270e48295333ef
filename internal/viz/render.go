package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/fortune/internal/wheel"
)

// Proportions shared by every wheel surface, relative to the radius.
const (
	LabelRadius   = 0.75
	LabelMaxWidth = 0.4
	LabelShrink   = 0.8
	HubRatio      = 0.12
	SpokeAlpha    = 0.3
)

// Fixed inks that do not come from the segment palette.
var (
	LabelInks = [2]colorful.Color{mustHex("#FFFAD5"), mustHex("#401911")}
	BorderInk = mustHex("#8B4513")
	HubInner  = mustHex("#FFD700")
	HubOuter  = mustHex("#B8860B")
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("viz: bad color " + s)
	}
	return c
}

// Palette colors the wheel. Fills cycle by segment index.
type Palette struct {
	Fills   []colorful.Color
	Labels  [2]colorful.Color
	Border  colorful.Color
	Hub     [2]colorful.Color
	Pointer colorful.Color
}

func NewPalette(fills []colorful.Color) Palette {
	if len(fills) == 0 {
		fills = []colorful.Color{mustHex("#BD4932"), mustHex("#FFFAD5")}
	}
	return Palette{
		Fills:   append([]colorful.Color(nil), fills...),
		Labels:  LabelInks,
		Border:  BorderInk,
		Hub:     [2]colorful.Color{HubInner, HubOuter},
		Pointer: HubInner,
	}
}

// Fill is the wedge color of segment i.
func (p Palette) Fill(i int) colorful.Color { return p.Fills[i%len(p.Fills)] }

// Label is the text color of segment i.
func (p Palette) Label(i int) colorful.Color { return p.Labels[i%2] }

// Renderer repaints a wheel onto a canvas. Every sub-pixel is mapped back to
// the wheel's own frame, so wedges, labels and the pointer always agree with
// wheel.Segments.Resolve for the same angle.
type Renderer struct {
	palette Palette
	rimGap  float64
}

func NewRenderer(p Palette) *Renderer {
	return &Renderer{palette: p, rimGap: 2}
}

func (r *Renderer) Palette() Palette { return r.palette }

// Draw clears c and paints the wheel in full. Calling it twice with the same
// arguments produces the same canvas.
func (r *Renderer) Draw(c *Canvas, g Geometry, segs wheel.Segments, angle float64) {
	c.Clear()
	if g.Empty() || len(segs) == 0 {
		return
	}
	r.wedges(c, g, segs, angle)
	r.borders(c, g, segs, angle)
	r.labels(c, g, segs, angle)
	r.hub(c, g)
	r.spokes(c, g, segs, angle)
	c.DrawCircle(g.CenterX, g.CenterY, g.Radius+r.rimGap, r.palette.Border)
	r.pointer(c, g)
}

func (r *Renderer) wedges(c *Canvas, g Geometry, segs wheel.Segments, angle float64) {
	rr := g.Radius * g.Radius
	x0, x1 := int(g.CenterX-g.Radius)-1, int(g.CenterX+g.Radius)+1
	y0, y1 := int(g.CenterY-g.Radius)-1, int(g.CenterY+g.Radius)+1
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - g.CenterX
			dy := float64(y) + 0.5 - g.CenterY
			if dx*dx+dy*dy > rr {
				continue
			}
			i := segs.At(wheel.LocalAngle(math.Atan2(dy, dx), angle))
			c.Set(x, y, r.palette.Fill(i))
		}
	}
}

// WedgeAt reports the segment painted at surface point (x, y), or -1 when
// the point lies outside the wheel.
func WedgeAt(g Geometry, segs wheel.Segments, angle, x, y float64) int {
	dx, dy := x-g.CenterX, y-g.CenterY
	if len(segs) == 0 || dx*dx+dy*dy > g.Radius*g.Radius {
		return -1
	}
	return segs.At(wheel.LocalAngle(math.Atan2(dy, dx), angle))
}

func (r *Renderer) borders(c *Canvas, g Geometry, segs wheel.Segments, angle float64) {
	for i := range segs {
		start, _ := segs.Span(i)
		x, y := polar(g, g.Radius, wheel.ScreenAngle(start, angle))
		c.DrawLine(int(g.CenterX), int(g.CenterY), x, y, r.palette.Border)
	}
	c.DrawCircle(g.CenterX, g.CenterY, g.Radius, r.palette.Border)
}

func (r *Renderer) labels(c *Canvas, g Geometry, segs wheel.Segments, angle float64) {
	maxCells := g.Radius * LabelMaxWidth / 2
	for i, label := range segs {
		start, end := segs.Span(i)
		screen := wheel.ScreenAngle((start+end)/2, angle)
		px := g.CenterX + g.Radius*LabelRadius*math.Cos(screen)
		py := g.CenterY + g.Radius*LabelRadius*math.Sin(screen)
		text := FitLabel(label, maxCells)
		col := int(px/2) - lipgloss.Width(text)/2
		c.PutText(col, int(py/4), text, r.palette.Label(i))
	}
}

func (r *Renderer) hub(c *Canvas, g Geometry) {
	hr := g.Radius * HubRatio
	if hr < 1 {
		c.Set(int(g.CenterX), int(g.CenterY), r.palette.Hub[0])
		return
	}
	for y := int(g.CenterY - hr); y <= int(g.CenterY+hr); y++ {
		for x := int(g.CenterX - hr); x <= int(g.CenterX+hr); x++ {
			d := math.Hypot(float64(x)+0.5-g.CenterX, float64(y)+0.5-g.CenterY)
			if d > hr {
				continue
			}
			c.Set(x, y, r.palette.Hub[0].BlendLab(r.palette.Hub[1], d/hr).Clamped())
		}
	}
	c.DrawCircle(g.CenterX, g.CenterY, hr, r.palette.Border)
}

func (r *Renderer) spokes(c *Canvas, g Geometry, segs wheel.Segments, angle float64) {
	for i := range segs {
		start, _ := segs.Span(i)
		x, y := polar(g, g.Radius, wheel.ScreenAngle(start, angle))
		c.BlendLine(int(g.CenterX), int(g.CenterY), x, y, r.palette.Border, SpokeAlpha)
	}
}

// pointer is a filled triangle outside the rim whose tip overlaps the wheel.
func (r *Renderer) pointer(c *Canvas, g Geometry) {
	tip := g.Radius - 3
	base := g.Radius + r.rimGap + 4
	dirX, dirY := math.Cos(wheel.PointerAngle), math.Sin(wheel.PointerAngle)
	for d := tip; d <= base; d += 0.5 {
		half := 3 * (d - tip) / (base - tip)
		for off := -half; off <= half; off += 0.5 {
			x := g.CenterX + d*dirX - off*dirY
			y := g.CenterY + d*dirY + off*dirX
			c.Set(int(math.Floor(x)), int(math.Floor(y)), r.palette.Pointer)
		}
	}
}

func polar(g Geometry, radius, screen float64) (int, int) {
	return int(math.Floor(g.CenterX + radius*math.Cos(screen))),
		int(math.Floor(g.CenterY + radius*math.Sin(screen)))
}

// FitLabel returns label unchanged when it fits in maxWidth cells. Otherwise
// it shrinks once to 80% of its width and marks the cut with an ellipsis,
// even if the result still overflows.
func FitLabel(label string, maxWidth float64) string {
	w := lipgloss.Width(label)
	if float64(w) <= maxWidth {
		return label
	}
	target := int(float64(w) * LabelShrink)
	if target < 1 {
		target = 1
	}
	var b strings.Builder
	used := 0
	for _, r := range label {
		rw := lipgloss.Width(string(r))
		if used+rw > target-1 {
			break
		}
		b.WriteRune(r)
		used += rw
	}
	b.WriteString("…")
	return b.String()
}
