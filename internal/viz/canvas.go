package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

type cell struct {
	dots  rune
	ink   colorful.Color
	inked bool
	bg    colorful.Color
	hasBg bool
	text  string
	cont  bool
}

// Canvas is a braille sub-pixel surface with one ink color per character
// cell. Text can be printed over cells and replaces their dots.
type Canvas struct {
	Width, Height int
	cells         [][]cell
}

func NewCanvas(w, h int) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &Canvas{Width: w, Height: h, cells: make([][]cell, h)}
	for i := range c.cells {
		c.cells[i] = make([]cell, w)
	}
	return c
}

// PixelSize is the canvas size in sub-pixels: (Width*2) x (Height*4).
func (c *Canvas) PixelSize() (int, int) {
	return c.Width * 2, c.Height * 4
}

func (c *Canvas) at(x, y int) (*cell, rune) {
	if x < 0 || y < 0 {
		return nil, 0
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return nil, 0
	}
	return &c.cells[row][col], pixelMap[y%4][x%2]
}

// Set lights the sub-pixel at (x, y) and inks its cell.
func (c *Canvas) Set(x, y int, ink colorful.Color) {
	cl, bit := c.at(x, y)
	if cl == nil {
		return
	}
	cl.dots |= bit
	cl.ink, cl.inked = ink, true
}

// Blend lights the sub-pixel and mixes ink into the cell's current ink with
// the given opacity.
func (c *Canvas) Blend(x, y int, ink colorful.Color, alpha float64) {
	cl, bit := c.at(x, y)
	if cl == nil {
		return
	}
	cl.dots |= bit
	if cl.inked {
		cl.ink = cl.ink.BlendRgb(ink, alpha).Clamped()
	} else {
		cl.ink, cl.inked = ink, true
	}
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	cl, bit := c.at(x, y)
	if cl == nil {
		return
	}
	cl.dots &^= bit
}

// Lit reports whether the sub-pixel is set.
func (c *Canvas) Lit(x, y int) bool {
	cl, bit := c.at(x, y)
	return cl != nil && cl.dots&bit != 0
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.cells {
		for j := range c.cells[i] {
			c.cells[i][j] = cell{}
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, ink colorful.Color) {
	bresenham(x0, y0, x1, y1, func(x, y int) { c.Set(x, y, ink) })
}

// BlendLine draws a translucent line.
func (c *Canvas) BlendLine(x0, y0, x1, y1 int, ink colorful.Color, alpha float64) {
	bresenham(x0, y0, x1, y1, func(x, y int) { c.Blend(x, y, ink, alpha) })
}

// DrawCircle strokes a circle outline centered at (cx, cy) in sub-pixels.
func (c *Canvas) DrawCircle(cx, cy, r float64, ink colorful.Color) {
	if r <= 0 {
		c.Set(int(cx), int(cy), ink)
		return
	}
	steps := int(2*math.Pi*r*2) + 8
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.Set(int(math.Floor(cx+r*math.Cos(a))), int(math.Floor(cy+r*math.Sin(a))), ink)
	}
}

// FillRect paints a block of cells with a background and clears their dots.
func (c *Canvas) FillRect(col, row, w, h int, bg colorful.Color) {
	for y := row; y < row+h; y++ {
		for x := col; x < col+w; x++ {
			if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
				continue
			}
			cl := &c.cells[y][x]
			*cl = cell{text: " ", bg: bg, hasBg: true}
		}
	}
}

// PutText prints s starting at a cell. Wide glyphs take two cells. Text that
// falls outside the canvas is clipped.
func (c *Canvas) PutText(col, row int, s string, ink colorful.Color) {
	if row < 0 || row >= c.Height {
		return
	}
	for _, r := range s {
		g := string(r)
		w := lipgloss.Width(g)
		if w == 0 {
			continue
		}
		if col >= 0 && col+w <= c.Width {
			cl := &c.cells[row][col]
			cl.text, cl.cont = g, false
			cl.ink, cl.inked = ink, true
			if w == 2 {
				next := &c.cells[row][col+1]
				next.text, next.cont = "", true
				next.bg, next.hasBg = cl.bg, cl.hasBg
			}
		}
		col += w
	}
}

// Glyph is the character a cell prints: its text, or its braille pattern.
// The right half of a wide glyph prints nothing.
func (c *Canvas) Glyph(col, row int) string {
	cl := &c.cells[row][col]
	switch {
	case cl.cont:
		return ""
	case cl.text != "":
		return cl.text
	default:
		return string(rune(blank) + cl.dots)
	}
}

// Dots returns the raw braille bit pattern of a cell.
func (c *Canvas) Dots(col, row int) rune { return c.cells[row][col].dots }

// Ink returns a cell's foreground color, if any.
func (c *Canvas) Ink(col, row int) (colorful.Color, bool) {
	cl := &c.cells[row][col]
	return cl.ink, cl.inked
}

// Background returns a cell's background color, if any.
func (c *Canvas) Background(col, row int) (colorful.Color, bool) {
	cl := &c.cells[row][col]
	return cl.bg, cl.hasBg
}

// IsText reports whether a cell holds printed text rather than dots.
func (c *Canvas) IsText(col, row int) bool {
	cl := &c.cells[row][col]
	return cl.text != "" || cl.cont
}

// Plain renders the canvas without colors.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			b.WriteString(c.Glyph(col, row))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// String renders the canvas with lipgloss colors, one style per run of cells
// that share ink and background.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		var run strings.Builder
		var key string
		var style lipgloss.Style
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(style.Render(run.String()))
				run.Reset()
			}
		}
		for col := 0; col < c.Width; col++ {
			k, s := c.styleOf(col, row)
			if k != key {
				flush()
				key, style = k, s
			}
			run.WriteString(c.Glyph(col, row))
		}
		flush()
		b.WriteString("\n")
	}
	return b.String()
}

func (c *Canvas) styleOf(col, row int) (string, lipgloss.Style) {
	cl := &c.cells[row][col]
	s := lipgloss.NewStyle()
	var key string
	if cl.inked && (cl.dots != 0 || cl.text != "") {
		hex := cl.ink.Clamped().Hex()
		s = s.Foreground(lipgloss.Color(hex))
		key = hex
	}
	if cl.hasBg {
		hex := cl.bg.Clamped().Hex()
		s = s.Background(lipgloss.Color(hex))
		key += "/" + hex
	}
	return key, s
}

func bresenham(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
