package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/fortune/internal/wheel"
)

func TestLayout(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		size       int
		radius     float64
		cols, rows int
	}{
		{"height bound", 100, 80, 64, 24, 32, 16},
		{"width bound", 50, 200, 40, 12, 20, 10},
		{"empty", 0, 80, 0, 0, 0, 0},
		{"smaller than margins", 10, 10, 8, 0, 4, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Layout(tt.w, tt.h, 0.8, 8)
			if g.Width != tt.size || g.Height != tt.size {
				t.Errorf("size = %dx%d, want %d", g.Width, g.Height, tt.size)
			}
			if g.Radius != tt.radius {
				t.Errorf("radius = %v, want %v", g.Radius, tt.radius)
			}
			if g.CenterX != float64(tt.size)/2 || g.CenterY != g.CenterX {
				t.Errorf("center = (%v, %v)", g.CenterX, g.CenterY)
			}
			if c, r := g.Cells(); c != tt.cols || r != tt.rows {
				t.Errorf("cells = %dx%d, want %dx%d", c, r, tt.cols, tt.rows)
			}
		})
	}
}

func TestFitLabel(t *testing.T) {
	tests := []struct {
		label string
		max   float64
		want  string
	}{
		{"Ab", 10, "Ab"},
		{"abcdefghij", 10, "abcdefghij"},
		{"abcdefghij", 5, "abcdefg…"},
		{"x", 0, "…"},
	}
	for _, tt := range tests {
		if got := FitLabel(tt.label, tt.max); got != tt.want {
			t.Errorf("FitLabel(%q, %v) = %q, want %q", tt.label, tt.max, got, tt.want)
		}
	}
}

func testSegments(t *testing.T, labels ...string) wheel.Segments {
	t.Helper()
	segs, err := wheel.NewSegments(labels)
	if err != nil {
		t.Fatal(err)
	}
	return segs
}

func TestWedgeAtMatchesResolve(t *testing.T) {
	g := Layout(200, 200, 0.8, 8)
	for n := 1; n <= 12; n++ {
		labels := make([]string, n)
		for i := range labels {
			labels[i] = string(rune('A' + i))
		}
		segs := testSegments(t, labels...)
		step := segs.Angle()
		for k := 0; k < 3*n; k++ {
			angle := float64(k)*step/3 + step/6
			got := WedgeAt(g, segs, angle, g.CenterX+g.Radius/2, g.CenterY)
			if want := segs.Resolve(angle).Index; got != want {
				t.Errorf("n=%d angle=%.3f: pointer wedge %d, resolved %d", n, angle, got, want)
			}
		}
	}
}

func TestWedgesTileTheDisc(t *testing.T) {
	g := Layout(200, 200, 0.8, 8)
	for n := 1; n <= 12; n++ {
		labels := make([]string, n)
		for i := range labels {
			labels[i] = string(rune('a' + i))
		}
		segs := testSegments(t, labels...)
		seen := make([]int, n)
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				i := WedgeAt(g, segs, 1.234, float64(x)+0.5, float64(y)+0.5)
				if i >= n {
					t.Fatalf("n=%d: wedge %d out of range", n, i)
				}
				if i >= 0 {
					seen[i]++
				}
			}
		}
		for i, c := range seen {
			if c == 0 {
				t.Errorf("n=%d: segment %d never painted", n, i)
			}
		}
	}
	if WedgeAt(g, testSegments(t, "a"), 0, 0, 0) != -1 {
		t.Error("corner should be outside the wheel")
	}
}

func TestPointerWedgeColor(t *testing.T) {
	segs := testSegments(t, "A", "B", "C", "D")
	g := Layout(200, 200, 0.8, 8)
	r := NewRenderer(NewPalette(nil))
	c := NewCanvas(g.Cells())

	col, row := int((g.CenterX+g.Radius/2)/2), int(g.CenterY/4)
	for _, angle := range []float64{math.Pi / 4, 3 * math.Pi / 4, 5 * math.Pi / 4, 7*math.Pi/4 + 2*math.Pi} {
		r.Draw(c, g, segs, angle)
		want := r.Palette().Fill(segs.Resolve(angle).Index)
		ink, ok := c.Ink(col, row)
		if !ok || ink.Hex() != want.Hex() {
			t.Errorf("angle %.3f: pointer cell ink %s, want %s", angle, ink.Hex(), want.Hex())
		}
	}
}

func TestDrawIsIdempotent(t *testing.T) {
	segs := testSegments(t, "Anton", "Boris", "Vera", "Galina", "Dmitri")
	g := Layout(140, 120, 0.8, 8)
	r := NewRenderer(NewPalette(nil))
	a, b := NewCanvas(g.Cells()), NewCanvas(g.Cells())

	r.Draw(a, g, segs, 2.5)
	r.Draw(b, g, segs, 0.1)
	r.Draw(b, g, segs, 2.5)
	if a.Plain() != b.Plain() || a.String() != b.String() {
		t.Error("repaint at the same angle differs")
	}
}

func TestDrawLabels(t *testing.T) {
	segs := testSegments(t, "Abcdefghijklmnopqrstu", "B", "C", "D")
	g := Layout(200, 200, 0.8, 8)
	c := NewCanvas(g.Cells())
	NewRenderer(NewPalette(nil)).Draw(c, g, segs, math.Pi/4)

	plain := c.Plain()
	if !strings.Contains(plain, "Abcdefghijklmno…") {
		t.Errorf("long label not shrunk:\n%s", plain)
	}
	for _, l := range []string{"B", "C", "D"} {
		if !strings.Contains(plain, l) {
			t.Errorf("label %q missing", l)
		}
	}
}

func TestDrawEmptyGeometry(t *testing.T) {
	segs := testSegments(t, "A", "B")
	c := NewCanvas(4, 2)
	c.Set(0, 0, mustHex("#ffffff"))
	NewRenderer(NewPalette(nil)).Draw(c, Layout(0, 0, 0.8, 8), segs, 0)
	if c.Lit(0, 0) {
		t.Error("empty geometry should leave a cleared canvas")
	}
}
