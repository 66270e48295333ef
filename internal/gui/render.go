package gui

import (
	"fmt"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/fortune/internal/viz"
	"github.com/san-kum/fortune/internal/wheel"
)

const (
	minFontSize = 14
	fontRatio   = 0.08
	rimGap      = 5
	rimWidth    = 3
)

func toRL(c colorful.Color) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, 255)
}

func deg(rad float64) float32 { return float32(rad * 180 / math.Pi) }

// labelSize picks the font size for a label: proportional to the radius with
// a floor, shrunk once if the text is wider than the allowed fraction of the
// radius.
func (a *App) labelSize(label string, radius float64) float32 {
	size := float32(math.Max(minFontSize, radius*fontRatio))
	w := rl.MeasureTextEx(a.font, label, size, 1).X
	if float64(w) > radius*viz.LabelMaxWidth {
		size *= viz.LabelShrink
	}
	return size
}

func (a *App) Draw(now time.Time) {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	if a.InMenu {
		a.drawMenu()
	} else {
		a.drawWheel()
		a.drawFooter()
		a.drawCard(now)
	}
	rl.EndDrawing()
}

func (a *App) drawMenu() {
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	rl.DrawText("FORTUNE", w/2-rl.MeasureText("FORTUNE", 60)/2, h/3, 60, ColSelect)
	sub := fmt.Sprintf("%d segments", len(a.cfg.Segments))
	rl.DrawText(sub, w/2-rl.MeasureText(sub, 20)/2, h/3+80, 20, ColText)
	hint := "ENTER open wheel   Q quit"
	if a.opening {
		hint = "opening..."
	}
	rl.DrawText(hint, w/2-rl.MeasureText(hint, 20)/2, h/3+130, 20, ColTextDim)
}

// drawWheel paints wedges, labels, hub, spokes, rim and pointer for the
// current rotation. Screen angles come from wheel.ScreenAngle so the wedge
// under the pointer is the one wheel.Resolve reports.
func (a *App) drawWheel() {
	g := a.geom
	if g.Empty() {
		return
	}
	o := a.origin()
	center := rl.NewVector2(o.X+float32(g.CenterX), o.Y+float32(g.CenterY))
	segs := a.wheel.Segments()
	rot := a.wheel.Angle()
	radius := float32(g.Radius)
	border := toRL(a.palette.Border)

	at := func(r, screen float64) rl.Vector2 {
		return rl.NewVector2(center.X+float32(r*math.Cos(screen)), center.Y+float32(r*math.Sin(screen)))
	}

	for i := range segs {
		start, end := segs.Span(i)
		s, e := wheel.ScreenAngle(start, rot), wheel.ScreenAngle(end, rot)
		rl.DrawCircleSector(center, radius, deg(s), deg(e), 48, toRL(a.palette.Fill(i)))
		rl.DrawLineEx(center, at(g.Radius, s), 2, border)
	}
	rl.DrawCircleLines(int32(center.X), int32(center.Y), radius, border)

	for i, label := range segs {
		start, end := segs.Span(i)
		mid := wheel.ScreenAngle((start+end)/2, rot)
		size := a.labelSize(label, g.Radius)
		dims := rl.MeasureTextEx(a.font, label, size, 1)
		pos := at(g.Radius*viz.LabelRadius, mid)
		rl.DrawTextPro(a.font, label, pos, rl.NewVector2(dims.X/2, dims.Y/2), deg(mid), size, 1, toRL(a.palette.Label(i)))
	}

	hub := float32(g.Radius * viz.HubRatio)
	rl.DrawCircleGradient(int32(center.X), int32(center.Y), hub, toRL(a.palette.Hub[0]), toRL(a.palette.Hub[1]))
	rl.DrawCircleLines(int32(center.X), int32(center.Y), hub, border)

	spoke := rl.Fade(border, viz.SpokeAlpha)
	for i := range segs {
		start, _ := segs.Span(i)
		rl.DrawLineEx(center, at(g.Radius, wheel.ScreenAngle(start, rot)), 1, spoke)
	}

	rl.DrawRing(center, radius+rimGap, radius+rimGap+rimWidth, 0, 360, 96, border)
	a.drawPointer(center, g.Radius)
}

// drawPointer draws a triangle outside the rim pointing at the wheel.
func (a *App) drawPointer(center rl.Vector2, radius float64) {
	dir := wheel.PointerAngle
	tip := radius - 10
	base := radius + rimGap + rimWidth + 16
	ux, uy := math.Cos(dir), math.Sin(dir)
	px, py := -uy, ux
	p := func(d, off float64) rl.Vector2 {
		return rl.NewVector2(center.X+float32(d*ux+off*px), center.Y+float32(d*uy+off*py))
	}
	// counter-clockwise on screen
	rl.DrawTriangle(p(tip, 0), p(base, 12), p(base, -12), toRL(a.palette.Pointer))
}

func (a *App) drawFooter() {
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if a.wheel.TriggerVisible() {
		btn := a.buttonRect()
		rl.DrawRectangleRounded(btn, 0.3, 8, ColButton)
		tw := rl.MeasureText("SPIN", 24)
		rl.DrawText("SPIN", int32(btn.X+btn.Width/2)-tw/2, int32(btn.Y+13), 24, ColSelect)
	} else {
		status := fmt.Sprintf("v = %.2f", a.wheel.Velocity())
		rl.DrawText(status, w/2-rl.MeasureText(status, 20)/2, h-footerHeight/2-10, 20, ColText)
	}
	a.drawTelemetry(20, h-footerHeight+10, 200, footerHeight-20)
	rl.DrawText("ESC menu", w-120, h-30, 16, ColTextDim)
}

// drawTelemetry plots the velocity of the current spin.
func (a *App) drawTelemetry(x, y, w, h int32) {
	if len(a.Telemetry) < 2 {
		return
	}
	top := a.wheel.Physics().MaxVelocity
	pts := make([]rl.Vector2, len(a.Telemetry))
	for i, v := range a.Telemetry {
		px := float32(x) + float32(i)/float32(cap(a.Telemetry)-1)*float32(w)
		py := float32(y+h) - float32(v/top)*float32(h)
		pts[i] = rl.NewVector2(px, py)
	}
	rl.DrawLineStrip(pts, ColAccent)
}

// drawCard draws the newest announcement, faded by its opacity.
func (a *App) drawCard(now time.Time) {
	ann := a.board.Latest(now)
	if ann == nil {
		return
	}
	alpha := float32(ann.OpacityAt(now))
	if alpha <= 0 {
		return
	}
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	card := rl.NewRectangle(w/2-220, h/2-130, 440, 260)
	rl.DrawRectangle(0, 0, int32(w), int32(h), rl.Fade(ColBg, 0.6*alpha))
	rl.DrawRectangleRounded(card, 0.1, 8, rl.Fade(rl.NewColor(25, 25, 25, 255), alpha))
	rl.DrawRectangleLinesEx(card, 2, rl.Fade(toRL(viz.HubInner), alpha))

	lines := []struct {
		text string
		size int32
		col  rl.Color
	}{
		{ann.Title(), 36, toRL(viz.HubInner)},
		{ann.Outcome.Label, 44, ColSelect},
		{ann.Message(), 20, ColText},
		{fmt.Sprintf("Disappears in %d s", ann.RemainingAt(now)), 16, ColTextDim},
	}
	y := int32(card.Y) + 30
	for _, l := range lines {
		tw := rl.MeasureText(l.text, l.size)
		rl.DrawText(l.text, int32(w/2)-tw/2, y, l.size, rl.Fade(l.col, alpha))
		y += l.size + 18
	}
}
