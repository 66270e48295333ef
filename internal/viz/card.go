package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/fortune/internal/announce"
)

// CardLines is the text of an announcement card at a given instant.
func CardLines(a *announce.Announcement, now time.Time) []string {
	return []string{
		a.Badge(),
		a.Title(),
		a.Outcome.Label,
		a.Message(),
		fmt.Sprintf("Disappears in %d s", a.RemainingAt(now)),
	}
}

// DrawCard paints the announcement as a boxed card centered on the canvas.
// Its colors fade toward the card background with the announcement's
// opacity. Removed announcements draw nothing.
func DrawCard(c *Canvas, a *announce.Announcement, now time.Time, theme Theme) {
	if a == nil {
		return
	}
	alpha := a.OpacityAt(now)
	if alpha <= 0 {
		return
	}
	bg, fg, accent := theme.Card()
	fg = bg.BlendRgb(fg, alpha).Clamped()
	accent = bg.BlendRgb(accent, alpha).Clamped()

	lines := CardLines(a, now)
	inner := 0
	for _, l := range lines {
		inner = max(inner, lipgloss.Width(l))
	}
	w, h := inner+4, len(lines)+2
	col := (c.Width - w) / 2
	row := (c.Height - h) / 2

	c.FillRect(col, row, w, h, bg)
	drawBox(c, col, row, w, h, accent)
	for i, l := range lines {
		ink := fg
		if i == 1 {
			ink = accent
		}
		pad := (inner - lipgloss.Width(l)) / 2
		c.PutText(col+2+pad, row+1+i, l, ink)
	}
}

func drawBox(c *Canvas, col, row, w, h int, ink colorful.Color) {
	bar := strings.Repeat("─", w-2)
	c.PutText(col, row, "╭"+bar+"╮", ink)
	c.PutText(col, row+h-1, "╰"+bar+"╯", ink)
	for y := row + 1; y < row+h-1; y++ {
		c.PutText(col, y, "│", ink)
		c.PutText(col+w-1, y, "│", ink)
	}
}
