package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/fortune/internal/viz"
)

const svgBackground = "#0a0a0a"

// CanvasToSVG converts a braille canvas to SVG. Each lit dot becomes a circle
// in its cell's ink and printed text becomes a text element.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, svgBackground))

	dotRadius := scale * 0.4
	var text strings.Builder

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			fill := "#ffffff"
			if ink, ok := canvas.Ink(col, row); ok {
				fill = ink.Clamped().Hex()
			}

			if canvas.IsText(col, row) {
				if bg, ok := canvas.Background(col, row); ok {
					sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, baseX, baseY, scale*2, scale*4, bg.Clamped().Hex()))
				}
				g := strings.TrimSpace(canvas.Glyph(col, row))
				if g != "" {
					text.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s">%s</text>
`, baseX, baseY+scale*3.2, fill, html.EscapeString(g)))
				}
				continue
			}

			pattern := canvas.Dots(col, row)
			if pattern == 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", fill))
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if canvas.Lit(col*2+dx, row*4+dy) {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
					}
				}
			}
			sb.WriteString("</g>\n")
		}
	}

	if text.Len() > 0 {
		sb.WriteString(fmt.Sprintf("<g font-family=\"monospace\" font-size=\"%.1f\">\n", scale*3.6))
		sb.WriteString(text.String())
		sb.WriteString("</g>\n")
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG plots a sequence of samples, such as the velocity of a spin,
// as a polyline scaled to fit the image.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = min(minY, v)
		maxY = max(maxY, v)
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	rangeX := float64(len(values) - 1)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, svgBackground, strokeColor))

	for i, v := range values {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
