package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/exactsim/internal/linode"
	"github.com/san-kum/exactsim/internal/viz"
)

// XY is one plotted point.
type XY struct {
	X, Y float64
}

// TimeSeries maps samples to (t, x).
func TimeSeries(samples []linode.Sample) []XY {
	out := make([]XY, len(samples))
	for i, s := range samples {
		out[i] = XY{X: s.T, Y: s.X}
	}
	return out
}

// PhasePoints maps samples to (x, v).
func PhasePoints(samples []linode.Sample) []XY {
	out := make([]XY, len(samples))
	for i, s := range samples {
		out[i] = XY{X: s.X, Y: s.V}
	}
	return out
}

// CanvasToSVG converts a Braille canvas to SVG. Braille cells become dots in
// the theme's primary color; any other rune is emitted as text.
func CanvasToSVG(canvas *viz.Canvas, scale float64, theme viz.Theme) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="%s">
`, width, height, width, height, theme.Primary)

	dotRadius := scale * 0.4
	w, h := canvas.Dots()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if canvas.Dot(x, y) {
				fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, (float64(x)+0.5)*scale, (float64(y)+0.5)*scale, dotRadius)
			}
		}
	}

	var text strings.Builder
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			if r, ok := canvas.TextAt(col, row); ok {
				fmt.Fprintf(&text, `<text x="%.1f" y="%.1f" font-size="%.1f">%s</text>
`, float64(col)*scale*2, (float64(row)*4+3)*scale, scale*3, html.EscapeString(string(r)))
			}
		}
	}
	sb.WriteString("</g>\n")
	if text.Len() > 0 {
		fmt.Fprintf(&sb, "<g fill=\"%s\" font-family=\"monospace\">\n%s</g>\n", theme.Text, text.String())
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// TrajectoryToSVG draws points as a single polyline scaled into a
// width x height box with 10% padding.
func TrajectoryToSVG(points []XY, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor)

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
