package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/isingsim/internal/lattice"
)

// Panel is one observable plotted against temperature.
type Panel struct {
	Title  string
	Color  string
	Values []float64
}

// ObservablePanels returns the four standard panels in reading order.
func ObservablePanels(energy, heatCapacity, magnetization, susceptibility []float64) []Panel {
	return []Panel{
		{Title: "Energy", Color: "#ff4444", Values: energy},
		{Title: "Specific Heat Capacity", Color: "#ffffff", Values: heatCapacity},
		{Title: "Magnetization", Color: "#4488ff", Values: magnetization},
		{Title: "Susceptibility", Color: "#44ff88", Values: susceptibility},
	}
}

// PanelsToSVG lays panels out two per row, each a line plot over temps.
func PanelsToSVG(temps []float64, panels []Panel, width, height int) string {
	if len(temps) == 0 || len(panels) == 0 {
		return ""
	}

	cols := 2
	rows := (len(panels) + cols - 1) / cols
	pw := width / cols
	ph := height / rows

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for k, p := range panels {
		x0 := (k % cols) * pw
		y0 := (k / cols) * ph
		sb.WriteString(fmt.Sprintf(`<g transform="translate(%d,%d)">
<text x="%d" y="16" fill="#cccccc" font-family="monospace" font-size="12" text-anchor="middle">%s vs Temperature (T)</text>
`, x0, y0, pw/2, p.Title))
		writePath(&sb, temps, p.Values, pw, ph, p.Color)
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// writePath draws ys against xs inside a w×h box with a header strip and
// 10% padding on each axis.
func writePath(sb *strings.Builder, xs, ys []float64, w, h int, color string) {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	if n == 0 {
		return
	}

	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := 0; i < n; i++ {
		minX, maxX = min(minX, xs[i]), max(maxX, xs[i])
		minY, maxY = min(minY, ys[i]), max(maxY, ys[i])
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
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	top := 24.0
	plotH := float64(h) - top

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
	for i := 0; i < n; i++ {
		x := (xs[i] - minX) / rangeX * float64(w)
		y := top + plotH - (ys[i]-minY)/rangeY*plotH
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")

	sb.WriteString(fmt.Sprintf(`<g fill="%s">`, color))
	for i := 0; i < n; i++ {
		x := (xs[i] - minX) / rangeX * float64(w)
		y := top + plotH - (ys[i]-minY)/rangeY*plotH
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="2"/>`, x, y))
	}
	sb.WriteString("</g>\n")
}

// LatticeToSVG draws one square per spin, up spins light and down spins dark.
func LatticeToSVG(l *lattice.Lattice, cell int) string {
	if l == nil || cell <= 0 {
		return ""
	}

	size := l.Size() * cell
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ccff">
`, size, size, size, size))

	for i := 0; i < l.Size(); i++ {
		for j := 0; j < l.Size(); j++ {
			if l.At(i, j) > 0 {
				sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d"/>
`, j*cell, i*cell, cell, cell))
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
