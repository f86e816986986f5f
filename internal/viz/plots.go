package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/isingsim/internal/experiment"
)

const (
	plotHeight = 10
	plotWidth  = 70
)

// PlotObservables renders energy, heat capacity, |magnetization| and
// susceptibility against temperature as four stacked line plots.
func PlotObservables(temps, energy, heatCapacity, magnetization, susceptibility []float64) string {
	if len(temps) == 0 {
		return ""
	}

	span := fmt.Sprintf("T = %.3g .. %.3g", temps[0], temps[len(temps)-1])
	panels := []struct {
		caption string
		data    []float64
		color   asciigraph.AnsiColor
	}{
		{"Energy", energy, asciigraph.Red},
		{"Specific Heat Capacity", heatCapacity, asciigraph.White},
		{"Magnetization", magnetization, asciigraph.Blue},
		{"Susceptibility", susceptibility, asciigraph.Green},
	}

	var b strings.Builder
	for _, p := range panels {
		if len(p.data) == 0 {
			continue
		}
		b.WriteString(asciigraph.Plot(widen(p.data),
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.Precision(3),
			asciigraph.SeriesColors(p.color),
			asciigraph.Caption(fmt.Sprintf("%s vs temperature (%s)", p.caption, span)),
		))
		b.WriteString("\n\n")
	}
	return b.String()
}

// PlotSweep is PlotObservables over the parallel arrays of a sweep.
func PlotSweep(s *experiment.Sweep) string {
	return PlotObservables(s.Temperatures(), s.Energies(), s.HeatCapacities(), s.Magnetizations(), s.Susceptibilities())
}

// widen repeats a lone point so asciigraph draws a flat line.
func widen(data []float64) []float64 {
	if len(data) == 1 {
		return []float64{data[0], data[0]}
	}
	return data
}

// RenderSummary formats records as a styled table.
func RenderSummary(records []experiment.Record) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%-8s %-12s %-12s %-12s %-12s %-8s",
		"T", "ENERGY", "|M|", "HEAT CAP", "SUSCEPT", "ACCEPT")))
	b.WriteString("\n")
	for _, r := range records {
		b.WriteString(fmt.Sprintf("%-8.4g %s %s %s %s %s\n",
			r.Temperature,
			MetricValue.Render(fmt.Sprintf("%-12.6f", r.Energy)),
			MetricValue.Render(fmt.Sprintf("%-12.6f", r.Magnetization)),
			fmt.Sprintf("%-12.6f", r.HeatCapacity),
			fmt.Sprintf("%-12.6f", r.Susceptibility),
			Subtle.Render(fmt.Sprintf("%-8.3f", r.AcceptanceRate)),
		))
	}
	return b.String()
}
