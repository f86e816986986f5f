package viz

import "github.com/charmbracelet/lipgloss"

const (
	colorBorder = lipgloss.Color("#3a3f58")
	colorMuted  = lipgloss.Color("#7a7f99")
	colorHot    = lipgloss.Color("#ff6644")
	colorCold   = lipgloss.Color("#2f6fd6")
	colorValue  = lipgloss.Color("#f2e8cf")
)

var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorHot)

	Subtle = lipgloss.NewStyle().Foreground(colorMuted)

	StatusRunning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6bd66b"))
	StatusPaused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e0b040"))

	MetricValue = lipgloss.NewStyle().Bold(true).Foreground(colorValue)
	MetricLabel = lipgloss.NewStyle().Foreground(colorMuted).Width(14)

	KeyHint = lipgloss.NewStyle().Italic(true).Foreground(colorMuted)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorBorder)

	// up spins are drawn hot, down spins cold
	SpinUp   = lipgloss.NewStyle().Foreground(colorHot)
	SpinDown = lipgloss.NewStyle().Foreground(colorCold)

	GraphStyle = lipgloss.NewStyle().Foreground(colorHot).Padding(1, 0)
)
