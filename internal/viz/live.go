package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/isingsim/internal/dynamo"
	"github.com/san-kum/isingsim/internal/lattice"
	"github.com/san-kum/isingsim/internal/physics"
)

const (
	historyCapacity = 120
	frameInterval   = time.Second / 30
	// lattices up to this size are drawn with one block per spin,
	// larger ones on the braille canvas
	blockLimit = 48

	tempDelta  = 0.05
	fieldDelta = 0.05
	minTemp    = 0.05
)

type TickMsg time.Time

// Model runs Metropolis sampling between frames and renders the lattice.
type Model struct {
	lat           *lattice.Lattice
	ham           *physics.Ising
	src           dynamo.Source
	sampler       *dynamo.Sampler
	temperature   float64
	stepsPerFrame int
	running       bool
	canvas        *Canvas
	frames        int
	energyHistory []float64
	magHistory    []float64
}

// NewModel takes ownership of l, sampling it at temperature with h.
// stepsPerFrame trial moves run between frames; zero means one move per site.
func NewModel(l *lattice.Lattice, h *physics.Ising, src dynamo.Source, temperature float64, stepsPerFrame int) Model {
	if stepsPerFrame <= 0 {
		stepsPerFrame = l.Sites()
	}
	return Model{
		lat:           l,
		ham:           h,
		src:           src,
		sampler:       dynamo.NewSampler(h, h.Units.Boltzmann, src),
		temperature:   temperature,
		stepsPerFrame: stepsPerFrame,
		running:       true,
		canvas:        CanvasFor(l),
		energyHistory: make([]float64, 0, historyCapacity),
		magHistory:    make([]float64, 0, historyCapacity),
	}
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and advances the sampler.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "up", "k":
			m.temperature += tempDelta
		case "down", "j":
			m.temperature = max(minTemp, m.temperature-tempDelta)
		case "right", "l":
			m.ham.SetParam("field", m.ham.Field+fieldDelta)
		case "left", "h":
			m.ham.SetParam("field", m.ham.Field-fieldDelta)
		case "r":
			m.randomize()
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.sampler.Sweep(m.lat, m.temperature, m.stepsPerFrame)
	m.frames++

	m.energyHistory = appendBounded(m.energyHistory, m.ham.TotalEnergy(m.lat))
	m.magHistory = appendBounded(m.magHistory, m.ham.Magnetization(m.lat))
}

func (m *Model) randomize() {
	l, err := lattice.NewRandom(m.lat.Size(), m.src)
	if err != nil {
		return
	}
	m.lat = l
	m.sampler.ResetStats()
	m.energyHistory = m.energyHistory[:0]
	m.magHistory = m.magHistory[:0]
}

func appendBounded(xs []float64, x float64) []float64 {
	if len(xs) >= historyCapacity {
		xs = xs[1:]
	}
	return append(xs, x)
}

func (m Model) renderLattice() string {
	if m.lat.Size() > blockLimit {
		m.canvas.DrawLattice(m.lat)
		return SpinUp.Render(m.canvas.String())
	}

	var b strings.Builder
	for i := 0; i < m.lat.Size(); i++ {
		for j := 0; j < m.lat.Size(); j++ {
			if m.lat.At(i, j) > 0 {
				b.WriteString(SpinUp.Render("██"))
			} else {
				b.WriteString(SpinDown.Render("░░"))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// View renders the lattice next to the current observables.
func (m Model) View() string {
	var s strings.Builder
	s.WriteString(TitleStyle.Render(fmt.Sprintf("ISING %dx%d", m.lat.Size(), m.lat.Size())) + "\n")
	if m.running {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	energy, mag := m.ham.TotalEnergy(m.lat), m.ham.Magnetization(m.lat)
	s.WriteString(MetricLabel.Render("Temperature") + MetricValue.Render(fmt.Sprintf("%.3f", m.temperature)) + "\n")
	s.WriteString(MetricLabel.Render("Field") + MetricValue.Render(fmt.Sprintf("%.3f", m.ham.Field)) + "\n")
	s.WriteString(MetricLabel.Render("Energy") + MetricValue.Render(fmt.Sprintf("%.4f", energy)) + "\n")
	s.WriteString(MetricLabel.Render("|M|") + MetricValue.Render(fmt.Sprintf("%.4f", mag)) + "\n")
	s.WriteString(MetricLabel.Render("Acceptance") + MetricValue.Render(fmt.Sprintf("%.3f", m.acceptance())) + "\n")
	s.WriteString(MetricLabel.Render("Frames") + MetricValue.Render(fmt.Sprintf("%d", m.frames)) + "\n")

	if len(m.magHistory) > 1 {
		chart := asciigraph.Plot(m.magHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("|M|"))
		s.WriteString(GraphStyle.Render(chart) + "\n")
	}

	s.WriteString(KeyHint.Render("\nSP:Pause ↑↓:Temp ←→:Field\nR:Randomize Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, PanelStyle.Render(m.renderLattice()), PanelStyle.Render(s.String()))
}

func (m Model) acceptance() float64 {
	if m.sampler.Attempts() == 0 {
		return 0
	}
	return float64(m.sampler.Accepted()) / float64(m.sampler.Attempts())
}

func (m Model) Temperature() float64      { return m.temperature }
func (m Model) Lattice() *lattice.Lattice { return m.lat }
func (m Model) Running() bool             { return m.running }
