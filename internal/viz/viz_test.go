package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/isingsim/internal/dynamo"
	"github.com/san-kum/isingsim/internal/experiment"
	"github.com/san-kum/isingsim/internal/lattice"
	"github.com/san-kum/isingsim/internal/physics"
)

func TestCanvasDrawLattice(t *testing.T) {
	l, err := lattice.FromRows([][]int{
		{1, -1, -1, -1},
		{-1, -1, -1, -1},
		{-1, -1, -1, -1},
		{-1, -1, -1, 1},
	})
	if err != nil {
		t.Fatal(err)
	}

	c := CanvasFor(l)
	if c.Width != 2 || c.Height != 1 {
		t.Fatalf("canvas size = %dx%d, want 2x1", c.Width, c.Height)
	}

	c.DrawLattice(l)
	if c.Grid[0][0] != 0x2800|0x1 {
		t.Errorf("top-left cell = %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2800|0x80 {
		t.Errorf("bottom-right cell = %U", c.Grid[0][1])
	}
}

func TestPlotObservables(t *testing.T) {
	out := PlotObservables(
		[]float64{1, 2, 3},
		[]float64{-2, -1.5, -1},
		[]float64{0.1, 1.2, 0.4},
		[]float64{1, 0.6, 0.1},
		[]float64{0.01, 0.8, 0.2},
	)
	for _, caption := range []string{"Energy", "Specific Heat Capacity", "Magnetization", "Susceptibility"} {
		if !strings.Contains(out, caption+" vs temperature") {
			t.Errorf("missing plot %q", caption)
		}
	}

	if PlotObservables(nil, nil, nil, nil, nil) != "" {
		t.Error("expected empty output without temperatures")
	}
}

func TestPlotSweep_SingleTemperature(t *testing.T) {
	s := &experiment.Sweep{Records: []experiment.Record{{Temperature: 2, Energy: -1, Magnetization: 0.5}}}
	if out := PlotSweep(s); !strings.Contains(out, "Energy vs temperature") {
		t.Error("expected a plot for a single temperature")
	}
}

func TestRenderSummary(t *testing.T) {
	out := RenderSummary([]experiment.Record{
		{Temperature: 2.25, Energy: -1.5, Magnetization: 0.6, AcceptanceRate: 0.2},
	})
	if !strings.Contains(out, "2.25") || !strings.Contains(out, "-1.500000") {
		t.Errorf("summary missing values:\n%s", out)
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	src := dynamo.NewSource(1)
	l, err := lattice.NewRandom(8, src)
	if err != nil {
		t.Fatal(err)
	}
	return NewModel(l, physics.NewIsing(0, physics.NaturalUnits()), src, 2.0, 0)
}

func TestModelKeys(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	if m.Temperature() <= 2.0 {
		t.Errorf("expected temperature to rise, got %v", m.Temperature())
	}

	for i := 0; i < 100; i++ {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = next.(Model)
	}
	if m.Temperature() < minTemp {
		t.Errorf("temperature fell below floor: %v", m.Temperature())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = next.(Model)
	if m.Running() {
		t.Error("expected paused after space")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestModelTick(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.Update(TickMsg{})
	m = next.(Model)
	if cmd == nil {
		t.Error("expected next tick")
	}
	if m.frames != 1 || len(m.magHistory) != 1 {
		t.Errorf("expected one frame sampled, got frames=%d history=%d", m.frames, len(m.magHistory))
	}
	if m.sampler.Attempts() != 64 {
		t.Errorf("expected one move per site, got %d", m.sampler.Attempts())
	}
	if !m.Lattice().Valid() {
		t.Error("lattice invalid after frame")
	}

	if view := m.View(); !strings.Contains(view, "ISING 8x8") {
		t.Error("view missing title")
	}
}
