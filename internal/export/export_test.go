package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/isingsim/internal/dynamo"
	"github.com/san-kum/isingsim/internal/experiment"
	"github.com/san-kum/isingsim/internal/lattice"
)

func TestWriteText(t *testing.T) {
	records := []experiment.Record{
		{Temperature: 1.5, Energy: -1.9, Magnetization: 0.98, HeatCapacity: 0.12, Susceptibility: 0.01},
		{Temperature: 2, Energy: -1.5, Magnetization: 0.7, HeatCapacity: 1.1, Susceptibility: 0.5},
	}
	h := TextHeader{Size: 4, Field: 0.5, Phases: dynamo.Combined(100)}

	var buf bytes.Buffer
	if err := WriteText(&buf, h, records, 1500*time.Millisecond); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	want := "Temperature\tAverage Energy\tMagnetization\tSpecific Heat\tSusceptibility\n" +
		"Lattice Size: 4x4\n" +
		"External Magnetic Field (B): 0.5\n" +
		"Metropolis Step: 100\n" +
		"1.5\t-1.9\t0.98\t0.12\t0.01\n" +
		"2\t-1.5\t0.7\t1.1\t0.5\n" +
		"Time taken: 1.5 seconds\n"

	if buf.String() != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteText_DecoupledPhases(t *testing.T) {
	h := TextHeader{Size: 2, Phases: dynamo.Phases{Equilibration: 10, Measurement: 5}}

	var buf bytes.Buffer
	if err := WriteText(&buf, h, nil, 0); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Metropolis Step: 10 equilibration, 5 measurement\n") {
		t.Errorf("missing decoupled step line:\n%s", buf.String())
	}
}

func TestPanelsToSVG(t *testing.T) {
	temps := []float64{1, 2, 3}
	panels := ObservablePanels(
		[]float64{-2, -1.5, -1},
		[]float64{0.1, 1.2, 0.4},
		[]float64{1, 0.6, 0.1},
		[]float64{0.01, 0.8, 0.2},
	)

	svg := PanelsToSVG(temps, panels, 800, 600)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not an svg document")
	}
	if got := strings.Count(svg, "<path"); got != 4 {
		t.Errorf("expected 4 paths, got %d", got)
	}
	if !strings.Contains(svg, "Susceptibility vs Temperature (T)") {
		t.Error("missing panel title")
	}

	if PanelsToSVG(nil, panels, 800, 600) != "" {
		t.Error("expected empty svg for no temperatures")
	}
}

func TestLatticeToSVG(t *testing.T) {
	l, err := lattice.FromRows([][]int{{1, -1}, {-1, 1}})
	if err != nil {
		t.Fatal(err)
	}

	svg := LatticeToSVG(l, 10)
	if got := strings.Count(svg, "<rect x="); got != 2 {
		t.Errorf("expected 2 up-spin cells, got %d", got)
	}
	if LatticeToSVG(nil, 10) != "" {
		t.Error("expected empty svg for nil lattice")
	}
}
