package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/isingsim/internal/experiment"
)

func TestCriticalTemperature(t *testing.T) {
	records := []experiment.Record{
		{Temperature: 2.0, HeatCapacity: 0.5, Susceptibility: 0.1},
		{Temperature: 2.2, HeatCapacity: 1.4, Susceptibility: 0.9},
		{Temperature: 2.4, HeatCapacity: 1.1, Susceptibility: 2.5},
		{Temperature: 2.6, HeatCapacity: 0.6, Susceptibility: 1.0},
	}

	c, err := CriticalTemperature(records)
	if err != nil {
		t.Fatal(err)
	}
	if c.HeatCapacityPeak != 2.2 {
		t.Errorf("heat capacity peak = %v, want 2.2", c.HeatCapacityPeak)
	}
	if c.SusceptibilityPeak != 2.4 {
		t.Errorf("susceptibility peak = %v, want 2.4", c.SusceptibilityPeak)
	}
	if math.Abs(c.Estimate-2.3) > 1e-12 {
		t.Errorf("estimate = %v, want 2.3", c.Estimate)
	}
}

func TestCriticalTemperature_Empty(t *testing.T) {
	if _, err := CriticalTemperature(nil); !errors.Is(err, ErrNoRecords) {
		t.Errorf("expected ErrNoRecords, got %v", err)
	}
}

func TestOnsagerTc(t *testing.T) {
	if math.Abs(OnsagerTc-2.269185) > 1e-6 {
		t.Errorf("OnsagerTc = %v", OnsagerTc)
	}
}

func TestAutocorrelation(t *testing.T) {
	alternating := []float64{1, -1, 1, -1, 1, -1, 1, -1}
	if got := Autocorrelation(alternating, 0); math.Abs(got-1) > 1e-12 {
		t.Errorf("lag 0 = %v, want 1", got)
	}
	if got := Autocorrelation(alternating, 1); math.Abs(got+1) > 1e-12 {
		t.Errorf("lag 1 = %v, want -1", got)
	}
	if got := Autocorrelation([]float64{2, 2, 2}, 1); got != 0 {
		t.Errorf("constant series = %v, want 0", got)
	}
	if got := Autocorrelation(alternating, 20); got != 0 {
		t.Errorf("lag beyond series = %v, want 0", got)
	}
}

func TestIntegratedTime(t *testing.T) {
	alternating := []float64{1, -1, 1, -1, 1, -1}
	if got := IntegratedTime(alternating, 3); got != 0.5 {
		t.Errorf("anticorrelated series tau = %v, want 0.5", got)
	}

	slow := []float64{1, 1, 1, 1, -1, -1, -1, -1}
	if got := IntegratedTime(slow, 3); got <= 0.5 {
		t.Errorf("correlated series tau = %v, want > 0.5", got)
	}
}
