package config

import (
	"sort"

	"github.com/san-kum/isingsim/internal/physics"
)

var Presets = map[string]*Config{
	"quick": {
		Size: 8, Steps: 2000,
		Temperature: TemperatureConfig{Start: 1.0, Stop: 4.0, Step: 0.25},
	},
	"critical": {
		Size: 16, Steps: 50000, KeepSeries: true,
		Temperature: TemperatureConfig{Start: 2.0, Stop: 2.6, Step: 0.05},
	},
	"cold": {
		Size: 16, Steps: 20000,
		Temperature: TemperatureConfig{Value: 1.0},
	},
	"hot": {
		Size: 16, Steps: 20000,
		Temperature: TemperatureConfig{Value: 5.0},
	},
	"field": {
		Field: 0.1, Size: 16, Steps: 20000,
		Temperature: TemperatureConfig{Start: 1.0, Stop: 4.0, Step: 0.2},
	},
	"decoupled": {
		Size: 32, Equilibration: 200000, Measurement: 50000, KeepSeries: true,
		Temperature: TemperatureConfig{Start: 1.5, Stop: 3.5, Step: 0.1},
	},
}

// GetPreset returns a copy of the named preset with natural units, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	if cfg.Units == (physics.Units{}) {
		cfg.Units = physics.NaturalUnits()
	}
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
