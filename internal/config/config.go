package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/san-kum/isingsim/internal/dynamo"
	"github.com/san-kum/isingsim/internal/experiment"
	"github.com/san-kum/isingsim/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSize      = 16
	DefaultSteps     = 20000
	DefaultTempStart = 1.0
	DefaultTempStop  = 4.0
	DefaultTempStep  = 0.1
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Field         float64           `yaml:"field"`
	Size          int               `yaml:"size"`
	Steps         int               `yaml:"steps"`
	Equilibration int               `yaml:"equilibration,omitempty"`
	Measurement   int               `yaml:"measurement,omitempty"`
	Seed          *int64            `yaml:"seed,omitempty"`
	Units         physics.Units     `yaml:"units"`
	Temperature   TemperatureConfig `yaml:"temperature"`
	KeepSeries    bool              `yaml:"keep_series"`
}

// TemperatureConfig selects a single temperature when Value is set, and the
// range Start..Stop in increments of Step otherwise.
type TemperatureConfig struct {
	Value float64 `yaml:"value,omitempty"`
	Start float64 `yaml:"start,omitempty"`
	Stop  float64 `yaml:"stop,omitempty"`
	Step  float64 `yaml:"step,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Size:  DefaultSize,
		Steps: DefaultSteps,
		Units: physics.NaturalUnits(),
		Temperature: TemperatureConfig{
			Start: DefaultTempStart,
			Stop:  DefaultTempStop,
			Step:  DefaultTempStep,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Phases returns the equilibration and measurement counts. Either one left at
// zero falls back to Steps, so setting only Steps reproduces the single-knob
// behaviour.
func (c *Config) Phases() dynamo.Phases {
	p := dynamo.Combined(c.Steps)
	if c.Equilibration != 0 {
		p.Equilibration = c.Equilibration
	}
	if c.Measurement != 0 {
		p.Measurement = c.Measurement
	}
	return p
}

func (c *Config) Temperatures() (experiment.Temperatures, error) {
	if c.Temperature.Value != 0 {
		return experiment.Single(c.Temperature.Value)
	}
	return experiment.Range(c.Temperature.Start, c.Temperature.Stop, c.Temperature.Step)
}

// SingleTemperature reports whether the config sweeps exactly one value.
func (c *Config) SingleTemperature() bool {
	return c.Temperature.Value != 0
}

func (c *Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("%w: size must be positive, got %d", ErrInvalid, c.Size)
	}
	if err := c.Phases().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Units.Boltzmann <= 0 {
		return fmt.Errorf("%w: units.boltzmann must be positive, got %f", ErrInvalid, c.Units.Boltzmann)
	}
	if c.Units.Moment <= 0 {
		return fmt.Errorf("%w: units.moment must be positive, got %f", ErrInvalid, c.Units.Moment)
	}
	if _, err := c.Temperatures(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// SetSeed fixes the random seed. Zero is a valid seed.
func (c *Config) SetSeed(seed int64) { c.Seed = &seed }

// HasSeed reports whether a seed was set, in the file or with SetSeed.
func (c *Config) HasSeed() bool { return c.Seed != nil }

// Experiment validates c and converts it into a sweep configuration.
// A config without a seed is seeded from the clock, and the chosen seed is
// stored back into c so the run can be repeated.
func (c *Config) Experiment() (experiment.Config, error) {
	if err := c.Validate(); err != nil {
		return experiment.Config{}, err
	}
	if !c.HasSeed() {
		c.SetSeed(time.Now().UnixNano())
	}
	temps, _ := c.Temperatures()
	return experiment.Config{
		Size:         c.Size,
		Field:        c.Field,
		Units:        c.Units,
		Phases:       c.Phases(),
		Temperatures: temps,
		Seed:         *c.Seed,
		KeepSeries:   c.KeepSeries,
	}, nil
}
