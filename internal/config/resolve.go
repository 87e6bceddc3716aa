package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/basinsim/internal/physics"
)

// Override adjusts a config after the preset and file layers.
type Override func(*Config) error

// Resolve builds a render config from DefaultConfig, the named preset, the
// config file and the overrides, in that order, and validates it. An empty
// preset or file skips that layer; keys the file omits keep the preset's
// values.
func Resolve(preset, file string, overrides ...Override) (*Config, error) {
	cfg := DefaultConfig()

	if preset != "" {
		cfg = GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, ListPresets())
		}
	}

	if file != "" {
		fileCfg, err := LoadOver(file, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}

	for _, o := range overrides {
		if err := o(cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Set changes one physical parameter by its physics.Params name, e.g.
// "distance" or "timeStep".
func (c *Config) Set(name string, v float64) error {
	p := c.Params()
	if err := p.SetParam(name, v); err != nil {
		return err
	}
	c.setParams(p)
	return nil
}

func (c *Config) setParams(p physics.Params) {
	c.Distance = p.PoleDistance
	c.Attraction = p.Attraction
	c.Friction = p.Friction
	c.Pendulum = p.Pendulum
	c.Height = p.Height
	c.TimeStep = p.TimeStep
	c.MaxSteps = p.MaxSteps
	c.RequiredVelocity = p.RequiredVelocity
	c.RequiredDistance = p.RequiredDistance
}

// ParseAssignment splits "name=value" into its parts.
func ParseAssignment(s string) (string, float64, error) {
	name, raw, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", 0, fmt.Errorf("expected name=value, got %q", s)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", 0, fmt.Errorf("%s: %w", name, err)
	}
	return name, v, nil
}

// SetOverride applies a "name=value" assignment through Set.
func SetOverride(assignment string) Override {
	return func(c *Config) error {
		name, v, err := ParseAssignment(assignment)
		if err != nil {
			return err
		}
		return c.Set(name, v)
	}
}

// Pinned returns a copy that replays a finished render exactly: the seed
// and worker count it actually used are fixed and the output is cleared.
func (c *Config) Pinned(seed uint64, workers int) *Config {
	cp := c.Clone()
	s := int64(seed)
	cp.Seed = &s
	cp.Workers = &workers
	cp.Output = ""
	return cp
}
