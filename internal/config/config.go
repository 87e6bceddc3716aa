package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/san-kum/basinsim/internal/dynamo"
	"github.com/san-kum/basinsim/internal/physics"
	"gopkg.in/gcfg.v1"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSize             = 512
	DefaultSamples          = 10
	DefaultDistance         = 0.2
	DefaultAttraction       = 0.1
	DefaultFriction         = 0.1
	DefaultPendulum         = 1.0
	DefaultHeight           = 0.05
	DefaultTimeStep         = 0.05
	DefaultMaxSteps         = 5000
	DefaultRequiredVelocity = 0.1
	DefaultRequiredDistance = 0.01
)

// Config is everything a render needs. Seed and Workers are optional; nil
// means "pick at render time" and is resolved once before dispatch.
type Config struct {
	Size             int     `yaml:"size"`
	Samples          int     `yaml:"samples"`
	Distance         float64 `yaml:"distance"`
	Attraction       float64 `yaml:"attraction"`
	Friction         float64 `yaml:"friction"`
	Pendulum         float64 `yaml:"pendulum"`
	Height           float64 `yaml:"height"`
	TimeStep         float64 `yaml:"time_step"`
	MaxSteps         int     `yaml:"max_steps"`
	RequiredVelocity float64 `yaml:"required_velocity"`
	RequiredDistance float64 `yaml:"required_distance"`
	Seed             *int64  `yaml:"seed,omitempty"`
	Workers          *int    `yaml:"workers,omitempty"`
	Output           string  `yaml:"output,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Size:             DefaultSize,
		Samples:          DefaultSamples,
		Distance:         DefaultDistance,
		Attraction:       DefaultAttraction,
		Friction:         DefaultFriction,
		Pendulum:         DefaultPendulum,
		Height:           DefaultHeight,
		TimeStep:         DefaultTimeStep,
		MaxSteps:         DefaultMaxSteps,
		RequiredVelocity: DefaultRequiredVelocity,
		RequiredDistance: DefaultRequiredDistance,
	}
}

// Load reads a YAML config, or an INI-style one when the file ends in
// .ini or .gcfg. Missing keys keep their defaults.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver is Load with base supplying the values of missing keys. base
// is not modified.
func LoadOver(path string, base *Config) (*Config, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ini", ".gcfg":
		return loadGcfg(path, base)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Clone returns a deep copy; the optional fields do not alias c's.
func (c *Config) Clone() *Config {
	cp := *c
	if c.Seed != nil {
		s := *c.Seed
		cp.Seed = &s
	}
	if c.Workers != nil {
		w := *c.Workers
		cp.Workers = &w
	}
	return &cp
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// iniFile mirrors Config for gcfg, which has no optional values: an empty
// seed or a zero worker count means unset.
type iniFile struct {
	Render struct {
		Size    int
		Samples int
		Seed    string
		Workers int
		Output  string
	}
	Physics struct {
		Distance         float64
		Attraction       float64
		Friction         float64
		Pendulum         float64
		Height           float64
		TimeStep         float64 `gcfg:"time-step"`
		MaxSteps         int     `gcfg:"max-steps"`
		RequiredVelocity float64 `gcfg:"required-velocity"`
		RequiredDistance float64 `gcfg:"required-distance"`
	}
}

func loadGcfg(path string, d *Config) (*Config, error) {
	var f iniFile
	f.Render.Size, f.Render.Samples, f.Render.Output = d.Size, d.Samples, d.Output
	if d.Seed != nil {
		f.Render.Seed = strconv.FormatInt(*d.Seed, 10)
	}
	if d.Workers != nil {
		f.Render.Workers = *d.Workers
	}
	f.Physics.Distance, f.Physics.Attraction, f.Physics.Friction = d.Distance, d.Attraction, d.Friction
	f.Physics.Pendulum, f.Physics.Height = d.Pendulum, d.Height
	f.Physics.TimeStep, f.Physics.MaxSteps = d.TimeStep, d.MaxSteps
	f.Physics.RequiredVelocity, f.Physics.RequiredDistance = d.RequiredVelocity, d.RequiredDistance

	if err := gcfg.ReadFileInto(&f, path); err != nil {
		return nil, err
	}

	cfg := &Config{
		Size:             f.Render.Size,
		Samples:          f.Render.Samples,
		Output:           f.Render.Output,
		Distance:         f.Physics.Distance,
		Attraction:       f.Physics.Attraction,
		Friction:         f.Physics.Friction,
		Pendulum:         f.Physics.Pendulum,
		Height:           f.Physics.Height,
		TimeStep:         f.Physics.TimeStep,
		MaxSteps:         f.Physics.MaxSteps,
		RequiredVelocity: f.Physics.RequiredVelocity,
		RequiredDistance: f.Physics.RequiredDistance,
	}
	if s := strings.TrimSpace(f.Render.Seed); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
		cfg.Seed = &seed
	}
	if f.Render.Workers != 0 {
		w := f.Render.Workers
		cfg.Workers = &w
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("size must be positive, got %d: %w", c.Size, dynamo.ErrInvalidSize)
	}
	if c.Samples <= 0 {
		return fmt.Errorf("samples must be positive, got %d: %w", c.Samples, dynamo.ErrInvalidSamples)
	}
	if c.Workers != nil && *c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d: %w", *c.Workers, dynamo.ErrInvalidWorkers)
	}
	return c.Params().Validate()
}

func (c *Config) Params() physics.Params {
	return physics.Params{
		PoleDistance:     c.Distance,
		Attraction:       c.Attraction,
		Friction:         c.Friction,
		Pendulum:         c.Pendulum,
		Height:           c.Height,
		TimeStep:         c.TimeStep,
		MaxSteps:         c.MaxSteps,
		RequiredVelocity: c.RequiredVelocity,
		RequiredDistance: c.RequiredDistance,
	}
}

// ResolveWorkers returns the configured worker count or the number of CPUs.
func (c *Config) ResolveWorkers() int {
	if c.Workers != nil {
		return *c.Workers
	}
	return runtime.NumCPU()
}

// ResolveSeed returns the configured seed as an unsigned stream seed, or
// nil when the render should draw one from entropy.
func (c *Config) ResolveSeed() *uint64 {
	if c.Seed == nil {
		return nil
	}
	s := uint64(*c.Seed)
	return &s
}
