package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/heatsim/internal/dynamo"
	"github.com/san-kum/heatsim/internal/physics"
	"github.com/san-kum/heatsim/internal/solvers"
)

const (
	GeometryBar   = "bar"
	GeometryPlate = "plate"
)

const (
	DefaultLength      = 1.0
	DefaultTMax        = 16.0
	DefaultU0          = 13.0
	DefaultF           = 80.0
	DefaultMaterial    = "copper"
	DefaultBarPoints   = 1001
	DefaultPlatePoints = 101
	DefaultSampleEvery = 100
)

type Config struct {
	Geometry    string           `yaml:"geometry"`
	Material    string           `yaml:"material"`
	Length      float64          `yaml:"length"`
	TMax        float64          `yaml:"tmax"`
	U0          float64          `yaml:"u0"`
	F           float64          `yaml:"f"`
	N           int              `yaml:"n"`
	SampleEvery int              `yaml:"sample_every"`
	Relaxation  RelaxationConfig `yaml:"relaxation"`
}

type RelaxationConfig struct {
	MaxSweeps int     `yaml:"max_sweeps"`
	Tolerance float64 `yaml:"tolerance"`
}

func DefaultConfig() *Config {
	return &Config{
		Geometry:    GeometryBar,
		Material:    DefaultMaterial,
		Length:      DefaultLength,
		TMax:        DefaultTMax,
		U0:          DefaultU0,
		F:           DefaultF,
		N:           DefaultBarPoints,
		SampleEvery: DefaultSampleEvery,
		Relaxation: RelaxationConfig{
			MaxSweeps: solvers.DefaultMaxSweeps,
			Tolerance: solvers.DefaultTolerance,
		},
	}
}

// DefaultPoints returns the grid size used when none is configured.
func DefaultPoints(geometry string) int {
	if geometry == GeometryPlate {
		return DefaultPlatePoints
	}
	return DefaultBarPoints
}

// Load reads a yaml file over the defaults. A file that names a plate but no
// grid size gets the plate default.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.N = 0
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	if cfg.N == 0 {
		cfg.N = DefaultPoints(cfg.Geometry)
	}
	return cfg, nil
}

// LoadInto overlays the keys present in a yaml file onto cfg.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Geometry != GeometryBar && c.Geometry != GeometryPlate {
		return fmt.Errorf("unknown geometry %q (want %s or %s)", c.Geometry, GeometryBar, GeometryPlate)
	}
	if _, err := physics.Lookup(c.Material); err != nil {
		return err
	}
	if _, err := dynamo.NewGrid(c.Length, c.TMax, c.N); err != nil {
		return err
	}
	if err := c.SimConfig().Validate(); err != nil {
		return err
	}
	if c.Geometry == GeometryPlate {
		if err := c.RelaxationParams().Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) Params() dynamo.Params {
	return dynamo.Params{Length: c.Length, TMax: c.TMax, U0: c.U0, F: c.F, N: c.N}
}

func (c *Config) RelaxationParams() solvers.Relaxation {
	return solvers.Relaxation{MaxSweeps: c.Relaxation.MaxSweeps, Tolerance: c.Relaxation.Tolerance}
}

func (c *Config) SimConfig() dynamo.Config {
	return dynamo.Config{SampleEvery: c.SampleEvery}
}

// Clone returns an independent copy. Presets are shared and must not be mutated.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
