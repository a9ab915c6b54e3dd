// Package config loads polymul CLI settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultRTol        = 1e-9
	DefaultATol        = 1e-12
	DefaultPlotHeight  = 10
	DefaultPlotWidth   = 80
	DefaultMinChunk    = 256
	DefaultWorkerCount = 0 // one per CPU
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	// Backend names the multiplication backend; empty selects the default.
	Backend  string     `yaml:"backend"`
	Workers  int        `yaml:"workers"`
	MinChunk int        `yaml:"min_chunk"`
	RTol     float64    `yaml:"rtol"`
	ATol     float64    `yaml:"atol"`
	Plot     PlotConfig `yaml:"plot"`
}

type PlotConfig struct {
	Height int `yaml:"height"`
	Width  int `yaml:"width"`
}

func DefaultConfig() *Config {
	return &Config{
		Workers:  DefaultWorkerCount,
		MinChunk: DefaultMinChunk,
		RTol:     DefaultRTol,
		ATol:     DefaultATol,
		Plot: PlotConfig{
			Height: DefaultPlotHeight,
			Width:  DefaultPlotWidth,
		},
	}
}

// Load reads a YAML file on top of DefaultConfig and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) Validate() error {
	switch {
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidConfig, c.Workers)
	case c.MinChunk < 0:
		return fmt.Errorf("%w: min_chunk must be >= 0, got %d", ErrInvalidConfig, c.MinChunk)
	case c.RTol < 0 || c.ATol < 0:
		return fmt.Errorf("%w: tolerances must be >= 0", ErrInvalidConfig)
	case c.Plot.Height < 1 || c.Plot.Width < 1:
		return fmt.Errorf("%w: plot size must be positive", ErrInvalidConfig)
	}
	return nil
}
