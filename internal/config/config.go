// Package config handles the optional yaml configuration file of the
// converter. Command line flags always win over file values, file values
// win over the built-in defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bimscene/ifc_tiler/internal/tiler"
)

type Config struct {
	Srid                int     `yaml:"srid"`
	ZOffset             float64 `yaml:"z_offset"`
	MaxVerticesPerTile  int     `yaml:"max_vertices_per_tile"`
	RefineMode          string  `yaml:"refine_mode"`
	GeometricErrorScale float64 `yaml:"geometric_error_scale"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Srid:                0,
		ZOffset:             0,
		MaxVerticesPerTile:  500000,
		RefineMode:          "ADD",
		GeometricErrorScale: 16,
	}
}

// Load reads the config file at path on top of the defaults. An empty
// path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyToOptions fills every option field the command line left unset.
func (c *Config) ApplyToOptions(opts *tiler.TilerOptions) {
	if opts.Srid == 0 {
		opts.Srid = c.Srid
	}
	if opts.ZOffset == 0 {
		opts.ZOffset = c.ZOffset
	}
	if opts.MaxVerticesPerTile == 0 {
		opts.MaxVerticesPerTile = c.MaxVerticesPerTile
	}
	if opts.RefineMode == "" {
		opts.RefineMode = tiler.ParseRefineMode(c.RefineMode)
	}
	if opts.GeometricErrorScale == 0 {
		opts.GeometricErrorScale = c.GeometricErrorScale
	}
}
