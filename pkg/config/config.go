// Package config loads extraction settings from YAML.
package config

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/pyhub-apps/pdftable-golang/pkg/geometry"
	"github.com/pyhub-apps/pdftable-golang/pkg/pdf"
	"github.com/pyhub-apps/pdftable-golang/pkg/raster"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("invalid config")

// Config holds every tunable of table extraction
type Config struct {
	// Tolerance is the near-equality distance used by span resolution, in
	// PDF points.
	Tolerance float64 `yaml:"tolerance"`
	// Scale is the number of mask pixels per PDF point.
	Scale float64 `yaml:"scale"`
	// Workers bounds the number of pages processed concurrently.
	Workers int `yaml:"workers"`

	OpenIterations  int `yaml:"open_iterations"`
	CloseIterations int `yaml:"close_iterations"`
	GridIterations  int `yaml:"grid_iterations"`

	WordXTolerance float64 `yaml:"word_x_tolerance"`
	WordYTolerance float64 `yaml:"word_y_tolerance"`
	// UnicodeForm is one of NFC, NFD, NFKC, NFKD or empty to keep text as is.
	UnicodeForm string `yaml:"unicode_form"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the default configuration
func Default() Config {
	ro := raster.DefaultOptions()
	return Config{
		Tolerance:       geometry.DefaultTolerance,
		Scale:           ro.Scale,
		Workers:         1,
		OpenIterations:  ro.OpenIterations,
		CloseIterations: ro.CloseIterations,
		GridIterations:  ro.GridIterations,
		WordXTolerance:  3,
		WordYTolerance:  3,
		UnicodeForm:     "NFC",
		LogLevel:        "info",
	}
}

// Load reads a YAML file on top of the defaults
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to parse config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every setting is in range
func (c Config) Validate() error {
	switch {
	case c.Tolerance <= 0:
		return errors.Wrapf(ErrInvalid, "tolerance must be positive, got %g", c.Tolerance)
	case c.Scale <= 0:
		return errors.Wrapf(ErrInvalid, "scale must be positive, got %g", c.Scale)
	case c.Workers < 1:
		return errors.Wrapf(ErrInvalid, "workers must be at least 1, got %d", c.Workers)
	case c.OpenIterations < 0 || c.CloseIterations < 0 || c.GridIterations < 0:
		return errors.Wrap(ErrInvalid, "morphology iterations must not be negative")
	case c.WordXTolerance < 0 || c.WordYTolerance < 0:
		return errors.Wrap(ErrInvalid, "word tolerances must not be negative")
	}
	if _, ok := pdf.UnicodeForm(c.UnicodeForm); !ok {
		return errors.Wrapf(ErrInvalid, "unknown unicode form %q", c.UnicodeForm)
	}
	return nil
}

// RasterOptions returns the mask segmentation settings
func (c Config) RasterOptions() raster.Options {
	return raster.Options{
		Scale:           c.Scale,
		OpenIterations:  c.OpenIterations,
		CloseIterations: c.CloseIterations,
		GridIterations:  c.GridIterations,
	}
}
