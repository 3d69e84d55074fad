// Package config loads analysis settings: built-in defaults, then an
// optional YAML file, then AIRPROJ_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/pspoerri/airproj/internal/coord"
	"github.com/pspoerri/airproj/internal/projection"
	"github.com/pspoerri/airproj/internal/trajectory"
)

// Config holds the settings shared by the command-line tools.
type Config struct {
	// Projection names the projection type selected at startup.
	Projection string `yaml:"projection" env:"AIRPROJ_PROJECTION"`
	// Accuracy is the allowed projection error in meters.
	Accuracy float64 `yaml:"accuracy" env:"AIRPROJ_ACCURACY"`
	// Lookahead is how far ahead conflicts are probed.
	Lookahead time.Duration `yaml:"lookahead" env:"AIRPROJ_LOOKAHEAD"`

	Separation Separation `yaml:"separation"`
}

// Separation holds the separation minima in meters.
type Separation struct {
	Horizontal float64 `yaml:"horizontal" env:"AIRPROJ_SEPARATION_H"`
	Vertical   float64 `yaml:"vertical"   env:"AIRPROJ_SEPARATION_V"`
}

// Default returns the built-in configuration: ENU, 10 m accuracy, 5 minute
// lookahead, 5 NM / 1000 ft separation.
func Default() Config {
	return Config{
		Projection: coord.DefaultType.String(),
		Accuracy:   10,
		Lookahead:  5 * time.Minute,
		Separation: Separation{
			Horizontal: 9260,
			Vertical:   304.8,
		},
	}
}

// Load reads the configuration using the process environment. An empty path
// skips the file.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, nil)
}

// LoadWithEnv is like Load but reads environment variables from environ.
// A nil environ uses the process environment.
func LoadWithEnv(path string, environ map[string]string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.ProjectionType(); err != nil {
		errs = append(errs, err)
	}
	if !(c.Accuracy > 0) {
		errs = append(errs, fmt.Errorf("accuracy must be positive, got %g", c.Accuracy))
	}
	if c.Lookahead <= 0 {
		errs = append(errs, fmt.Errorf("lookahead must be positive, got %v", c.Lookahead))
	}
	if !(c.Separation.Horizontal > 0) || !(c.Separation.Vertical > 0) {
		errs = append(errs, fmt.Errorf("separation minima must be positive, got %g m / %g m",
			c.Separation.Horizontal, c.Separation.Vertical))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// ProjectionType parses the configured projection name.
func (c Config) ProjectionType() (coord.ProjectionType, error) {
	return projection.ProjectionTypeFromString(c.Projection)
}

// Apply switches svc to the configured projection type.
func (c Config) Apply(svc *projection.Service) error {
	t, err := c.ProjectionType()
	if err != nil {
		return err
	}
	svc.SetProjectionType(t)
	return nil
}

// ProbeConfig returns the conflict probe settings.
func (c Config) ProbeConfig() trajectory.ProbeConfig {
	return trajectory.ProbeConfig{
		Lookahead:  c.Lookahead.Seconds(),
		Horizontal: c.Separation.Horizontal,
		Vertical:   c.Separation.Vertical,
	}
}
