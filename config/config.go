// Package config is the calculator's YAML-backed settings layer.
//
// Grounded on the teacher's settings.Set (a package-level Precision
// variable with a 0-20 bound check): generalized into a struct so the
// CLI can load and save it, and expanded with the angle unit and
// recursion-depth knobs SPEC_FULL.md's evaluator and parser need,
// persisted with gopkg.in/yaml.v3 the way the rest of the pack's
// config layers do.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"Axion/parser"
)

// AngleUnit selects how the evaluator interprets trigonometric
// function arguments and results.
type AngleUnit string

const (
	Degrees AngleUnit = "degrees"
	Radians AngleUnit = "radians"
)

// Config is the calculator's persisted session settings.
type Config struct {
	Precision         int       `yaml:"precision"`
	AngleUnit         AngleUnit `yaml:"angle_unit"`
	MaxRecursionDepth int       `yaml:"max_recursion_depth"`
}

// Default mirrors the teacher's settings.Precision default of 6, with
// degrees (the teacher's evaluator.Eval always used degrees) and the
// parser's DefaultMaxDepth as the starting point for the other knobs.
func Default() Config {
	return Config{
		Precision:         6,
		AngleUnit:         Degrees,
		MaxRecursionDepth: parser.DefaultMaxDepth,
	}
}

// SetPrecision validates and applies a new precision, mirroring the
// teacher's settings.Set bound check.
func (c *Config) SetPrecision(p int) error {
	if p < 0 || p > 20 {
		return fmt.Errorf("precision must be between 0 and 20")
	}
	c.Precision = p
	return nil
}

// SetAngleUnit validates and applies a new angle unit.
func (c *Config) SetAngleUnit(u AngleUnit) error {
	switch u {
	case Degrees, Radians:
		c.AngleUnit = u
		return nil
	default:
		return fmt.Errorf("unknown angle unit %q (want %q or %q)", u, Degrees, Radians)
	}
}

// Load reads config from path as YAML. A missing file is not an
// error: the caller gets Default() merged with nothing, same as
// history/store's "absent means fresh" convention.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
