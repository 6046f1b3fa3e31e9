package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/shadowbox/internal/pace"
	"github.com/abhisek/shadowbox/internal/session"
)

// validEngines lists known narrator engine names. Empty means "pick one".
var validEngines = []string{"gtts", "say", "silent", "mock"}

// Load reads the YAML configuration file at path and returns a validated
// *Config. A missing file is not an error: defaults are returned.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r on top of the defaults and
// validates the result. Useful in tests where configs are constructed
// from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Level != "" {
		if _, err := pace.ParseLevel(cfg.Level); err != nil {
			errs = append(errs, fmt.Errorf("level: %w", err))
		}
	}
	if cfg.Mode != "" {
		if _, err := session.ParseMode(cfg.Mode); err != nil {
			errs = append(errs, fmt.Errorf("mode: %w", err))
		}
	}
	if cfg.Reps < 0 || cfg.Reps > 20 {
		errs = append(errs, fmt.Errorf("reps %d is out of range [0, 20]", cfg.Reps))
	}
	if cfg.Rate != 0 && (cfg.Rate < 0.5 || cfg.Rate > 2.0) {
		errs = append(errs, fmt.Errorf("rate %.2f is out of range [0.5, 2.0]", cfg.Rate))
	}
	if cfg.Narrator.Engine != "" && !slices.Contains(validEngines, cfg.Narrator.Engine) {
		errs = append(errs, fmt.Errorf("narrator.engine %q is invalid; valid values: gtts, say, silent", cfg.Narrator.Engine))
	}

	return errors.Join(errs...)
}
