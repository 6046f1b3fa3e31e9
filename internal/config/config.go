package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config is the user-editable application configuration. Zero values mean
// "decide for me": auto reps, auto rate, default narrator.
type Config struct {
	// Language is the default sentence language ("en", "de", ...).
	Language string `yaml:"language"`

	// Level caps phrase length: beginner, intermediate or advanced.
	Level string `yaml:"level"`

	// Mode is the default practice mode: skip, check or auto-skip.
	Mode string `yaml:"mode"`

	// Reps is the repetitions per phrase; 0 derives them from how often
	// the sentence was practiced today.
	Reps int `yaml:"reps"`

	// Rate is the narration rate; 0 derives it from how often the
	// sentence was practiced today.
	Rate float64 `yaml:"rate"`

	// Recording toggles capture of the user's repetitions.
	Recording bool `yaml:"recording"`

	Narrator   Narrator   `yaml:"narrator"`
	Recordings Recordings `yaml:"recordings"`
}

// Narrator selects and tunes the speech engine.
type Narrator struct {
	// Engine is one of gtts, say or silent. Empty selects gtts with a
	// fallback to silent when offline.
	Engine string `yaml:"engine"`

	// Player overrides the playback command used for synthesized audio
	// (mpv, ffplay, afplay, mpg123 are probed when empty).
	Player string `yaml:"player"`

	// Voice is the system voice name for the say engine.
	Voice string `yaml:"voice"`
}

// Recordings configures where captured clips land.
type Recordings struct {
	// Dir is the clip directory. Empty selects the data directory next
	// to the database.
	Dir string `yaml:"dir"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Language:  "en",
		Level:     "intermediate",
		Mode:      "check",
		Recording: true,
	}
}

// DefaultPath resolves the config file path:
// 1. $XDG_CONFIG_HOME/shadowbox/config.yaml
// 2. ~/.config/shadowbox/config.yaml
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "shadowbox", "config.yaml"), nil
}

// ApplyEnv overrides cfg fields from SHADOWBOX_* environment variables.
// Unparsable numeric values are ignored.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("SHADOWBOX_LANGUAGE"); v != "" {
		cfg.Language = v
	}
	if v := os.Getenv("SHADOWBOX_LEVEL"); v != "" {
		cfg.Level = v
	}
	if v := os.Getenv("SHADOWBOX_MODE"); v != "" {
		cfg.Mode = v
	}
	if v := os.Getenv("SHADOWBOX_REPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Reps = n
		}
	}
	if v := os.Getenv("SHADOWBOX_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Rate = f
		}
	}
	if v := os.Getenv("SHADOWBOX_RECORDING"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Recording = b
		}
	}
	if v := os.Getenv("SHADOWBOX_NARRATOR"); v != "" {
		cfg.Narrator.Engine = v
	}
}
