// Package config loads the application settings from defaults, an optional
// YAML file and DIAGTREE_* environment variables, in that order of precedence.
// Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no config path is given. It is optional.
const DefaultFile = "diagtree.yaml"

// DefaultStore is the tree location used when none is configured.
const DefaultStore = "diagnosis_tree.txt"

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// ErrInvalidConfig is returned when a loaded setting is out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds every setting of the CLI.
// Store is a path or a file://, mem://, redis://, badger:// or sqlite:// URI;
// Seed is the diagnosis used to start a tree when the store is empty.
type Config struct {
	Store       string `yaml:"store" env:"DIAGTREE_STORE"`
	Seed        string `yaml:"seed" env:"DIAGTREE_SEED"`
	Debug       bool   `yaml:"debug" env:"DIAGTREE_DEBUG"`
	LogFormat   string `yaml:"log_format" env:"DIAGTREE_LOG_FORMAT"`
	MetricsFile string `yaml:"metrics_file" env:"DIAGTREE_METRICS_FILE"`
	Repeat      bool   `yaml:"repeat" env:"DIAGTREE_REPEAT"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Store:     DefaultStore,
		LogFormat: LogFormatText,
	}
}

// Load builds the configuration.
// An empty path means DefaultFile, which may be missing; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := cfg.readFile(path, explicit); err != nil {
		return cfg, err
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	return cfg, cfg.Validate()
}

func (c *Config) readFile(path string, required bool) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) && !required {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate checks the settings that cannot be checked by type alone.
func (c Config) Validate() error {
	switch strings.ToLower(c.LogFormat) {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: log format %q (want %q or %q)", ErrInvalidConfig, c.LogFormat, LogFormatText, LogFormatJSON)
	}
	if strings.TrimSpace(c.Store) == "" {
		return fmt.Errorf("%w: store cannot be empty", ErrInvalidConfig)
	}
	return nil
}
