// Package project assembles a directory of DRY documents into a linked game:
// configuration, file discovery, concurrent parse and validation, linking and
// artifact output.
package project

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config controls a project build. Values come from an optional YAML file,
// then DRYC_* environment variables, then command-line flags.
type Config struct {
	Source    string `yaml:"source" env:"DRYC_SOURCE"`
	Output    string `yaml:"output" env:"DRYC_OUTPUT"`
	LogLevel  string `yaml:"log_level" env:"DRYC_LOG_LEVEL"`
	LogFormat string `yaml:"log_format" env:"DRYC_LOG_FORMAT"`
	Lang      string `yaml:"lang" env:"DRYC_LANG"`
	// Workers bounds concurrent file processing; 0 or less means unbounded.
	Workers int `yaml:"workers" env:"DRYC_WORKERS"`
	// Indent is the number of spaces used when writing the game; 0 writes
	// compact JSON.
	Indent int `yaml:"indent" env:"DRYC_INDENT"`
}

// DefaultConfig returns the configuration used when nothing else is set.
func DefaultConfig() Config {
	return Config{
		Source:    ".",
		Output:    "game.json",
		LogLevel:  "info",
		LogFormat: "text",
		Lang:      "en",
		Workers:   8,
		Indent:    2,
	}
}

// LoadConfig builds a Config from the defaults, the YAML file at path (when
// path is non-empty) and the environment, in that order.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := decodeYAML(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func decodeYAML(b []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Check reports the first invalid setting.
func (c Config) Check() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", c.LogFormat)
	}
	if c.Indent < 0 {
		return fmt.Errorf("invalid indent %d: must not be negative", c.Indent)
	}
	return nil
}

// NewLogger creates a slog.Logger for the configured level and format. It
// does not set the global logger.
func NewLogger(c Config, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(c.LogFormat) == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
