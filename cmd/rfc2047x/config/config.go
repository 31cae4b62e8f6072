// Package config loads the optional YAML configuration of the rfc2047x
// command.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/modfin/rfc2047x"
)

// Config is the rfc2047x command configuration. Flags override it.
type Config struct {
	// LogLevel is one of debug, info, warn or error. Defaults to info.
	LogLevel string `yaml:"log_level"`
	// TooLongEncodedWords is one of abort, skip or decode. Defaults to
	// abort.
	TooLongEncodedWords string `yaml:"too_long_encoded_words"`
}

// Load reads and parses a YAML configuration file. An empty path yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// Strategy returns the configured recover strategy.
func (c *Config) Strategy() (rfc2047x.RecoverStrategy, error) {
	switch strings.ToLower(c.TooLongEncodedWords) {
	case "", "abort":
		return rfc2047x.RecoverAbort, nil
	case "skip":
		return rfc2047x.RecoverSkip, nil
	case "decode":
		return rfc2047x.RecoverDecode, nil
	}
	return 0, fmt.Errorf("unknown too-long strategy %q, expected abort, skip or decode", c.TooLongEncodedWords)
}

// Level returns the configured log level.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
