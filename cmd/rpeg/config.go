// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/rpeg

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/woozymasta/rpeg"
	"gopkg.in/yaml.v3"
)

// configEnv names the environment variable consulted when --config is absent.
const configEnv = "RPEG_CONFIG"

// config holds defaults that flags may override.
type config struct {
	// Envelope wraps compressed output: none, lz4 or zstd.
	Envelope string `yaml:"envelope"`

	// HighCompression selects the slowest envelope level.
	HighCompression bool `yaml:"high_compression"`

	// Format is the decompressed image format. Empty means "from the output
	// extension, else ppm".
	Format string `yaml:"format"`

	// Denominator is the channel maximum of decompressed images.
	Denominator int `yaml:"denominator"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
}

func defaultConfig() config {
	return config{
		Envelope:    "none",
		Denominator: 255,
		LogLevel:    "info",
	}
}

// loadConfig reads a YAML config file on top of the defaults. Unknown keys are errors.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return config{}, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

func (c config) validate() error {
	if _, err := rpeg.ParseEnvelope(c.Envelope); err != nil {
		return err
	}
	if c.Format != "" {
		if _, err := rpeg.ParseImageFormat(c.Format); err != nil {
			return err
		}
	}
	if c.Denominator < 1 || c.Denominator > 0xffff {
		return fmt.Errorf("denominator %d outside 1..65535", c.Denominator)
	}
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

func parseLogLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", name, err)
	}

	return level, nil
}
