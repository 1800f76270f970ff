// Copyright © 2026 Slate contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Timing and resource configuration for the window-manager core.
// Usage: Loaded once at startup; the wm service reads durations from it.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values can be written as "250ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Config holds every tunable of the coordination core.
type Config struct {
	// DimFade is the fallback enter/exit duration for dim layers whose
	// owning container has no active animation.
	DimFade Duration `yaml:"dim_fade"`

	// TokenFade is the duration of per-token fade-in/out animations.
	TokenFade Duration `yaml:"token_fade"`

	// RotationTimeout bounds how long the rotation controller waits for
	// windows to redraw before force-showing everything.
	RotationTimeout Duration `yaml:"rotation_timeout"`

	// FrameInterval is the nominal frame cadence of the display backend.
	FrameInterval Duration `yaml:"frame_interval"`

	// MaxSurfaces caps compositor surface allocations; 0 means no cap.
	MaxSurfaces int `yaml:"max_surfaces"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DimFade:         Duration{200 * time.Millisecond},
		TokenFade:       Duration{300 * time.Millisecond},
		RotationTimeout: Duration{2 * time.Second},
		FrameInterval:   Duration{16 * time.Millisecond},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "slate", "slate.yaml"), nil
}

// Load reads the config at path, layering it over the defaults. A missing
// file yields the defaults; malformed YAML is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
