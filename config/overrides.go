// ABOUTME: Optional YAML overrides for per-card layout: position, interval, and enabled flag.
// ABOUTME: Overrides apply on top of each card's built-in defaults at construction time.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/glimt-dev/glimt/card"
)

// CardOverride adjusts one card's placement or schedule. Nil fields leave the
// card's built-in default untouched.
type CardOverride struct {
	Position *string `yaml:"position"` // slot name, e.g. "bottom_center"
	Interval *int    `yaml:"interval"` // seconds
	Enabled  *bool   `yaml:"enabled"`
}

// Overrides is the YAML overrides file, keyed by card name.
//
//	cards:
//	  Weather:
//	    position: top_left
//	    interval: 120
type Overrides struct {
	Cards map[string]CardOverride `yaml:"cards"`
}

// LoadOverrides reads and parses the overrides file. An empty path returns an
// empty override set; a missing or malformed file is a configuration error.
func LoadOverrides(path string) (*Overrides, error) {
	if path == "" {
		return &Overrides{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading overrides file: %w", err)
	}

	var ov Overrides
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return nil, fmt.Errorf("parsing overrides file %s: %w", path, err)
	}

	for name, co := range ov.Cards {
		if co.Position != nil {
			if _, err := card.ParsePosition(*co.Position); err != nil {
				return nil, fmt.Errorf("overrides for card %q: %w", name, err)
			}
		}
		if co.Interval != nil && *co.Interval <= 0 {
			return nil, fmt.Errorf("overrides for card %q: interval must be positive, got %d", name, *co.Interval)
		}
	}
	return &ov, nil
}

// Apply rewrites cfg with any overrides registered for its name.
func (o *Overrides) Apply(cfg card.Config) card.Config {
	co, ok := o.Cards[cfg.Name]
	if !ok {
		return cfg
	}
	if co.Position != nil {
		if pos, err := card.ParsePosition(*co.Position); err == nil {
			cfg.Position = pos
		}
	}
	if co.Interval != nil {
		cfg.UpdateInterval = time.Duration(*co.Interval) * time.Second
	}
	if co.Enabled != nil {
		cfg.Enabled = *co.Enabled
	}
	return cfg
}
