// ABOUTME: Tests for the YAML card overrides file: loading, validation, and application.
// ABOUTME: Writes fixture files into t.TempDir.
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glimt-dev/glimt/card"
)

func writeOverrides(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glimt.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesEmptyPath(t *testing.T) {
	ov, err := LoadOverrides("")
	if err != nil {
		t.Fatalf("LoadOverrides: %v", err)
	}
	if len(ov.Cards) != 0 {
		t.Errorf("empty path should yield no overrides, got %d", len(ov.Cards))
	}
}

func TestLoadOverridesMissingFile(t *testing.T) {
	if _, err := LoadOverrides(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("want error for missing file")
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeOverrides(t, `
cards:
  Weather:
    position: top_left
    interval: 120
  Menu:
    enabled: false
`)
	ov, err := LoadOverrides(path)
	if err != nil {
		t.Fatalf("LoadOverrides: %v", err)
	}

	cfg := ov.Apply(card.Config{
		Name:           "Weather",
		Position:       card.BottomLeft,
		Enabled:        true,
		UpdateInterval: 5 * time.Minute,
	})
	if cfg.Position != card.TopLeft {
		t.Errorf("Position = %v, want top_left", cfg.Position)
	}
	if cfg.UpdateInterval != 2*time.Minute {
		t.Errorf("UpdateInterval = %v, want 2m", cfg.UpdateInterval)
	}
	if !cfg.Enabled {
		t.Error("enabled flag should be untouched when not overridden")
	}

	menu := ov.Apply(card.Config{Name: "Menu", Enabled: true})
	if menu.Enabled {
		t.Error("Menu override should disable the card")
	}

	untouched := ov.Apply(card.Config{Name: "Clock", Position: card.TopCenter})
	if untouched.Position != card.TopCenter {
		t.Error("cards without overrides must pass through unchanged")
	}
}

func TestLoadOverridesRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad position", "cards:\n  Weather:\n    position: middle_of_nowhere\n"},
		{"zero interval", "cards:\n  Weather:\n    interval: 0\n"},
		{"not yaml", "cards: [what"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeOverrides(t, tt.content)
			if _, err := LoadOverrides(path); err == nil {
				t.Error("want error")
			}
		})
	}
}
