package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	def := Default()
	if cfg.Panel.MinRows != def.Panel.MinRows || cfg.Panel.PersistentColumns != def.Panel.PersistentColumns {
		t.Fatalf("missing file should yield defaults, got %+v", cfg.Panel)
	}
	if !cfg.Panel.Snapping {
		t.Fatal("snapping should default on")
	}
}

func TestLoadFromMergesPartialFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	payload := `{
		"panel": {"persistentColumns": 100, "snapping": false, "doubleTapWindow": "450ms"},
		"reader": {"theme": "sepia", "showParagraphNumbers": false}
	}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Panel.PersistentColumns != 100 || cfg.Panel.Snapping {
		t.Fatalf("panel overrides not applied: %+v", cfg.Panel)
	}
	if cfg.Panel.DoubleTapWindow != 450*time.Millisecond {
		t.Fatalf("doubleTapWindow = %v, want 450ms", cfg.Panel.DoubleTapWindow)
	}
	if cfg.Reader.Theme != "sepia" || cfg.Reader.ShowParagraphNumbers {
		t.Fatalf("reader overrides not applied: %+v", cfg.Reader)
	}
	// Untouched fields keep their defaults.
	if cfg.Panel.MinRows != Default().Panel.MinRows {
		t.Fatalf("minRows lost its default: %d", cfg.Panel.MinRows)
	}
	if cfg.Reader.FontSize != 16 {
		t.Fatalf("fontSize lost its default: %d", cfg.Reader.FontSize)
	}
}

func TestLoadFromRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("malformed config should not load")
	}
}

func TestValidateRepairsRanges(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Panel.MinRows = -1
	cfg.Panel.MaxRows = -5
	cfg.Panel.DoubleTapWindow = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Panel.MinRows <= 0 || cfg.Panel.MaxRows != 0 {
		t.Fatalf("ranges not repaired: %+v", cfg.Panel)
	}
	if cfg.Panel.DoubleTapWindow != 300*time.Millisecond {
		t.Fatalf("doubleTapWindow not repaired: %v", cfg.Panel.DoubleTapWindow)
	}

	cfg.Panel.MinRows = 10
	cfg.Panel.MaxRows = 4
	_ = cfg.Validate()
	if cfg.Panel.MaxRows != 10 {
		t.Fatalf("inverted bounds not repaired: %+v", cfg.Panel)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory in this environment")
	}
	if got := ExpandPath("~/data"); got != filepath.Join(home, "data") {
		t.Fatalf("ExpandPath(~/data) = %q", got)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Fatalf("ExpandPath(/abs/path) = %q", got)
	}
}
