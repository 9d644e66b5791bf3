// Package config loads the reader configuration from
// ~/.config/ubreader/config.json, merging the file over built-in defaults so
// a partial file only overrides what it names.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	configDir  = ".config/ubreader"
	configFile = "config.json"
)

// rawConfig is the JSON-unmarshaling intermediary. Pointer and string fields
// distinguish "absent" from zero values during the merge.
type rawConfig struct {
	Document DocumentConfig  `json:"document"`
	Storage  StorageConfig   `json:"storage"`
	Panel    rawPanelConfig  `json:"panel"`
	Reader   rawReaderConfig `json:"reader"`
	Log      LogConfig       `json:"log"`
}

type rawPanelConfig struct {
	MinRows           *int   `json:"minRows"`
	MaxRows           *int   `json:"maxRows"`
	PersistentColumns *int   `json:"persistentColumns"`
	Snapping          *bool  `json:"snapping"`
	DoubleTapWindow   string `json:"doubleTapWindow"`
}

type rawReaderConfig struct {
	Theme                string `json:"theme"`
	FontSize             *int   `json:"fontSize"`
	LineHeight           *int   `json:"lineHeight"`
	ShowParagraphNumbers *bool  `json:"showParagraphNumbers"`
	FormatType           string `json:"formatType"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path. If path is empty, uses
// ~/.config/ubreader/config.json. A missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, configDir, configFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	mergeConfig(cfg, &raw)

	cfg.Storage.Dir = ExpandPath(cfg.Storage.Dir)
	cfg.Document.Path = ExpandPath(cfg.Document.Path)
	cfg.Log.Path = ExpandPath(cfg.Log.Path)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func mergeConfig(cfg *Config, raw *rawConfig) {
	if raw.Document.Path != "" {
		cfg.Document.Path = raw.Document.Path
	}
	if raw.Storage.Dir != "" {
		cfg.Storage.Dir = raw.Storage.Dir
	}

	if raw.Panel.MinRows != nil {
		cfg.Panel.MinRows = *raw.Panel.MinRows
	}
	if raw.Panel.MaxRows != nil {
		cfg.Panel.MaxRows = *raw.Panel.MaxRows
	}
	if raw.Panel.PersistentColumns != nil {
		cfg.Panel.PersistentColumns = *raw.Panel.PersistentColumns
	}
	if raw.Panel.Snapping != nil {
		cfg.Panel.Snapping = *raw.Panel.Snapping
	}
	if raw.Panel.DoubleTapWindow != "" {
		if d, err := time.ParseDuration(raw.Panel.DoubleTapWindow); err == nil {
			cfg.Panel.DoubleTapWindow = d
		}
	}

	if raw.Reader.Theme != "" {
		cfg.Reader.Theme = raw.Reader.Theme
	}
	if raw.Reader.FontSize != nil {
		cfg.Reader.FontSize = *raw.Reader.FontSize
	}
	if raw.Reader.LineHeight != nil {
		cfg.Reader.LineHeight = *raw.Reader.LineHeight
	}
	if raw.Reader.ShowParagraphNumbers != nil {
		cfg.Reader.ShowParagraphNumbers = *raw.Reader.ShowParagraphNumbers
	}
	if raw.Reader.FormatType != "" {
		cfg.Reader.FormatType = raw.Reader.FormatType
	}

	if raw.Log.Path != "" {
		cfg.Log.Path = raw.Log.Path
	}
	if raw.Log.Level != "" {
		cfg.Log.Level = raw.Log.Level
	}
}

// ExpandPath expands ~ to the home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}
