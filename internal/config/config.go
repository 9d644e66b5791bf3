package config

import "time"

// Config is the root configuration structure.
type Config struct {
	Document DocumentConfig `json:"document"`
	Storage  StorageConfig  `json:"storage"`
	Panel    PanelConfig    `json:"panel"`
	Reader   ReaderConfig   `json:"reader"`
	Log      LogConfig      `json:"log"`
}

// DocumentConfig selects the text the reader opens.
type DocumentConfig struct {
	Path string `json:"path"` // empty = built-in sample
}

// StorageConfig configures where annotations and settings live.
type StorageConfig struct {
	Dir string `json:"dir"` // supports ~ expansion
}

// PanelConfig configures the pullup panel geometry and gestures. The
// terminal works in rows and columns, so the bounds here are row counts and
// the persistent threshold is a column count.
type PanelConfig struct {
	MinRows           int           `json:"minRows"`
	MaxRows           int           `json:"maxRows"`
	PersistentColumns int           `json:"persistentColumns"`
	Snapping          bool          `json:"snapping"`
	DoubleTapWindow   time.Duration `json:"doubleTapWindow"`
}

// ReaderConfig seeds the display settings for a first run; stored settings
// take precedence once they exist.
type ReaderConfig struct {
	Theme                string `json:"theme"`
	FontSize             int    `json:"fontSize"`
	LineHeight           int    `json:"lineHeight"`
	ShowParagraphNumbers bool   `json:"showParagraphNumbers"`
	FormatType           string `json:"formatType"`
}

// LogConfig configures the debug log sink.
type LogConfig struct {
	Path  string `json:"path"`
	Level string `json:"level"` // debug, info, warn, error
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Dir: "~/.local/share/ubreader",
		},
		Panel: PanelConfig{
			MinRows:           3,
			MaxRows:           0, // 0 = derive from the terminal height
			PersistentColumns: 120,
			Snapping:          true,
			DoubleTapWindow:   300 * time.Millisecond,
		},
		Reader: ReaderConfig{
			Theme:                "dark",
			FontSize:             16,
			LineHeight:           24,
			ShowParagraphNumbers: true,
			FormatType:           "styled",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate repairs out-of-range values in place.
func (c *Config) Validate() error {
	def := Default()
	if c.Panel.MinRows <= 0 {
		c.Panel.MinRows = def.Panel.MinRows
	}
	if c.Panel.MaxRows < 0 {
		c.Panel.MaxRows = 0
	}
	if c.Panel.MaxRows > 0 && c.Panel.MaxRows < c.Panel.MinRows {
		c.Panel.MaxRows = c.Panel.MinRows
	}
	if c.Panel.PersistentColumns <= 0 {
		c.Panel.PersistentColumns = def.Panel.PersistentColumns
	}
	if c.Panel.DoubleTapWindow <= 0 {
		c.Panel.DoubleTapWindow = def.Panel.DoubleTapWindow
	}
	return nil
}
