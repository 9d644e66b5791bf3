// Package settings holds the reader display preferences. The values are
// stored and forwarded opaquely by the annotation manager; only the
// rendering layer interprets them.
package settings

// Theme names a color scheme understood by the rendering layer.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeSepia Theme = "sepia"
)

// FormatType selects how inline emphasis markers in paragraph text are
// treated.
type FormatType string

const (
	FormatStyled FormatType = "styled"
	FormatPlain  FormatType = "plain"
)

// Reader is the user-adjustable display configuration.
type Reader struct {
	FontSize             int        `json:"fontSize"`
	LineHeight           int        `json:"lineHeight"`
	FontFamily           string     `json:"fontFamily"`
	Theme                Theme      `json:"theme"`
	ShowParagraphNumbers bool       `json:"showParagraphNumbers"`
	FormatType           FormatType `json:"formatType"`
}

// Default returns the out-of-the-box reader settings.
func Default() Reader {
	return Reader{
		FontSize:             16,
		LineHeight:           24,
		FontFamily:           "serif",
		Theme:                ThemeDark,
		ShowParagraphNumbers: true,
		FormatType:           FormatStyled,
	}
}

// Normalize fills zero-valued fields from the defaults so partially stored
// settings still render.
func (r Reader) Normalize() Reader {
	def := Default()
	if r.FontSize <= 0 {
		r.FontSize = def.FontSize
	}
	if r.LineHeight <= 0 {
		r.LineHeight = def.LineHeight
	}
	if r.FontFamily == "" {
		r.FontFamily = def.FontFamily
	}
	switch r.Theme {
	case ThemeLight, ThemeDark, ThemeSepia:
	default:
		r.Theme = def.Theme
	}
	switch r.FormatType {
	case FormatStyled, FormatPlain:
	default:
		r.FormatType = def.FormatType
	}
	return r
}
