package document

import (
	"regexp"
	"strings"

	"github.com/dkeene/ubreader/internal/settings"
)

var (
	italicPattern     = regexp.MustCompile(`\*([^*]+)\*`)
	underlinePattern  = regexp.MustCompile(`_([^_]+)_`)
	whitespacePattern = regexp.MustCompile(`[ \t]+`)
)

// Markup maps the inline emphasis spans of a paragraph onto whatever the
// renderer uses for them. The zero value leaves spans unstyled.
type Markup struct {
	Italic    func(string) string
	Underline func(string) string
}

// Format prepares paragraph text for display. Plain output strips the
// emphasis markers; styled output replaces them through the markup hooks.
func Format(text string, format settings.FormatType, markup Markup) string {
	text = Clean(text)
	if format == settings.FormatPlain {
		return StripMarkup(text)
	}
	text = replaceSpans(text, italicPattern, markup.Italic)
	text = replaceSpans(text, underlinePattern, markup.Underline)
	return text
}

// StripMarkup removes emphasis markers without styling the spans.
func StripMarkup(text string) string {
	text = replaceSpans(text, italicPattern, nil)
	return replaceSpans(text, underlinePattern, nil)
}

// Clean collapses runs of spaces and tabs left over from source formatting.
func Clean(text string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

func replaceSpans(text string, pattern *regexp.Regexp, style func(string) string) string {
	return pattern.ReplaceAllStringFunc(text, func(match string) string {
		inner := pattern.FindStringSubmatch(match)[1]
		if style == nil {
			return inner
		}
		return style(inner)
	})
}
