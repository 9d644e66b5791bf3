package tui

import (
	"fmt"

	"github.com/muesli/reflow/wordwrap"

	"github.com/dkeene/ubreader/internal/document"
	"github.com/dkeene/ubreader/internal/settings"
)

// buildDisplayContent lays the document out as viewport text, recording which
// line every paragraph starts on and where each section begins so cursor
// moves, selections, and section jumps can address the structure.
func (m *model) buildDisplayContent() displayView {
	cb := &contentBuilder{}
	paragraphLines := map[int]string{}
	anchors := map[string]int{}
	reader := m.config.Manager.Settings()
	wrap := m.wrapWidth(2)
	doc := m.config.Document

	cb.WriteString(m.styles.title.Render(doc.Title))
	cb.WriteRune('\n')

	for _, paper := range doc.Papers {
		cb.WriteRune('\n')
		header := fmt.Sprintf("Paper %d — %s", paper.Number, paper.Title)
		if paper.Title == "" {
			header = fmt.Sprintf("Paper %d", paper.Number)
		}
		cb.WriteString(m.styles.sectionHeader.Render(header))
		cb.WriteRune('\n')
		for _, section := range paper.Sections {
			cb.WriteRune('\n')
			anchors[fmt.Sprintf("%d:%d", paper.Number, section.Number)] = cb.Line()
			sectionHeader := fmt.Sprintf("%d. %s", section.Number, section.Title)
			if section.Title == "" {
				sectionHeader = fmt.Sprintf("Section %d", section.Number)
			}
			cb.WriteString(m.styles.sectionHeader.Render(sectionHeader))
			cb.WriteRune('\n')
			for _, paragraph := range section.Paragraphs {
				paragraphLines[cb.Line()] = paragraph.ID
				text := m.formatParagraph(paragraph, reader)
				cb.WriteString(indentMultiline(wordwrap.String(text, wrap), "  "))
				cb.WriteRune('\n')
			}
		}
	}

	return displayView{
		content:        cb.String(),
		paragraphLines: paragraphLines,
		anchors:        anchors,
	}
}

func (m *model) formatParagraph(paragraph document.Paragraph, reader settings.Reader) string {
	markup := document.Markup{
		Italic:    func(s string) string { return m.styles.emphasis.Render(s) },
		Underline: func(s string) string { return m.styles.underline.Render(s) },
	}
	text := document.Format(paragraph.Text, reader.FormatType, markup)
	if reader.ShowParagraphNumbers {
		return m.styles.paragraphNumber.Render(paragraph.Reference) + " " + text
	}
	return text
}

func (m *model) wrapWidth(padding int) int {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	if padding < 0 {
		padding = 0
	}
	available := width - padding
	if available < 20 {
		available = 20
	}
	return available
}
