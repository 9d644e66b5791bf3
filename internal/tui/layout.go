package tui

import "strings"

// pageLayout splits the terminal between the reader viewport and the pullup
// panel. The panel owns its rows while open; the reader gets the rest minus
// the hero and status chrome.
type pageLayout struct {
	windowWidth  int
	windowHeight int

	viewportWidth  int
	viewportHeight int
	panelRows      int
}

func newPageLayout() pageLayout {
	return pageLayout{
		windowWidth:    80,
		windowHeight:   24,
		viewportWidth:  80,
		viewportHeight: 20,
	}
}

func (l *pageLayout) Update(width, height, panelRows int) {
	l.windowWidth = width
	l.windowHeight = height
	innerWidth := width - viewportHorizontalPadding
	if innerWidth < minViewportWidth {
		innerWidth = minViewportWidth
	}
	l.viewportWidth = innerWidth

	if panelRows < 0 {
		panelRows = 0
	}
	l.panelRows = panelRows

	const chrome = 5 // hero line, status bar, info line, panel handle, spare
	readerHeight := height - chrome - panelRows
	if readerHeight < 4 {
		readerHeight = 4
	}
	l.viewportHeight = readerHeight
}

// panelTop returns the screen row of the panel handle, the grab target for
// pointer drags.
func (l *pageLayout) panelTop() int {
	top := l.windowHeight - l.panelRows - 1
	if top < 0 {
		top = 0
	}
	return top
}

// maxPanelRows caps the panel so the reader always keeps a few visible rows.
func (l *pageLayout) maxPanelRows() int {
	max := l.windowHeight - 8
	if max < 3 {
		max = 3
	}
	return max
}

type matchRange struct {
	start int
	end   int
}

func findMatches(content, query string) []matchRange {
	lowerContent := strings.ToLower(content)
	lowerQuery := strings.ToLower(query)
	if lowerQuery == "" {
		return nil
	}
	var matches []matchRange
	searchIdx := 0
	for {
		idx := strings.Index(lowerContent[searchIdx:], lowerQuery)
		if idx == -1 {
			break
		}
		start := searchIdx + idx
		end := start + len(lowerQuery)
		matches = append(matches, matchRange{start: start, end: end})
		searchIdx = end
		if searchIdx >= len(content) {
			break
		}
	}
	return matches
}

func (m *model) highlightMatches(content string, matches []matchRange, current int) string {
	if len(matches) == 0 {
		return content
	}
	var b strings.Builder
	pos := 0
	for idx, match := range matches {
		if match.start > len(content) {
			break
		}
		if match.start > pos {
			b.WriteString(content[pos:match.start])
		}
		segmentEnd := match.end
		if segmentEnd > len(content) {
			segmentEnd = len(content)
		}
		segment := content[match.start:segmentEnd]
		if idx == current {
			b.WriteString(m.styles.searchCurrent.Render(segment))
		} else {
			b.WriteString(m.styles.searchHighlight.Render(segment))
		}
		pos = segmentEnd
	}
	if pos < len(content) {
		b.WriteString(content[pos:])
	}
	return b.String()
}

func (m *model) applyLineHighlights(content string, cursor, selectionStart, selectionEnd int, hasSelection bool) string {
	if content == "" {
		return content
	}
	lines := strings.Split(content, "\n")
	for idx, line := range lines {
		inSelection := hasSelection && idx >= selectionStart && idx <= selectionEnd
		switch {
		case idx == cursor:
			lines[idx] = m.styles.currentLine.Render(line)
		case inSelection:
			lines[idx] = m.styles.selectionLine.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func lineNumberAtOffset(content string, offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset > len(content) {
		offset = len(content)
	}
	return strings.Count(content[:offset], "\n")
}

func splitLinesPreserve(content string) []string {
	if content == "" {
		return []string{""}
	}
	return strings.Split(content, "\n")
}

func indentMultiline(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func previewText(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}

type displayView struct {
	content        string
	paragraphLines map[int]string // line number -> paragraph id
	anchors        map[string]int // paper:section reference -> line
}

type contentBuilder struct {
	builder strings.Builder
	lines   int
}

func (cb *contentBuilder) WriteString(s string) {
	cb.builder.WriteString(s)
	cb.lines += strings.Count(s, "\n")
}

func (cb *contentBuilder) WriteRune(r rune) {
	cb.builder.WriteRune(r)
	if r == '\n' {
		cb.lines++
	}
}

func (cb *contentBuilder) String() string {
	return cb.builder.String()
}

func (cb *contentBuilder) Line() int {
	return cb.lines
}
