package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkeene/ubreader/internal/annotations"
	"github.com/dkeene/ubreader/internal/pullup"
	"github.com/dkeene/ubreader/internal/settings"
)

func (m *model) handlePanelKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.store.State()
	switch state.ActiveTab {
	case pullup.TabNotes:
		return m.handleNotesKey(key)
	case pullup.TabQuotes:
		return m.handleQuotesKey(key)
	case pullup.TabSettings:
		return m.handleSettingsKey(key)
	case pullup.TabSearch:
		return m.handleSearchTabKey(key)
	}
	return m, nil
}

func (m *model) movePanelCursor(delta, count int) {
	if count == 0 {
		m.panelCursor = 0
		return
	}
	m.panelCursor += delta
	if m.panelCursor < 0 {
		m.panelCursor = 0
	}
	if m.panelCursor >= count {
		m.panelCursor = count - 1
	}
}

func (m *model) sortedNotes() []annotations.Note {
	return annotations.SortedNotes(m.config.Manager.Notes(), m.sortOrder)
}

func (m *model) sortedQuotes() []annotations.Quote {
	return annotations.SortedQuotes(m.config.Manager.Quotes(), m.sortOrder)
}

func (m *model) handleNotesKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	notes := m.sortedNotes()
	switch key.String() {
	case "up", "k":
		m.movePanelCursor(-1, len(notes))
	case "down", "j":
		m.movePanelCursor(1, len(notes))
	case " ":
		if m.panelCursor < len(notes) {
			m.config.Manager.ToggleSelected(notes[m.panelCursor].ID)
			m.infoMessage = fmt.Sprintf("%d note(s) selected.", m.config.Manager.SelectedCount())
		}
	case "a":
		m.config.Manager.SelectAll()
		m.infoMessage = fmt.Sprintf("Selected all %d note(s).", m.config.Manager.SelectedCount())
	case "A":
		m.config.Manager.DeselectAll()
		m.infoMessage = "Selection cleared."
	case "c":
		text, count := m.config.Manager.CopySelectedText()
		if count == 0 {
			m.infoMessage = "Select notes with space before copying."
			return m, nil
		}
		return m, m.jobs.Start(jobKindCopy, copyTextJob(m.config.Clipboard, text, count))
	case "d":
		if m.panelCursor < len(notes) {
			m.config.Manager.DeleteNote(notes[m.panelCursor].ID)
			m.movePanelCursor(0, len(notes)-1)
			m.infoMessage = "Note deleted."
		}
	case "D":
		deleted := m.config.Manager.DeleteSelected()
		if deleted == 0 {
			m.infoMessage = "No notes selected."
			return m, nil
		}
		m.movePanelCursor(0, len(notes)-deleted)
		m.infoMessage = fmt.Sprintf("Deleted %d note(s).", deleted)
	case "e":
		if m.panelCursor < len(notes) {
			note := notes[m.panelCursor]
			m.stage = stageNoteEntry
			m.editingNoteID = note.ID
			m.noteInput.Placeholder = noteComposerPlaceholder
			m.noteInput.SetValue(note.Content)
			m.noteInput.Focus()
			m.infoMessage = fmt.Sprintf("Editing note at %s.", note.Reference)
		}
	case "s":
		m.toggleSortOrder()
	default:
		return m, nil
	}
	m.markViewportDirty()
	return m, nil
}

func (m *model) handleQuotesKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	quotes := m.sortedQuotes()
	switch key.String() {
	case "up", "k":
		m.movePanelCursor(-1, len(quotes))
	case "down", "j":
		m.movePanelCursor(1, len(quotes))
	case "c":
		if m.panelCursor < len(quotes) {
			quote := quotes[m.panelCursor]
			payload := fmt.Sprintf("%s\n— %s", quote.Content, quote.Reference)
			return m, m.jobs.Start(jobKindCopy, copyTextJob(m.config.Clipboard, payload, 1))
		}
	case "d":
		if m.panelCursor < len(quotes) {
			m.config.Manager.DeleteQuote(quotes[m.panelCursor].ID)
			m.movePanelCursor(0, len(quotes)-1)
			m.infoMessage = "Quote deleted."
		}
	case "s":
		m.toggleSortOrder()
	default:
		return m, nil
	}
	m.markViewportDirty()
	return m, nil
}

func (m *model) toggleSortOrder() {
	if m.sortOrder == annotations.SortByEntry {
		m.sortOrder = annotations.SortByPaper
		m.infoMessage = "Sorted by document position."
	} else {
		m.sortOrder = annotations.SortByEntry
		m.infoMessage = "Sorted by entry time, newest first."
	}
	m.panelCursor = 0
}

func (m *model) handleSettingsKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	reader := m.config.Manager.Settings()
	changed := true
	switch key.String() {
	case "f":
		reader.FontSize++
	case "F":
		reader.FontSize--
	case "l":
		reader.LineHeight++
	case "L":
		reader.LineHeight--
	case "t":
		reader.Theme = nextTheme(reader.Theme)
	case "x":
		if reader.FormatType == settings.FormatStyled {
			reader.FormatType = settings.FormatPlain
		} else {
			reader.FormatType = settings.FormatStyled
		}
	case "#":
		reader.ShowParagraphNumbers = !reader.ShowParagraphNumbers
	default:
		changed = false
	}
	if !changed {
		return m, nil
	}
	reader = reader.Normalize()
	m.config.Manager.SetSettings(reader)
	m.styles = themeStyles(reader.Theme)
	m.infoMessage = "Settings updated."
	m.markViewportDirty()
	return m, nil
}

func nextTheme(theme settings.Theme) settings.Theme {
	switch theme {
	case settings.ThemeDark:
		return settings.ThemeLight
	case settings.ThemeLight:
		return settings.ThemeSepia
	default:
		return settings.ThemeDark
	}
}

func (m *model) handleSearchTabKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		m.movePanelCursor(-1, len(m.searchHits))
	case "down", "j":
		m.movePanelCursor(1, len(m.searchHits))
	case "enter":
		if m.panelCursor < len(m.searchHits) {
			hit := m.searchHits[m.panelCursor]
			m.focus = focusReader
			m.jumpToLine(hit.line)
			m.infoMessage = fmt.Sprintf("Jumped to %s.", hit.reference)
		}
	default:
		return m, nil
	}
	m.markViewportDirty()
	return m, nil
}

// renderPanel draws the pullup block: the drag handle, the tab bar, and the
// active tab's content padded or clipped to the panel height.
func (m *model) renderPanel() string {
	state := m.store.State()
	if !state.Open {
		return ""
	}
	rows := m.visiblePanelRows()
	if rows < 1 {
		rows = 1
	}
	width := m.layout.viewportWidth

	handle := m.renderHandle(state, width)
	tabs := m.renderTabBar(state)
	body := m.renderTabBody(state, rows-1)
	return strings.Join([]string{handle, tabs, body}, "\n")
}

func (m *model) renderHandle(state pullup.State, width int) string {
	grip := " ⠿ "
	if m.tracker.Dragging() {
		grip = " ⠶ "
	}
	side := (width - len([]rune(grip))) / 2
	if side < 1 {
		side = 1
	}
	line := strings.Repeat("─", side) + grip + strings.Repeat("─", side)
	if state.Persistent {
		line += " ⊙"
	}
	return m.styles.panelHandle.Render(line)
}

func (m *model) renderTabBar(state pullup.State) string {
	cells := make([]string, 0, len(pullup.Tabs))
	for i, tab := range pullup.Tabs {
		label := fmt.Sprintf("%d %s", i+1, tabLabels[tab])
		switch tab {
		case pullup.TabNotes:
			label = fmt.Sprintf("%s (%d)", label, len(m.config.Manager.Notes()))
		case pullup.TabQuotes:
			label = fmt.Sprintf("%s (%d)", label, len(m.config.Manager.Quotes()))
		}
		if tab == state.ActiveTab {
			cells = append(cells, m.styles.tabActive.Render(label))
		} else {
			cells = append(cells, m.styles.tabInactive.Render(label))
		}
	}
	return strings.Join(cells, " ")
}

func (m *model) renderTabBody(state pullup.State, rows int) string {
	if rows < 1 {
		rows = 1
	}
	var lines []string
	switch state.ActiveTab {
	case pullup.TabNotes:
		lines = m.notesTabLines()
	case pullup.TabQuotes:
		lines = m.quotesTabLines()
	case pullup.TabSettings:
		lines = m.settingsTabLines()
	case pullup.TabSearch:
		lines = m.searchTabLines()
	}
	return clipToRows(lines, rows, m.panelCursor)
}

func (m *model) notesTabLines() []string {
	notes := m.sortedNotes()
	header := fmt.Sprintf("%d note(s) · %s · %d selected", len(notes), sortLabel(m.sortOrder), m.config.Manager.SelectedCount())
	lines := []string{m.styles.helper.Render(header)}
	if len(notes) == 0 {
		lines = append(lines, m.styles.helper.Render("No notes yet. Select text with v, then press n."))
		return lines
	}
	for i, note := range notes {
		cursor := " "
		if m.focus == focusPanel && i == m.panelCursor {
			cursor = ">"
		}
		mark := "[ ]"
		if m.config.Manager.Selected(note.ID) {
			mark = m.styles.selectedMark.Render("[x]")
		}
		row := fmt.Sprintf("%s %s %s %s", cursor, mark, m.styles.paragraphNumber.Render(note.Reference), previewText(note.Content, 60))
		lines = append(lines, row)
	}
	return lines
}

func (m *model) quotesTabLines() []string {
	quotes := m.sortedQuotes()
	header := fmt.Sprintf("%d quote(s) · %s", len(quotes), sortLabel(m.sortOrder))
	lines := []string{m.styles.helper.Render(header)}
	if len(quotes) == 0 {
		lines = append(lines, m.styles.helper.Render("No quotes yet. Select a passage with v, then press q."))
		return lines
	}
	for i, quote := range quotes {
		cursor := " "
		if m.focus == focusPanel && i == m.panelCursor {
			cursor = ">"
		}
		row := fmt.Sprintf("%s %s %s", cursor, m.styles.paragraphNumber.Render(quote.Reference), previewText(quote.Content, 64))
		lines = append(lines, row)
	}
	return lines
}

func sortLabel(order annotations.SortOrder) string {
	if order == annotations.SortByPaper {
		return "document order"
	}
	return "newest first"
}

func (m *model) settingsTabLines() []string {
	reader := m.config.Manager.Settings()
	return []string{
		m.styles.helper.Render("Reader settings (persisted immediately)"),
		fmt.Sprintf("  Font size          %2d   f/F to adjust", reader.FontSize),
		fmt.Sprintf("  Line height        %2d   l/L to adjust", reader.LineHeight),
		fmt.Sprintf("  Theme            %-5s   t to cycle", reader.Theme),
		fmt.Sprintf("  Formatting      %-6s   x to toggle", reader.FormatType),
		fmt.Sprintf("  Paragraph nums  %6t   # to toggle", reader.ShowParagraphNumbers),
	}
}

func (m *model) searchTabLines() []string {
	if m.searchQuery == "" {
		return []string{m.styles.helper.Render("Press / to search the document.")}
	}
	header := fmt.Sprintf("%d paragraph(s) match %q", len(m.searchHits), m.searchQuery)
	lines := []string{m.styles.helper.Render(header)}
	for i, hit := range m.searchHits {
		cursor := " "
		if m.focus == focusPanel && i == m.panelCursor {
			cursor = ">"
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", cursor, m.styles.paragraphNumber.Render(hit.reference), hit.preview))
	}
	return lines
}

// clipToRows windows a line list to the panel height, keeping the cursor row
// visible. The header line at index 0 always stays.
func clipToRows(lines []string, rows, cursor int) string {
	for len(lines) < rows {
		lines = append(lines, "")
	}
	if len(lines) <= rows {
		return strings.Join(lines, "\n")
	}
	visible := rows - 1 // minus the pinned header
	start := 0
	cursorRow := cursor + 1 // list rows start below the header
	if cursorRow >= visible {
		start = cursorRow - visible + 1
	}
	if start+visible > len(lines)-1 {
		start = len(lines) - 1 - visible
	}
	if start < 0 {
		start = 0
	}
	out := append([]string{lines[0]}, lines[1+start:1+start+visible]...)
	return strings.Join(out, "\n")
}
