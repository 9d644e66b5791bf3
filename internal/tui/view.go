package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dkeene/ubreader/internal/pullup"
)

func (m *model) View() string {
	m.syncLayout()
	m.refreshViewportIfDirty()

	parts := []string{m.heroView(), m.viewport.View()}
	if m.menuVisible {
		parts = append(parts, m.selectionMenuView())
	}
	if panel := m.renderPanel(); panel != "" {
		parts = append(parts, panel)
	}
	switch m.stage {
	case stageNoteEntry:
		parts = append(parts, m.composerView())
	case stageSearchEntry:
		parts = append(parts, m.searchComposerView())
	}
	parts = append(parts, m.statusBarView())
	if m.errorMessage != "" {
		parts = append(parts, m.styles.errorText.Render(m.errorMessage))
	}
	if m.infoMessage != "" {
		parts = append(parts, m.styles.helper.Render(m.infoMessage))
	}
	if m.helpVisible {
		parts = append(parts, m.keyLegendView())
	}
	return joinNonEmpty(parts)
}

func (m *model) heroView() string {
	title := m.styles.title.Render(m.config.Document.Title)
	return lipgloss.JoinVertical(lipgloss.Left, title, m.styles.helper.Render(heroTagline))
}

func (m *model) composerView() string {
	label := "New Note"
	if m.editingNoteID != "" {
		label = "Edit Note"
	}
	return joinNonEmpty([]string{
		m.styles.sectionHeader.Render(label),
		m.noteInput.View(),
		m.styles.helper.Render("Enter saves, Esc cancels."),
	})
}

func (m *model) searchComposerView() string {
	return joinNonEmpty([]string{
		m.styles.sectionHeader.Render("Search Document"),
		m.searchInput.View(),
		m.styles.helper.Render("Enter applies the search, Esc cancels."),
	})
}

func (m *model) selectionMenuView() string {
	entries := []string{
		m.styles.key.Render("n") + m.styles.keyDesc.Render(" note"),
		m.styles.key.Render("q") + m.styles.keyDesc.Render(" quote"),
		m.styles.key.Render("y") + m.styles.keyDesc.Render(" copy"),
	}
	return m.styles.menuBox.Render(strings.Join(entries, "  "))
}

func (m *model) statusBarView() string {
	state := m.store.State()
	stats := []string{
		fmt.Sprintf("Mode %s", m.modeLabel()),
		fmt.Sprintf("Notes %d", len(m.config.Manager.Notes())),
		fmt.Sprintf("Quotes %d", len(m.config.Manager.Quotes())),
	}
	if state.Open {
		stats = append(stats, fmt.Sprintf("Panel %s %d", tabLabels[state.ActiveTab], m.visiblePanelRows()))
	} else {
		stats = append(stats, "Panel closed")
	}
	if state.Persistent {
		stats = append(stats, "Pinned")
	}
	if status := m.searchStatusLine(); status != "" {
		stats = append(stats, status)
	}
	stats = append(stats, m.jobBadges()...)
	return m.styles.statusBar.Render(strings.Join(stats, "  •  "))
}

// jobBadges renders one footer badge per job kind with activity, in a fixed
// order so the bar does not jitter between renders.
func (m *model) jobBadges() []string {
	badges := make([]string, 0, len(m.jobActivity))
	for _, kind := range []jobKind{jobKindCopy, jobKindFlush} {
		snapshot, ok := m.jobActivity[kind]
		if !ok {
			continue
		}
		switch snapshot.Status {
		case jobStatusRunning:
			badges = append(badges, fmt.Sprintf("%s…", kind))
		case jobStatusFailed:
			badges = append(badges, fmt.Sprintf("%s ✗", kind))
		default:
			badges = append(badges, fmt.Sprintf("%s ✓", kind))
		}
	}
	return badges
}

func (m *model) searchStatusLine() string {
	if m.searchQuery == "" {
		return ""
	}
	if len(m.searchMatches) == 0 {
		return fmt.Sprintf("Search %q — no matches", m.searchQuery)
	}
	return fmt.Sprintf("Search %q — match %d/%d", m.searchQuery, m.searchMatchIdx+1, len(m.searchMatches))
}

func (m *model) modeLabel() string {
	switch {
	case m.mode == modeHighlight:
		return "HIGHLIGHT"
	case m.focus == focusPanel:
		return "PANEL"
	default:
		return "READ"
	}
}

type keyHint struct {
	Key         string
	Description string
}

func (m *model) keyLegendView() string {
	hints := []keyHint{
		{"↑/↓", "Move cursor"},
		{"v", "Highlight selection"},
		{"n/q/y", "Note / quote / copy selection"},
		{"p", "Toggle panel"},
		{"1-4", "Panel tabs"},
		{"tab", "Focus panel"},
		{"+/-", "Resize panel"},
		{"w", "Save annotations now"},
		{"/", "Search"},
		{"m/N", "Next/prev match"},
		{"[/]", "Jump sections"},
		{"g/G", "Top or bottom"},
		{"?", "Toggle cheatsheet"},
	}
	rows := []string{m.styles.sectionHeader.Render("Navigation Cheatsheet")}
	const columns = 3
	for i := 0; i < len(hints); i += columns {
		end := i + columns
		if end > len(hints) {
			end = len(hints)
		}
		var cells []string
		for _, hint := range hints[i:end] {
			key := m.styles.key.Render(hint.Key)
			desc := m.styles.keyDesc.Render(" " + hint.Description)
			cells = append(cells, lipgloss.JoinHorizontal(lipgloss.Top, key, desc))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return m.styles.legendBox.Render(strings.Join(rows, "\n"))
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n")
}

// panelTabFor maps a screen row inside the tab bar to its tab, used by click
// handling on the tab row.
func panelTabFor(index int) (pullup.Tab, bool) {
	if index < 0 || index >= len(pullup.Tabs) {
		return "", false
	}
	return pullup.Tabs[index], true
}
