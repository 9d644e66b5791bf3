package annotations

import "strings"

// copyDelimiter separates notes in clipboard text.
const copyDelimiter = "\n\n"

// ToggleSelected flips a note's membership in the batch selection. Unknown
// ids select nothing.
func (m *Manager) ToggleSelected(id string) {
	if !m.hasNote(id) {
		return
	}
	if m.selected[id] {
		delete(m.selected, id)
		return
	}
	m.selected[id] = true
}

// SelectAll marks every note selected.
func (m *Manager) SelectAll() {
	for _, note := range m.notes {
		m.selected[note.ID] = true
	}
}

// DeselectAll clears the batch selection.
func (m *Manager) DeselectAll() {
	m.selected = map[string]bool{}
}

// Selected reports whether a note is in the batch selection.
func (m *Manager) Selected(id string) bool {
	return m.selected[id]
}

// SelectedCount returns the number of selected notes still present in the
// collection.
func (m *Manager) SelectedCount() int {
	count := 0
	for _, note := range m.notes {
		if m.selected[note.ID] {
			count++
		}
	}
	return count
}

// CopySelectedText builds the clipboard payload for the selected notes in
// stored order: selected text, content, and reference per note, notes
// separated by a blank line. The second return is the note count; writing to
// the actual clipboard is the caller's job so its failure can surface to the
// user.
func (m *Manager) CopySelectedText() (string, int) {
	blocks := []string{}
	for _, note := range m.notes {
		if !m.selected[note.ID] {
			continue
		}
		lines := []string{}
		if note.SelectedText != "" {
			lines = append(lines, "\""+note.SelectedText+"\"")
		}
		if note.Content != "" {
			lines = append(lines, note.Content)
		}
		lines = append(lines, "— "+note.Reference)
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, copyDelimiter), len(blocks)
}

// DeleteSelected removes every selected note and returns how many went.
// Confirmation is the caller's concern; by the time this runs the user has
// already agreed.
func (m *Manager) DeleteSelected() int {
	ids := make([]string, 0, len(m.selected))
	for _, note := range m.notes {
		if m.selected[note.ID] {
			ids = append(ids, note.ID)
		}
	}
	for _, id := range ids {
		m.DeleteNote(id)
	}
	return len(ids)
}

func (m *Manager) hasNote(id string) bool {
	for _, note := range m.notes {
		if note.ID == id {
			return true
		}
	}
	return false
}
