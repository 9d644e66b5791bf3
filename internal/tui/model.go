// Package tui renders the reader: a document viewport on top and the pullup
// annotation panel sliding up from the bottom edge. All panel state flows
// through the pullup store; the model only reads it back when drawing.
package tui

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkeene/ubreader/internal/annotations"
	"github.com/dkeene/ubreader/internal/config"
	"github.com/dkeene/ubreader/internal/document"
	"github.com/dkeene/ubreader/internal/pullup"
)

// Config wires runtime collaborators into the TUI program.
type Config struct {
	Document *document.Document
	Manager  *annotations.Manager
	Panel    config.PanelConfig
	Logger   *slog.Logger
	// Clipboard overrides the system clipboard writer. Tests inject a fake;
	// the default is the OS clipboard.
	Clipboard func(string) error
}

// New returns a tea.Model ready to be mounted into a Program.
func New(cfg Config) tea.Model {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Clipboard == nil {
		cfg.Clipboard = clipboard.WriteAll
	}

	noteInput := textinput.New()
	noteInput.Placeholder = noteComposerPlaceholder
	noteInput.CharLimit = 500
	noteInput.Width = 70

	searchInput := textinput.New()
	searchInput.Placeholder = searchComposerPlaceholder
	searchInput.CharLimit = 120
	searchInput.Width = 60

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	layout := newPageLayout()
	store := pullup.NewStore(pullup.Config{
		MinHeight:            cfg.Panel.MinRows,
		MaxHeight:            cfg.Panel.MaxRows,
		PersistentBreakpoint: cfg.Panel.PersistentColumns,
	})

	m := &model{
		config:         cfg,
		stage:          stageReading,
		mode:           modeNormal,
		focus:          focusReader,
		noteInput:      noteInput,
		searchInput:    searchInput,
		viewport:       vp,
		layout:         layout,
		store:          store,
		jobs:           newJobBus(cfg.Logger),
		jobActivity:    map[jobKind]jobSnapshot{},
		sortOrder:      annotations.SortByEntry,
		searchMatchIdx: -1,
		viewportDirty:  true,
		styles:         themeStyles(cfg.Manager.Settings().Theme),
		infoMessage:    "Press ? for the key cheatsheet.",
	}
	m.tracker = pullup.NewTracker(pullup.TrackerConfig{
		Bounds:          store.Config(),
		Snapping:        cfg.Panel.Snapping,
		DoubleTapWindow: cfg.Panel.DoubleTapWindow,
		OnLive: func(h int) {
			m.panelLive = h
			m.panelLiveActive = true
			m.markViewportDirty()
		},
		OnCommit: func(h int) {
			m.panelLiveActive = false
			m.store.SetHeight(h)
			m.markViewportDirty()
		},
	})
	m.responsive = pullup.NewController(cfg.Panel.PersistentColumns, store)
	store.Subscribe(func(pullup.State) { m.markViewportDirty() })
	return m
}

type model struct {
	config Config
	stage  stage
	mode   interactionMode
	focus  focusRegion

	noteInput   textinput.Model
	searchInput textinput.Model
	viewport    viewport.Model

	layout     pageLayout
	store      *pullup.Store
	tracker    *pullup.Tracker
	responsive *pullup.Controller
	jobs       *jobBus
	// Latest snapshot per job kind, feeding the footer badges.
	jobActivity map[jobKind]jobSnapshot

	// Live panel height while a drag is in flight; the store only hears
	// about the committed height on release.
	panelLive       int
	panelLiveActive bool

	viewportContent string
	viewportLines   []string
	paragraphAt     map[int]string
	anchors         map[string]int
	anchorOrder     []string
	cursorLine      int
	lineCount       int
	viewportDirty   bool

	selectionAnchor int
	selectionActive bool
	menuVisible     bool
	menuToken       int

	editingNoteID string

	panelCursor int
	sortOrder   annotations.SortOrder

	searchQuery    string
	searchMatches  []matchRange
	searchMatchIdx int
	searchHits     []searchHit

	infoMessage  string
	errorMessage string
	helpVisible  bool

	styles styleSet
}

type searchHit struct {
	paragraphID string
	reference   string
	preview     string
	line        int
}

type clipboardResultMsg struct {
	count int
	err   error
}

type flushResultMsg struct {
	err error
}

type menuTimeoutMsg struct {
	token int
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.tracker.Cancel()
			return m, tea.Quit
		case tea.KeyEsc:
			return m.handleEsc()
		}
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.handleResize(msg.Width, msg.Height)
		return m, nil
	case menuTimeoutMsg:
		if msg.token == m.menuToken {
			m.menuVisible = false
		}
		return m, nil
	case jobSignalMsg:
		m.jobActivity[msg.Snapshot.Kind] = msg.Snapshot
		return m, nil
	case jobResultEnvelope:
		m.jobActivity[msg.Snapshot.Kind] = msg.Snapshot
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case clipboardResultMsg:
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("clipboard error: %v", msg.err)
			m.infoMessage = "Copy failed; the selection is unchanged."
		} else {
			m.errorMessage = ""
			m.infoMessage = fmt.Sprintf("Copied %d item(s) to the clipboard.", msg.count)
		}
		return m, nil
	case flushResultMsg:
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("save error: %v", msg.err)
			m.infoMessage = "Annotations are kept in memory; saving will be retried on the next change."
		} else {
			m.errorMessage = ""
			m.infoMessage = "Annotations saved."
		}
		return m, nil
	}
	return m, nil
}

func (m *model) handleEsc() (tea.Model, tea.Cmd) {
	switch m.stage {
	case stageNoteEntry:
		m.stage = stageReading
		m.noteInput.SetValue("")
		m.noteInput.Blur()
		m.editingNoteID = ""
		m.infoMessage = "Note entry canceled."
		return m, nil
	case stageSearchEntry:
		m.stage = stageReading
		m.searchInput.Blur()
		return m, nil
	}
	switch {
	case m.menuVisible:
		m.menuVisible = false
		return m, nil
	case m.mode == modeHighlight:
		m.mode = modeNormal
		m.selectionActive = false
		m.infoMessage = "Highlight mode disabled."
		m.markViewportDirty()
		return m, nil
	case m.focus == focusPanel:
		m.focus = focusReader
		m.infoMessage = "Reader focused."
		return m, nil
	}
	m.tracker.Cancel()
	return m, tea.Quit
}

func (m *model) handleResize(width, height int) {
	m.layout.windowWidth = width
	m.layout.windowHeight = height
	maxRows := m.config.Panel.MaxRows
	if maxRows <= 0 {
		m.layout.Update(width, height, 0)
		maxRows = m.layout.maxPanelRows()
	}
	m.store.SetBounds(m.config.Panel.MinRows, maxRows)
	m.tracker.SetBounds(m.store.Config())
	m.responsive.Observe(width)
	m.syncLayout()
	m.markViewportDirty()
}

// syncLayout recomputes the reader/panel split from the current panel state.
func (m *model) syncLayout() {
	m.layout.Update(m.layout.windowWidth, m.layout.windowHeight, m.visiblePanelRows())
	m.viewport.Width = m.layout.viewportWidth
	m.viewport.Height = m.layout.viewportHeight
}

func (m *model) visiblePanelRows() int {
	state := m.store.State()
	if !state.Open {
		return 0
	}
	if m.panelLiveActive {
		return m.panelLive
	}
	return state.Height
}

func (m *model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.MouseWheelUp, tea.MouseWheelDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case tea.MouseLeft:
		if m.tracker.Dragging() {
			m.tracker.Move(msg.Y, m.layout.windowHeight)
			m.syncLayout()
			return m, nil
		}
		if m.store.State().Open {
			switch msg.Y {
			case m.layout.panelTop():
				m.tracker.Press(msg.Y, m.layout.windowHeight)
			case m.layout.panelTop() + 1:
				m.clickTabBar(msg.X)
			}
		}
		return m, nil
	case tea.MouseMotion:
		if m.tracker.Dragging() {
			m.tracker.Move(msg.Y, m.layout.windowHeight)
			m.syncLayout()
		}
		return m, nil
	case tea.MouseRelease:
		if m.tracker.Dragging() {
			m.tracker.Release()
			m.syncLayout()
		}
		return m, nil
	}
	return m, nil
}

func (m *model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.stage {
	case stageNoteEntry:
		var cmd tea.Cmd
		m.noteInput, cmd = m.noteInput.Update(key)
		if key.Type == tea.KeyEnter {
			return m.commitNoteEntry(cmd)
		}
		return m, cmd
	case stageSearchEntry:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(key)
		if key.Type == tea.KeyEnter {
			m.stage = stageReading
			m.searchInput.Blur()
			m.applySearch(strings.TrimSpace(m.searchInput.Value()))
			return m, cmd
		}
		return m, cmd
	}

	switch key.String() {
	case "tab":
		if m.store.State().Open {
			if m.focus == focusReader {
				m.focus = focusPanel
				m.infoMessage = "Panel focused. Esc returns to the reader."
			} else {
				m.focus = focusReader
				m.infoMessage = "Reader focused."
			}
			m.markViewportDirty()
		}
		return m, nil
	case "p":
		m.store.Toggle()
		if !m.store.State().Open {
			m.focus = focusReader
		}
		m.syncLayout()
		return m, nil
	case "1", "2", "3", "4":
		idx := int(key.String()[0] - '1')
		m.store.SetActiveTab(pullup.Tabs[idx])
		m.panelCursor = 0
		m.syncLayout()
		return m, nil
	case "T":
		m.cycleTab()
		return m, nil
	case "+", "=":
		m.store.SetHeight(m.store.State().Height + 1)
		m.tracker.SetHeight(m.store.State().Height)
		m.syncLayout()
		return m, nil
	case "-":
		m.store.SetHeight(m.store.State().Height - 1)
		m.tracker.SetHeight(m.store.State().Height)
		m.syncLayout()
		return m, nil
	case "?":
		m.helpVisible = !m.helpVisible
		m.markViewportDirty()
		return m, nil
	case "w":
		return m, m.jobs.Start(jobKindFlush, flushJob(m.config.Manager))
	case "/":
		m.stage = stageSearchEntry
		m.searchInput.SetValue(m.searchQuery)
		m.searchInput.Focus()
		m.store.SetActiveTab(pullup.TabSearch)
		m.syncLayout()
		return m, nil
	}

	if m.focus == focusPanel {
		return m.handlePanelKey(key)
	}
	return m.handleReaderKey(key)
}

func (m *model) handleReaderKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	handled := true
	switch key.String() {
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "g":
		m.scrollToTop()
	case "G":
		m.scrollToBottom()
	case "]":
		m.jumpToRelativeSection(1)
	case "[":
		m.jumpToRelativeSection(-1)
	case "v":
		return m.toggleHighlightMode()
	case "y":
		return m.copySelection()
	case "n":
		return m.startNoteFromSelection()
	case "q":
		return m.addQuoteFromSelection()
	case "N":
		m.advanceSearch(-1)
	case "m":
		m.advanceSearch(1)
	default:
		handled = false
	}
	if handled {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(key)
	return m, cmd
}

// clickTabBar maps a click on the tab row to a tab switch. The bar splits
// the width into equal slots, which is close enough for pointer targets.
func (m *model) clickTabBar(x int) {
	slot := m.layout.viewportWidth / len(pullup.Tabs)
	if slot <= 0 {
		return
	}
	if tab, ok := panelTabFor(x / slot); ok {
		m.store.SetActiveTab(tab)
		m.panelCursor = 0
		m.syncLayout()
	}
}

func (m *model) cycleTab() {
	current := m.store.State().ActiveTab
	for i, tab := range pullup.Tabs {
		if tab == current {
			m.store.SetActiveTab(pullup.Tabs[(i+1)%len(pullup.Tabs)])
			m.panelCursor = 0
			m.syncLayout()
			return
		}
	}
	m.store.SetActiveTab(pullup.TabNotes)
}

func (m *model) toggleHighlightMode() (tea.Model, tea.Cmd) {
	if m.mode == modeHighlight {
		m.mode = modeNormal
		m.selectionActive = false
		m.menuVisible = false
		m.infoMessage = "Highlight mode disabled."
		m.markViewportDirty()
		return m, nil
	}
	if m.lineCount == 0 {
		return m, nil
	}
	m.mode = modeHighlight
	m.selectionAnchor = m.cursorLine
	m.selectionActive = true
	m.infoMessage = "Highlight mode. Move to expand, then n note, q quote, y copy."
	m.markViewportDirty()
	return m, m.showSelectionMenu()
}

// showSelectionMenu reveals the action menu and schedules its auto-hide. The
// token invalidates stale timers when the menu is re-shown.
func (m *model) showSelectionMenu() tea.Cmd {
	m.menuVisible = true
	m.menuToken++
	return menuTimeoutCmd(m.menuToken)
}

func (m *model) copySelection() (tea.Model, tea.Cmd) {
	text := m.selectedText()
	if text == "" {
		m.infoMessage = "Nothing selected. Press v to start a selection."
		return m, nil
	}
	m.menuVisible = false
	return m, m.jobs.Start(jobKindCopy, copyTextJob(m.config.Clipboard, text, 1))
}

func (m *model) startNoteFromSelection() (tea.Model, tea.Cmd) {
	if m.lineCount == 0 {
		return m, nil
	}
	m.stage = stageNoteEntry
	m.editingNoteID = ""
	m.noteInput.Placeholder = noteComposerPlaceholder
	m.noteInput.SetValue("")
	m.noteInput.Focus()
	m.menuVisible = false
	m.infoMessage = "Write the note and press Enter. The selection becomes its snippet."
	return m, nil
}

func (m *model) commitNoteEntry(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.noteInput.Value())
	m.noteInput.SetValue("")
	m.noteInput.Blur()
	m.stage = stageReading
	if value == "" {
		m.editingNoteID = ""
		m.infoMessage = "Empty note discarded."
		return m, cmd
	}
	if m.editingNoteID != "" {
		if m.config.Manager.UpdateNote(m.editingNoteID, value) {
			m.infoMessage = "Note updated."
		} else {
			m.infoMessage = "That note no longer exists."
		}
		m.editingNoteID = ""
		m.markViewportDirty()
		return m, cmd
	}
	paragraph, _ := m.paragraphAtCursor()
	note := m.config.Manager.AddNote(annotations.Note{
		Content:      value,
		ParagraphID:  paragraph.ID,
		Reference:    paragraph.Reference,
		SelectedText: m.selectedText(),
	})
	m.mode = modeNormal
	m.selectionActive = false
	m.store.SetActiveTab(pullup.TabNotes)
	m.syncLayout()
	m.infoMessage = fmt.Sprintf("Note saved at %s.", note.Reference)
	m.markViewportDirty()
	return m, cmd
}

func (m *model) addQuoteFromSelection() (tea.Model, tea.Cmd) {
	text := m.selectedText()
	if text == "" {
		m.infoMessage = "Select a passage with v before quoting."
		return m, nil
	}
	paragraph, _ := m.paragraphAtCursor()
	quote := m.config.Manager.AddQuote(annotations.Quote{
		Content:     text,
		ParagraphID: paragraph.ID,
		Reference:   paragraph.Reference,
	})
	m.mode = modeNormal
	m.selectionActive = false
	m.menuVisible = false
	m.store.SetActiveTab(pullup.TabQuotes)
	m.syncLayout()
	m.infoMessage = fmt.Sprintf("Quote saved at %s.", quote.Reference)
	m.markViewportDirty()
	return m, nil
}

// paragraphAtCursor resolves the paragraph the cursor line belongs to,
// walking upward past headers and blank lines.
func (m *model) paragraphAtCursor() (document.Paragraph, bool) {
	for line := m.cursorLine; line >= 0; line-- {
		if id, ok := m.paragraphAt[line]; ok {
			if p, found := m.config.Document.Paragraph(id); found {
				return p, true
			}
		}
	}
	return document.Paragraph{}, false
}

func (m *model) moveCursor(delta int) {
	if m.lineCount == 0 {
		return
	}
	target := m.cursorLine + delta
	if target < 0 {
		target = 0
	}
	if target >= m.lineCount {
		target = m.lineCount - 1
	}
	if target == m.cursorLine {
		return
	}
	m.cursorLine = target
	if m.mode != modeHighlight {
		m.selectionActive = false
	}
	m.markViewportDirty()
	m.refreshViewportIfDirty()
	m.ensureCursorVisible()
}

func (m *model) ensureCursorVisible() {
	if m.lineCount == 0 {
		return
	}
	line := m.cursorLine
	if line < 0 {
		line = 0
	}
	if line < m.viewport.YOffset {
		m.viewport.SetYOffset(line)
		return
	}
	lowerBound := m.viewport.YOffset + m.viewport.Height - 1
	if line > lowerBound {
		target := line - m.viewport.Height + 1
		if target < 0 {
			target = 0
		}
		m.viewport.SetYOffset(target)
	}
}

func (m *model) scrollToTop() {
	m.viewport.SetYOffset(0)
	if m.lineCount > 0 {
		m.cursorLine = 0
		if m.mode != modeHighlight {
			m.selectionActive = false
		}
		m.markViewportDirty()
	}
}

func (m *model) scrollToBottom() {
	target := m.lineCount - m.viewport.Height
	if target < 0 {
		target = 0
	}
	m.viewport.SetYOffset(target)
	if m.lineCount > 0 {
		m.cursorLine = m.lineCount - 1
		if m.mode != modeHighlight {
			m.selectionActive = false
		}
		m.markViewportDirty()
	}
}

func (m *model) jumpToRelativeSection(delta int) {
	if len(m.anchorOrder) == 0 {
		return
	}
	current := m.cursorLine
	if delta > 0 {
		for _, anchor := range m.anchorOrder {
			if m.anchors[anchor] > current {
				m.jumpToLine(m.anchors[anchor])
				m.infoMessage = fmt.Sprintf("Jumped to section %s.", anchor)
				return
			}
		}
		m.infoMessage = "Already at the last section."
		return
	}
	for i := len(m.anchorOrder) - 1; i >= 0; i-- {
		anchor := m.anchorOrder[i]
		if m.anchors[anchor] < current {
			m.jumpToLine(m.anchors[anchor])
			m.infoMessage = fmt.Sprintf("Jumped to section %s.", anchor)
			return
		}
	}
	m.infoMessage = "Already at the first section."
}

func (m *model) jumpToLine(line int) {
	if line < 0 {
		line = 0
	}
	if line >= m.lineCount && m.lineCount > 0 {
		line = m.lineCount - 1
	}
	m.cursorLine = line
	if m.mode != modeHighlight {
		m.selectionActive = false
	}
	m.viewport.SetYOffset(line)
	m.markViewportDirty()
	m.refreshViewportIfDirty()
}

func (m *model) selectionRange() (int, int, bool) {
	if !m.selectionActive || m.mode != modeHighlight || m.lineCount == 0 {
		return 0, 0, false
	}
	start, end := m.selectionAnchor, m.cursorLine
	if start > end {
		start, end = end, start
	}
	if start < 0 {
		start = 0
	}
	if end >= m.lineCount {
		end = m.lineCount - 1
	}
	return start, end, true
}

func (m *model) selectedText() string {
	start, end, ok := m.selectionRange()
	if !ok || len(m.viewportLines) == 0 {
		return ""
	}
	if end >= len(m.viewportLines) {
		end = len(m.viewportLines) - 1
	}
	var lines []string
	for i := start; i <= end; i++ {
		lines = append(lines, m.viewportLines[i])
	}
	return strings.TrimSpace(stripANSI(strings.Join(lines, "\n")))
}

var ansiEscapeCodes = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

func stripANSI(text string) string {
	return ansiEscapeCodes.ReplaceAllString(text, "")
}

func (m *model) applySearch(query string) {
	m.searchQuery = query
	if query == "" {
		m.searchMatches = nil
		m.searchHits = nil
		m.searchMatchIdx = -1
		m.infoMessage = "Cleared search."
		m.markViewportDirty()
		return
	}
	m.searchMatchIdx = 0
	m.markViewportDirty()
	m.refreshViewportIfDirty()
	if len(m.searchMatches) == 0 {
		m.infoMessage = fmt.Sprintf("No matches for %q.", query)
	} else {
		m.infoMessage = fmt.Sprintf("%d match(es) for %q. m/N cycles.", len(m.searchMatches), query)
	}
}

func (m *model) advanceSearch(delta int) {
	if m.searchQuery == "" {
		m.infoMessage = "Start a search with / first."
		return
	}
	if len(m.searchMatches) == 0 {
		m.infoMessage = fmt.Sprintf("No matches for %q.", m.searchQuery)
		return
	}
	count := len(m.searchMatches)
	m.searchMatchIdx = (m.searchMatchIdx + delta) % count
	if m.searchMatchIdx < 0 {
		m.searchMatchIdx += count
	}
	m.infoMessage = fmt.Sprintf("Match %d/%d for %q.", m.searchMatchIdx+1, count, m.searchQuery)
	m.markViewportDirty()
	m.refreshViewportIfDirty()
	m.scrollToCurrentMatch()
}

func (m *model) scrollToCurrentMatch() {
	if len(m.searchMatches) == 0 || m.searchMatchIdx < 0 || m.searchMatchIdx >= len(m.searchMatches) {
		return
	}
	match := m.searchMatches[m.searchMatchIdx]
	line := lineNumberAtOffset(m.viewportContent, match.start)
	target := line - 1
	if target < 0 {
		target = 0
	}
	m.viewport.SetYOffset(target)
}

func (m *model) markViewportDirty() {
	m.viewportDirty = true
}

func (m *model) refreshViewportIfDirty() {
	if m.viewportDirty {
		m.refreshViewport()
	}
}

func (m *model) refreshViewport() {
	m.viewportDirty = false
	prevYOffset := m.viewport.YOffset
	view := m.buildDisplayContent()
	m.viewportContent = view.content
	m.paragraphAt = view.paragraphLines
	m.anchors = view.anchors
	m.anchorOrder = orderedAnchors(view.anchors)
	m.viewportLines = splitLinesPreserve(view.content)
	m.lineCount = len(m.viewportLines)
	if m.cursorLine >= m.lineCount {
		m.cursorLine = m.lineCount - 1
	}
	if m.cursorLine < 0 {
		m.cursorLine = 0
	}

	content := view.content
	if m.searchQuery != "" {
		m.searchMatches = findMatches(content, m.searchQuery)
		m.searchHits = m.collectSearchHits()
		if len(m.searchMatches) == 0 {
			m.searchMatchIdx = -1
		} else if m.searchMatchIdx < 0 || m.searchMatchIdx >= len(m.searchMatches) {
			m.searchMatchIdx = 0
		}
		content = m.highlightMatches(content, m.searchMatches, m.searchMatchIdx)
	} else {
		m.searchMatches = nil
		m.searchHits = nil
		m.searchMatchIdx = -1
	}
	start, end, hasSelection := m.selectionRange()
	content = m.applyLineHighlights(content, m.cursorLine, start, end, hasSelection)
	m.viewport.SetContent(content)
	m.viewport.SetYOffset(m.clampYOffset(prevYOffset))
}

func (m *model) collectSearchHits() []searchHit {
	hits := make([]searchHit, 0, len(m.searchMatches))
	seen := map[string]bool{}
	for _, match := range m.searchMatches {
		line := lineNumberAtOffset(m.viewportContent, match.start)
		id := ""
		for l := line; l >= 0; l-- {
			if pid, ok := m.paragraphAt[l]; ok {
				id = pid
				break
			}
		}
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		paragraph, ok := m.config.Document.Paragraph(id)
		if !ok {
			continue
		}
		hits = append(hits, searchHit{
			paragraphID: id,
			reference:   paragraph.Reference,
			preview:     previewText(document.StripMarkup(paragraph.Text), 70),
			line:        line,
		})
	}
	return hits
}

func (m *model) clampYOffset(offset int) int {
	maxOffset := m.lineCount - m.viewport.Height
	if m.viewport.Height <= 0 {
		maxOffset = m.lineCount - 1
	}
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset < 0 {
		return 0
	}
	if offset > maxOffset {
		return maxOffset
	}
	return offset
}

func orderedAnchors(anchors map[string]int) []string {
	ordered := make([]string, 0, len(anchors))
	for anchor := range anchors {
		ordered = append(ordered, anchor)
	}
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && anchors[ordered[j]] < anchors[ordered[j-1]]; j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}
	return ordered
}
