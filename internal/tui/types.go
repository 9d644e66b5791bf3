package tui

import "github.com/dkeene/ubreader/internal/pullup"

type stage int

const (
	stageReading stage = iota
	stageNoteEntry
	stageSearchEntry
)

type interactionMode int

const (
	modeNormal interactionMode = iota
	modeHighlight
)

// focusRegion says which surface consumes navigation keys.
type focusRegion int

const (
	focusReader focusRegion = iota
	focusPanel
)

const heroTagline = "Read, annotate, and collect passages without leaving the terminal."

const (
	minViewportWidth          = 40
	viewportHorizontalPadding = 4
	selectionMenuTimeoutSecs  = 5
)

var tabLabels = map[pullup.Tab]string{
	pullup.TabNotes:    "Notes",
	pullup.TabQuotes:   "Quotes",
	pullup.TabSettings: "Settings",
	pullup.TabSearch:   "Search",
}

const (
	noteComposerPlaceholder   = "Write your note and press Enter…"
	searchComposerPlaceholder = "Search within the document…"
)
