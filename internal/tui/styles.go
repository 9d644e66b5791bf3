package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dkeene/ubreader/internal/settings"
)

// styleSet carries every style the views reach for, pre-resolved for the
// active theme so a theme switch is one assignment.
type styleSet struct {
	title           lipgloss.Style
	sectionHeader   lipgloss.Style
	paragraphNumber lipgloss.Style
	bodyText        lipgloss.Style
	emphasis        lipgloss.Style
	underline       lipgloss.Style
	helper          lipgloss.Style
	errorText       lipgloss.Style
	statusBar       lipgloss.Style
	currentLine     lipgloss.Style
	selectionLine   lipgloss.Style
	searchHighlight lipgloss.Style
	searchCurrent   lipgloss.Style
	panelHandle     lipgloss.Style
	panelBox        lipgloss.Style
	tabActive       lipgloss.Style
	tabInactive     lipgloss.Style
	selectedMark    lipgloss.Style
	menuBox         lipgloss.Style
	key             lipgloss.Style
	keyDesc         lipgloss.Style
	legendBox       lipgloss.Style
	helpBox         lipgloss.Style
}

func themeStyles(theme settings.Theme) styleSet {
	var (
		accent    lipgloss.Color
		body      lipgloss.Color
		muted     lipgloss.Color
		cursorBG  lipgloss.Color
		selectBG  lipgloss.Color
		handleFG  lipgloss.Color
		statusBG  lipgloss.Color
		statusFG  lipgloss.Color
		inkOnMark lipgloss.Color
	)
	switch theme {
	case settings.ThemeLight:
		accent = lipgloss.Color("26")
		body = lipgloss.Color("235")
		muted = lipgloss.Color("245")
		cursorBG = lipgloss.Color("153")
		selectBG = lipgloss.Color("189")
		handleFG = lipgloss.Color("60")
		statusBG = lipgloss.Color("153")
		statusFG = lipgloss.Color("235")
		inkOnMark = lipgloss.Color("0")
	case settings.ThemeSepia:
		accent = lipgloss.Color("130")
		body = lipgloss.Color("137")
		muted = lipgloss.Color("101")
		cursorBG = lipgloss.Color("180")
		selectBG = lipgloss.Color("187")
		handleFG = lipgloss.Color("94")
		statusBG = lipgloss.Color("180")
		statusFG = lipgloss.Color("52")
		inkOnMark = lipgloss.Color("52")
	default: // dark
		accent = lipgloss.Color("81")
		body = lipgloss.Color("252")
		muted = lipgloss.Color("244")
		cursorBG = lipgloss.Color("24")
		selectBG = lipgloss.Color("237")
		handleFG = lipgloss.Color("103")
		statusBG = lipgloss.Color("24")
		statusFG = lipgloss.Color("252")
		inkOnMark = lipgloss.Color("0")
	}

	return styleSet{
		title:           lipgloss.NewStyle().Bold(true).Foreground(accent).Underline(true),
		sectionHeader:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		paragraphNumber: lipgloss.NewStyle().Foreground(muted),
		bodyText:        lipgloss.NewStyle().Foreground(body),
		emphasis:        lipgloss.NewStyle().Italic(true).Foreground(body),
		underline:       lipgloss.NewStyle().Underline(true).Foreground(body),
		helper:          lipgloss.NewStyle().Foreground(muted),
		errorText:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		statusBar:       lipgloss.NewStyle().Foreground(statusFG).Background(statusBG).Padding(0, 1),
		currentLine:     lipgloss.NewStyle().Background(cursorBG),
		selectionLine:   lipgloss.NewStyle().Background(selectBG),
		searchHighlight: lipgloss.NewStyle().Foreground(inkOnMark).Background(lipgloss.Color("190")),
		searchCurrent:   lipgloss.NewStyle().Bold(true).Foreground(inkOnMark).Background(lipgloss.Color("229")),
		panelHandle:     lipgloss.NewStyle().Foreground(handleFG),
		panelBox:        lipgloss.NewStyle().BorderTop(true).BorderStyle(lipgloss.NormalBorder()).BorderForeground(handleFG),
		tabActive:       lipgloss.NewStyle().Bold(true).Foreground(statusFG).Background(statusBG).Padding(0, 1),
		tabInactive:     lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		selectedMark:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		menuBox:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1),
		key:             lipgloss.NewStyle().Bold(true).Foreground(inkOnMark).Background(lipgloss.Color("179")).Padding(0, 1),
		keyDesc:         lipgloss.NewStyle().Foreground(muted),
		legendBox:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(handleFG).Padding(1, 2),
		helpBox:         lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(accent).Padding(1, 2),
	}
}
