package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkeene/ubreader/internal/annotations"
)

func copyTextJob(write func(string) error, text string, count int) jobRunner {
	return func(context.Context) (tea.Msg, error) {
		if err := write(text); err != nil {
			return clipboardResultMsg{err: err}, err
		}
		return clipboardResultMsg{count: count}, nil
	}
}

func flushJob(manager *annotations.Manager) jobRunner {
	return func(context.Context) (tea.Msg, error) {
		err := manager.Flush()
		return flushResultMsg{err: err}, err
	}
}

func menuTimeoutCmd(token int) tea.Cmd {
	return tea.Tick(selectionMenuTimeoutSecs*time.Second, func(time.Time) tea.Msg {
		return menuTimeoutMsg{token: token}
	})
}
