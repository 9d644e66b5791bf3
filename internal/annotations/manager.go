package annotations

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/dkeene/ubreader/internal/settings"
)

// Manager owns the notes and quotes of one document session. The in-memory
// collections are the source of truth while the session runs; durable
// storage is only the bootstrap for the next session. Writes go out as
// full-collection snapshots through the configured scheduler, so the last
// write to finish determines the persisted state.
type Manager struct {
	docID    string
	storage  Storage
	logger   *slog.Logger
	now      func() time.Time
	schedule func(func())
	rng      *rand.Rand

	notes    []Note
	quotes   []Quote
	reader   settings.Reader
	selected map[string]bool
}

// Option adjusts manager construction.
type Option func(*Manager)

// WithClock replaces the wall clock, for deterministic timestamps in tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithScheduler replaces the async persistence runner. The default runs each
// write in its own goroutine; tests pass a synchronous runner.
func WithScheduler(schedule func(func())) Option {
	return func(m *Manager) { m.schedule = schedule }
}

// WithLogger replaces the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithInitialSettings seeds the settings slice before any stored value is
// loaded.
func WithInitialSettings(reader settings.Reader) Option {
	return func(m *Manager) { m.reader = reader.Normalize() }
}

// NewManager builds an empty manager for the given document. Call Load to
// bootstrap from storage.
func NewManager(docID string, storage Storage, opts ...Option) *Manager {
	m := &Manager{
		docID:    docID,
		storage:  storage,
		logger:   slog.Default(),
		now:      time.Now,
		schedule: func(fn func()) { go fn() },
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		reader:   settings.Default(),
		selected: map[string]bool{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// DocID returns the document this manager is keyed to.
func (m *Manager) DocID() string { return m.docID }

// Load bootstraps the collections from durable storage. Failures yield empty
// collections and a logged warning; they never block the session.
func (m *Manager) Load() {
	notes, err := m.storage.ReadNotes(m.docID)
	if err != nil {
		m.logger.Warn("notes load failed, starting empty", "doc", m.docID, "err", err)
		notes = nil
	}
	quotes, err := m.storage.ReadQuotes(m.docID)
	if err != nil {
		m.logger.Warn("quotes load failed, starting empty", "doc", m.docID, "err", err)
		quotes = nil
	}
	m.notes = notes
	m.quotes = quotes
	m.selected = map[string]bool{}
	if reader, ok, err := m.storage.ReadSettings(); err != nil {
		m.logger.Warn("settings load failed, keeping defaults", "err", err)
	} else if ok {
		m.reader = reader.Normalize()
	}
}

// Notes returns the note collection in stored order (most recent first by
// construction). Callers sort through SortedNotes for display.
func (m *Manager) Notes() []Note {
	return append([]Note(nil), m.notes...)
}

// Quotes returns the quote collection in stored order.
func (m *Manager) Quotes() []Quote {
	return append([]Quote(nil), m.quotes...)
}

// AddNote completes the partial note (ID and timestamps when absent),
// prepends it, persists asynchronously, and returns the stored note.
func (m *Manager) AddNote(partial Note) Note {
	now := m.now()
	if partial.ID == "" {
		partial.ID = newID(now, m.rng)
	}
	if partial.CreatedAt.IsZero() {
		partial.CreatedAt = now
	}
	if partial.UpdatedAt.IsZero() {
		partial.UpdatedAt = partial.CreatedAt
	}
	m.notes = append([]Note{partial}, m.notes...)
	m.persistNotes()
	return partial
}

// UpdateNote rewrites a note's content and bumps UpdatedAt. An absent id is
// a no-op: a delete racing an edit must not crash the session.
func (m *Manager) UpdateNote(id, content string) bool {
	for i := range m.notes {
		if m.notes[i].ID != id {
			continue
		}
		m.notes[i].Content = content
		m.notes[i].UpdatedAt = m.now()
		m.persistNotes()
		return true
	}
	return false
}

// DeleteNote removes a note; absent ids are a no-op.
func (m *Manager) DeleteNote(id string) {
	kept := m.notes[:0]
	removed := false
	for _, note := range m.notes {
		if note.ID == id {
			removed = true
			continue
		}
		kept = append(kept, note)
	}
	m.notes = kept
	if removed {
		delete(m.selected, id)
		m.persistNotes()
	}
}

// AddQuote mirrors AddNote for the append-only quote collection.
func (m *Manager) AddQuote(partial Quote) Quote {
	now := m.now()
	if partial.ID == "" {
		partial.ID = newID(now, m.rng)
	}
	if partial.CreatedAt.IsZero() {
		partial.CreatedAt = now
	}
	m.quotes = append([]Quote{partial}, m.quotes...)
	m.persistQuotes()
	return partial
}

// DeleteQuote removes a quote; absent ids are a no-op.
func (m *Manager) DeleteQuote(id string) {
	kept := m.quotes[:0]
	removed := false
	for _, quote := range m.quotes {
		if quote.ID == id {
			removed = true
			continue
		}
		kept = append(kept, quote)
	}
	m.quotes = kept
	if removed {
		m.persistQuotes()
	}
}

// Settings returns the current reader settings slice.
func (m *Manager) Settings() settings.Reader {
	return m.reader
}

// SetSettings stores new reader settings and persists them asynchronously.
// The manager does not interpret the values.
func (m *Manager) SetSettings(reader settings.Reader) {
	m.reader = reader.Normalize()
	snapshot := m.reader
	m.schedule(func() {
		if err := m.storage.WriteSettings(snapshot); err != nil {
			m.logger.Warn("settings write failed", "err", err)
		}
	})
}

// Flush writes every collection to durable storage synchronously, bypassing
// the scheduler. The background writes stay best-effort; Flush exists for the
// moments the user explicitly asks for durability and wants to hear about
// failures.
func (m *Manager) Flush() error {
	var errs []error
	if err := m.storage.WriteNotes(m.docID, append([]Note(nil), m.notes...)); err != nil {
		errs = append(errs, fmt.Errorf("notes: %w", err))
	}
	if err := m.storage.WriteQuotes(m.docID, append([]Quote(nil), m.quotes...)); err != nil {
		errs = append(errs, fmt.Errorf("quotes: %w", err))
	}
	if err := m.storage.WriteSettings(m.reader); err != nil {
		errs = append(errs, fmt.Errorf("settings: %w", err))
	}
	return errors.Join(errs...)
}

func (m *Manager) persistNotes() {
	snapshot := append([]Note(nil), m.notes...)
	m.schedule(func() {
		if err := m.storage.WriteNotes(m.docID, snapshot); err != nil {
			m.logger.Warn("notes write failed", "doc", m.docID, "err", err)
		}
	})
}

func (m *Manager) persistQuotes() {
	snapshot := append([]Quote(nil), m.quotes...)
	m.schedule(func() {
		if err := m.storage.WriteQuotes(m.docID, snapshot); err != nil {
			m.logger.Warn("quotes write failed", "doc", m.docID, "err", err)
		}
	})
}
