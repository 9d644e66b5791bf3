package storage

import (
	"github.com/dkeene/ubreader/internal/annotations"
	"github.com/dkeene/ubreader/internal/settings"
)

// Memory is an in-process storage implementation used by tests and the
// read-only demo mode.
type Memory struct {
	notes  map[string][]annotations.Note
	quotes map[string][]annotations.Quote
	reader *settings.Reader
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		notes:  map[string][]annotations.Note{},
		quotes: map[string][]annotations.Quote{},
	}
}

func (s *Memory) ReadNotes(docID string) ([]annotations.Note, error) {
	return append([]annotations.Note(nil), s.notes[docID]...), nil
}

func (s *Memory) WriteNotes(docID string, notes []annotations.Note) error {
	s.notes[docID] = append([]annotations.Note(nil), notes...)
	return nil
}

func (s *Memory) ReadQuotes(docID string) ([]annotations.Quote, error) {
	return append([]annotations.Quote(nil), s.quotes[docID]...), nil
}

func (s *Memory) WriteQuotes(docID string, quotes []annotations.Quote) error {
	s.quotes[docID] = append([]annotations.Quote(nil), quotes...)
	return nil
}

func (s *Memory) ReadSettings() (settings.Reader, bool, error) {
	if s.reader == nil {
		return settings.Reader{}, false, nil
	}
	return *s.reader, true, nil
}

func (s *Memory) WriteSettings(reader settings.Reader) error {
	s.reader = &reader
	return nil
}
