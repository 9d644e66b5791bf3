package annotations

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dkeene/ubreader/internal/settings"
)

// fakeStorage keeps everything in memory and can be told to fail.
type fakeStorage struct {
	notes      map[string][]Note
	quotes     map[string][]Quote
	reader     *settings.Reader
	failReads  bool
	failWrites bool
	noteWrites int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		notes:  map[string][]Note{},
		quotes: map[string][]Quote{},
	}
}

func (s *fakeStorage) ReadNotes(docID string) ([]Note, error) {
	if s.failReads {
		return nil, errors.New("read failure")
	}
	return s.notes[docID], nil
}

func (s *fakeStorage) WriteNotes(docID string, notes []Note) error {
	s.noteWrites++
	if s.failWrites {
		return errors.New("write failure")
	}
	s.notes[docID] = notes
	return nil
}

func (s *fakeStorage) ReadQuotes(docID string) ([]Quote, error) {
	if s.failReads {
		return nil, errors.New("read failure")
	}
	return s.quotes[docID], nil
}

func (s *fakeStorage) WriteQuotes(docID string, quotes []Quote) error {
	if s.failWrites {
		return errors.New("write failure")
	}
	s.quotes[docID] = quotes
	return nil
}

func (s *fakeStorage) ReadSettings() (settings.Reader, bool, error) {
	if s.failReads {
		return settings.Reader{}, false, errors.New("read failure")
	}
	if s.reader == nil {
		return settings.Reader{}, false, nil
	}
	return *s.reader, true, nil
}

func (s *fakeStorage) WriteSettings(reader settings.Reader) error {
	if s.failWrites {
		return errors.New("write failure")
	}
	s.reader = &reader
	return nil
}

type testClock struct {
	at time.Time
}

func (c *testClock) now() time.Time { return c.at }

func (c *testClock) advance(d time.Duration) { c.at = c.at.Add(d) }

func newTestManager(storage Storage, clock *testClock) *Manager {
	return NewManager("doc-1", storage,
		WithClock(clock.now),
		WithScheduler(func(fn func()) { fn() }),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func TestAddAndUpdateNoteRoundTrip(t *testing.T) {
	t.Parallel()

	clock := &testClock{at: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	m := newTestManager(newFakeStorage(), clock)

	note := m.AddNote(Note{Content: "x", ParagraphID: "p1", Reference: "1:1.1"})
	if note.ID == "" {
		t.Fatal("AddNote should assign an id")
	}
	if !note.CreatedAt.Equal(clock.at) || !note.UpdatedAt.Equal(clock.at) {
		t.Fatalf("timestamps not filled: %+v", note)
	}

	clock.advance(time.Minute)
	if !m.UpdateNote(note.ID, "y") {
		t.Fatal("update of an existing note should report success")
	}

	got := m.Notes()[0]
	if got.Content != "y" {
		t.Fatalf("content = %q, want %q", got.Content, "y")
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Fatalf("UpdatedAt %v not after CreatedAt %v", got.UpdatedAt, got.CreatedAt)
	}
	if got.ParagraphID != "p1" || got.Reference != "1:1.1" {
		t.Fatalf("immutable fields changed: %+v", got)
	}
}

func TestAddNotePrepends(t *testing.T) {
	t.Parallel()

	clock := &testClock{at: time.Unix(1700000000, 0)}
	m := newTestManager(newFakeStorage(), clock)

	first := m.AddNote(Note{Content: "first"})
	clock.advance(time.Second)
	second := m.AddNote(Note{Content: "second"})

	got := m.Notes()
	if got[0].ID != second.ID || got[1].ID != first.ID {
		t.Fatalf("stored order not most-recent-first: %v then %v", got[0].Content, got[1].Content)
	}
}

func TestUpdateMissingNoteIsNoOp(t *testing.T) {
	t.Parallel()

	clock := &testClock{at: time.Unix(1700000000, 0)}
	m := newTestManager(newFakeStorage(), clock)
	m.AddNote(Note{Content: "keep"})

	if m.UpdateNote("nonexistent-id", "y") {
		t.Fatal("update of a missing note should report no-op")
	}
	if got := m.Notes()[0].Content; got != "keep" {
		t.Fatalf("collection changed by missing-id update: %q", got)
	}
}

func TestDeleteMissingNoteIsNoOp(t *testing.T) {
	t.Parallel()

	clock := &testClock{at: time.Unix(1700000000, 0)}
	m := newTestManager(newFakeStorage(), clock)
	ids := map[string]bool{}
	for _, content := range []string{"a", "b", "c"} {
		ids[m.AddNote(Note{Content: content}).ID] = true
	}

	m.DeleteNote("nonexistent-id")

	got := m.Notes()
	if len(got) != 3 {
		t.Fatalf("collection size = %d, want 3", len(got))
	}
	for _, note := range got {
		if !ids[note.ID] {
			t.Fatalf("unexpected note id %q", note.ID)
		}
	}
}

func TestQuoteLifecycle(t *testing.T) {
	t.Parallel()

	clock := &testClock{at: time.Unix(1700000000, 0)}
	m := newTestManager(newFakeStorage(), clock)

	quote := m.AddQuote(Quote{Content: "passage", ParagraphID: "p2", Reference: "1:2.1"})
	if quote.ID == "" || quote.CreatedAt.IsZero() {
		t.Fatalf("quote not completed: %+v", quote)
	}
	m.DeleteQuote("missing")
	if len(m.Quotes()) != 1 {
		t.Fatal("delete of a missing quote should be a no-op")
	}
	m.DeleteQuote(quote.ID)
	if len(m.Quotes()) != 0 {
		t.Fatal("quote not deleted")
	}
}

func TestLoadFailureYieldsEmptyCollections(t *testing.T) {
	t.Parallel()

	storage := newFakeStorage()
	storage.failReads = true
	clock := &testClock{at: time.Unix(1700000000, 0)}
	m := newTestManager(storage, clock)

	m.Load()
	if len(m.Notes()) != 0 || len(m.Quotes()) != 0 {
		t.Fatal("failed load should yield empty collections, not an error")
	}
	if m.Settings() != settings.Default() {
		t.Fatalf("failed settings load should keep defaults: %+v", m.Settings())
	}
}

func TestWriteFailureKeepsInMemoryState(t *testing.T) {
	t.Parallel()

	storage := newFakeStorage()
	storage.failWrites = true
	clock := &testClock{at: time.Unix(1700000000, 0)}
	m := newTestManager(storage, clock)

	note := m.AddNote(Note{Content: "survives"})
	if len(m.Notes()) != 1 || m.Notes()[0].ID != note.ID {
		t.Fatal("write failure must not roll back in-memory state")
	}
}

func TestPersistenceWritesFullSnapshots(t *testing.T) {
	t.Parallel()

	storage := newFakeStorage()
	clock := &testClock{at: time.Unix(1700000000, 0)}
	m := newTestManager(storage, clock)

	m.AddNote(Note{Content: "a"})
	clock.advance(time.Second)
	m.AddNote(Note{Content: "b"})

	persisted := storage.notes["doc-1"]
	if len(persisted) != 2 {
		t.Fatalf("persisted snapshot holds %d notes, want 2", len(persisted))
	}
	if storage.noteWrites != 2 {
		t.Fatalf("note writes = %d, want one per change", storage.noteWrites)
	}
}

func TestLoadBootstrapsFromStorage(t *testing.T) {
	t.Parallel()

	storage := newFakeStorage()
	stored := settings.Reader{FontSize: 20, Theme: settings.ThemeSepia}
	storage.reader = &stored
	storage.notes["doc-1"] = []Note{{ID: "n1", Content: "restored"}}
	clock := &testClock{at: time.Unix(1700000000, 0)}
	m := newTestManager(storage, clock)

	m.Load()
	if len(m.Notes()) != 1 || m.Notes()[0].ID != "n1" {
		t.Fatalf("notes not restored: %+v", m.Notes())
	}
	got := m.Settings()
	if got.FontSize != 20 || got.Theme != settings.ThemeSepia {
		t.Fatalf("settings not restored: %+v", got)
	}
	if got.FontFamily == "" {
		t.Fatal("restored settings should be normalized")
	}
}

func TestGeneratedIDsDiffer(t *testing.T) {
	t.Parallel()

	clock := &testClock{at: time.Unix(1700000000, 0)}
	m := newTestManager(newFakeStorage(), clock)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := m.AddNote(Note{Content: "n"}).ID
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestFlushWritesSynchronously(t *testing.T) {
	t.Parallel()

	storage := newFakeStorage()
	clock := &testClock{at: time.Unix(1700000000, 0)}
	// Drop the scheduled background writes so only Flush can reach storage.
	m := NewManager("doc-1", storage,
		WithClock(clock.now),
		WithScheduler(func(func()) {}),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	m.AddNote(Note{Content: "draft", Reference: "1:1.1"})
	m.AddQuote(Quote{Content: "passage", Reference: "1:2.1"})

	if len(storage.notes["doc-1"]) != 0 {
		t.Fatal("background write should have been dropped by the scheduler")
	}
	if err := m.Flush(); err != nil {
		t.Fatalf("flush error = %v", err)
	}
	if len(storage.notes["doc-1"]) != 1 || storage.notes["doc-1"][0].Content != "draft" {
		t.Fatalf("flushed notes = %+v", storage.notes["doc-1"])
	}
	if len(storage.quotes["doc-1"]) != 1 {
		t.Fatalf("flushed quotes = %+v", storage.quotes["doc-1"])
	}
	if storage.reader == nil {
		t.Fatal("flush should persist settings as well")
	}
}

func TestFlushSurfacesWriteFailures(t *testing.T) {
	t.Parallel()

	storage := newFakeStorage()
	storage.failWrites = true
	clock := &testClock{at: time.Unix(1700000000, 0)}
	m := newTestManager(storage, clock)
	m.AddNote(Note{Content: "draft"})

	if err := m.Flush(); err == nil {
		t.Fatal("flush against failing storage should report the error")
	}
}
