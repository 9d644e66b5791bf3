package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dkeene/ubreader/internal/annotations"
	"github.com/dkeene/ubreader/internal/settings"
)

func TestNotesRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewDisk(t.TempDir())
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	payload := []annotations.Note{
		{
			ID:           "lts2abc-x1y2z3",
			Content:      "a thought",
			CreatedAt:    created,
			UpdatedAt:    created.Add(time.Minute),
			ParagraphID:  "p1_1_1",
			Reference:    "1:1.1",
			SelectedText: "the opening line",
		},
		{
			ID:        "lts2abd-q9w8e7",
			Content:   "another",
			CreatedAt: created.Add(time.Hour),
			UpdatedAt: created.Add(time.Hour),
			Reference: "1:2.1",
		},
	}

	if err := s.WriteNotes("doc-1", payload); err != nil {
		t.Fatalf("WriteNotes() error = %v", err)
	}
	got, err := s.ReadNotes("doc-1")
	if err != nil {
		t.Fatalf("ReadNotes() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("round trip returned %d notes, want 2", len(got))
	}
	for i := range payload {
		if got[i].ID != payload[i].ID ||
			got[i].Content != payload[i].Content ||
			!got[i].CreatedAt.Equal(payload[i].CreatedAt) ||
			!got[i].UpdatedAt.Equal(payload[i].UpdatedAt) ||
			got[i].Reference != payload[i].Reference ||
			got[i].SelectedText != payload[i].SelectedText {
			t.Fatalf("note %d mismatch:\n got %+v\nwant %+v", i, got[i], payload[i])
		}
	}
}

func TestTimestampsStoredAsISO8601(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := NewDisk(dir)
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := s.WriteNotes("doc-1", []annotations.Note{{ID: "n1", CreatedAt: created, UpdatedAt: created}}); err != nil {
		t.Fatalf("WriteNotes() error = %v", err)
	}

	var raw string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return readErr
		}
		raw += string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("walk storage tree: %v", err)
	}
	if !strings.Contains(raw, `"2024-03-01T12:00:00Z"`) {
		t.Fatalf("timestamps not serialized as ISO-8601 strings:\n%s", raw)
	}

	var decoded []annotations.Note
	start := strings.Index(raw, "[")
	if start < 0 {
		t.Fatalf("no JSON array in payload:\n%s", raw)
	}
	if err := json.Unmarshal([]byte(raw[start:]), &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
}

func TestDocumentsDoNotCollide(t *testing.T) {
	t.Parallel()

	s := NewDisk(t.TempDir())
	if err := s.WriteNotes("doc-a", []annotations.Note{{ID: "a1"}}); err != nil {
		t.Fatalf("WriteNotes(doc-a) error = %v", err)
	}
	if err := s.WriteNotes("doc-b", []annotations.Note{{ID: "b1"}, {ID: "b2"}}); err != nil {
		t.Fatalf("WriteNotes(doc-b) error = %v", err)
	}

	a, err := s.ReadNotes("doc-a")
	if err != nil {
		t.Fatalf("ReadNotes(doc-a) error = %v", err)
	}
	b, err := s.ReadNotes("doc-b")
	if err != nil {
		t.Fatalf("ReadNotes(doc-b) error = %v", err)
	}
	if len(a) != 1 || a[0].ID != "a1" {
		t.Fatalf("doc-a notes polluted: %+v", a)
	}
	if len(b) != 2 {
		t.Fatalf("doc-b notes polluted: %+v", b)
	}
}

func TestDocIDsWithPathCharactersStaySandboxed(t *testing.T) {
	t.Parallel()

	for _, docID := range []string{"books/vol1", "../escape", "a+b c=d"} {
		if key := toKey(docID, kindNotes); strings.ContainsAny(key, "/\\") {
			t.Fatalf("toKey(%q) = %q leaks a path separator", docID, key)
		}
	}

	dir := t.TempDir()
	s := NewDisk(dir)
	if err := s.WriteNotes("books/vol1", []annotations.Note{{ID: "n1", Content: "kept"}}); err != nil {
		t.Fatalf("WriteNotes() error = %v", err)
	}
	got, err := s.ReadNotes("books/vol1")
	if err != nil || len(got) != 1 || got[0].Content != "kept" {
		t.Fatalf("round trip through path-laden docID failed: %+v err=%v", got, err)
	}

	// Every stored file must live under the base path.
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return relErr
		}
		if strings.HasPrefix(rel, "..") {
			t.Fatalf("storage escaped its base path: %s", path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk storage tree: %v", err)
	}
}

func TestMissingKeysReadAsEmpty(t *testing.T) {
	t.Parallel()

	s := NewDisk(t.TempDir())
	notes, err := s.ReadNotes("never-written")
	if err != nil {
		t.Fatalf("missing notes key should read empty, got error %v", err)
	}
	if len(notes) != 0 {
		t.Fatalf("missing key yielded %d notes", len(notes))
	}

	_, ok, err := s.ReadSettings()
	if err != nil || ok {
		t.Fatalf("missing settings should be (zero, false, nil), got ok=%v err=%v", ok, err)
	}
}

func TestQuotesAndSettingsRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewDisk(t.TempDir())
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := s.WriteQuotes("doc-1", []annotations.Quote{
		{ID: "q1", Content: "passage", CreatedAt: created, ParagraphID: "p1", Reference: "1:1.2"},
	}); err != nil {
		t.Fatalf("WriteQuotes() error = %v", err)
	}
	quotes, err := s.ReadQuotes("doc-1")
	if err != nil || len(quotes) != 1 || quotes[0].ID != "q1" {
		t.Fatalf("quotes round trip failed: %+v err=%v", quotes, err)
	}

	want := settings.Reader{FontSize: 18, Theme: settings.ThemeSepia, FontFamily: "serif"}
	if err := s.WriteSettings(want); err != nil {
		t.Fatalf("WriteSettings() error = %v", err)
	}
	got, ok, err := s.ReadSettings()
	if err != nil || !ok {
		t.Fatalf("ReadSettings() ok=%v err=%v", ok, err)
	}
	if got.FontSize != 18 || got.Theme != settings.ThemeSepia {
		t.Fatalf("settings round trip mismatch: %+v", got)
	}
}

func TestMalformedPayloadSurfacesError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := NewDisk(dir)
	if err := s.WriteNotes("doc-1", []annotations.Note{{ID: "n1"}}); err != nil {
		t.Fatalf("WriteNotes() error = %v", err)
	}

	// Corrupt every stored file; the manager downgrades this to a warning.
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		return os.WriteFile(path, []byte("{not json"), 0o644)
	})
	if err != nil {
		t.Fatalf("corrupt storage tree: %v", err)
	}

	// Fresh handle so the diskv read cache cannot mask the corruption.
	if _, err := NewDisk(dir).ReadNotes("doc-1"); err == nil {
		t.Fatal("malformed payload should surface an error to the caller")
	}
}
