// Package annotations manages the per-document note and quote collections,
// their selection state, and best-effort persistence to durable storage.
package annotations

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/dkeene/ubreader/internal/settings"
)

// Note is a user annotation attached to a paragraph. Content and UpdatedAt
// are the only mutable fields after creation.
type Note struct {
	ID           string    `json:"id"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	ParagraphID  string    `json:"paragraphId"`
	Reference    string    `json:"reference"`
	SelectedText string    `json:"selectedText"`
}

// Quote is an append-only captured passage; it can be deleted but never
// edited.
type Quote struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
	ParagraphID string    `json:"paragraphId"`
	Reference   string    `json:"reference"`
}

// Storage is the durable persistence port, keyed per document so separate
// documents never collide. Implementations are best-effort: the manager
// treats read failures as empty collections and logs write failures without
// rolling back.
type Storage interface {
	ReadNotes(docID string) ([]Note, error)
	WriteNotes(docID string, notes []Note) error
	ReadQuotes(docID string) ([]Quote, error)
	WriteQuotes(docID string, quotes []Quote) error
	ReadSettings() (settings.Reader, bool, error)
	WriteSettings(reader settings.Reader) error
}

// newID builds a timestamp-plus-random-suffix identifier. Uniqueness is
// best-effort, not cryptographic.
func newID(now time.Time, rng *rand.Rand) string {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(now.UnixMilli(), 36))
	b.WriteByte('-')
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	for i := 0; i < 6; i++ {
		b.WriteByte(alphabet[rng.Intn(len(alphabet))])
	}
	return b.String()
}
