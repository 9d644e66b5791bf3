// Package storage persists annotation collections and reader settings to
// disk, keyed per document so documents never collide.
package storage

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"github.com/dkeene/ubreader/internal/annotations"
	"github.com/dkeene/ubreader/internal/settings"
)

const (
	kindNotes    = "notes"
	kindQuotes   = "quotes"
	kindSettings = "reader"

	settingsNamespace = "settings"
)

// Disk implements the annotations storage port on top of a diskv tree. Each
// document gets its own directory; payloads are JSON arrays with RFC 3339
// timestamps.
type Disk struct {
	d *diskv.Diskv
}

// NewDisk opens (or lazily creates) a storage tree rooted at basePath.
func NewDisk(basePath string) *Disk {
	return &Disk{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	})}
}

func (s *Disk) ReadNotes(docID string) ([]annotations.Note, error) {
	var notes []annotations.Note
	if err := s.read(toKey(docID, kindNotes), &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (s *Disk) WriteNotes(docID string, notes []annotations.Note) error {
	return s.write(toKey(docID, kindNotes), notes)
}

func (s *Disk) ReadQuotes(docID string) ([]annotations.Quote, error) {
	var quotes []annotations.Quote
	if err := s.read(toKey(docID, kindQuotes), &quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

func (s *Disk) WriteQuotes(docID string, quotes []annotations.Quote) error {
	return s.write(toKey(docID, kindQuotes), quotes)
}

func (s *Disk) ReadSettings() (settings.Reader, bool, error) {
	var reader settings.Reader
	key := toKey(settingsNamespace, kindSettings)
	if !s.d.Has(key) {
		return settings.Reader{}, false, nil
	}
	if err := s.read(key, &reader); err != nil {
		return settings.Reader{}, false, err
	}
	return reader, true, nil
}

func (s *Disk) WriteSettings(reader settings.Reader) error {
	return s.write(toKey(settingsNamespace, kindSettings), reader)
}

// read unmarshals a key into target. A missing key leaves target untouched:
// absence is an empty collection, not a failure.
func (s *Disk) read(key string, target any) error {
	data, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, target)
}

func (s *Disk) write(key string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	return s.d.Write(key, data)
}

// toKey makes `namespace.kind`. The namespace is encoded with the unpadded
// URL-safe alphabet so arbitrary document identifiers (slashes, spaces,
// unicode) can never smuggle a path separator into the diskv tree; "." is
// outside that alphabet, so the separator stays unambiguous.
func toKey(namespace, kind string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(namespace)) + "." + kind
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, ".")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.Join(append(append([]string(nil), pathKey.Path...), pathKey.FileName), ".")
}
