// Package document models the structured text the reader displays: papers
// containing sections containing numbered paragraphs, each addressable by a
// stable id and a human-readable reference like "1:1.1".
package document

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

//go:embed sample.json
var sampleJSON []byte

// Document is a complete text plus the identifier its annotations key on.
type Document struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Papers []Paper `json:"papers"`
}

// Paper is the top division of the document hierarchy.
type Paper struct {
	Number   int       `json:"number"`
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Section groups a paper's paragraphs.
type Section struct {
	Number     int         `json:"number"`
	Title      string      `json:"title"`
	Paragraphs []Paragraph `json:"paragraphs"`
}

// Paragraph is the annotation anchor: selections, notes, and quotes all
// attach to a paragraph id and carry its reference as the citation.
type Paragraph struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
	Text      string `json:"text"`
}

// Load reads and parses a document file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return Parse(data)
}

// Parse decodes a document and fills any missing paragraph ids and
// references from the hierarchy position, so hand-written documents only
// need the text.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if len(doc.Papers) == 0 {
		return nil, errors.New("parse document: no papers")
	}
	if doc.ID == "" {
		doc.ID = slugify(doc.Title)
	}
	for pi := range doc.Papers {
		paper := &doc.Papers[pi]
		if paper.Number == 0 {
			paper.Number = pi + 1
		}
		for si := range paper.Sections {
			section := &paper.Sections[si]
			if section.Number == 0 {
				section.Number = si + 1
			}
			for gi := range section.Paragraphs {
				paragraph := &section.Paragraphs[gi]
				if paragraph.Reference == "" {
					paragraph.Reference = fmt.Sprintf("%d:%d.%d", paper.Number, section.Number, gi+1)
				}
				if paragraph.ID == "" {
					paragraph.ID = fmt.Sprintf("p%d_%d_%d", paper.Number, section.Number, gi+1)
				}
			}
		}
	}
	return &doc, nil
}

// Sample returns the built-in demonstration document.
func Sample() *Document {
	doc, err := Parse(sampleJSON)
	if err != nil {
		panic(fmt.Sprintf("embedded sample document invalid: %v", err))
	}
	return doc
}

// Paragraph finds a paragraph by id anywhere in the document.
func (d *Document) Paragraph(id string) (Paragraph, bool) {
	for _, paper := range d.Papers {
		for _, section := range paper.Sections {
			for _, paragraph := range section.Paragraphs {
				if paragraph.ID == id {
					return paragraph, true
				}
			}
		}
	}
	return Paragraph{}, false
}

// PaperByNumber returns the paper with the given number.
func (d *Document) PaperByNumber(number int) (Paper, bool) {
	for _, paper := range d.Papers {
		if paper.Number == number {
			return paper, true
		}
	}
	return Paper{}, false
}

func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		default:
			return -1
		}
	}, slug)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "untitled"
	}
	return slug
}
