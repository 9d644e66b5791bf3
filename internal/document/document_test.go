package document

import (
	"strings"
	"testing"

	"github.com/dkeene/ubreader/internal/settings"
)

func TestParseFillsReferencesAndIDs(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(`{
		"title": "A Small Text",
		"papers": [{
			"title": "One",
			"sections": [{
				"title": "First",
				"paragraphs": [{"text": "alpha"}, {"text": "beta"}]
			}, {
				"title": "Second",
				"paragraphs": [{"text": "gamma"}]
			}]
		}]
	}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.ID != "a-small-text" {
		t.Fatalf("derived id = %q", doc.ID)
	}

	got := doc.Papers[0].Sections[0].Paragraphs[1]
	if got.Reference != "1:1.2" || got.ID != "p1_1_2" {
		t.Fatalf("paragraph addressing = %q / %q, want 1:1.2 / p1_1_2", got.Reference, got.ID)
	}
	got = doc.Papers[0].Sections[1].Paragraphs[0]
	if got.Reference != "1:2.1" {
		t.Fatalf("second section reference = %q, want 1:2.1", got.Reference)
	}
}

func TestParseKeepsExplicitAddressing(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(`{
		"id": "fixed",
		"title": "T",
		"papers": [{
			"number": 7,
			"sections": [{
				"paragraphs": [{"id": "custom", "reference": "7:1.1", "text": "x"}]
			}]
		}]
	}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	p, ok := doc.Paragraph("custom")
	if !ok || p.Reference != "7:1.1" {
		t.Fatalf("explicit addressing not preserved: %+v ok=%v", p, ok)
	}
}

func TestParseRejectsEmptyDocument(t *testing.T) {
	t.Parallel()

	if _, err := Parse([]byte(`{"title": "empty", "papers": []}`)); err == nil {
		t.Fatal("document without papers should not parse")
	}
	if _, err := Parse([]byte(`{not json`)); err == nil {
		t.Fatal("malformed JSON should not parse")
	}
}

func TestSampleDocumentParses(t *testing.T) {
	t.Parallel()

	doc := Sample()
	if len(doc.Papers) != 2 {
		t.Fatalf("sample has %d papers, want 2", len(doc.Papers))
	}
	if _, ok := doc.Paragraph("p1_1_1"); !ok {
		t.Fatal("sample missing first paragraph id")
	}
	if _, ok := doc.PaperByNumber(2); !ok {
		t.Fatal("sample missing paper 2")
	}
}

func TestParagraphLookupMiss(t *testing.T) {
	t.Parallel()

	if _, ok := Sample().Paragraph("nope"); ok {
		t.Fatal("unknown paragraph id should miss")
	}
}

func TestFormatPlainStripsMarkers(t *testing.T) {
	t.Parallel()

	got := Format("charting the *unknown country* and _the boundary_", settings.FormatPlain, Markup{})
	want := "charting the unknown country and the boundary"
	if got != want {
		t.Fatalf("Format(plain) = %q, want %q", got, want)
	}
}

func TestFormatStyledUsesMarkupHooks(t *testing.T) {
	t.Parallel()

	markup := Markup{
		Italic:    func(s string) string { return "<i>" + s + "</i>" },
		Underline: func(s string) string { return "<u>" + s + "</u>" },
	}
	got := Format("the *horizon* and _the shore_", settings.FormatStyled, markup)
	if !strings.Contains(got, "<i>horizon</i>") || !strings.Contains(got, "<u>the shore</u>") {
		t.Fatalf("Format(styled) = %q", got)
	}
}

func TestFormatStyledWithoutHooksDropsMarkers(t *testing.T) {
	t.Parallel()

	got := Format("a *word* here", settings.FormatStyled, Markup{})
	if got != "a word here" {
		t.Fatalf("Format(styled, no hooks) = %q", got)
	}
}

func TestCleanCollapsesWhitespace(t *testing.T) {
	t.Parallel()

	if got := Clean("  ragged \t  source   text "); got != "ragged source text" {
		t.Fatalf("Clean() = %q", got)
	}
}
