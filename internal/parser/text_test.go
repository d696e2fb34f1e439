package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/layoutchunk/internal/layout"
)

func TestTextParser_BasicParagraphSplitting(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	p := &TextParser{}
	chunks, err := p.Parse(strings.NewReader(input), "notes.txt", "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}

	want := []string{
		"First paragraph line one.\nFirst paragraph line two.",
		"Second paragraph.",
		"Third paragraph.",
	}
	for i, w := range want {
		if chunks[i].Text != w {
			t.Errorf("chunk[%d]: expected %q, got %q", i, w, chunks[i].Text)
		}
		if chunks[i].Metadata.Type != layout.ChunkTextBlock {
			t.Errorf("chunk[%d]: expected type %q, got %q", i, layout.ChunkTextBlock, chunks[i].Metadata.Type)
		}
		if chunks[i].Metadata.DocumentID != "doc-1" {
			t.Errorf("chunk[%d]: expected document_id %q, got %q", i, "doc-1", chunks[i].Metadata.DocumentID)
		}
		if chunks[i].Metadata.Page != 0 {
			t.Errorf("chunk[%d]: expected no page for plain text, got %d", i, chunks[i].Metadata.Page)
		}
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	chunks, err := p.Parse(strings.NewReader(""), "empty.txt", "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected 0 chunks for empty input, got %d", len(chunks))
	}
}

func TestTextParser_WhitespaceOnlyLines(t *testing.T) {
	// Lines with only whitespace are treated as blank.
	input := "Para one.\n   \nPara two."
	p := &TextParser{}
	chunks, err := p.Parse(strings.NewReader(input), "ws.txt", "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
}

func TestForFile_SupportedExtensions(t *testing.T) {
	for _, name := range []string{"a.txt", "a.md", "a.csv", "a.html", "a.pdf", "a.docx", "a.json"} {
		if _, err := ForFile(name, layout.Options{}); err != nil {
			t.Errorf("expected parser for %s, got error: %v", name, err)
		}
	}
	if _, err := ForFile("a.xlsx", layout.Options{}); err == nil {
		t.Error("expected error for unsupported extension")
	}
}
