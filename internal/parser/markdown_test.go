package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/layoutchunk/internal/layout"
)

func TestMarkdownParser_HeadingsLabeled(t *testing.T) {
	input := "# Annual Report\n\nOpening paragraph.\n\n## Revenue\n\nRevenue grew.\n"
	p := &MarkdownParser{}
	chunks, err := p.Parse(strings.NewReader(input), "report.md", "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d", len(chunks))
	}

	wantTypes := []layout.ChunkType{
		layout.ChunkTitle,
		layout.ChunkTextBlock,
		layout.ChunkSectionHeader,
		layout.ChunkTextBlock,
	}
	for i, w := range wantTypes {
		if chunks[i].Metadata.Type != w {
			t.Errorf("chunk[%d]: expected type %q, got %q", i, w, chunks[i].Metadata.Type)
		}
	}
	if chunks[0].Text != "Annual Report" {
		t.Errorf("expected title %q, got %q", "Annual Report", chunks[0].Text)
	}
	if chunks[2].Text != "Revenue" {
		t.Errorf("expected section header %q, got %q", "Revenue", chunks[2].Text)
	}
}

func TestMarkdownParser_ListChunk(t *testing.T) {
	input := "Intro.\n\n- first\n- second\n"
	p := &MarkdownParser{}
	chunks, err := p.Parse(strings.NewReader(input), "list.md", "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[1].Metadata.Type != layout.ChunkList {
		t.Errorf("expected list chunk, got %q", chunks[1].Metadata.Type)
	}
	if !strings.Contains(chunks[1].Text, "first") || !strings.Contains(chunks[1].Text, "second") {
		t.Errorf("expected both items in list text, got %q", chunks[1].Text)
	}
}

func TestMarkdownParser_NoHeadings(t *testing.T) {
	input := "Just a paragraph.\n\nAnd another."
	p := &MarkdownParser{}
	chunks, err := p.Parse(strings.NewReader(input), "plain.md", "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 accumulated chunk, got %d", len(chunks))
	}
	if chunks[0].Metadata.Type != layout.ChunkTextBlock {
		t.Errorf("expected text_block, got %q", chunks[0].Metadata.Type)
	}
}
