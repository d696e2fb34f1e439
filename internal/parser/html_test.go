package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/layoutchunk/internal/layout"
)

func TestHTMLParser_HeadingsAndParagraphs(t *testing.T) {
	input := `<html><body>
<h1>Guide</h1>
<p>Intro text.</p>
<h2>Setup</h2>
<p>Step one.</p>
</body></html>`
	p := &HTMLParser{}
	chunks, err := p.Parse(strings.NewReader(input), "guide.html", "doc-1")
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
}

func TestHTMLParser_TableRendered(t *testing.T) {
	input := `<html><body><table>
<tr><th>Name</th><th>Qty</th></tr>
<tr><td>Bolt</td><td>12</td></tr>
</table></body></html>`
	p := &HTMLParser{}
	chunks, err := p.Parse(strings.NewReader(input), "t.html", "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	want := "| Name | Qty |\n| --- | --- |\n| Bolt | 12 |"
	if chunks[0].Text != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, chunks[0].Text)
	}
	if chunks[0].Metadata.Type != layout.ChunkTable {
		t.Errorf("expected table chunk, got %q", chunks[0].Metadata.Type)
	}
}

func TestHTMLParser_ListChunk(t *testing.T) {
	input := `<html><body><ul><li>alpha</li><li>beta</li></ul></body></html>`
	p := &HTMLParser{}
	chunks, err := p.Parse(strings.NewReader(input), "l.html", "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Metadata.Type != layout.ChunkList {
		t.Errorf("expected list chunk, got %q", chunks[0].Metadata.Type)
	}
	if chunks[0].Text != "alpha\nbeta" {
		t.Errorf("expected %q, got %q", "alpha\nbeta", chunks[0].Text)
	}
}

func TestHTMLParser_ScriptIgnored(t *testing.T) {
	input := `<html><body><script>var x=1;</script><p>Visible.</p></body></html>`
	p := &HTMLParser{}
	chunks, err := p.Parse(strings.NewReader(input), "s.html", "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 || chunks[0].Text != "Visible." {
		t.Fatalf("expected only visible text, got %v", chunks)
	}
}
