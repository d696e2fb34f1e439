package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/layoutchunk/internal/layout"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Headings become
// labeled chunks (level 1 is the title, deeper levels are section headers),
// lists become list chunks, and everything else accumulates into text_block
// chunks between headings.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename, documentID string) ([]layout.Chunk, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var chunks []layout.Chunk
	var currentText bytes.Buffer

	emit := func(t string, chunkType layout.ChunkType) {
		t = strings.TrimSpace(t)
		if t == "" {
			return
		}
		chunks = append(chunks, layout.Chunk{
			Text: t,
			Metadata: layout.Metadata{
				DocumentID: documentID,
				Type:       chunkType,
			},
		})
	}
	flushText := func() {
		emit(currentText.String(), layout.ChunkTextBlock)
		currentText.Reset()
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			flushText()
			chunkType := layout.ChunkSectionHeader
			if node.Level == 1 {
				chunkType = layout.ChunkTitle
			}
			emit(string(node.Text(src)), chunkType)

		case *ast.List:
			flushText()
			emit(extractText(n, src), layout.ChunkList)

		default:
			t := extractText(n, src)
			if t != "" {
				if currentText.Len() > 0 {
					currentText.WriteString("\n\n")
				}
				currentText.WriteString(t)
			}
		}
	}
	flushText()

	return chunks, nil
}

// extractText gets the text content of a goldmark AST node.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	// Also handle inline children.
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			// Recurse for nested blocks and inlines.
			buf.WriteString(extractText(c, src))
			if c.Type() == ast.TypeBlock {
				buf.WriteByte('\n')
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
