package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/layoutchunk/internal/layout"
)

// TextParser handles plain text files. Blank lines delimit paragraphs; each
// paragraph becomes one text_block chunk. Plain text carries no page concept,
// so page metadata is omitted.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename, documentID string) ([]layout.Chunk, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var chunks []layout.Chunk
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		chunks = append(chunks, layout.Chunk{
			Text: current.String(),
			Metadata: layout.Metadata{
				DocumentID: documentID,
				Type:       layout.ChunkTextBlock,
			},
		})
		current.Reset()
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return chunks, nil
}
