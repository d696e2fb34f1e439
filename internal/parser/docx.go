package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/layoutchunk/internal/layout"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Body items are visited in document order:
// each non-empty paragraph becomes a text_block chunk (headed paragraphs are
// labeled by their heading style) and each table is collected into a grid
// and rendered. Word-processing documents carry no page numbers, so page
// metadata is omitted.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename, documentID string) ([]layout.Chunk, error) {
	// go-docx needs a ReadSeeker+size, so write to a temp file.
	tmp, err := os.CreateTemp("", "layoutchunk-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, int64(size))
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var chunks []layout.Chunk
	for _, item := range doc.Document.Body.Items {
		switch block := item.(type) {
		case *docx.Paragraph:
			text := paragraphText(block)
			if text == "" {
				continue
			}
			chunkType := layout.ChunkTextBlock
			switch level := headingStyleLevel(block); {
			case level == 1:
				chunkType = layout.ChunkTitle
			case level > 1:
				chunkType = layout.ChunkSectionHeader
			}
			chunks = append(chunks, layout.Chunk{
				Text: text,
				Metadata: layout.Metadata{
					DocumentID: documentID,
					Type:       chunkType,
				},
			})

		case *docx.Table:
			grid := tableRowsGrid(block)
			if len(grid) == 0 {
				continue
			}
			chunks = append(chunks, layout.Chunk{
				Text: grid.Markdown(),
				Metadata: layout.Metadata{
					DocumentID: documentID,
					Type:       layout.ChunkTable,
				},
			})
		}
	}

	return chunks, nil
}

// tableRowsGrid collects a docx table's cell text row by row. Merged cells
// can make rows ragged; the grid renderer pads them to the widest row.
func tableRowsGrid(table *docx.Table) layout.Grid {
	var grid layout.Grid
	for _, row := range table.TableRows {
		var cells []string
		for _, cell := range row.TableCells {
			var parts []string
			for _, para := range cell.Paragraphs {
				if t := paragraphText(para); t != "" {
					parts = append(parts, t)
				}
			}
			cells = append(cells, strings.Join(parts, " "))
		}
		if len(cells) > 0 {
			grid = append(grid, cells)
		}
	}
	return grid
}

// headingStyleLevel returns the paragraph's heading level, 0 for body text.
func headingStyleLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	switch style {
	case "heading1":
		return 1
	case "heading2":
		return 2
	case "heading3":
		return 3
	case "heading4":
		return 4
	case "heading5":
		return 5
	case "heading6":
		return 6
	}
	return 0
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
