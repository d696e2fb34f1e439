package parser

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dgallion1/layoutchunk/internal/layout"
)

// CSVParser handles CSV files. The whole file is one table: the first record
// is the header row and the grid renderer pads any ragged records.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename, documentID string) ([]layout.Chunk, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // ragged rows are handled by grid padding

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	grid := make(layout.Grid, len(records))
	for i, record := range records {
		grid[i] = record
	}

	return []layout.Chunk{{
		Text: grid.Markdown(),
		Metadata: layout.Metadata{
			DocumentID: documentID,
			Type:       layout.ChunkTable,
		},
	}}, nil
}
