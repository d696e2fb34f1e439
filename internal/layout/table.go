package layout

import "strings"

// Options control reconstruction behavior.
type Options struct {
	// ExpandMergedCells replicates a merged cell's text across every grid
	// position covered by its row/column span. When false, merged text is
	// kept only at the cell's anchor position and the spanned positions
	// stay blank.
	ExpandMergedCells bool
}

// consumedSet tracks leaf block ids already rendered inside a table. Built
// by the table pass, read-only in the text passes.
type consumedSet map[string]struct{}

func (s consumedSet) mark(id string) { s[id] = struct{}{} }

func (s consumedSet) has(id string) bool {
	_, ok := s[id]
	return ok
}

// tableCell is one resolved cell before grid placement. Row and column are
// 1-based.
type tableCell struct {
	row, col         int
	rowSpan, colSpan int
	text             string
}

// extractTables resolves every TABLE block into a rendered table chunk,
// recording each consumed leaf id. Tables run before any text extraction so
// the suppression checks know which leaves are already covered.
func extractTables(blocks []Block, idx blockIndex, documentID string, opts Options) ([]Chunk, consumedSet, error) {
	consumed := make(consumedSet)
	var chunks []Chunk

	for i := range blocks {
		b := &blocks[i]
		if b.BlockType != BlockTable {
			continue
		}
		ids := b.childIDs()
		if len(ids) == 0 {
			// Empty table, nothing to render.
			continue
		}

		var cells []tableCell
		for _, cellID := range ids {
			cb, err := idx.resolve(cellID)
			if err != nil {
				return nil, nil, err
			}
			if cb.BlockType != BlockCell {
				continue
			}
			text, err := cellText(cb, idx, consumed)
			if err != nil {
				return nil, nil, err
			}
			cells = append(cells, tableCell{
				row:     cb.RowIndex,
				col:     cb.ColumnIndex,
				rowSpan: cb.RowSpan,
				colSpan: cb.ColumnSpan,
				text:    text,
			})
		}
		if len(cells) == 0 {
			continue
		}

		chunks = append(chunks, Chunk{
			Text: buildGrid(cells, opts).Markdown(),
			Metadata: Metadata{
				DocumentID: documentID,
				Page:       b.page(),
				Type:       ChunkTable,
			},
		})
	}
	return chunks, consumed, nil
}

// cellText joins the cell's text leaves with spaces and marks each leaf
// consumed. Non-text children (selection elements and the like) are ignored.
func cellText(cell *Block, idx blockIndex, consumed consumedSet) (string, error) {
	var words []string
	for _, id := range cell.childIDs() {
		leaf, err := idx.resolve(id)
		if err != nil {
			return "", err
		}
		switch leaf.BlockType {
		case BlockWord, BlockLine:
			words = append(words, leaf.Text)
			consumed.mark(leaf.ID)
		}
	}
	return strings.Join(words, " "), nil
}

// span normalizes a span attribute: absent or zero means 1.
func span(s int) int {
	if s <= 1 {
		return 1
	}
	return s
}

// buildGrid places cells at their 1-based (row, col) anchors. Dimensions are
// fixed by the maximum indexes observed; positions no cell claims stay empty.
func buildGrid(cells []tableCell, opts Options) Grid {
	maxRow, maxCol := 0, 0
	for _, c := range cells {
		endRow, endCol := c.row, c.col
		if opts.ExpandMergedCells {
			endRow = c.row + span(c.rowSpan) - 1
			endCol = c.col + span(c.colSpan) - 1
		}
		if endRow > maxRow {
			maxRow = endRow
		}
		if endCol > maxCol {
			maxCol = endCol
		}
	}

	g := make(Grid, maxRow)
	for i := range g {
		g[i] = make([]string, maxCol)
	}
	for _, c := range cells {
		if c.row < 1 || c.col < 1 {
			continue
		}
		if !opts.ExpandMergedCells {
			g[c.row-1][c.col-1] = c.text
			continue
		}
		for r := c.row; r < c.row+span(c.rowSpan); r++ {
			for col := c.col; col < c.col+span(c.colSpan); col++ {
				g[r-1][col-1] = c.text
			}
		}
	}
	return g
}
