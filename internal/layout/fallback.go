package layout

import (
	"math"
	"strings"
)

// verticalGapThreshold is the paragraph-break heuristic: consecutive lines
// whose normalized vertical positions differ by more than 5% of the page
// height belong to different chunks.
const verticalGapThreshold = 0.05

// segmentLines groups raw LINE blocks into text_block chunks when the engine
// supplied no layout labels. Purely positional: vertical whitespace and page
// boundaries are the only break signals.
func segmentLines(blocks []Block, consumed consumedSet, documentID string) []Chunk {
	var chunks []Chunk
	var pending []string
	lastTop := 0.0
	currentPage := 1

	flush := func() {
		if len(pending) == 0 {
			return
		}
		chunks = append(chunks, Chunk{
			Text: strings.Join(pending, " "),
			Metadata: Metadata{
				DocumentID: documentID,
				Page:       currentPage,
				Type:       ChunkTextBlock,
			},
		})
		pending = nil
	}

	for i := range blocks {
		b := &blocks[i]
		if b.BlockType != BlockLine {
			continue
		}
		// A line that is mostly table content neither extends nor breaks
		// the accumulator.
		if mostlyConsumed(b, consumed) {
			continue
		}

		top := b.top()
		if len(pending) > 0 && (math.Abs(top-lastTop) > verticalGapThreshold || b.page() != currentPage) {
			flush()
		}
		pending = append(pending, b.Text)
		lastTop = top
		currentPage = b.page()
	}
	flush()
	return chunks
}

// mostlyConsumed reports whether strictly more than half of the line's
// leaves were already rendered inside a table.
func mostlyConsumed(line *Block, consumed consumedSet) bool {
	ids := line.childIDs()
	if len(ids) == 0 {
		return false
	}
	n := 0
	for _, id := range ids {
		if consumed.has(id) {
			n++
		}
	}
	return float64(n)/float64(len(ids)) > overlapThreshold
}
