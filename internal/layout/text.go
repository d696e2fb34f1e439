package layout

import "strings"

// overlapThreshold is the table-overlap suppression cutoff. A block (or line)
// is dropped only when strictly more than half of its leaves were already
// rendered inside a table; exactly half is retained.
const overlapThreshold = 0.5

// hasLayoutBlocks reports whether the engine supplied explicit layout labels.
func hasLayoutBlocks(blocks []Block) bool {
	for i := range blocks {
		if blocks[i].BlockType.IsLayout() {
			return true
		}
	}
	return false
}

// chunkTypeForLayout maps a layout block type to its chunk type:
// LAYOUT_SECTION_HEADER becomes "section_header" and so on.
func chunkTypeForLayout(t BlockType) ChunkType {
	return ChunkType(strings.ToLower(strings.TrimPrefix(string(t), "LAYOUT_")))
}

// extractLayoutText walks layout-labeled blocks in source order. For each,
// it resolves line children then word leaves, drops leaves consumed by a
// table, and suppresses the whole block when the consumed fraction exceeds
// the overlap threshold — such a block is table content rendered elsewhere.
func extractLayoutText(blocks []Block, idx blockIndex, consumed consumedSet, documentID string) ([]Chunk, error) {
	var chunks []Chunk

	for i := range blocks {
		b := &blocks[i]
		if !b.BlockType.IsLayout() {
			continue
		}

		total := 0
		dropped := 0
		var parts []string

		for _, lineID := range b.childIDs() {
			line, err := idx.resolve(lineID)
			if err != nil {
				return nil, err
			}
			if line.BlockType != BlockLine {
				continue
			}
			for _, leafID := range line.childIDs() {
				total++
				if consumed.has(leafID) {
					dropped++
					continue
				}
				leaf, err := idx.resolve(leafID)
				if err != nil {
					return nil, err
				}
				parts = append(parts, leaf.Text)
			}
		}

		if total > 0 && float64(dropped)/float64(total) > overlapThreshold {
			continue
		}
		text := strings.Join(parts, " ")
		if strings.TrimSpace(text) == "" {
			continue
		}

		chunks = append(chunks, Chunk{
			Text: text,
			Metadata: Metadata{
				DocumentID: documentID,
				Page:       b.page(),
				Type:       chunkTypeForLayout(b.BlockType),
			},
		})
	}
	return chunks, nil
}
