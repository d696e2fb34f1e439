// Package layout reconstructs a flat graph of recognized document blocks
// into an ordered sequence of retrieval-ready chunks.
//
// The input is the block collection of a completed document analysis: tables
// with cells and word leaves, optionally layout-labeled text blocks, and raw
// lines. Tables are resolved into grids and rendered as tabular text; free
// text is either taken from the layout labels or, when none exist, segmented
// from raw lines by vertical position. Text already rendered inside a table
// is suppressed so the same words never appear in two chunks.
package layout

// Reconstruct converts one document's block graph into its ordered chunk
// list. It is deterministic for identical input and returns either the full
// chunk list or a MalformedGraphError — never a partial result.
//
// Output order is table chunks (table discovery order) followed by text
// chunks (source order); true document order across the table/text
// interleave is not preserved.
func Reconstruct(blocks []Block, documentID string) ([]Chunk, error) {
	return ReconstructWithOptions(blocks, documentID, Options{})
}

// ReconstructWithOptions is Reconstruct with explicit behavior options.
func ReconstructWithOptions(blocks []Block, documentID string, opts Options) ([]Chunk, error) {
	idx, err := buildIndex(blocks)
	if err != nil {
		return nil, err
	}

	// Tables go first so the consumed-leaf set is complete before either
	// text pass consults it.
	chunks, consumed, err := extractTables(blocks, idx, documentID, opts)
	if err != nil {
		return nil, err
	}

	var textChunks []Chunk
	if hasLayoutBlocks(blocks) {
		textChunks, err = extractLayoutText(blocks, idx, consumed, documentID)
		if err != nil {
			return nil, err
		}
	} else {
		textChunks = segmentLines(blocks, consumed, documentID)
	}

	return append(chunks, textChunks...), nil
}
