package layout

import "testing"

func TestSegmentLines_SmallGapStaysTogether(t *testing.T) {
	blocks := []Block{
		lineBlock("l1", "First line.", 0.10, 1),
		lineBlock("l2", "Second line.", 0.14, 1), // gap 0.04, under threshold
	}
	chunks, err := Reconstruct(blocks, "doc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "First line. Second line." {
		t.Errorf("expected joined text, got %q", chunks[0].Text)
	}
	if chunks[0].Metadata.Type != ChunkTextBlock {
		t.Errorf("expected type %q, got %q", ChunkTextBlock, chunks[0].Metadata.Type)
	}
}

func TestSegmentLines_LargeGapBreaksParagraph(t *testing.T) {
	blocks := []Block{
		lineBlock("l1", "First paragraph.", 0.10, 1),
		lineBlock("l2", "Second paragraph.", 0.16, 1), // gap 0.06, over threshold
	}
	chunks, err := Reconstruct(blocks, "doc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Text != "First paragraph." {
		t.Errorf("expected %q, got %q", "First paragraph.", chunks[0].Text)
	}
	if chunks[1].Text != "Second paragraph." {
		t.Errorf("expected %q, got %q", "Second paragraph.", chunks[1].Text)
	}
}

func TestSegmentLines_PageBoundaryBreaks(t *testing.T) {
	blocks := []Block{
		lineBlock("l1", "End of page one.", 0.95, 1),
		lineBlock("l2", "Top of page two.", 0.94, 2), // tiny gap, new page
	}
	chunks, err := Reconstruct(blocks, "doc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Metadata.Page != 1 {
		t.Errorf("expected first chunk page 1, got %d", chunks[0].Metadata.Page)
	}
	if chunks[1].Metadata.Page != 2 {
		t.Errorf("expected second chunk page 2, got %d", chunks[1].Metadata.Page)
	}
}

func TestSegmentLines_ConsumedLineSkippedWithoutBreaking(t *testing.T) {
	blocks := []Block{
		tableBlock("table-1", "cell-1"),
		cellBlock("cell-1", 1, 1, "w1", "w2"),
		wordBlock("w1", "Qty"),
		wordBlock("w2", "12"),
		lineBlock("l1", "Before the table.", 0.10, 1),
		// Fully table-consumed line in the middle: skipped, and it must not
		// split the surrounding lines into two chunks.
		lineBlock("l2", "Qty 12", 0.12, 1, "w1", "w2"),
		lineBlock("l3", "After the table.", 0.14, 1),
	}
	chunks, err := Reconstruct(blocks, "doc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected table + one text chunk, got %d", len(chunks))
	}
	if chunks[1].Text != "Before the table. After the table." {
		t.Errorf("expected consumed line bridged over, got %q", chunks[1].Text)
	}
}

func TestSegmentLines_HalfConsumedLineKept(t *testing.T) {
	consumed := consumedSet{"w1": {}}
	blocks := []Block{
		lineBlock("l1", "half kept", 0.10, 1, "w1", "w2"),
	}
	chunks := segmentLines(blocks, consumed, "doc")
	if len(chunks) != 1 {
		t.Fatalf("expected line kept at exactly half consumed, got %d chunks", len(chunks))
	}
}

func TestSegmentLines_TrailingAccumulatorFlushed(t *testing.T) {
	blocks := []Block{
		lineBlock("l1", "Only line.", 0.5, 3),
	}
	chunks := segmentLines(blocks, make(consumedSet), "doc")
	if len(chunks) != 1 {
		t.Fatalf("expected trailing flush, got %d chunks", len(chunks))
	}
	if chunks[0].Metadata.Page != 3 {
		t.Errorf("expected page 3, got %d", chunks[0].Metadata.Page)
	}
}
