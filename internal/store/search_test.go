package store

import (
	"testing"
)

func newTestIndex(t *testing.T) *SearchIndex {
	t.Helper()
	s, err := NewSearchIndex("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSearchIndex_IndexAndSearch(t *testing.T) {
	s := newTestIndex(t)
	if err := s.IndexChunks("doc-1", testChunks("doc-1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count, err := s.DocCount()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 indexed chunks, got %d", count)
	}

	hits, err := s.Search("quarterly", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if hits[0].ID != "doc-1-1" {
		t.Errorf("expected hit id %q, got %q", "doc-1-1", hits[0].ID)
	}
	if hits[0].DocumentID != "doc-1" {
		t.Errorf("expected document_id %q, got %q", "doc-1", hits[0].DocumentID)
	}
	if hits[0].Type != "text_block" {
		t.Errorf("expected type %q, got %q", "text_block", hits[0].Type)
	}
	if hits[0].Page != 2 {
		t.Errorf("expected page 2, got %d", hits[0].Page)
	}
}

func TestSearchIndex_NoMatch(t *testing.T) {
	s := newTestIndex(t)
	if err := s.IndexChunks("doc-1", testChunks("doc-1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hits, err := s.Search("zzzzzz", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected 0 hits, got %d", len(hits))
	}
}

func TestSearchIndex_DocumentChunks(t *testing.T) {
	s := newTestIndex(t)
	if err := s.IndexChunks("doc-1", testChunks("doc-1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.IndexChunks("doc-2", testChunks("doc-2")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chunks, err := s.DocumentChunks("doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].ID != "doc-1-0" {
		t.Errorf("expected first chunk id %q, got %q", "doc-1-0", chunks[0].ID)
	}
	if chunks[0].Type != "table" {
		t.Errorf("expected type %q, got %q", "table", chunks[0].Type)
	}
	if chunks[0].Text == "" {
		t.Error("expected chunk text to round-trip through the index")
	}
}

func TestSearchIndex_HyphenatedDocIDMatchesWhole(t *testing.T) {
	// Doc ids can be user-supplied and contain hyphens, underscores, and
	// uppercase. The id fields must not be tokenized, or whole-id lookups
	// silently match nothing.
	const docID = "Report-2024_Final"
	s := newTestIndex(t)
	if err := s.IndexChunks(docID, testChunks(docID)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chunks, err := s.DocumentChunks(docID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks for %q, got %d", docID, len(chunks))
	}

	if err := s.DeleteDocument(docID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	count, err := s.DocCount()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 chunks after delete, got %d", count)
	}
}

func TestSearchIndex_DeleteDocument(t *testing.T) {
	s := newTestIndex(t)
	if err := s.IndexChunks("doc-1", testChunks("doc-1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.IndexChunks("doc-2", testChunks("doc-2")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.DeleteDocument("doc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	count, err := s.DocCount()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected doc-2's 2 chunks to remain, got %d", count)
	}
}
