package store

import (
	"errors"
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/dgallion1/layoutchunk/internal/layout"
)

// chunkDoc is the shape indexed for each chunk.
type chunkDoc struct {
	DocumentID string `json:"document_id"`
	Type       string `json:"type"`
	Page       int    `json:"page"`
	Text       string `json:"text"`
}

// Hit is one full-text search result.
type Hit struct {
	ID         string  `json:"id"`
	DocumentID string  `json:"document_id"`
	Type       string  `json:"type"`
	Page       int     `json:"page,omitempty"`
	Score      float64 `json:"score"`
}

// SearchIndex is a bleve full-text index over chunk text.
type SearchIndex struct {
	idx bleve.Index
}

// chunkIndexMapping maps id-like fields with the keyword analyzer so term
// queries match whole values; the default standard analyzer would tokenize
// "doc-1" into "doc" and "1" and no term query could ever find it.
func chunkIndexMapping() mapping.IndexMapping {
	idField := bleve.NewTextFieldMapping()
	idField.Analyzer = keyword.Name

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("document_id", idField)
	doc.AddFieldMappingsAt("type", idField)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	return m
}

// NewSearchIndex opens (or creates) a bleve index at path. An empty path
// builds an in-memory index.
func NewSearchIndex(path string) (*SearchIndex, error) {
	if path == "" {
		idx, err := bleve.NewMemOnly(chunkIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create in-memory index: %w", err)
		}
		return &SearchIndex{idx: idx}, nil
	}

	idx, err := bleve.Open(path)
	if errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
		idx, err = bleve.New(path, chunkIndexMapping())
	}
	if err != nil {
		return nil, fmt.Errorf("open search index: %w", err)
	}
	return &SearchIndex{idx: idx}, nil
}

// IndexChunks adds a document's chunks to the index in one batch. Chunk ids
// match the vector store's docID-index scheme.
func (s *SearchIndex) IndexChunks(docID string, chunks []layout.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	batch := s.idx.NewBatch()
	for i, chunk := range chunks {
		doc := chunkDoc{
			DocumentID: chunk.Metadata.DocumentID,
			Type:       string(chunk.Metadata.Type),
			Page:       chunk.Metadata.Page,
			Text:       chunk.Text,
		}
		if err := batch.Index(fmt.Sprintf("%s-%d", docID, i), doc); err != nil {
			return fmt.Errorf("index chunk: %w", err)
		}
	}
	if err := s.idx.Batch(batch); err != nil {
		return fmt.Errorf("apply index batch: %w", err)
	}
	return nil
}

// Search runs a match query over chunk text.
func (s *SearchIndex) Search(q string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 10
	}
	query := bleve.NewMatchQuery(q)
	query.SetField("text")
	req := bleve.NewSearchRequest(query)
	req.Size = limit
	req.Fields = []string{"document_id", "type", "page"}

	res, err := s.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hit := Hit{ID: h.ID, Score: h.Score}
		if v, ok := h.Fields["document_id"].(string); ok {
			hit.DocumentID = v
		}
		if v, ok := h.Fields["type"].(string); ok {
			hit.Type = v
		}
		if v, ok := h.Fields["page"].(float64); ok {
			hit.Page = int(v)
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// StoredChunk is a chunk read back from the index.
type StoredChunk struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Page int    `json:"page,omitempty"`
	Text string `json:"text"`
}

// DocumentChunks returns all chunks of one document, ordered by chunk id.
func (s *SearchIndex) DocumentChunks(docID string) ([]StoredChunk, error) {
	query := bleve.NewTermQuery(docID)
	query.SetField("document_id")
	req := bleve.NewSearchRequest(query)
	req.Size = 10000
	req.Fields = []string{"type", "page", "text"}
	req.SortBy([]string{"_id"})

	res, err := s.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("list document chunks: %w", err)
	}
	chunks := make([]StoredChunk, 0, len(res.Hits))
	for _, h := range res.Hits {
		c := StoredChunk{ID: h.ID}
		if v, ok := h.Fields["type"].(string); ok {
			c.Type = v
		}
		if v, ok := h.Fields["page"].(float64); ok {
			c.Page = int(v)
		}
		if v, ok := h.Fields["text"].(string); ok {
			c.Text = v
		}
		chunks = append(chunks, c)
	}
	return chunks, nil
}

// DeleteDocument removes a document's chunks from the index.
func (s *SearchIndex) DeleteDocument(docID string) error {
	query := bleve.NewTermQuery(docID)
	query.SetField("document_id")
	req := bleve.NewSearchRequest(query)
	req.Size = 1000

	for {
		res, err := s.idx.Search(req)
		if err != nil {
			return fmt.Errorf("find document chunks: %w", err)
		}
		if len(res.Hits) == 0 {
			return nil
		}
		batch := s.idx.NewBatch()
		for _, h := range res.Hits {
			batch.Delete(h.ID)
		}
		if err := s.idx.Batch(batch); err != nil {
			return fmt.Errorf("delete document chunks: %w", err)
		}
	}
}

// DocCount returns the number of indexed chunks.
func (s *SearchIndex) DocCount() (uint64, error) {
	return s.idx.DocCount()
}

// Close releases the index.
func (s *SearchIndex) Close() error {
	return s.idx.Close()
}
