// Package store holds the downstream chunk sinks: a chromem vector store
// for semantic retrieval and a bleve index for full-text search.
package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dgallion1/layoutchunk/internal/layout"
	"github.com/philippgille/chromem-go"
)

const collectionName = "chunks"

// VectorStore persists chunks with their embeddings for similarity search.
type VectorStore struct {
	db   *chromem.DB
	coll *chromem.Collection
}

// NewVectorStore opens (or creates) a persistent vector store at path. An
// empty path keeps everything in memory, which the tests rely on.
func NewVectorStore(path string, embed chromem.EmbeddingFunc) (*VectorStore, error) {
	var db *chromem.DB
	var err error
	if path == "" {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(path, false)
		if err != nil {
			return nil, fmt.Errorf("open vector db: %w", err)
		}
	}

	coll, err := db.GetOrCreateCollection(collectionName, nil, embed)
	if err != nil {
		return nil, fmt.Errorf("open collection: %w", err)
	}
	return &VectorStore{db: db, coll: coll}, nil
}

// AddChunks stores a document's chunks. Chunk ids are deterministic
// (docID-index) so re-ingesting a document overwrites its previous chunks
// instead of duplicating them.
func (s *VectorStore) AddChunks(ctx context.Context, docID string, chunks []layout.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	docs := make([]chromem.Document, 0, len(chunks))
	for i, chunk := range chunks {
		meta := map[string]string{
			"document_id": chunk.Metadata.DocumentID,
			"type":        string(chunk.Metadata.Type),
		}
		if chunk.Metadata.Page > 0 {
			meta["page"] = strconv.Itoa(chunk.Metadata.Page)
		}
		docs = append(docs, chromem.Document{
			ID:       fmt.Sprintf("%s-%d", docID, i),
			Content:  chunk.Text,
			Metadata: meta,
		})
	}
	if err := s.coll.AddDocuments(ctx, docs, 1); err != nil {
		return fmt.Errorf("add chunks: %w", err)
	}
	return nil
}

// Query returns the chunks most similar to the query text, optionally
// restricted to one document.
func (s *VectorStore) Query(ctx context.Context, query string, n int, docID string) ([]chromem.Result, error) {
	count := s.coll.Count()
	if count == 0 {
		return nil, nil
	}
	if n > count {
		n = count
	}
	var where map[string]string
	if docID != "" {
		where = map[string]string{"document_id": docID}
	}
	results, err := s.coll.Query(ctx, query, n, where, nil)
	if err != nil {
		return nil, fmt.Errorf("query chunks: %w", err)
	}
	return results, nil
}

// DeleteDocument removes all chunks of one document.
func (s *VectorStore) DeleteDocument(ctx context.Context, docID string) error {
	if err := s.coll.Delete(ctx, map[string]string{"document_id": docID}, nil); err != nil {
		return fmt.Errorf("delete document chunks: %w", err)
	}
	return nil
}

// Count returns the number of stored chunks.
func (s *VectorStore) Count() int {
	return s.coll.Count()
}
