package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleDocumentChunks lists the stored chunks of one document.
func (s *Server) handleDocumentChunks(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")

	chunks, err := s.orchestrator.Search().DocumentChunks(docID)
	if err != nil {
		jsonError(w, "failed to list chunks: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if len(chunks) == 0 {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"doc_id": docID,
		"count":  len(chunks),
		"chunks": chunks,
	})
}

// handleDeleteDocument removes a document's chunks from both stores.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")

	if err := s.orchestrator.DeleteDocument(r.Context(), docID); err != nil {
		jsonError(w, "failed to delete document: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"doc_id":  docID,
		"deleted": true,
	})
}
