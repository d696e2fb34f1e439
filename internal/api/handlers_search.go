package api

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// handleSearch runs a query against both stores. mode=semantic uses the
// vector store, anything else the full-text index.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		jsonError(w, "q query parameter is required", http.StatusBadRequest)
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	docID := r.URL.Query().Get("doc_id")

	w.Header().Set("Content-Type", "application/json")

	if r.URL.Query().Get("mode") == "semantic" {
		results, err := s.orchestrator.Vector().Query(r.Context(), q, limit, docID)
		if err != nil {
			jsonError(w, "semantic search failed: "+err.Error(), http.StatusInternalServerError)
			return
		}
		hits := make([]map[string]any, 0, len(results))
		for _, res := range results {
			hits = append(hits, map[string]any{
				"id":         res.ID,
				"text":       res.Content,
				"similarity": res.Similarity,
				"metadata":   res.Metadata,
			})
		}
		json.NewEncoder(w).Encode(map[string]any{"query": q, "mode": "semantic", "hits": hits})
		return
	}

	hits, err := s.orchestrator.Search().Search(q, limit)
	if err != nil {
		jsonError(w, "search failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]any{"query": q, "mode": "text", "hits": hits})
}
