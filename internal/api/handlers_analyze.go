package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dgallion1/layoutchunk/internal/pipeline"
)

type analyzeRequest struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	DocID  string `json:"doc_id"`
}

// handleAnalyze queues a job that runs a stored document through the remote
// layout-analysis service and reconstructs chunks from its block graph.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Bucket == "" || req.Key == "" {
		jsonError(w, "bucket and key are required", http.StatusBadRequest)
		return
	}
	if s.cfg.AnalysisURL == "" {
		jsonError(w, "no analysis service configured", http.StatusServiceUnavailable)
		return
	}

	docID := req.DocID
	if docID == "" {
		docID = pipeline.ContentHashHex([]byte(req.Bucket + "/" + req.Key))[:16]
	}

	now := time.Now()
	job := &pipeline.Job{
		ID:        pipeline.ContentHashHex([]byte(fmt.Sprintf("%s-%s-%d", req.Bucket, req.Key, now.UnixNano())))[:20],
		DocID:     docID,
		Status:    pipeline.StatusQueued,
		Phase:     "queued",
		Source:    pipeline.SourceAnalysis,
		Bucket:    req.Bucket,
		Key:       req.Key,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"doc_id":   job.DocID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/ingest/%s/status", job.ID),
	})
}
