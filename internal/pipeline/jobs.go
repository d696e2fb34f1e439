package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// JobStatus represents the state of an ingestion job.
type JobStatus string

const (
	StatusQueued         JobStatus = "queued"
	StatusParsing        JobStatus = "parsing"
	StatusAnalyzing      JobStatus = "analyzing"
	StatusReconstructing JobStatus = "reconstructing"
	StatusStoring        JobStatus = "storing"
	StatusCompleted      JobStatus = "completed"
	StatusFailed         JobStatus = "failed"
	StatusPartial        JobStatus = "partial"
	StatusDupSkipped     JobStatus = "duplicate_skipped"
)

// JobSource tells the worker where the document comes from.
type JobSource string

const (
	// SourceUpload jobs carry the raw file bytes and go through a local parser.
	SourceUpload JobSource = "upload"
	// SourceAnalysis jobs reference a stored document and go through the
	// remote layout-analysis service.
	SourceAnalysis JobSource = "analysis"
)

// Job tracks the state of a single document ingestion.
type Job struct {
	mu sync.Mutex

	ID    string `json:"job_id"`
	DocID string `json:"doc_id"`

	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Source   JobSource `json:"source"`
	Filename string    `json:"filename,omitempty"`

	// For SourceAnalysis jobs: where the document lives.
	Bucket string `json:"bucket,omitempty"`
	Key    string `json:"key,omitempty"`

	Progress Progress `json:"progress"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	errors   []string
}

// Progress tracks processing progress.
type Progress struct {
	TotalChunks  int      `json:"total_chunks"`
	TableChunks  int      `json:"table_chunks"`
	ChunksStored int      `json:"chunks_stored"`
	Errors       []string `json:"errors"`
}

// JobStore is a thread-safe in-memory job registry with TTL eviction. It also
// keeps a content-hash index so re-uploads of identical documents are skipped.
type JobStore struct {
	mu     sync.Mutex
	jobs   map[string]*Job
	hashes map[string]string // content hash -> doc id
	ttl    time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs:   make(map[string]*Job),
		hashes: make(map[string]string),
		ttl:    ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// SeenHash reports whether a document with this content hash was already
// ingested, and by which doc id.
func (s *JobStore) SeenHash(hash string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docID, ok := s.hashes[hash]
	return docID, ok
}

// RecordHash remembers a completed ingestion's content hash.
func (s *JobStore) RecordHash(hash, docID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hashes[hash] = docID
}

// ForgetDoc drops the hash entry for a deleted document so it can be
// re-ingested.
func (s *JobStore) ForgetDoc(docID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for hash, id := range s.hashes {
		if id == docID {
			delete(s.hashes, hash)
		}
	}
}

// Cleanup removes expired jobs. Hash entries survive eviction so dedup keeps
// working after the job record is gone.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetChunkCounts records how many chunks reconstruction produced.
func (j *Job) SetChunkCounts(total, tables int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.TotalChunks = total
	j.Progress.TableChunks = tables
	j.UpdatedAt = time.Now()
}

// AddChunksStored records chunks successfully written to the stores.
func (j *Job) AddChunksStored(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.ChunksStored += n
	j.UpdatedAt = time.Now()
}

// SetContentHash records the document content hash.
func (j *Job) SetContentHash(hash string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ContentHash = hash
	j.UpdatedAt = time.Now()
}

// SetFileData sets the raw file bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string    `json:"job_id"`
	DocID    string    `json:"doc_id"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Source   JobSource `json:"source"`
	Filename string    `json:"filename,omitempty"`
	Progress Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:       j.ID,
		DocID:    j.DocID,
		Status:   j.Status,
		Phase:    j.Phase,
		Source:   j.Source,
		Filename: j.Filename,
		Progress: Progress{
			TotalChunks:  j.Progress.TotalChunks,
			TableChunks:  j.Progress.TableChunks,
			ChunksStored: j.Progress.ChunksStored,
			Errors:       errs,
		},
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
