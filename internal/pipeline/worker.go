package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgallion1/layoutchunk/internal/analysis"
	"github.com/dgallion1/layoutchunk/internal/layout"
	"github.com/dgallion1/layoutchunk/internal/parser"
	"github.com/dgallion1/layoutchunk/internal/store"
)

// Worker processes a single document job: parse or analyze, reconstruct,
// then store the chunks in the vector store and the search index.
type Worker struct {
	analyzer *analysis.Client // nil when no remote analysis service is configured
	vector   *store.VectorStore
	search   *store.SearchIndex
	jobs     *JobStore
	log      *slog.Logger

	opts        layout.Options
	pdfFallback bool
}

func NewWorker(analyzer *analysis.Client, vector *store.VectorStore, search *store.SearchIndex, jobs *JobStore, log *slog.Logger, opts layout.Options, pdfFallback bool) *Worker {
	return &Worker{
		analyzer:    analyzer,
		vector:      vector,
		search:      search,
		jobs:        jobs,
		log:         log,
		opts:        opts,
		pdfFallback: pdfFallback,
	}
}

// Process runs the full ingest pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID, "source", job.Source)

	var chunks []layout.Chunk
	var err error
	switch job.Source {
	case SourceAnalysis:
		chunks, err = w.analyze(ctx, job, log)
	default:
		chunks, err = w.parse(job, log)
	}
	if err != nil {
		return
	}

	// Dedup on the reconstructed text, so the same document uploaded under a
	// different name is still caught.
	job.SetContentHash(ContentHashHex([]byte(flattenChunkText(chunks))))
	if docID, seen := w.jobs.SeenHash(job.ContentHash); seen && docID != job.DocID {
		log.Info("duplicate document, skipping", "existing_doc_id", docID)
		job.SetStatus(StatusDupSkipped, "dedup")
		return
	}

	tables := 0
	for _, c := range chunks {
		if c.Metadata.Type == layout.ChunkTable {
			tables++
		}
	}
	job.SetChunkCounts(len(chunks), tables)
	log.Info("reconstructed document", "chunks", len(chunks), "tables", tables)

	if len(chunks) == 0 {
		log.Warn("no chunks produced")
		job.AddError("no extractable content")
		job.SetStatus(StatusFailed, "reconstructing")
		return
	}

	job.SetStatus(StatusStoring, "storing")
	hadErrors := false
	if err := w.vector.AddChunks(ctx, job.DocID, chunks); err != nil {
		log.Error("vector store failed", "error", err)
		job.AddError(fmt.Sprintf("vector store: %s", err))
		hadErrors = true
	} else {
		job.AddChunksStored(len(chunks))
	}
	if err := w.search.IndexChunks(job.DocID, chunks); err != nil {
		log.Error("search index failed", "error", err)
		job.AddError(fmt.Sprintf("search index: %s", err))
		hadErrors = true
	}

	switch {
	case hadErrors && job.Snapshot().Progress.ChunksStored > 0:
		job.SetStatus(StatusPartial, "done")
	case hadErrors:
		job.SetStatus(StatusFailed, "storing")
	default:
		w.jobs.RecordHash(job.ContentHash, job.DocID)
		job.SetStatus(StatusCompleted, "done")
	}
	log.Info("ingestion complete", "status", job.Snapshot().Status)
}

// parse handles upload jobs through the local parsers.
func (w *Worker) parse(job *Job, log *slog.Logger) ([]layout.Chunk, error) {
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename, w.opts)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return nil, err
	}
	if pp, ok := p.(*parser.PDFParser); ok {
		pp.FallbackPdftotext = w.pdfFallback
	}

	chunks, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename, job.DocID)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return nil, err
	}
	return chunks, nil
}

// analyze handles remote-analysis jobs: submit, poll, fetch blocks, then
// reconstruct chunks from the block graph. Transient service errors are
// retried with backoff.
func (w *Worker) analyze(ctx context.Context, job *Job, log *slog.Logger) ([]layout.Chunk, error) {
	if w.analyzer == nil {
		err := fmt.Errorf("no analysis service configured")
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "analyzing")
		return nil, err
	}

	job.SetStatus(StatusAnalyzing, "analyzing")
	loc := analysis.DocumentLocation{Bucket: job.Bucket, Key: job.Key}

	var blocks []layout.Block
	var lastErr error
	for attempt := range MaxRetries {
		blocks, lastErr = w.analyzer.Run(ctx, loc)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		log.Warn("retryable analysis error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			lastErr = ctx.Err()
		}
		if ctx.Err() != nil {
			break
		}
	}
	if lastErr != nil {
		log.Error("analysis failed", "error", lastErr)
		job.AddError(fmt.Sprintf("analysis: %s", lastErr))
		job.SetStatus(StatusFailed, "analyzing")
		return nil, lastErr
	}

	job.SetStatus(StatusReconstructing, "reconstructing")
	chunks, err := layout.ReconstructWithOptions(blocks, job.DocID, w.opts)
	if err != nil {
		log.Error("reconstruction failed", "error", err)
		job.AddError(fmt.Sprintf("reconstruct: %s", err))
		job.SetStatus(StatusFailed, "reconstructing")
		return nil, err
	}
	return chunks, nil
}

// flattenChunkText joins all chunk text into a single string for hashing.
func flattenChunkText(chunks []layout.Chunk) string {
	var sb strings.Builder
	for _, c := range chunks {
		if c.Text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(c.Text)
	}
	return sb.String()
}
