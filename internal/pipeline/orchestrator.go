package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/layoutchunk/internal/analysis"
	"github.com/dgallion1/layoutchunk/internal/config"
	"github.com/dgallion1/layoutchunk/internal/layout"
	"github.com/dgallion1/layoutchunk/internal/store"
)

// Orchestrator manages the document ingestion pipeline.
type Orchestrator struct {
	jobs     *JobStore
	queue    chan *Job
	analyzer *analysis.Client
	vector   *store.VectorStore
	search   *store.SearchIndex
	log      *slog.Logger
	cfg      config.Config
	opts     layout.Options

	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	stopped bool
}

// NewOrchestrator creates the pipeline. analyzer may be nil when no remote
// analysis service is configured.
func NewOrchestrator(cfg config.Config, analyzer *analysis.Client, vector *store.VectorStore, search *store.SearchIndex, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:     NewJobStore(cfg.JobTTL),
		queue:    make(chan *Job, cfg.MaxQueueSize),
		analyzer: analyzer,
		vector:   vector,
		search:   search,
		log:      log,
		cfg:      cfg,
		opts:     layout.Options{ExpandMergedCells: cfg.ExpandMergedCells},
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.analyzer, o.vector, o.search, o.jobs, o.log, o.opts, o.cfg.PDFFallbackPdftotext)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline. The queue channel is never
// closed: an HTTP request may still be inside Submit, and cancelling the
// worker context is enough to stop the pool.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		return
	}
	o.stopped = true
	o.mu.Unlock()

	if o.cancel != nil {
		o.cancel()
	}
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.mu.Lock()
	stopped := o.stopped
	o.mu.Unlock()
	if stopped {
		job.SetStatus(StatusFailed, "shutting_down")
		return fmt.Errorf("pipeline is shutting down")
	}

	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Options returns the reconstruction options the pipeline runs with.
func (o *Orchestrator) Options() layout.Options {
	return o.opts
}

// Vector returns the vector store for direct use by API handlers.
func (o *Orchestrator) Vector() *store.VectorStore {
	return o.vector
}

// Search returns the search index for direct use by API handlers.
func (o *Orchestrator) Search() *store.SearchIndex {
	return o.search
}

// DeleteDocument removes a document's chunks from both stores and clears its
// dedup entry.
func (o *Orchestrator) DeleteDocument(ctx context.Context, docID string) error {
	if err := o.vector.DeleteDocument(ctx, docID); err != nil {
		return err
	}
	if err := o.search.DeleteDocument(docID); err != nil {
		return err
	}
	o.jobs.ForgetDoc(docID)
	return nil
}
