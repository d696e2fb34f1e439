package pipeline

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dgallion1/layoutchunk/internal/config"
)

func newTestOrchestrator() *Orchestrator {
	cfg := config.Config{
		WorkerCount:  1,
		MaxQueueSize: 2,
		JobTTL:       time.Hour,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewOrchestrator(cfg, nil, nil, nil, log)
}

func TestOrchestrator_SubmitAfterStop(t *testing.T) {
	o := newTestOrchestrator()
	o.Start(context.Background())
	o.Stop()

	// A request already past the handler's auth check may still call Submit
	// after shutdown began; it must get an error, not a panic.
	job := &Job{ID: "late", Status: StatusQueued, UpdatedAt: time.Now()}
	if err := o.Submit(job); err == nil {
		t.Fatal("expected submit after stop to fail")
	}
	if got := job.Snapshot().Status; got != StatusFailed {
		t.Errorf("expected status %q, got %q", StatusFailed, got)
	}
}

func TestOrchestrator_StopIdempotent(t *testing.T) {
	o := newTestOrchestrator()
	o.Start(context.Background())
	o.Stop()
	o.Stop()
}

func TestOrchestrator_QueueFull(t *testing.T) {
	// No Start: nothing drains the queue, so the buffer fills.
	o := newTestOrchestrator()

	for i := 0; i < 2; i++ {
		job := &Job{ID: string(rune('a' + i)), Status: StatusQueued, UpdatedAt: time.Now()}
		if err := o.Submit(job); err != nil {
			t.Fatalf("unexpected error filling queue: %v", err)
		}
	}

	overflow := &Job{ID: "overflow", Status: StatusQueued, UpdatedAt: time.Now()}
	if err := o.Submit(overflow); err == nil {
		t.Fatal("expected submit to a full queue to fail")
	}
	if got := overflow.Snapshot().Status; got != StatusFailed {
		t.Errorf("expected status %q, got %q", StatusFailed, got)
	}
}
