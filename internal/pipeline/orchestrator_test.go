package pipeline

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dgallion1/bookseg/internal/config"
)

func testOrchestrator() *Orchestrator {
	cfg := config.Config{
		WorkerCount:  1,
		MaxQueueSize: 2,
		JobTTL:       time.Hour,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewOrchestrator(cfg, nil, nil, log)
}

func TestOrchestrator_SubmitAfterStopDoesNotPanic(t *testing.T) {
	o := testOrchestrator()
	o.Start(context.Background())
	o.Stop()

	job := &Job{ID: "late", Status: StatusQueued, UpdatedAt: time.Now()}
	if err := o.Submit(job); err != nil {
		t.Fatalf("submit after stop: %v", err)
	}
	if o.GetJob("late") == nil {
		t.Error("late job should still be registered")
	}
}

func TestOrchestrator_SubmitQueueFull(t *testing.T) {
	// Never started, so nothing drains the queue.
	o := testOrchestrator()

	for i := 0; i < 2; i++ {
		job := &Job{ID: NewID(), Status: StatusQueued, UpdatedAt: time.Now()}
		if err := o.Submit(job); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	overflow := &Job{ID: "overflow", Status: StatusQueued, UpdatedAt: time.Now()}
	if err := o.Submit(overflow); err == nil {
		t.Fatal("expected queue-full error")
	}
	if overflow.Snapshot().Status != StatusFailed {
		t.Errorf("overflow job status = %q, want %q", overflow.Snapshot().Status, StatusFailed)
	}
}
