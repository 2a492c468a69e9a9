package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countJob struct {
	running *int32
	peak    *int32
	err     error
}

type countResult struct{ err error }

func (r countResult) GetError() error { return r.err }

func (j countJob) Execute(ctx context.Context) Result {
	n := atomic.AddInt32(j.running, 1)
	for {
		p := atomic.LoadInt32(j.peak)
		if n <= p || atomic.CompareAndSwapInt32(j.peak, p, n) {
			break
		}
	}
	select {
	case <-ctx.Done():
		atomic.AddInt32(j.running, -1)
		return countResult{err: ctx.Err()}
	case <-time.After(10 * time.Millisecond):
	}
	atomic.AddInt32(j.running, -1)
	return countResult{err: j.err}
}

func TestRun_JoinsAllJobs(t *testing.T) {
	var running, peak int32
	jobs := make([]Job, 8)
	for i := range jobs {
		jobs[i] = countJob{running: &running, peak: &peak}
	}

	results := Run(context.Background(), 3, jobs)

	if len(results) != 8 {
		t.Fatalf("expected 8 results, got %d", len(results))
	}
	if got := atomic.LoadInt32(&running); got != 0 {
		t.Errorf("jobs still running after join: %d", got)
	}
	if got := atomic.LoadInt32(&peak); got > 3 {
		t.Errorf("fan-out exceeded worker bound: peak %d", got)
	}
}

func TestRun_EmptyAndDefaults(t *testing.T) {
	if got := Run(context.Background(), 4, nil); got != nil {
		t.Errorf("expected nil for empty batch, got %v", got)
	}

	var running, peak int32
	results := Run(context.Background(), 0, []Job{countJob{running: &running, peak: &peak}})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
}

func TestRun_CancelledContextStillJoins(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var running, peak int32
	jobs := make([]Job, 4)
	for i := range jobs {
		jobs[i] = countJob{running: &running, peak: &peak}
	}

	results := Run(ctx, 2, jobs)
	if len(results) != 4 {
		t.Fatalf("expected all 4 results despite cancellation, got %d", len(results))
	}
	cancelled := 0
	for _, r := range results {
		if r.GetError() != nil {
			cancelled++
		}
	}
	if cancelled != 4 {
		t.Errorf("expected 4 cancelled results, got %d", cancelled)
	}
}
