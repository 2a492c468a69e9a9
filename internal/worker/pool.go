// Package worker provides bounded fan-out for sibling sub-claim resolution
// and rate limiting for external collaborator calls.
package worker

import (
	"context"
	"sync"
)

// Job is one unit of work, typically a single sub-claim resolution.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of one job.
type Result interface {
	GetError() error
}

// Run executes a fixed batch of jobs with at most `workers` running
// concurrently and joins on all of them: it returns only when every job has
// finished. Cancellation is delivered through ctx; jobs are still expected
// to return (with a cancelled result) so the join barrier always completes.
//
// Results are returned in completion order, not submission order.
func Run(ctx context.Context, workers int, jobs []Job) []Result {
	if len(jobs) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	queue := make(chan Job)
	results := make(chan Result, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				results <- job.Execute(ctx)
			}
		}()
	}

	for _, job := range jobs {
		queue <- job
	}
	close(queue)
	wg.Wait()
	close(results)

	out := make([]Result, 0, len(jobs))
	for r := range results {
		out = append(out, r)
	}
	return out
}
