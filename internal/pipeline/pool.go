package pipeline

import (
	"context"
	"sync"
)

// Pool bounds how many jobs encode at once. Workers push every finished
// result onto a single channel and the caller's goroutine folds them into
// the run summary one at a time, so summary state never needs a lock.
type Pool struct {
	size int
}

// NewPool clamps size into [1, 8]; encoding more files than that in parallel
// just thrashes the encoder hardware.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	if size > 8 {
		size = 8
	}
	return &Pool{size: size}
}

// Size reports the worker bound.
func (p *Pool) Size() int {
	return p.size
}

// Run dispatches every job through at most Size concurrent workers and calls
// collect once per finished job, serially, from the calling goroutine. Jobs
// not yet started when ctx is canceled are skipped; jobs already encoding
// run to completion of their current ffmpeg invocation.
func (p *Pool) Run(ctx context.Context, jobs []Job, work func(context.Context, Job) Result, collect func(Result)) {
	results := make(chan Result)
	sem := make(chan struct{}, p.size)

	var wg sync.WaitGroup
	dispatched := make(chan struct{})
	go func() {
		defer close(dispatched)
		for _, job := range jobs {
			if ctx.Err() != nil {
				return
			}
			select {
			case <-ctx.Done():
				return
			case sem <- struct{}{}:
			}
			wg.Add(1)
			go func(job Job) {
				defer wg.Done()
				defer func() { <-sem }()
				results <- work(ctx, job)
			}(job)
		}
	}()

	go func() {
		<-dispatched
		wg.Wait()
		close(results)
	}()

	for result := range results {
		collect(result)
	}
}
