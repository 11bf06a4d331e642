package pipeline

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewPoolClampsSize(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{0, 1},
		{-3, 1},
		{4, 4},
		{8, 8},
		{20, 8},
	}
	for _, tc := range cases {
		if got := NewPool(tc.in).Size(); got != tc.want {
			t.Errorf("NewPool(%d).Size() = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestPoolBoundsConcurrency(t *testing.T) {
	const bound = 3
	pool := NewPool(bound)

	jobs := make([]Job, 12)
	for i := range jobs {
		jobs[i] = Job{InputPath: "job"}
	}

	var running, peak atomic.Int32
	work := func(ctx context.Context, job Job) Result {
		now := running.Add(1)
		for {
			old := peak.Load()
			if now <= old || peak.CompareAndSwap(old, now) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		running.Add(-1)
		return Result{InputPath: job.InputPath, Success: true}
	}

	collected := 0
	pool.Run(context.Background(), jobs, work, func(Result) { collected++ })

	if collected != len(jobs) {
		t.Fatalf("collected %d results, want %d", collected, len(jobs))
	}
	if got := peak.Load(); got > bound {
		t.Fatalf("peak concurrency %d exceeds bound %d", got, bound)
	}
}

func TestPoolCollectsSerially(t *testing.T) {
	pool := NewPool(8)
	jobs := make([]Job, 50)

	// collect mutates shared state without a lock; the race detector fails
	// this test if results are merged from more than one goroutine.
	seen := map[int]bool{}
	i := 0
	pool.Run(context.Background(), jobs,
		func(ctx context.Context, job Job) Result { return Result{Success: true} },
		func(Result) {
			seen[i] = true
			i++
		})

	if i != len(jobs) {
		t.Fatalf("collected %d, want %d", i, len(jobs))
	}
}

func TestPoolCancellationSkipsPendingJobs(t *testing.T) {
	pool := NewPool(1)
	ctx, cancel := context.WithCancel(context.Background())

	jobs := make([]Job, 10)
	started := 0
	pool.Run(ctx, jobs,
		func(ctx context.Context, job Job) Result {
			started++
			cancel()
			return Result{}
		},
		func(Result) {})

	if started >= len(jobs) {
		t.Fatalf("cancellation did not stop dispatch: %d jobs started", started)
	}
}
