package worker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

// sleepResult implements Result
type sleepResult struct {
	id  int
	err error
}

func (r *sleepResult) GetError() error {
	return r.err
}

// sleepJob simulates one scoring run of configurable length
type sleepJob struct {
	id       int
	duration time.Duration
	fail     bool
	started  *int32
	running  *int32
	peak     *int32
}

func (j *sleepJob) Execute(ctx context.Context) Result {
	if j.started != nil {
		atomic.AddInt32(j.started, 1)
	}
	if j.running != nil {
		now := atomic.AddInt32(j.running, 1)
		for {
			prev := atomic.LoadInt32(j.peak)
			if now <= prev || atomic.CompareAndSwapInt32(j.peak, prev, now) {
				break
			}
		}
		defer atomic.AddInt32(j.running, -1)
	}

	if j.duration > 0 {
		select {
		case <-time.After(j.duration):
		case <-ctx.Done():
			return &sleepResult{id: j.id, err: ctx.Err()}
		}
	}

	if j.fail {
		return &sleepResult{id: j.id, err: fmt.Errorf("job %d failed", j.id)}
	}
	return &sleepResult{id: j.id}
}

func TestNewPool_WorkerFloor(t *testing.T) {
	for _, workers := range []int{0, -3} {
		if p := NewPool(workers); p.workers != 1 {
			t.Errorf("NewPool(%d): expected 1 worker, got %d", workers, p.workers)
		}
	}
	if p := NewPool(8); p.workers != 8 {
		t.Errorf("NewPool(8): expected 8 workers, got %d", p.workers)
	}
}

func TestPool_RunsEveryJob(t *testing.T) {
	pool := NewPool(3)
	pool.Start()

	var started int32
	const jobs = 10
	for i := 0; i < jobs; i++ {
		pool.Submit(&sleepJob{id: i, started: &started})
	}

	results := pool.Wait()
	if len(results) != jobs {
		t.Errorf("Expected %d results, got %d", jobs, len(results))
	}
	if atomic.LoadInt32(&started) != jobs {
		t.Errorf("Expected %d executions, got %d", jobs, started)
	}
}

func TestPool_ConcurrencyBounded(t *testing.T) {
	const workers = 4
	pool := NewPool(workers)
	pool.Start()

	var running, peak int32
	const jobs = 200

	// Submit far more jobs than the channel buffers hold; draining
	// concurrently must keep the pool moving.
	go func() {
		for i := 0; i < jobs; i++ {
			pool.Submit(&sleepJob{
				id:       i,
				duration: time.Millisecond,
				running:  &running,
				peak:     &peak,
			})
		}
		pool.Done()
	}()

	results := pool.drain()
	if len(results) != jobs {
		t.Fatalf("Expected %d results, got %d", jobs, len(results))
	}
	if p := atomic.LoadInt32(&peak); p > workers {
		t.Errorf("Peak concurrency %d exceeded %d workers", p, workers)
	}
}

func TestPool_ErrorsFlowThrough(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	pool.Submit(&sleepJob{id: 0, fail: true})
	pool.Submit(&sleepJob{id: 1})
	pool.Submit(&sleepJob{id: 2, fail: true})

	results := pool.Wait()
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}

	failures := 0
	for _, res := range results {
		if res.GetError() != nil {
			failures++
		}
	}
	if failures != 2 {
		t.Errorf("Expected 2 failures, got %d", failures)
	}
}

func TestPool_ParentContextCancelsJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewPoolWithContext(ctx, 1)
	pool.Start()

	pool.Submit(&sleepJob{id: 0, duration: 5 * time.Second})
	time.Sleep(20 * time.Millisecond)
	cancel()

	done := make(chan []Result, 1)
	go func() { done <- pool.Wait() }()

	select {
	case results := <-done:
		for _, res := range results {
			if !errors.Is(res.GetError(), context.Canceled) {
				t.Errorf("Expected context.Canceled, got %v", res.GetError())
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Pool did not stop after context cancellation")
	}
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	pool := NewPool(2)
	pool.Start()
	pool.Shutdown()

	// Submit after shutdown must return without blocking or panicking
	done := make(chan struct{})
	go func() {
		pool.Submit(&sleepJob{id: 0})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit after shutdown blocked")
	}
}

func TestPool_DoneIsIdempotent(t *testing.T) {
	pool := NewPool(1)
	pool.Start()
	pool.Submit(&sleepJob{id: 0})

	pool.Done()
	pool.Done() // second call must not panic

	if results := pool.drain(); len(results) != 1 {
		t.Errorf("Expected 1 result, got %d", len(results))
	}
}
