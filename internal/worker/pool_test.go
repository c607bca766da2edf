package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewPool(t *testing.T) {
	if p := NewPool(5); p.workers != 5 {
		t.Errorf("expected 5 workers, got %d", p.workers)
	}
	if p := NewPool(0); p.workers != 1 {
		t.Errorf("expected default 1 worker for 0 input, got %d", p.workers)
	}
	if p := NewPool(-1); p.workers != 1 {
		t.Errorf("expected default 1 worker for negative input, got %d", p.workers)
	}
}

func TestPool_RunsAllTasks(t *testing.T) {
	p := NewPool(3)

	var executed int32
	tasks := make([]Task, 10)
	for i := range tasks {
		tasks[i] = func(ctx context.Context) {
			atomic.AddInt32(&executed, 1)
		}
	}

	p.Run(context.Background(), tasks)

	if got := atomic.LoadInt32(&executed); got != 10 {
		t.Errorf("expected 10 executed tasks, got %d", got)
	}
}

func TestPool_BoundsConcurrency(t *testing.T) {
	p := NewPool(2)

	var running, peak int32
	var mu sync.Mutex

	tasks := make([]Task, 8)
	for i := range tasks {
		tasks[i] = func(ctx context.Context) {
			cur := atomic.AddInt32(&running, 1)
			mu.Lock()
			if cur > peak {
				peak = cur
			}
			mu.Unlock()
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&running, -1)
		}
	}

	p.Run(context.Background(), tasks)

	mu.Lock()
	defer mu.Unlock()
	if peak > 2 {
		t.Errorf("expected at most 2 concurrent tasks, observed %d", peak)
	}
}

func TestPool_CancellationStopsUnstartedTasks(t *testing.T) {
	p := NewPool(1)

	ctx, cancel := context.WithCancel(context.Background())

	var executed int32
	tasks := make([]Task, 5)
	tasks[0] = func(ctx context.Context) {
		atomic.AddInt32(&executed, 1)
		cancel()
		// Give the scheduler a moment so the cancellation is observed
		// before the next task is dequeued.
		time.Sleep(20 * time.Millisecond)
	}
	for i := 1; i < len(tasks); i++ {
		tasks[i] = func(ctx context.Context) {
			atomic.AddInt32(&executed, 1)
		}
	}

	p.Run(ctx, tasks)

	if got := atomic.LoadInt32(&executed); got != 1 {
		t.Errorf("expected only the first task to run, got %d", got)
	}
}
