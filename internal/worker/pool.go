// Package worker runs address assessments in parallel. Addresses share no
// mutable state, so the only coordination is bounding concurrency and
// collecting results; one address failing or being cancelled never affects
// the others.
package worker

import (
	"context"
	"sync"
)

// Task is one unit of independent work
type Task func(ctx context.Context)

// Pool bounds how many tasks run at once
type Pool struct {
	workers int
}

// NewPool creates a pool with the given concurrency
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Run executes all tasks, at most p.workers at a time, and returns when
// every task has finished. Tasks observe cancellation through ctx; a
// cancelled context stops unstarted tasks from running but lets running
// ones finish.
func (p *Pool) Run(ctx context.Context, tasks []Task) {
	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup

	for _, task := range tasks {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(t Task) {
			defer wg.Done()
			defer func() { <-sem }()
			t(ctx)
		}(task)
	}

	wg.Wait()
}
