// Package worker provides a fixed-size goroutine pool fed through a buffered
// job channel.
package worker

import (
	"context"
	"errors"
	"sync"
)

// ErrStopped is returned by Submit after Stop has been called.
var ErrStopped = errors.New("worker pool stopped")

type Job any

type ProcessFunc func(ctx context.Context, job Job)

type WorkerPool struct {
	numWorkers int
	jobs       chan Job
	processor  ProcessFunc
	wg         sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

func NewWorkerPool(numWorkers int, bufferSize int, processor ProcessFunc) *WorkerPool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool{
		numWorkers: numWorkers,
		jobs:       make(chan Job, bufferSize),
		processor:  processor,
	}
}

// Size is the number of workers.
func (wp *WorkerPool) Size() int { return wp.numWorkers }

// Start launches the workers. ctx is handed to every processor call; workers
// keep draining the queue until Stop so that no submitted job is dropped.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 1; i <= wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx)
	}
}

func (wp *WorkerPool) worker(ctx context.Context) {
	defer wp.wg.Done()
	for job := range wp.jobs {
		wp.processor(ctx, job)
	}
}

// Submit queues a job, blocking while the buffer is full. It gives up when
// ctx is cancelled or the pool has been stopped.
func (wp *WorkerPool) Submit(ctx context.Context, job Job) error {
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	if wp.stopped {
		return ErrStopped
	}
	select {
	case wp.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop closes the queue and waits for in-flight and queued jobs to finish.
// It is safe to call more than once.
func (wp *WorkerPool) Stop() {
	wp.mu.Lock()
	if !wp.stopped {
		wp.stopped = true
		close(wp.jobs)
	}
	wp.mu.Unlock()
	wp.wg.Wait()
}
