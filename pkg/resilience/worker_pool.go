// Package resilience holds the small fault-handling primitives the service
// leans on: a fixed-size worker pool for background jobs and a circuit
// breaker for the store client.
package resilience

import (
	"context"
	"errors"
	"sync"
)

var ErrWorkerPoolClosed = errors.New("worker pool is closed")

// WorkerPool runs submitted jobs on a fixed set of goroutines with a
// bounded queue. Submit blocks when the queue is full, which backpressures
// producers instead of growing memory.
type WorkerPool struct {
	queue chan func()

	mu     sync.RWMutex
	closed bool

	stop sync.Once
	wg   sync.WaitGroup
}

func NewWorkerPool(workers, queueSize int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = workers
	}

	p := &WorkerPool{queue: make(chan func(), queueSize)}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for job := range p.queue {
		if job != nil {
			job()
		}
	}
}

// Submit enqueues job, blocking until there is room or ctx is done.
func (p *WorkerPool) Submit(ctx context.Context, job func()) error {
	if job == nil {
		return nil
	}

	// The read lock is held across the send so a concurrent Close cannot
	// close the queue between the closed check and the send.
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrWorkerPoolClosed
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case p.queue <- job:
		return nil
	}
}

// Close stops accepting jobs. Queued jobs still run; Wait blocks until the
// workers have drained them.
func (p *WorkerPool) Close() {
	p.stop.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.queue)
		p.mu.Unlock()
	})
}

func (p *WorkerPool) Wait() {
	p.wg.Wait()
}
