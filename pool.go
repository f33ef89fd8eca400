package globfs

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
)

// WorkerPool bounds the number of concurrent blocking filesystem
// operations a VFS implementation may have in flight at once. It is
// intentionally minimal: the full fork-safe, drain-and-reconstruct pool
// lifecycle named in the original design is out of scope for this module
// (see DESIGN.md); Reset here only rotates the pool's semaphore for
// subsequent callers, without waiting for or cancelling work already in
// flight against the old one.
type WorkerPool struct {
	mu       sync.RWMutex
	sem      *semaphore.Weighted
	capacity int64
}

// NewWorkerPool creates a pool that admits at most capacity concurrent
// blocking operations. A non-positive capacity defaults to runtime.NumCPU().
func NewWorkerPool(capacity int) *WorkerPool {
	if capacity <= 0 {
		capacity = runtime.NumCPU()
	}
	return &WorkerPool{sem: semaphore.NewWeighted(int64(capacity)), capacity: int64(capacity)}
}

// Submit runs fn once a slot is available, blocking until either a slot
// frees up or ctx is cancelled.
func (p *WorkerPool) Submit(ctx context.Context, fn func() error) error {
	p.mu.RLock()
	sem := p.sem
	p.mu.RUnlock()
	if err := sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer sem.Release(1)
	return fn()
}

// Reset rotates the pool's semaphore so future Submit calls draw from a
// fresh instance. Operations already admitted under the old semaphore
// continue to run and release against it independently.
func (p *WorkerPool) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sem = semaphore.NewWeighted(p.capacity)
}
