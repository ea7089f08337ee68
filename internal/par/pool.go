// Package par provides a persistent worker pool for data-parallel loops.
// A Pool is created once and reused across many passes so that per-pass
// cost is handing out chunks, not spawning goroutines.
package par

import (
	"runtime"
	"sync"
)

// Pool is a fixed set of worker goroutines consuming parallel-for chunks.
type Pool struct {
	numWorkers int
	workC      chan workItem

	// mu orders dispatch against Close: sends on workC happen under the
	// read side, Close flips closed and closes workC under the write
	// side. Items already queued survive the close and are drained.
	mu     sync.RWMutex
	closed bool
}

type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a pool with n workers, spawned immediately. They persist
// until Close is called. n <= 0 means GOMAXPROCS.
func New(n int) *Pool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		numWorkers: n,
		workC:      make(chan workItem, n*2),
	}
	for i := 0; i < n; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int { return p.numWorkers }

// Close shuts the pool down after pending work completes. Dispatches
// already queueing finish first; their chunks still run. Close is
// idempotent. A closed pool runs ParallelFor calls serially.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.workC)
}

// ParallelFor splits [0, n) into contiguous chunks, one per worker, and
// calls fn(start, end) on each from the pool. It blocks until every chunk
// has completed: a return from ParallelFor is a barrier.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	workers := p.numWorkers
	if workers > n {
		workers = n
	}
	if workers == 1 {
		fn(0, n)
		return
	}
	chunk := (n + workers - 1) / workers

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		fn(0, n)
		return
	}
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		start := i * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= n {
			wg.Done()
			continue
		}
		p.workC <- workItem{
			fn:      func() { fn(start, end) },
			barrier: &wg,
		}
	}
	p.mu.RUnlock()
	wg.Wait()
}
