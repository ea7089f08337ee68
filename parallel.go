package edt

import (
	"sync"

	"github.com/soypat/edt/internal/par"
)

// Transforms on grids smaller than this run on the calling goroutine.
const serialThreshold = 4 << 10

var (
	poolMu      sync.Mutex
	pool        *par.Pool
	poolWorkers int
)

// SetWorkers fixes the number of workers used to process grid lines in
// parallel. n <= 0 restores the default, GOMAXPROCS. The previous pool's
// workers are released. Safe for concurrent use, though transforms already
// in flight keep the pool they started with.
func SetWorkers(n int) {
	if n < 0 {
		n = 0
	}
	poolMu.Lock()
	defer poolMu.Unlock()
	if pool != nil {
		pool.Close()
		pool = nil
	}
	poolWorkers = n
}

// workers returns the shared pool, creating it on first use.
func workers() *par.Pool {
	poolMu.Lock()
	defer poolMu.Unlock()
	if pool == nil {
		pool = par.New(poolWorkers)
		Logger().Debug("edt: worker pool created", "workers", pool.NumWorkers())
	}
	return pool
}
