// Package parallel runs independent jobs on a fixed number of goroutines.
package parallel

import (
	"runtime"
	"sync"
)

type (
	// WorkerFunc schedules a job, blocking while every worker is busy.
	WorkerFunc func(func())
	// WaitFunc blocks until the workers exit. Passing done closes the
	// pool first, after which no more jobs may be scheduled.
	WaitFunc   func(done bool)
	CancelFunc func()
)

type Pool struct {
	wg      sync.WaitGroup
	Workers int
	Do      WorkerFunc
	Wait    WaitFunc
	Cancel  CancelFunc
}

// Start returns a pool of numWorkers goroutines, GOMAXPROCS if numWorkers
// is below 1. A single worker runs jobs inline on the caller's goroutine.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		Workers: numWorkers,
		Do: func(f func()) {
			f()
		},
		Wait:   func(bool) {},
		Cancel: func() {},
	}
	if numWorkers == 1 {
		return pool
	}

	workChan := make(chan func(), numWorkers)
	for range numWorkers {
		pool.wg.Go(func() {
			for f := range workChan {
				f()
			}
		})
	}

	pool.Do = func(f func()) {
		workChan <- f
	}
	pool.Cancel = sync.OnceFunc(func() { close(workChan) })
	pool.Wait = func(done bool) {
		if done {
			pool.Cancel()
		}
		pool.wg.Wait()
	}
	return pool
}
