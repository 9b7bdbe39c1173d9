// Copyright 2025 The go-ndsort Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent worker pool that the batched sort
// entry points use to spread independent runs across goroutines. A Pool is
// created once and reused across calls, so a sort call costs no goroutine
// spawns.
//
// The runs of a batch share one length, so batchsort splits the flattened
// batch index into contiguous chunks with ParallelFor. Each chunk allocates
// one sort.Sorter and reuses its scratch for every run it owns. Work whose
// cost varies per index, such as filling runs with random data in the
// bench command, goes through ParallelForAtomic instead.
//
// A closed Pool, or one with a single worker, runs the work on the calling
// goroutine.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	pool.ParallelFor(batches, func(start, end int) {
//	    for b := start; b < end; b++ {
//	        sortRun(b)
//	    }
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Pool is a persistent worker pool. Workers are spawned once at creation and
// live until Close.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// counter is an atomic work index kept on its own cache line, since every
// worker hammers it.
type counter struct {
	_ cpu.CacheLinePad
	n atomic.Int64
	_ cpu.CacheLinePad
}

// New creates a pool with numWorkers workers. If numWorkers <= 0, GOMAXPROCS
// is used.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}
	for range numWorkers {
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
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts the pool down after pending work completes. Calling Close more
// than once is safe. A closed pool keeps working, sequentially, on the
// calling goroutine.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// ParallelFor calls fn over [0, n) split into at most NumWorkers contiguous
// ranges and blocks until every range is done. fn receives the half-open
// range [start, end) it owns.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	workers := min(p.numWorkers, n)
	if workers == 1 || p.closed.Load() {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		p.workC <- workItem{
			fn:      func() { fn(start, end) },
			barrier: &wg,
		}
	}
	wg.Wait()
}

// ParallelForAtomic calls fn once for every index in [0, n), handing indices
// out through a shared atomic counter so that uneven work balances across
// workers. It blocks until every index is done.
func (p *Pool) ParallelForAtomic(n int, fn func(i int)) {
	if n <= 0 {
		return
	}

	workers := min(p.numWorkers, n)
	if workers == 1 || p.closed.Load() {
		for i := range n {
			fn(i)
		}
		return
	}

	next := new(counter)
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		p.workC <- workItem{
			fn: func() {
				for {
					i := int(next.n.Add(1)) - 1
					if i >= n {
						return
					}
					fn(i)
				}
			},
			barrier: &wg,
		}
	}
	wg.Wait()
}
