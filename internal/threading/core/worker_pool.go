package core

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// task is one unit of queued work. group is the WaitGroup of the caller
// that is waiting on it, or the pool's own group for plain submissions.
type task struct {
	run   func()
	group *sync.WaitGroup
}

// WorkerPool runs queued closures on a fixed set of goroutines
type WorkerPool struct {
	numWorkers int
	tasks      chan task
	pending    sync.WaitGroup
	quit       chan struct{}

	// guards stopped against in-flight enqueues
	stateMu sync.RWMutex
	stopped bool

	completed SafeCounter
}

// NewWorkerPool creates a pool with numWorkers goroutines. Zero or less
// means one per CPU. Workers do not run until Start is called.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		numWorkers: numWorkers,
		tasks:      make(chan task, numWorkers*2),
		quit:       make(chan struct{}),
	}
}

// Start launches the worker goroutines
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		go wp.loop()
	}
}

func (wp *WorkerPool) loop() {
	for {
		select {
		case <-wp.quit:
			wp.drain()
			return
		case t := <-wp.tasks:
			wp.execute(t)
		}
	}
}

func (wp *WorkerPool) execute(t task) {
	t.run()
	wp.completed.Increment()
	t.group.Done()
}

// drain runs whatever is still buffered so no waiter is left hanging
func (wp *WorkerPool) drain() {
	for {
		select {
		case t := <-wp.tasks:
			wp.execute(t)
		default:
			return
		}
	}
}

// enqueue hands a task to the workers, or runs it on the caller's
// goroutine once the pool is stopped.
func (wp *WorkerPool) enqueue(run func(), group *sync.WaitGroup) {
	group.Add(1)
	t := task{run: run, group: group}

	wp.stateMu.RLock()
	if wp.stopped {
		wp.stateMu.RUnlock()
		wp.execute(t)
		return
	}
	wp.tasks <- t
	wp.stateMu.RUnlock()
}

// Submit queues a closure. Wait blocks until every submitted closure ran.
func (wp *WorkerPool) Submit(job func()) {
	wp.enqueue(job, &wp.pending)
}

// Wait blocks until all closures queued through Submit have finished
func (wp *WorkerPool) Wait() {
	wp.pending.Wait()
}

// Spans splits [0, n) into consecutive ranges of at most size elements,
// runs fn on each range in the pool and returns once all ranges are done.
// Concurrent Spans calls only wait on their own ranges.
func (wp *WorkerPool) Spans(n, size int, fn func(start, end int)) {
	if size <= 0 {
		size = 1
	}
	var group sync.WaitGroup
	for start := 0; start < n; start += size {
		lo, hi := start, min(start+size, n)
		wp.enqueue(func() { fn(lo, hi) }, &group)
	}
	group.Wait()
}

// Stop shuts the workers down. Tasks already queued still run; later
// submissions run inline on the submitting goroutine.
func (wp *WorkerPool) Stop() {
	wp.stateMu.Lock()
	if wp.stopped {
		wp.stateMu.Unlock()
		return
	}
	wp.stopped = true
	close(wp.quit)
	wp.stateMu.Unlock()

	wp.drain()
}

// GetNumWorkers returns the number of worker goroutines
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// CompletedJobs counts tasks finished since the pool was created
func (wp *WorkerPool) CompletedJobs() int64 {
	return wp.completed.Get()
}

// SafeCounter is an int64 counter safe for concurrent use
type SafeCounter struct {
	value atomic.Int64
}

// Increment adds one and returns the new value
func (c *SafeCounter) Increment() int64 {
	return c.value.Add(1)
}

// Add adds delta and returns the new value
func (c *SafeCounter) Add(delta int64) int64 {
	return c.value.Add(delta)
}

// Get returns the current value
func (c *SafeCounter) Get() int64 {
	return c.value.Load()
}

// Set overwrites the value
func (c *SafeCounter) Set(value int64) {
	c.value.Store(value)
}
