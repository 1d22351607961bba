package rendering

import (
	"glyphray/internal/mathutil"
	"glyphray/internal/threading/core"
)

const (
	inlineColumns = 8
	minBatch      = 4
	maxBatch      = 32
)

// ParallelRenderer spreads per-column work across a worker pool
type ParallelRenderer struct {
	workerPool *core.WorkerPool
}

// NewParallelRenderer creates a parallel renderer with its own started pool
func NewParallelRenderer(workers int) *ParallelRenderer {
	pool := core.NewWorkerPool(workers)
	pool.Start()
	return &ParallelRenderer{workerPool: pool}
}

// CastColumns calls fn once for every column in [0, n) and returns when all
// calls have finished. fn must only write state owned by its column.
func (pr *ParallelRenderer) CastColumns(n int, fn func(col int)) {
	// small workloads are not worth the synchronization
	if n <= inlineColumns {
		for col := 0; col < n; col++ {
			fn(col)
		}
		return
	}

	batchSize := mathutil.IntClamp(n/pr.workerPool.GetNumWorkers(), minBatch, maxBatch)
	pr.workerPool.Spans(n, batchSize, func(start, end int) {
		for col := start; col < end; col++ {
			fn(col)
		}
	})
}

// Workers returns the size of the underlying pool
func (pr *ParallelRenderer) Workers() int {
	return pr.workerPool.GetNumWorkers()
}

// CompletedBatches returns how many column batches the pool has run
func (pr *ParallelRenderer) CompletedBatches() int64 {
	return pr.workerPool.CompletedJobs()
}

// Stop shuts down the parallel renderer
func (pr *ParallelRenderer) Stop() {
	pr.workerPool.Stop()
}
