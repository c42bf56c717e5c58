package renderer

import (
	"context"
	"runtime"
	"sync"
)

// RowTask represents a row rendering task for the worker pool
type RowTask struct {
	Row int
}

// RowResult contains the pixels of a rendered row
type RowResult struct {
	Row    int
	Pixels []RGB
	Error  error
}

// WorkerPool manages parallel row rendering
type WorkerPool struct {
	ctx         context.Context
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
	onRow       func(row int)
}

// Worker handles individual row rendering tasks
type Worker struct {
	ID        int
	raytracer *Raytracer
	pool      *WorkerPool
}

// NewWorkerPool creates a worker pool sized for numRows tasks
func NewWorkerPool(ctx context.Context, raytracer *Raytracer, numRows, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		ctx:         ctx,
		taskQueue:   make(chan RowTask, numRows),   // Buffer for every row
		resultQueue: make(chan RowResult, numRows), // Buffer for every result
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:        i,
			raytracer: raytracer,
			pool:      wp,
		})
	}

	return wp
}

// SetRowCallback registers a function invoked after each row completes.
// It is called from worker goroutines and must be safe for concurrent use.
func (wp *WorkerPool) SetRowCallback(callback func(row int)) {
	wp.onRow = callback
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop waits for queued tasks to drain and closes the result queue
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row result
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.pool.taskQueue {
		// Cancelled renders drain the queue without tracing
		if err := w.pool.ctx.Err(); err != nil {
			w.pool.resultQueue <- RowResult{Row: task.Row, Error: err}
			continue
		}

		pixels := w.raytracer.RenderRow(task.Row, w.raytracer.rowSampler(task.Row))
		if w.pool.onRow != nil {
			w.pool.onRow(task.Row)
		}
		w.pool.resultQueue <- RowResult{Row: task.Row, Pixels: pixels}
	}
}
