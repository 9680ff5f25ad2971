// Package parallel provides the worker pool used to fan analytics engines
// out across goroutines. Engines are pure readers of an immutable graph, so
// tasks need no locking beyond the pool's own queue bookkeeping.
package parallel

import (
	"fmt"
	"sync"
)

// WorkerPool manages a fixed set of worker goroutines consuming a task queue.
type WorkerPool struct {
	workers   int
	taskQueue chan func()
	wg        sync.WaitGroup
	once      sync.Once
	mu        sync.RWMutex // protects taskQueue from concurrent close during send
	closed    bool
}

// NewWorkerPool creates a pool with the given number of workers. Counts below
// one are clamped to one.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}

	pool := &WorkerPool{
		workers:   workers,
		taskQueue: make(chan func(), workers*2),
	}

	for i := 0; i < pool.workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}

	return pool
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		// Recover so a panicking task cannot take the worker down with it.
		func() {
			defer func() {
				if r := recover(); r != nil {
					fmt.Printf("worker panic recovered: %v\n", r)
				}
			}()
			task()
		}()
	}
}

// Submit adds a task to the pool. Returns false if the pool is closed.
func (wp *WorkerPool) Submit(task func()) bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.closed {
		return false
	}

	wp.taskQueue <- task
	return true
}

// Close shuts the pool down and waits for in-flight tasks to finish.
func (wp *WorkerPool) Close() {
	wp.once.Do(func() {
		wp.mu.Lock()
		wp.closed = true
		close(wp.taskQueue)
		wp.mu.Unlock()
	})
	wp.wg.Wait()
}
