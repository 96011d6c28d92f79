// Package parallel runs independent analysis tasks, typically one per decade,
// on a bounded set of goroutines.
package parallel

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/dd0wney/cluso-artnet/pkg/logging"
)

// WorkerPool manages a pool of worker goroutines
type WorkerPool struct {
	workers   int
	taskQueue chan func()
	wg        sync.WaitGroup
	once      sync.Once
	mu        sync.RWMutex // Protects taskQueue from concurrent close during send
	closed    bool         // Protected by mu
	logger    logging.Logger
}

var (
	// ErrTooManyWorkers is returned when the worker count exceeds the maximum allowed.
	ErrTooManyWorkers = errors.New("worker count exceeds maximum")
	// ErrPoolClosed is returned when submitting to a closed pool.
	ErrPoolClosed = errors.New("worker pool closed")
)

// MaxWorkers is the maximum number of workers allowed in a pool.
const MaxWorkers = math.MaxInt / 2

// Option configures a WorkerPool
type Option func(*WorkerPool)

// WithLogger sets the logger used to report recovered panics
func WithLogger(logger logging.Logger) Option {
	return func(wp *WorkerPool) {
		if logger != nil {
			wp.logger = logger
		}
	}
}

// NewWorkerPool creates a new worker pool with specified number of workers.
// Non-positive counts run tasks sequentially on a single worker.
func NewWorkerPool(workers int, opts ...Option) (*WorkerPool, error) {
	if workers <= 0 {
		workers = 1
	}

	// Prevent overflow in buffer size calculation
	if workers > MaxWorkers {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrTooManyWorkers, workers, MaxWorkers)
	}

	pool := &WorkerPool{
		workers:   workers,
		taskQueue: make(chan func(), workers*2), // Buffer for 2x workers
		logger:    logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(pool)
	}

	pool.start()
	return pool, nil
}

// Workers returns the number of worker goroutines
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

// start initializes the worker goroutines
func (wp *WorkerPool) start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// worker processes tasks from the queue
func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		// Recover from panics in tasks to prevent worker crash
		func() {
			defer func() {
				if r := recover(); r != nil {
					wp.logger.Error("worker panic recovered", logging.Any("panic", fmt.Sprint(r)))
				}
			}()
			task()
		}()
	}
}

// SubmitContext adds a task unless ctx is done first. A full queue blocks
// until a worker frees a slot or ctx is canceled.
func (wp *WorkerPool) SubmitContext(ctx context.Context, task func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.closed {
		return ErrPoolClosed
	}

	select {
	case wp.taskQueue <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting tasks and waits for submitted ones to finish
func (wp *WorkerPool) Close() {
	wp.once.Do(func() {
		// Acquire write lock before closing
		wp.mu.Lock()
		wp.closed = true
		close(wp.taskQueue)
		wp.mu.Unlock()
	})
	wp.wg.Wait()
}
