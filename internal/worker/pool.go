// Package worker runs independent indexed tasks on a bounded set of goroutines.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync"

	"github.com/okian/attendsync/pkg/logger"
)

// Task processes item i. Tasks for distinct indices must not share mutable
// state; results are expected to be written by index.
type Task func(ctx context.Context, i int) error

// Pool executes Tasks over an index range.
type Pool struct {
	size   int
	name   string
	logger logger.Logger
}

// NewPool creates a pool. A size below 1 uses runtime.NumCPU().
func NewPool(size int, opts ...Option) *Pool {
	if size < 1 {
		size = runtime.NumCPU()
	}
	p := &Pool{
		size:   size,
		name:   "worker-pool",
		logger: logger.Nop(),
	}

	for _, opt := range opts {
		opt(p)
	}

	p.logger = p.logger.Named(p.name)
	return p
}

// Size returns the configured number of workers.
func (p *Pool) Size() int {
	return p.size
}

// Workers returns how many goroutines Run would start for n items.
func (p *Pool) Workers(n int) int {
	return min(p.size, n)
}

// Run calls task for every index in [0, n). With a single worker, tasks run
// in index order on the calling goroutine. Task errors are joined in index
// order. Cancelling ctx stops dispatch and Run returns ctx.Err().
func (p *Pool) Run(ctx context.Context, n int, task Task) error {
	if n <= 0 {
		return nil
	}
	if p.Workers(n) == 1 {
		return p.runSequential(ctx, n, task)
	}

	errs := make([]error, n)
	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := p.Workers(n)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for i := range jobs {
				if err := task(ctx, i); err != nil {
					errs[i] = err
				}
			}
			p.logger.Debug(ctx, "worker drained", logger.String("worker", id))
		}("worker-" + strconv.Itoa(w))
	}

	var cancelled error
dispatch:
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled != nil {
		return fmt.Errorf("worker pool cancelled: %w", cancelled)
	}
	return errors.Join(errs...)
}

func (p *Pool) runSequential(ctx context.Context, n int, task Task) error {
	var errs []error
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("worker pool cancelled: %w", err)
		}
		if err := task(ctx, i); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
