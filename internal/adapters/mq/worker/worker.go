// Package worker runs bounded fan-out of independent jobs and returns their
// results in input order.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/carta/pkg/logger"
	"github.com/okian/carta/pkg/metrics"
)

// Default pool configuration constants.
const (
	maxDefaultWorkers = 10
)

// Job processes item i. It must only write state owned by index i.
type Job func(ctx context.Context, i int) error

// Pool bounds concurrent jobs. A Pool holds no goroutines between runs and
// is safe for concurrent use.
type Pool struct {
	name    string
	size    int
	timeout time.Duration

	// Logging
	logger logger.Logger
}

// NewPool creates a pool running at most size jobs at once. A size below 1
// selects min(NumCPU, 10).
func NewPool(size int, opts ...Option) *Pool {
	if size < 1 {
		size = min(runtime.NumCPU(), maxDefaultWorkers)
	}
	p := &Pool{
		name:   "worker-pool",
		size:   size,
		logger: logger.Get().Named("worker-pool"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Size returns the concurrency bound.
func (p *Pool) Size() int { return p.size }

// Run calls job for every index in [0, n) and returns the per-index errors.
// A failing job does not stop the others; a canceled ctx fails the jobs
// that have not started yet.
func (p *Pool) Run(ctx context.Context, n int, job Job) []error {
	errs := make([]error, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.size)

	for i := 0; i < n; i++ {
		if err := gctx.Err(); err != nil {
			errs[i] = err
			continue
		}
		g.Go(func() error {
			errs[i] = p.process(gctx, i, job)
			return nil
		})
	}
	_ = g.Wait()
	return errs
}

// process runs a single job with the pool timeout and records metrics.
func (p *Pool) process(ctx context.Context, i int, job Job) (err error) {
	start := time.Now()
	metrics.UpdateWorkerActiveCount(1)
	defer func() {
		metrics.UpdateWorkerActiveCount(-1)
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %d panicked: %v", i, r)
		}
		if err != nil {
			p.logger.Warn(ctx, "job failed", logger.Int("index", i), logger.Error(err))
		}
	}()
	return job(ctx, i)
}

// Map applies fn to every input on the pool and returns outputs in input
// order. Failed items keep the zero value and their error.
func Map[In, Out any](ctx context.Context, p *Pool, in []In, fn func(context.Context, In) (Out, error)) ([]Out, []error) {
	out := make([]Out, len(in))
	errs := p.Run(ctx, len(in), func(ctx context.Context, i int) error {
		v, err := fn(ctx, in[i])
		if err != nil {
			return err
		}
		out[i] = v
		return nil
	})
	return out, errs
}
