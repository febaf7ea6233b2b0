// Package bench drives a SpinLock under contention: a number of workers
// each run acquire/add/release cycles on one shared counter, and the run
// reports the final sum and the elapsed time.
package bench

import (
	"context"
	"strconv"
	"time"

	"github.com/brickingsoft/errors"
	"golang.org/x/sync/errgroup"

	"github.com/llxisdsh/spinlock"
)

const (
	DefaultWorkers = 32
	DefaultJobs    = 1000000
	DefaultRepeat  = 10
)

// Config describes one run.
type Config struct {
	// Workers is the number of goroutines contending for the lock.
	Workers int
	// Jobs times Repeat is the number of outer iterations per worker.
	// Each outer iteration adds 0 and then 1, under two separate leases.
	Jobs   int
	Repeat int
	// Bounded makes workers acquire with LockWithMaxAttempts. The first
	// timeout aborts the run.
	Bounded bool
	// LockOptions configure the shared lock.
	LockOptions []func(*spinlock.SpinLockConfig)
}

// Result is the outcome of a completed run.
type Result struct {
	Sum      uint64
	Expected uint64
	Elapsed  time.Duration
}

// Ok reports whether no increment was lost.
func (r Result) Ok() bool {
	return r.Sum == r.Expected
}

func (c *Config) normalize() {
	if c.Workers < 1 {
		c.Workers = DefaultWorkers
	}
	if c.Jobs < 1 {
		c.Jobs = DefaultJobs
	}
	if c.Repeat < 1 {
		c.Repeat = DefaultRepeat
	}
}

// Run executes cfg. It returns early with an error if ctx is canceled or,
// in bounded mode, if a worker fails to acquire the lock.
func Run(ctx context.Context, cfg Config) (Result, error) {
	cfg.normalize()
	lock := spinlock.NewSpinLock[uint64](0, cfg.LockOptions...)
	iterations := cfg.Jobs * cfg.Repeat

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for w := range cfg.Workers {
		g.Go(func() error {
			for i := range iterations {
				if i&1023 == 0 && ctx.Err() != nil {
					return ctx.Err()
				}
				for a := range uint64(2) {
					if cfg.Bounded {
						if err := lock.LockWithMaxAttempts(); err != nil {
							return errors.New(
								"worker failed to acquire the lock",
								errors.WithMeta("worker", strconv.Itoa(w)),
								errors.WithWrap(err),
							)
						}
					} else {
						lock.Lock()
					}
					*lock.Value() += a
					lock.Unlock()
				}
			}
			return nil
		})
	}
	err := g.Wait()
	elapsed := time.Since(start)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Sum:      sum(lock),
		Expected: uint64(cfg.Workers) * uint64(iterations),
		Elapsed:  elapsed,
	}, nil
}

func sum(l *spinlock.SpinLock[uint64]) uint64 {
	return spinlock.WithLock(l, func(v *uint64) uint64 { return *v })
}
