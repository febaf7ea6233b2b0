package bench

import (
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/brickingsoft/errors"

	"github.com/llxisdsh/spinlock"
)

const envNumThreads = "NUM_THREADS"

// ErrLostUpdates is reported when the final counter does not match the
// number of increments applied.
var ErrLostUpdates = errors.Define("lost updates")

// ParseArgs builds a Config from command-line arguments (without the
// program name). The worker count defaults to $NUM_THREADS, read through
// getenv, when it holds a positive integer.
func ParseArgs(args []string, getenv func(string) string) (Config, error) {
	workers := DefaultWorkers
	if tmp, err := strconv.Atoi(getenv(envNumThreads)); err == nil && tmp > 0 {
		workers = tmp
	}

	var cfg Config
	fs := flag.NewFlagSet("spinbench", flag.ContinueOnError)
	fs.IntVar(&cfg.Workers, "workers", workers, "number of contending goroutines")
	fs.IntVar(&cfg.Jobs, "jobs", DefaultJobs, "jobs per worker")
	fs.IntVar(&cfg.Repeat, "repeat", DefaultRepeat, "repeats per job")
	fs.BoolVar(&cfg.Bounded, "bounded", false, "acquire with a bounded number of attempts")
	maxAttempts := fs.Int("max-attempts", 0, "attempt budget for -bounded (0 keeps the default)")
	noSleep := fs.Bool("no-sleep", false, "only yield between polls, never sleep")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.LockOptions = append(cfg.LockOptions, spinlock.WithMaxAttempts(*maxAttempts))
	if *noSleep {
		cfg.LockOptions = append(cfg.LockOptions, spinlock.WithoutSleep())
	}
	return cfg, nil
}

// Report writes the result as "SpinLock: <sum> <ms>" and returns an
// ErrLostUpdates error if the sum is off.
func Report(w io.Writer, r Result) error {
	if _, err := fmt.Fprintf(w, "SpinLock: %d %d\n", r.Sum, r.Elapsed.Milliseconds()); err != nil {
		return err
	}
	if !r.Ok() {
		return errors.New(
			fmt.Sprintf("sum %d, want %d", r.Sum, r.Expected),
			errors.WithWrap(ErrLostUpdates),
		)
	}
	return nil
}
