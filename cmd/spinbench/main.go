// Command spinbench hammers one SpinLock from many goroutines and prints
// the final counter and the elapsed milliseconds:
//
//	SpinLock: <sum> <ms>
//
// The worker count defaults to $NUM_THREADS when set.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/llxisdsh/spinlock/internal/bench"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := bench.ParseArgs(os.Args[1:], os.Getenv)
	if err != nil {
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r, err := bench.Run(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err = bench.Report(os.Stdout, r); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
