package spinlock

import (
	"math/rand/v2"
	"runtime"
	"time"
	_ "unsafe" // for linkname
)

// Backoff is the step a waiter takes each time it polls a held lock.
//
// spins points to a counter owned by the waiting goroutine; it starts at
// zero for every acquisition and is only touched by Wait. Implementations
// keep their state in it, so a single Backoff value can be shared by any
// number of locks and goroutines.
type Backoff interface {
	Wait(spins *int)
}

// YieldSleepBackoff yields the processor on every poll, except that every
// Frequency-th consecutive poll sleeps for Duration instead and restarts
// the count. It is the default policy with Frequency=50 and Duration=1ms.
//
// A non-positive Frequency never sleeps.
type YieldSleepBackoff struct {
	Frequency int
	Duration  time.Duration
}

func (b YieldSleepBackoff) Wait(spins *int) {
	if b.Frequency > 0 {
		*spins++
		if *spins >= b.Frequency {
			*spins = 0
			time.Sleep(b.Duration)
			return
		}
	}
	runtime.Gosched()
}

// YieldBackoff only yields the processor. It is the policy used by
// WithoutSleep.
type YieldBackoff struct{}

func (YieldBackoff) Wait(spins *int) {
	*spins++
	runtime.Gosched()
}

const defaultExponentialMax = 16

// ExponentialBackoff yields 1, 2, 4, ... times per poll, doubling until
// Max yields per poll. Max defaults to 16.
type ExponentialBackoff struct {
	Max int
}

func (b ExponentialBackoff) Wait(spins *int) {
	limit := b.Max
	if limit <= 0 {
		limit = defaultExponentialMax
	}
	n := 1 << *spins
	if n >= limit {
		n = limit
	} else {
		*spins++
	}
	for range n {
		runtime.Gosched()
	}
}

const defaultJitterMax = 30 * 300 * time.Nanosecond

// JitterBackoff sleeps for a random duration in [0, Max) on every poll,
// spreading waiters that would otherwise retry in lockstep.
// Max defaults to 9µs.
type JitterBackoff struct {
	Max time.Duration
}

func (b JitterBackoff) Wait(spins *int) {
	limit := b.Max
	if limit <= 0 {
		limit = defaultJitterMax
	}
	*spins++
	time.Sleep(rand.N(limit))
}

// RuntimeBackoff spins actively on the CPU for as long as the scheduler
// says spinning is profitable (multicore, idle Ps, few rounds so far), then
// sleeps briefly and starts over.
type RuntimeBackoff struct{}

func (RuntimeBackoff) Wait(spins *int) {
	if trySpin(spins) {
		return
	}
	*spins = 0
	// time.Sleep with non-zero duration (≈Millisecond level) works
	// effectively as backoff under high concurrency.
	// The 500µs duration is derived from Facebook/folly's implementation:
	// https://github.com/facebook/folly/blob/main/folly/synchronization/detail/Sleeper.h
	time.Sleep(500 * time.Microsecond)
}

func trySpin(spins *int) bool {
	if runtime_canSpin(*spins) {
		*spins++
		runtime_doSpin()
		return true
	}
	return false
}

// nolint:all
//
//go:linkname runtime_canSpin sync.runtime_canSpin
//goland:noinspection ALL
func runtime_canSpin(i int) bool

// nolint:all
//
//go:linkname runtime_doSpin sync.runtime_doSpin
//goland:noinspection ALL
func runtime_doSpin()
