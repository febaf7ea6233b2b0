package spinlock

import (
	"sync/atomic"

	"github.com/llxisdsh/spinlock/internal/opt"
)

// SpinLock is a spin-based mutual-exclusion lock that owns a value of type T.
//
// A goroutine that acquires the lock holds an exclusive lease on the value
// until it calls Unlock. Waiters never park on a kernel or runtime wait
// queue: they poll the lock flag and run the configured Backoff between
// polls. The default policy yields on every poll and sleeps 1ms on every
// 50th.
//
// Properties:
//   - Not reentrant: locking twice from the same goroutine deadlocks it.
//   - Not fair: there is no ordering among waiters.
//   - No owner tracking: Unlock without a lease is not detected.
//
// Memory ordering: sync/atomic operations are sequentially consistent, so a
// successful acquisition happens-after the Unlock it observed and every
// write made to the value under the previous lease is visible to the new
// holder.
//
// The zero value is an unlocked SpinLock holding the zero T with the
// default configuration.
//
// Usage:
//
//	counter := NewSpinLock(0)
//	counter.Do(func(v *int) { *v++ })
//	n := WithLock(counter, func(v *int) int { return *v })
type SpinLock[T any] struct {
	_           noCopy
	backoff     Backoff
	maxAttempts int
	flag        atomic.Bool
	_           [opt.FlagPad_]byte
	value       T
}

// NewSpinLock creates an unlocked SpinLock holding initial.
func NewSpinLock[T any](initial T, options ...func(*SpinLockConfig)) *SpinLock[T] {
	c := newSpinLockConfig(options)
	return &SpinLock[T]{
		backoff:     c.policy(),
		maxAttempts: c.maxAttempts,
		value:       initial,
	}
}

var defaultBackoff Backoff = YieldSleepBackoff{
	Frequency: defaultSleepFrequency,
	Duration:  defaultSleepDuration,
}

func (l *SpinLock[T]) policy() Backoff {
	if l.backoff == nil {
		return defaultBackoff
	}
	return l.backoff
}

func (l *SpinLock[T]) attempts() int {
	if l.maxAttempts <= 0 {
		return defaultMaxAttempts
	}
	return l.maxAttempts
}

// Lock acquires the lock, waiting as long as it takes.
func (l *SpinLock[T]) Lock() {
	if l.flag.CompareAndSwap(false, true) {
		return
	}
	l.lockSlow()
}

func (l *SpinLock[T]) lockSlow() {
	b := l.policy()
	var spins int
	for {
		for l.flag.Load() {
			b.Wait(&spins)
		}
		// Observed free; any other waiter may win this race.
		if l.flag.CompareAndSwap(false, true) {
			return
		}
	}
}

// LockWithMaxAttempts acquires the lock like Lock, but gives up after
// polling a held lock for the configured number of iterations (500 by
// default, see WithMaxAttempts). On failure it returns an error for which
// IsAcquisitionTimeout reports true and the lock is left untouched.
func (l *SpinLock[T]) LockWithMaxAttempts() error {
	if l.flag.CompareAndSwap(false, true) {
		return nil
	}
	b := l.policy()
	limit := l.attempts()
	var spins, attempts int
	for {
		for l.flag.Load() {
			// Counted separately from spins, which the policy may reset.
			attempts++
			if attempts >= limit {
				return errAcquisitionTimeout()
			}
			b.Wait(&spins)
		}
		if l.flag.CompareAndSwap(false, true) {
			return nil
		}
	}
}

// TryLock acquires the lock if it is free and reports whether it did.
// It never waits.
func (l *SpinLock[T]) TryLock() bool {
	return l.flag.CompareAndSwap(false, true)
}

// Unlock releases the lock.
// It must be called exactly once per successful acquisition, by the
// holder of that lease.
func (l *SpinLock[T]) Unlock() {
	l.flag.Store(false)
}

// IsLocked reports whether the lock was held at the moment of the call.
// The answer may be stale by the time the caller looks at it.
func (l *SpinLock[T]) IsLocked() bool {
	return l.flag.Load()
}

// Value returns a pointer to the protected value.
// It may only be dereferenced between a successful acquisition and the
// matching Unlock.
func (l *SpinLock[T]) Value() *T {
	return &l.value
}

// Do runs fn with exclusive access to the value.
// The lock is released when fn returns or panics.
func (l *SpinLock[T]) Do(fn func(v *T)) {
	l.Lock()
	defer l.Unlock()
	fn(&l.value)
}

// DoWithMaxAttempts is like Do but acquires with LockWithMaxAttempts.
// If acquisition fails, fn is not called and the timeout error is returned.
func (l *SpinLock[T]) DoWithMaxAttempts(fn func(v *T)) error {
	if err := l.LockWithMaxAttempts(); err != nil {
		return err
	}
	defer l.Unlock()
	fn(&l.value)
	return nil
}

// WithLock runs fn with exclusive access to the value of l and returns
// its result. The lock is released when fn returns or panics.
func WithLock[T, R any](l *SpinLock[T], fn func(v *T) R) R {
	l.Lock()
	defer l.Unlock()
	return fn(&l.value)
}

// WithLockTimeout is like WithLock but acquires with LockWithMaxAttempts.
// If acquisition fails, fn is not called and the zero R is returned with
// the timeout error.
func WithLockTimeout[T, R any](l *SpinLock[T], fn func(v *T) R) (R, error) {
	if err := l.LockWithMaxAttempts(); err != nil {
		var zero R
		return zero, err
	}
	defer l.Unlock()
	return fn(&l.value), nil
}
