package spinlock

import "time"

const (
	defaultSleepFrequency = 50
	defaultSleepDuration  = time.Millisecond
	defaultMaxAttempts    = 500
)

// SpinLockConfig holds the construction-time tunables of a SpinLock.
// The zero value is not meant to be used directly; NewSpinLock starts from
// the defaults and applies the options on top.
type SpinLockConfig struct {
	// sleepFrequency is the number of consecutive polls after which a
	// waiter sleeps once instead of yielding.
	sleepFrequency int

	// sleepDuration is how long that sleep lasts.
	sleepDuration time.Duration

	// noSleep turns the hybrid spin-then-sleep policy into a pure
	// yield loop.
	noSleep bool

	// maxAttempts bounds the number of poll iterations performed by
	// LockWithMaxAttempts before it gives up.
	maxAttempts int

	// backoff, when set, replaces the yield/sleep policy entirely.
	backoff Backoff
}

func defaultSpinLockConfig() SpinLockConfig {
	return SpinLockConfig{
		sleepFrequency: defaultSleepFrequency,
		sleepDuration:  defaultSleepDuration,
		maxAttempts:    defaultMaxAttempts,
	}
}

func newSpinLockConfig(options []func(*SpinLockConfig)) SpinLockConfig {
	c := defaultSpinLockConfig()
	for _, o := range options {
		if o != nil {
			o(&c)
		}
	}
	return c
}

// policy resolves the Backoff a lock built from this config will use.
func (c *SpinLockConfig) policy() Backoff {
	switch {
	case c.backoff != nil:
		return c.backoff
	case c.noSleep:
		return YieldBackoff{}
	default:
		return YieldSleepBackoff{
			Frequency: c.sleepFrequency,
			Duration:  c.sleepDuration,
		}
	}
}

// WithSleepFrequency sets how many consecutive polls a waiter performs
// before it sleeps once instead of yielding. If n is zero or negative,
// the value is ignored.
func WithSleepFrequency(n int) func(*SpinLockConfig) {
	return func(c *SpinLockConfig) {
		if n > 0 {
			c.sleepFrequency = n
		}
	}
}

// WithSleepDuration sets the length of the periodic sleep.
// If d is zero or negative, the value is ignored.
func WithSleepDuration(d time.Duration) func(*SpinLockConfig) {
	return func(c *SpinLockConfig) {
		if d > 0 {
			c.sleepDuration = d
		}
	}
}

// WithoutSleep disables the periodic sleep: waiters only yield the
// processor between polls.
func WithoutSleep() func(*SpinLockConfig) {
	return func(c *SpinLockConfig) {
		c.noSleep = true
	}
}

// WithMaxAttempts sets the number of poll iterations LockWithMaxAttempts
// may spend waiting before it reports ErrAcquisitionTimeout.
// If n is zero or negative, the value is ignored.
//
// The budget counts iterations, not wall-clock time, so the real wait
// depends on the backoff policy and the load.
func WithMaxAttempts(n int) func(*SpinLockConfig) {
	return func(c *SpinLockConfig) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithBackoff replaces the built-in yield/sleep policy with b.
// WithSleepFrequency, WithSleepDuration and WithoutSleep have no effect
// once a custom policy is set. A nil b is ignored.
//
// Usage:
//
//	l := NewSpinLock(0, WithBackoff(ExponentialBackoff{Max: 64}))
func WithBackoff(b Backoff) func(*SpinLockConfig) {
	return func(c *SpinLockConfig) {
		if b != nil {
			c.backoff = b
		}
	}
}
