package spinlock

import "github.com/llxisdsh/pb"

// SpinLockGroup allows spin locking on arbitrary keys (string, int, struct, etc.).
// It dynamically manages a set of locks associated with values.
//
// Features:
//   - Infinite Keys: No need to pre-allocate locks.
//   - Auto-Cleanup: Locks are removed from memory when unlocked and no one else is waiting.
//   - Bounded acquire per key with LockWithMaxAttempts.
//
// Usage:
//
//	var group SpinLockGroup[string]
//	group.Lock("user-123")
//	// Critical section for user-123
//	group.Unlock("user-123")
//
// Implementation Note:
// It uses reference counting to safely delete entries.
type SpinLockGroup[K comparable] struct {
	_           noCopy
	backoff     Backoff
	maxAttempts int
	m           pb.MapOf[K, *spinLockGroupEntry]
}

type spinLockGroupEntry struct {
	mu  SpinLock[struct{}]
	ref int32
}

// NewSpinLockGroup creates a group whose per-key locks are configured by
// options. The key table is allocated up front.
//
// The zero SpinLockGroup uses the default configuration and allocates its
// table on first use.
func NewSpinLockGroup[K comparable](options ...func(*SpinLockConfig)) *SpinLockGroup[K] {
	c := newSpinLockConfig(options)
	g := &SpinLockGroup[K]{
		backoff:     c.policy(),
		maxAttempts: c.maxAttempts,
	}
	g.m.InitWithOptions()
	return g
}

func (g *SpinLockGroup[K]) Lock(k K) {
	g.ref(k).mu.Lock()
}

// LockWithMaxAttempts is the bounded form of Lock. On failure the key is
// not locked and the caller must not call Unlock.
func (g *SpinLockGroup[K]) LockWithMaxAttempts(k K) error {
	if err := g.ref(k).mu.LockWithMaxAttempts(); err != nil {
		g.unref(k)
		return err
	}
	return nil
}

func (g *SpinLockGroup[K]) Unlock(k K) {
	v, ok := g.m.Load(k)
	if !ok {
		return
	}
	v.mu.Unlock()
	g.unref(k)
}

// Len returns the number of keys currently locked or waited on.
func (g *SpinLockGroup[K]) Len() int {
	return g.m.Size()
}

func (g *SpinLockGroup[K]) ref(k K) *spinLockGroupEntry {
	v, _ := g.m.ProcessEntry(
		k,
		func(l *pb.EntryOf[K, *spinLockGroupEntry]) (*pb.EntryOf[K, *spinLockGroupEntry], *spinLockGroupEntry, bool) {
			if l != nil {
				l.Value.ref++
				return l, l.Value, true
			}
			v := &spinLockGroupEntry{ref: 1}
			v.mu.backoff = g.backoff
			v.mu.maxAttempts = g.maxAttempts
			return &pb.EntryOf[K, *spinLockGroupEntry]{Value: v}, v, false
		},
	)
	return v
}

func (g *SpinLockGroup[K]) unref(k K) {
	_, _ = g.m.ProcessEntry(
		k,
		func(l *pb.EntryOf[K, *spinLockGroupEntry]) (*pb.EntryOf[K, *spinLockGroupEntry], *spinLockGroupEntry, bool) {
			if l == nil {
				return nil, nil, false
			}
			l.Value.ref--
			if l.Value.ref <= 0 {
				return nil, nil, true
			}
			return l, l.Value, true
		},
	)
}
