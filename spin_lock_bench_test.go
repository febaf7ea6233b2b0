package spinlock

import (
	"sync"
	"testing"
)

func BenchmarkSpinLock(b *testing.B) {
	benchmarks := []struct {
		name    string
		options []func(*SpinLockConfig)
	}{
		{"yield-sleep", nil},
		{"yield", []func(*SpinLockConfig){WithoutSleep()}},
		{"exponential", []func(*SpinLockConfig){WithBackoff(ExponentialBackoff{})}},
		{"runtime", []func(*SpinLockConfig){WithBackoff(RuntimeBackoff{})}},
	}
	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			l := NewSpinLock(0, bm.options...)
			b.ReportAllocs()
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					l.Lock()
					*l.Value()++
					l.Unlock()
				}
			})
		})
	}
}

func BenchmarkSpinLock_WithLock(b *testing.B) {
	l := NewSpinLock(0)
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = WithLock(l, func(v *int) int { *v++; return *v })
		}
	})
}

func BenchmarkMutex(b *testing.B) {
	var mu sync.Mutex
	var v int
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			mu.Lock()
			v++
			mu.Unlock()
		}
	})
}
