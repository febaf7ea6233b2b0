package opt

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize_ is the cache line size of the target CPU, taken from
// `golang.org/x/sys/cpu`.
const CacheLineSize_ = unsafe.Sizeof(cpu.CacheLinePad{})

// FlagSize_ is the size of the lock flag (an atomic.Bool).
const FlagSize_ = 4
