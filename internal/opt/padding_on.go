//go:build !(amd64 || 386 || arm || mips || mipsle || wasm) && !spinlock_disable_padding && !spinlock_enable_padding

package opt

// FlagPad_ is the number of bytes placed after the lock flag so that
// goroutines polling the flag do not share a cache line with the payload
// the holder is writing.
// Padding is automatically enabled for architectures that are NOT:
// - amd64 (x86_64): Hardware optimizations often make padding less critical
// - 32-bit architectures (386, arm, mips, mipsle, wasm): Smaller cache lines/memory constraints
//
// Enabled for: arm64, s390x, ppc64, ppc64le, riscv64, loong64, mips64, mips64le, etc.
const FlagPad_ = (CacheLineSize_ - FlagSize_%CacheLineSize_) % CacheLineSize_
