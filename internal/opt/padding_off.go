//go:build (amd64 || 386 || arm || mips || mipsle || wasm) && !spinlock_disable_padding && !spinlock_enable_padding

package opt

// FlagPad_ is zero: the flag shares its cache line with the payload.
// Padding is disabled by default for:
// - amd64
// - 32-bit architectures (386, arm, mips, mipsle, wasm)
const FlagPad_ = 0
