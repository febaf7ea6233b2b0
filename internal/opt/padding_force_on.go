//go:build spinlock_enable_padding

package opt

// FlagPad_ moves the payload off the flag's cache line.
// Padding is force-enabled via the spinlock_enable_padding build tag.
// Use: go build -tags=spinlock_enable_padding
const FlagPad_ = (CacheLineSize_ - FlagSize_%CacheLineSize_) % CacheLineSize_
