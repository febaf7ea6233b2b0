//go:build spinlock_disable_padding

package opt

// FlagPad_ keeps the payload next to the flag.
// Padding is force-disabled via the spinlock_disable_padding build tag.
// Use: go build -tags=spinlock_disable_padding
const FlagPad_ = 0
