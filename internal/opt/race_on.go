//go:build race

package opt

// Race_ reports whether the race detector is enabled. Tests use it to
// shrink contention loops that would otherwise run for minutes.
const Race_ = true
