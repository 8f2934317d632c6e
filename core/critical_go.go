//go:build !tinygo

package core

// irqState is the saved interrupt mask. Host builds dispatch the tick and
// completion handlers from a single goroutine, so there is nothing to mask.
type irqState uintptr

// disableInterrupts is a no-op on regular Go (simulator and tests)
func disableInterrupts() irqState {
	return 0
}

// restoreInterrupts is a no-op on regular Go (simulator and tests)
func restoreInterrupts(irqState) {}

// inInterrupt reports whether the caller runs in interrupt context.
func inInterrupt() bool {
	return false
}
