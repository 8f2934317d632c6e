//go:build tinygo

package core

import "runtime/interrupt"

type irqState = interrupt.State

// disableInterrupts masks interrupts (cli on AVR) and returns the previous
// state so that nested sections restore correctly.
func disableInterrupts() irqState {
	return interrupt.Disable()
}

// restoreInterrupts restores the mask saved by disableInterrupts.
func restoreInterrupts(state irqState) {
	interrupt.Restore(state)
}

// inInterrupt reports whether the caller runs in interrupt context.
func inInterrupt() bool {
	return interrupt.In()
}
