//go:build atmega328p

package main

import (
	"device"
	"machine"
	"time"
)

// loopCycles is the cost of one busyWait iteration: nop, counter
// decrement and branch.
const loopCycles = 4

// busyWait spins for roughly d. It only exists for the blocking settle mode,
// which calls it from interrupt context where the scheduler cannot run.
func busyWait(d time.Duration) {
	n := uint64(machine.CPUFrequency()) * uint64(d) / uint64(time.Second) / loopCycles
	for ; n > 0; n-- {
		device.Asm("nop")
	}
}
