//go:build !tinygo

package sim

import (
	"time"

	"joycursor/core"
)

// advance moves the core timer clock forward by d, running every timer that
// falls due on the way at its own wake time. A handler may push the clock
// further (see Machine.delay); due timers are then dispatched late.
func advance(d time.Duration) {
	target := core.GetTime() + core.TimerFromDuration(d)
	for {
		wake, ok := core.NextTimerWake()
		if !ok || after(wake, target) {
			break
		}
		if after(wake, core.GetTime()) {
			core.SetTime(wake)
		}
		core.ProcessTimers()
	}
	if after(target, core.GetTime()) {
		core.SetTime(target)
	}
}

// after compares timer ticks modulo 2^32.
func after(a, b uint32) bool {
	return int32(a-b) > 0
}

// Elapsed returns the virtual time since the clock was reset.
func Elapsed() time.Duration {
	return time.Duration(core.GetTime()) * time.Second / core.TimerFreq
}
