package core

import (
	"sync/atomic"
	"time"
)

// TimerFreq is the scheduler clock rate: one tick per microsecond.
const TimerFreq = 1000000

var systemTicks atomic.Uint32

// GetTime returns the current system time in timer ticks
func GetTime() uint32 {
	return systemTicks.Load()
}

// SetTime sets the current system time (simulator clock, tests)
func SetTime(ticks uint32) {
	systemTicks.Store(ticks)
}

// TimerFromUS converts microseconds to timer ticks
func TimerFromUS(us uint32) uint32 {
	return us * (TimerFreq / 1000000)
}

// TimerFromDuration converts a duration to timer ticks, rounding down.
func TimerFromDuration(d time.Duration) uint32 {
	return TimerFromUS(uint32(d / time.Microsecond))
}

// ProcessTimers runs every timer whose wake time has passed.
func ProcessTimers() {
	currentTime = GetTime()
	TimerDispatch()
}

// TickSource delivers one call to the handler per period.
type TickSource interface {
	Start(period time.Duration, fn func()) error
	Stop()
}

// TimerTicker is a TickSource driven by the timer scheduler. Targets with a
// hardware timer interrupt use their own TickSource instead.
type TimerTicker struct {
	timer   Timer
	period  uint32
	fn      func()
	running bool
}

// Start schedules the first tick one period from now.
func (tt *TimerTicker) Start(period time.Duration, fn func()) error {
	ticks := TimerFromDuration(period)
	if ticks == 0 || fn == nil {
		return ErrBadConfig
	}
	tt.period = ticks
	tt.fn = fn
	tt.running = true

	tt.timer.Next = nil
	tt.timer.WakeTime = GetTime() + ticks
	tt.timer.Handler = tt.fire
	ScheduleTimer(&tt.timer)
	return nil
}

// Stop removes the ticker from the schedule.
func (tt *TimerTicker) Stop() {
	tt.running = false
	CancelTimer(&tt.timer)
}

func (tt *TimerTicker) fire(t *Timer) uint8 {
	if !tt.running {
		return SF_DONE
	}
	tt.fn()
	if !tt.running {
		return SF_DONE
	}
	// Advance from the previous wake time, not from now, so the period
	// does not drift when dispatch runs late.
	t.WakeTime += tt.period
	return SF_RESCHEDULE
}
