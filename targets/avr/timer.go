//go:build atmega328p

package main

import (
	"device/avr"
	"joycursor/core"
	"machine"
	"runtime/interrupt"
	"time"
)

// Timer1 clock select values and their division factors
var timer1Prescalers = [...]struct {
	cs  uint8
	div uint32
}{
	{avr.TCCR1B_CS10, 1},
	{avr.TCCR1B_CS11, 8},
	{avr.TCCR1B_CS11 | avr.TCCR1B_CS10, 64},
	{avr.TCCR1B_CS12, 256},
	{avr.TCCR1B_CS12 | avr.TCCR1B_CS10, 1024},
}

// Timer1Ticker is a core.TickSource on the Timer1 overflow interrupt. The
// counter is preloaded on every overflow so the period need not be a power
// of two.
type Timer1Ticker struct {
	preload uint16
	cs      uint8
	fn      func()
}

var tick1 = &Timer1Ticker{}

// NewTimer1Ticker returns the ticker bound to the TIMER1_OVF vector
func NewTimer1Ticker() *Timer1Ticker {
	return tick1
}

func init() {
	interrupt.New(avr.IRQ_TIMER1_OVF, func(interrupt.Interrupt) {
		tick1.reload()
		if fn := tick1.fn; fn != nil {
			fn()
		}
	})
}

// timer1Setup picks the smallest prescaler whose 16-bit range holds period.
func timer1Setup(period time.Duration) (cs uint8, preload uint16, ok bool) {
	cpu := uint64(machine.CPUFrequency())
	cycles := cpu * uint64(period) / uint64(time.Second)
	for _, p := range timer1Prescalers {
		counts := cycles / uint64(p.div)
		if counts == 0 {
			return 0, 0, false
		}
		if counts <= 1<<16 {
			return p.cs, uint16(1<<16 - counts), true
		}
	}
	return 0, 0, false
}

// Start configures Timer1 in normal mode and enables the overflow interrupt.
func (t *Timer1Ticker) Start(period time.Duration, fn func()) error {
	cs, preload, ok := timer1Setup(period)
	if !ok || fn == nil {
		return core.ErrBadConfig
	}

	state := interrupt.Disable()
	t.cs = cs
	t.preload = preload
	t.fn = fn
	avr.TCCR1A.Set(0)
	t.reload()
	avr.TCCR1B.Set(cs)
	avr.TIMSK1.SetBits(avr.TIMSK1_TOIE1)
	interrupt.Restore(state)
	return nil
}

// Stop masks the overflow interrupt and halts the counter
func (t *Timer1Ticker) Stop() {
	avr.TIMSK1.ClearBits(avr.TIMSK1_TOIE1)
	avr.TCCR1B.Set(0)
}

// reload writes TCNT1, high byte first as the 16-bit access requires
func (t *Timer1Ticker) reload() {
	avr.TCNT1H.Set(uint8(t.preload >> 8))
	avr.TCNT1L.Set(uint8(t.preload))
}
