//go:build atmega328p

package main

import (
	"machine"
	"time"

	"joycursor/core"
)

const consoleBaud = 9600

// fail blinks the on-board LED forever; there is nowhere else to report.
func fail(count int) {
	led := machine.PB5
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for {
		for i := 0; i < count; i++ {
			led.High()
			time.Sleep(150 * time.Millisecond)
			led.Low()
			time.Sleep(150 * time.Millisecond)
		}
		time.Sleep(time.Second)
	}
}

func main() {
	console, err := newUARTConsole(consoleBaud)
	if err != nil {
		fail(1)
	}

	lcd, err := NewShieldLCD()
	if err != nil {
		fail(2)
	}

	core.SetGPIODriver(NewAVRGPIODriver())
	core.SetADCDriver(NewAVRADCDriver())

	// The hd44780 driver sleeps between commands, which needs interrupts
	// enabled. The handlers queue panel writes and the loop below replays
	// them.
	var panel core.DisplayQueue

	cfg := core.DefaultConfig()
	_, err = core.Boot(cfg, core.Board{
		Display: &panel,
		Console: console,
		Ticker:  NewTimer1Ticker(),
		Delay:   busyWait,
	})
	if err != nil {
		fail(3)
	}

	for {
		panel.Drain(lcd)
	}
}
