//go:build atmega328p

package main

import (
	"machine"

	"tinygo.org/x/drivers/hd44780"
)

// LCD keypad shield wiring: RS on D8, E on D9, data on D4-D7, R/W grounded.
var (
	lcdRS   = machine.PB0
	lcdE    = machine.PB1
	lcdData = []machine.Pin{machine.PD4, machine.PD5, machine.PD6, machine.PD7}
)

// ShieldLCD implements core.Display on an HD44780 in 4-bit mode.
type ShieldLCD struct {
	dev hd44780.Device
	buf [1]byte
}

// NewShieldLCD initialises the controller as 16x2 with the cursor hidden.
func NewShieldLCD() (*ShieldLCD, error) {
	dev, err := hd44780.NewGPIO4Bit(lcdData, lcdE, lcdRS, machine.NoPin)
	if err != nil {
		return nil, err
	}
	if err := dev.Configure(hd44780.Config{Width: 16, Height: 2}); err != nil {
		return nil, err
	}
	dev.ClearDisplay()
	return &ShieldLCD{dev: dev}, nil
}

func (l *ShieldLCD) GotoXY(x, y uint8) {
	l.dev.SetCursor(x, y)
}

// PutChar writes one character code at the cursor. It runs from the idle
// loop, never from a handler, because the driver sleeps between nibbles.
func (l *ShieldLCD) PutChar(c byte) {
	l.buf[0] = c
	_, _ = l.dev.Write(l.buf[:])
	_ = l.dev.Display()
}

func (l *ShieldLCD) Clear() {
	l.dev.ClearDisplay()
}
