//go:build linux && !tinygo

package main

import (
	"github.com/stianeikeland/go-rpio/v4"

	"joycursor/core"
)

// RPIOGPIODriver implements core.GPIODriver on the BCM GPIO block.
// Pins are BCM numbers.
type RPIOGPIODriver struct{}

func (RPIOGPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	rpio.Pin(pin).Output()
	return nil
}

func (RPIOGPIODriver) ConfigureInputPullUp(pin core.GPIOPin) error {
	p := rpio.Pin(pin)
	p.Input()
	p.PullUp()
	return nil
}

func (RPIOGPIODriver) ConfigureInput(pin core.GPIOPin) error {
	p := rpio.Pin(pin)
	p.Input()
	p.PullOff()
	return nil
}

func (RPIOGPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	if value {
		rpio.Pin(pin).High()
	} else {
		rpio.Pin(pin).Low()
	}
	return nil
}

func (RPIOGPIODriver) TogglePin(pin core.GPIOPin) error {
	rpio.Pin(pin).Toggle()
	return nil
}

func (RPIOGPIODriver) ReadPin(pin core.GPIOPin) bool {
	return rpio.Pin(pin).Read() == rpio.High
}
