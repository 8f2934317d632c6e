//go:build atmega328p

package main

import (
	"joycursor/core"
	"machine"
)

// unoPins maps Arduino Uno digital numbers to port pins. Analog pins A0-A5
// continue the numbering at 14.
var unoPins = [...]machine.Pin{
	machine.PD0, machine.PD1, machine.PD2, machine.PD3,
	machine.PD4, machine.PD5, machine.PD6, machine.PD7,
	machine.PB0, machine.PB1, machine.PB2, machine.PB3,
	machine.PB4, machine.PB5,
	machine.PC0, machine.PC1, machine.PC2, machine.PC3,
	machine.PC4, machine.PC5,
}

// AVRGPIODriver implements core.GPIODriver on the Uno header
type AVRGPIODriver struct {
	// Configured pins, indexed by Uno number
	configured [len(unoPins)]bool
}

// NewAVRGPIODriver creates a GPIO driver with nothing configured
func NewAVRGPIODriver() *AVRGPIODriver {
	return &AVRGPIODriver{}
}

func (d *AVRGPIODriver) configure(pin core.GPIOPin, mode machine.PinMode) error {
	mp, err := unoPin(pin)
	if err != nil {
		return err
	}
	mp.Configure(machine.PinConfig{Mode: mode})
	d.configured[pin] = true
	return nil
}

// ConfigureOutput configures a pin as a digital output
func (d *AVRGPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	return d.configure(pin, machine.PinOutput)
}

// ConfigureInputPullUp configures a pin as input with the internal pull-up
func (d *AVRGPIODriver) ConfigureInputPullUp(pin core.GPIOPin) error {
	return d.configure(pin, machine.PinInputPullup)
}

// ConfigureInput configures a floating input. The encoder board has its
// own pull-ups on CLK and DT.
func (d *AVRGPIODriver) ConfigureInput(pin core.GPIOPin) error {
	return d.configure(pin, machine.PinInput)
}

// SetPin drives a configured output
func (d *AVRGPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	if int(pin) >= len(unoPins) || !d.configured[pin] {
		return core.ErrNoDriver
	}
	unoPins[pin].Set(value)
	return nil
}

// TogglePin inverts a configured output
func (d *AVRGPIODriver) TogglePin(pin core.GPIOPin) error {
	if int(pin) >= len(unoPins) || !d.configured[pin] {
		return core.ErrNoDriver
	}
	mp := unoPins[pin]
	mp.Set(!mp.Get())
	return nil
}

// ReadPin returns the level of a pin; unknown pins read low
func (d *AVRGPIODriver) ReadPin(pin core.GPIOPin) bool {
	if int(pin) >= len(unoPins) {
		return false
	}
	return unoPins[pin].Get()
}

func unoPin(pin core.GPIOPin) (machine.Pin, error) {
	if int(pin) >= len(unoPins) {
		return machine.NoPin, core.ErrBadConfig
	}
	return unoPins[pin], nil
}
