//go:build !tinygo

package sim

import (
	"sync"

	"joycursor/core"
)

// PinMode is how firmware configured a simulated line.
type PinMode uint8

const (
	PinUnused PinMode = iota
	PinOutput
	PinInput
	PinInputPullUp
)

// Pins implements core.GPIODriver. Inputs read the level last driven from
// outside with Drive; an undriven pull-up input reads high.
type Pins struct {
	mu     sync.Mutex
	modes  map[core.GPIOPin]PinMode
	levels map[core.GPIOPin]bool
	driven map[core.GPIOPin]bool
}

func NewPins() *Pins {
	return &Pins{
		modes:  make(map[core.GPIOPin]PinMode),
		levels: make(map[core.GPIOPin]bool),
		driven: make(map[core.GPIOPin]bool),
	}
}

func (p *Pins) setMode(pin core.GPIOPin, mode PinMode) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.modes[pin] = mode
	return nil
}

func (p *Pins) ConfigureOutput(pin core.GPIOPin) error {
	return p.setMode(pin, PinOutput)
}

func (p *Pins) ConfigureInputPullUp(pin core.GPIOPin) error {
	return p.setMode(pin, PinInputPullUp)
}

func (p *Pins) ConfigureInput(pin core.GPIOPin) error {
	return p.setMode(pin, PinInput)
}

// SetPin drives an output. Writes to lines not configured as outputs fail
// the way they would on a driver that tracks configuration.
func (p *Pins) SetPin(pin core.GPIOPin, value bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.modes[pin] != PinOutput {
		return core.ErrNoDriver
	}
	p.levels[pin] = value
	return nil
}

func (p *Pins) TogglePin(pin core.GPIOPin) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.modes[pin] != PinOutput {
		return core.ErrNoDriver
	}
	p.levels[pin] = !p.levels[pin]
	return nil
}

func (p *Pins) ReadPin(pin core.GPIOPin) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.modes[pin] == PinInputPullUp && !p.driven[pin] {
		return true
	}
	return p.levels[pin]
}

// Drive sets the external level on an input line.
func (p *Pins) Drive(pin core.GPIOPin, level bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.levels[pin] = level
	p.driven[pin] = true
}

// Release stops driving a line so its pull-up takes over again.
func (p *Pins) Release(pin core.GPIOPin) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.driven, pin)
	if p.modes[pin] == PinInputPullUp {
		p.levels[pin] = true
	}
}

// Mode returns how the firmware configured pin.
func (p *Pins) Mode(pin core.GPIOPin) PinMode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.modes[pin]
}

// Level returns the current level of any line.
func (p *Pins) Level(pin core.GPIOPin) bool {
	return p.ReadPin(pin)
}
