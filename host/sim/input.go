//go:build !tinygo

package sim

import (
	"sync"

	"joycursor/core"
)

// Joystick readings for a centred stick and the two end stops.
const (
	StickLow    core.ADCValue = 0
	StickCentre core.ADCValue = 512
	StickHigh   core.ADCValue = core.ADCMax
)

// Joystick is the analog stick: two potentiometers and a push button.
type Joystick struct {
	mu   sync.Mutex
	x, y core.ADCValue
	chX  core.ADCChannelID
	chY  core.ADCChannelID
}

// NewJoystick returns a centred stick wired to the two ADC selectors.
func NewJoystick(chX, chY core.ADCChannelID) *Joystick {
	return &Joystick{x: StickCentre, y: StickCentre, chX: chX, chY: chY}
}

// Set places the stick. Values above ADCMax are clamped by the converter.
func (j *Joystick) Set(x, y core.ADCValue) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.x, j.y = x, y
}

// Centre releases the stick.
func (j *Joystick) Centre() {
	j.Set(StickCentre, StickCentre)
}

// Read is the analog input seen by the ADC. Unwired selectors read 0.
func (j *Joystick) Read(ch core.ADCChannelID) core.ADCValue {
	j.mu.Lock()
	defer j.mu.Unlock()
	switch ch {
	case j.chX:
		return j.x
	case j.chY:
		return j.y
	}
	return 0
}

// Encoder models the CLK and DT outputs of a mechanical rotary encoder.
// Every detent produces one CLK edge; DT leads or lags it by direction.
type Encoder struct {
	mu  sync.Mutex
	clk bool
	dt  bool
}

// Step moves one detent and returns the new CLK and DT levels.
// Clockwise leaves DT opposite to CLK, which is what the decoder reads as
// clockwise.
func (e *Encoder) Step(dir core.Direction) (clk, dt bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch dir {
	case core.DirCW:
		e.clk = !e.clk
		e.dt = !e.clk
	case core.DirCCW:
		e.clk = !e.clk
		e.dt = e.clk
	}
	return e.clk, e.dt
}

// Levels returns the current CLK and DT levels.
func (e *Encoder) Levels() (clk, dt bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clk, e.dt
}

// maxDetents bounds the turns held back for later ticks.
const maxDetents = 16

// Detents queues encoder turns from an input that can arrive faster than
// the firmware samples. Two turns inside one tick would toggle CLK twice
// and cancel out, so Release lets through at most one per tick.
type Detents struct {
	pending []core.Direction
	last    uint32
	turned  bool
}

// Push queues one detent. Turns beyond maxDetents are dropped.
func (d *Detents) Push(dir core.Direction) {
	if len(d.pending) < maxDetents {
		d.pending = append(d.pending, dir)
	}
}

// Pending returns the number of queued detents.
func (d *Detents) Pending() int {
	return len(d.pending)
}

// Release turns m by the oldest queued detent once the firmware has ticked
// since the previous one. It reports whether it turned.
func (d *Detents) Release(m *Machine) bool {
	if len(d.pending) == 0 {
		return false
	}
	ticks := m.State().Ticks
	if d.turned && ticks == d.last {
		return false
	}
	m.Turn(d.pending[0])
	d.pending = d.pending[1:]
	d.last, d.turned = ticks, true
	return true
}
