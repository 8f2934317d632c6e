package core

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

// mockGPIO is a test implementation of GPIODriver
type mockGPIO struct {
	levels map[GPIOPin]bool
	modes  map[GPIOPin]string
}

func newMockGPIO() *mockGPIO {
	return &mockGPIO{
		levels: make(map[GPIOPin]bool),
		modes:  make(map[GPIOPin]string),
	}
}

func (m *mockGPIO) ConfigureOutput(pin GPIOPin) error {
	m.modes[pin] = "output"
	return nil
}

func (m *mockGPIO) ConfigureInputPullUp(pin GPIOPin) error {
	m.modes[pin] = "input-pullup"
	m.levels[pin] = true
	return nil
}

func (m *mockGPIO) ConfigureInput(pin GPIOPin) error {
	m.modes[pin] = "input"
	return nil
}

func (m *mockGPIO) SetPin(pin GPIOPin, value bool) error {
	m.levels[pin] = value
	return nil
}

func (m *mockGPIO) TogglePin(pin GPIOPin) error {
	m.levels[pin] = !m.levels[pin]
	return nil
}

func (m *mockGPIO) ReadPin(pin GPIOPin) bool {
	return m.levels[pin]
}

// mockADC completes a conversion only when the test calls finish.
type mockADC struct {
	selected ADCChannelID
	selects  []ADCChannelID
	inputs   map[ADCChannelID]ADCValue
	result   ADCValue
	busy     bool
	starts   int
	handler  func()
	cfg      ADCConfig

	selectErr error
}

func newMockADC() *mockADC {
	return &mockADC{inputs: make(map[ADCChannelID]ADCValue)}
}

func (m *mockADC) Init(cfg ADCConfig) error {
	m.cfg = cfg
	return nil
}

func (m *mockADC) SelectChannel(ch ADCChannelID) error {
	if m.selectErr != nil {
		return m.selectErr
	}
	m.selected = ch
	m.selects = append(m.selects, ch)
	return nil
}

func (m *mockADC) StartConversion() {
	m.busy = true
	m.starts++
}

func (m *mockADC) Busy() bool { return m.busy }

func (m *mockADC) Result() ADCValue { return m.result }

func (m *mockADC) SetCompletionHandler(fn func()) { m.handler = fn }

// finish latches the selected input and clears busy.
func (m *mockADC) finish() {
	m.result = m.inputs[m.selected]
	m.busy = false
}

// mockDisplay records every call and keeps a character grid.
type mockDisplay struct {
	ops    []string
	cells  [DisplayRows][DisplayColumns]byte
	x, y   uint8
	clears int
}

func (d *mockDisplay) GotoXY(x, y uint8) {
	d.x, d.y = x, y
	d.ops = append(d.ops, fmt.Sprintf("goto %d,%d", x, y))
}

func (d *mockDisplay) PutChar(c byte) {
	if d.x < DisplayColumns && d.y < DisplayRows {
		d.cells[d.y][d.x] = c
	}
	d.ops = append(d.ops, fmt.Sprintf("put %#02x", c))
	d.x++
}

func (d *mockDisplay) Clear() {
	d.cells = [DisplayRows][DisplayColumns]byte{}
	d.x, d.y = 0, 0
	d.clears++
	d.ops = append(d.ops, "clear")
}

func (d *mockDisplay) reset() {
	d.ops = nil
	d.clears = 0
}

// rig wires a coordinator to mocks the way Boot does on hardware.
type rig struct {
	cfg    Config
	gpio   *mockGPIO
	adc    *mockADC
	disp   *mockDisplay
	out    *strings.Builder
	delays []time.Duration
	c      *Coordinator
}

func newRig(t *testing.T, cfg Config) *rig {
	t.Helper()

	r := &rig{
		cfg:  cfg,
		gpio: newMockGPIO(),
		adc:  newMockADC(),
		disp: &mockDisplay{},
		out:  &strings.Builder{},
	}
	// Buttons idle high through their pull-ups.
	r.gpio.levels[cfg.Pins.JoystickButton] = true
	r.gpio.levels[cfg.Pins.EncoderButton] = true

	c, err := NewCoordinator(cfg, Peripherals{
		GPIO:    r.gpio,
		ADC:     r.adc,
		Display: r.disp,
		Console: r.out,
		Delay:   func(d time.Duration) { r.delays = append(r.delays, d) },
	})
	if err != nil {
		t.Fatalf("NewCoordinator failed: %v", err)
	}
	r.c = c
	r.adc.SetCompletionHandler(c.ConversionComplete)
	return r
}

// step runs one tick and, if it started a conversion, its completion.
func (r *rig) step() {
	r.c.Tick()
	if r.adc.busy {
		r.adc.finish()
		r.c.ConversionComplete()
	}
}

// sample feeds one reading on the axis the next conversion will use.
func (r *rig) sample(v ADCValue) {
	r.adc.inputs[r.adc.selected] = v
	r.step()
}

func (r *rig) led() bool {
	return r.gpio.levels[r.cfg.Pins.LED]
}
