//go:build !tinygo

package sim

import (
	"io"
	"sync"
	"time"

	"joycursor/core"
	"joycursor/host/charlcd"
)

// Machine is a simulated board: the firmware core booted on virtual pins,
// a virtual ADC and a character LCD, driven by a virtual clock.
//
// The core keeps its drivers and timer list in package state, so only one
// Machine may be live at a time.
type Machine struct {
	mu sync.Mutex

	cfg      core.Config
	Pins     *Pins
	ADC      *ADC
	LCD      *charlcd.LCD
	Joystick *Joystick
	Encoder  *Encoder

	ticker  core.TimerTicker
	coord   *core.Coordinator
	stalled time.Duration
}

// New boots the firmware on fresh simulated hardware. Console receives the
// UART report stream.
func New(cfg core.Config, console io.StringWriter) (*Machine, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if console == nil {
		console = discard{}
	}

	core.ResetTimers()
	core.SetTime(0)
	core.ClearTimingRing()

	m := &Machine{
		cfg:      cfg,
		Pins:     NewPins(),
		LCD:      charlcd.New(),
		Joystick: NewJoystick(cfg.ChannelX, cfg.ChannelY),
		Encoder:  &Encoder{},
	}
	m.ADC = NewADC(m.Joystick.Read)

	clk, dt := m.Encoder.Levels()
	m.Pins.Drive(cfg.Pins.EncoderCLK, clk)
	m.Pins.Drive(cfg.Pins.EncoderDT, dt)

	core.SetGPIODriver(m.Pins)
	core.SetADCDriver(m.ADC)

	coord, err := core.Boot(cfg, core.Board{
		Display: m.LCD,
		Console: console,
		Ticker:  &m.ticker,
		Delay:   m.delay,
	})
	if err != nil {
		return nil, err
	}
	m.coord = coord
	return m, nil
}

// Config returns the effective firmware configuration.
func (m *Machine) Config() core.Config {
	return m.cfg
}

// Advance runs the board for d of virtual time.
func (m *Machine) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	advance(d)
}

// Ticks runs the board for n tick periods.
func (m *Machine) Ticks(n int) {
	m.Advance(time.Duration(n) * m.cfg.TickPeriod)
}

// Tilt places the joystick.
func (m *Machine) Tilt(x, y core.ADCValue) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Joystick.Set(x, y)
}

// PressJoystick holds or releases the joystick push button (active low).
func (m *Machine) PressJoystick(pressed bool) {
	m.press(m.cfg.Pins.JoystickButton, pressed)
}

// PressEncoder holds or releases the encoder push button (active low).
func (m *Machine) PressEncoder(pressed bool) {
	m.press(m.cfg.Pins.EncoderButton, pressed)
}

func (m *Machine) press(pin core.GPIOPin, pressed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if pressed {
		m.Pins.Drive(pin, false)
		return
	}
	m.Pins.Release(pin)
}

// Turn moves the encoder one detent. The firmware only sees the edge on
// its next tick.
func (m *Machine) Turn(dir core.Direction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	clk, dt := m.Encoder.Step(dir)
	m.Pins.Drive(m.cfg.Pins.EncoderCLK, clk)
	m.Pins.Drive(m.cfg.Pins.EncoderDT, dt)
}

// State returns the firmware's shared state.
func (m *Machine) State() core.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.coord.Snapshot()
}

// Indicator reports the status LED.
func (m *Machine) Indicator() bool {
	return m.Pins.Level(m.cfg.Pins.LED)
}

// Stalled returns the virtual time spent busy-waiting in handlers.
func (m *Machine) Stalled() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stalled
}

// Close stops the tick source and unregisters the drivers.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ticker.Stop()
	core.ResetTimers()
	core.SetGPIODriver(nil)
	core.SetADCDriver(nil)
}

// delay stands in for a busy-wait inside a handler: the clock jumps ahead
// and anything that fell due meanwhile is dispatched late.
func (m *Machine) delay(d time.Duration) {
	core.SetTime(core.GetTime() + core.TimerFromDuration(d))
	m.stalled += d
}

type discard struct{}

func (discard) WriteString(s string) (int, error) {
	return len(s), nil
}
