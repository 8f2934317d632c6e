package core

import (
	"io"
	"time"
)

// Peripherals are the collaborators the two handlers drive.
type Peripherals struct {
	GPIO    GPIODriver
	ADC     ADCDriver
	Display Display
	Console io.StringWriter

	// Delay busy-waits in the calling context. Only SettleBlocking uses it.
	Delay func(time.Duration)
}

// State is a consistent copy of the state shared between the handlers.
type State struct {
	Symbol   uint8
	Position Position
	Channel  ScanChannel
	Ticks    uint32
	Marked   bool
	Overruns uint32
}

// Coordinator owns all state touched by the tick and conversion-complete
// interrupt handlers. Tick and ConversionComplete are the handlers; nothing
// else mutates a Coordinator after construction.
//
// Every field has exactly one writing context, noted below. Fields read from
// the other context are either single bytes or read inside a critical
// section.
type Coordinator struct {
	cfg Config
	io  Peripherals

	// Written by Tick only.
	encoder   Encoder
	ticks     uint32 // read by ConversionComplete under disableInterrupts
	encButton bool
	preempted uint32

	// Written by ConversionComplete only. sampler.Trigger is called from
	// Tick but only starts the converter; the channel toggle happens in
	// sampler.Complete.
	cursor      Cursor // read by Tick under disableInterrupts
	sampler     *Sampler
	marked      bool
	joyButton   bool
	settleUntil uint32
	busy        bool // read by Tick to detect preemption
}

// NewCoordinator validates cfg and samples the encoder CLK line so that the
// first tick does not see a phantom transition.
func NewCoordinator(cfg Config, p Peripherals) (*Coordinator, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if p.GPIO == nil || p.ADC == nil || p.Display == nil || p.Console == nil {
		return nil, ErrNoDriver
	}
	if cfg.Settle == SettleBlocking && p.Delay == nil {
		return nil, ErrNoDriver
	}

	sampler, err := NewSampler(p.ADC, cfg.ChannelX, cfg.ChannelY)
	if err != nil {
		return nil, err
	}

	return &Coordinator{
		cfg:     cfg,
		io:      p,
		encoder: NewEncoder(p.GPIO.ReadPin(cfg.Pins.EncoderCLK), cfg.InitialSymbol),
		cursor:  NewCursor(cfg.LowThreshold, cfg.HighThreshold),
		sampler: sampler,
	}, nil
}

// Config returns the effective configuration.
func (c *Coordinator) Config() Config {
	return c.cfg
}

// Snapshot returns a consistent copy of the shared state.
func (c *Coordinator) Snapshot() State {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	return State{
		Symbol:   c.encoder.Symbol(),
		Position: c.cursor.Position(),
		Channel:  c.sampler.Channel(),
		Ticks:    c.ticks,
		Marked:   c.marked,
		Overruns: c.sampler.Overruns() + c.preempted,
	}
}

// Tick is the periodic interrupt handler. It decodes the encoder, redraws
// the symbol when it changed and starts the next conversion. It never
// blocks.
func (c *Coordinator) Tick() {
	state := disableInterrupts()
	c.ticks++
	now := c.ticks
	restoreInterrupts(state)

	if c.busy {
		// The completion handler was preempted mid-update. Nothing here
		// repairs that; it is only made visible.
		c.preempted++
		RecordTiming(EvtOverrun, uint8(c.sampler.Channel()), now, 0, 1)
	}

	pins := c.cfg.Pins
	redraw := false

	// Active-low push button on the encoder.
	pressed := !c.io.GPIO.ReadPin(pins.EncoderButton)
	if pressed {
		c.indicator(true)
		c.encoder.Reset()
		redraw = true
		if !c.encButton {
			RecordTiming(EvtButton, 0, now, uint32(SymbolMin), 0)
		}
	}
	c.encButton = pressed

	dir := c.encoder.Update(c.io.GPIO.ReadPin(pins.EncoderCLK), c.io.GPIO.ReadPin(pins.EncoderDT))
	if dir != DirNone {
		redraw = true
		RecordTiming(EvtEncoder, 0, now, uint32(uint8(dir)), uint32(c.encoder.Symbol()))
	}

	if redraw {
		c.drawAt(c.position(), c.encoder.Symbol())
	}

	if !c.sampler.Trigger() {
		RecordTiming(EvtOverrun, uint8(c.sampler.Channel()), now, 1, 0)
	}
}

// ConversionComplete is the ADC interrupt handler. It consumes the reading,
// moves the cursor and reports the axis on the console.
func (c *Coordinator) ConversionComplete() {
	c.busy = true

	ch, reading := c.sampler.Complete(c.now())
	c.indicator(false)

	if !c.marked {
		c.marked = true
		c.drawAt(c.cursor.Position(), c.encoder.Symbol())
	}

	pressed := !c.io.GPIO.ReadPin(c.cfg.Pins.JoystickButton)
	if pressed {
		c.indicator(true)
		c.drawAt(c.cursor.Position(), c.cfg.BusyGlyph)
		if !c.joyButton {
			RecordTiming(EvtButton, 1, c.now(), 0, 0)
		}
	}
	c.joyButton = pressed

	c.moveCursor(ch, reading)
	c.report(ch)

	c.busy = false
}

// moveCursor applies one reading. The display and indicator are only touched
// when the cursor actually changes cell.
func (c *Coordinator) moveCursor(ch ScanChannel, reading ADCValue) {
	next, ok := c.cursor.Next(ch, reading)
	if !ok {
		return
	}

	now := c.now()
	blocking := c.cfg.Settle == SettleBlocking
	if !blocking && timerBefore(now, c.settleUntil) {
		RecordTiming(EvtSettle, uint8(ch), now, uint32(reading), 0)
		return
	}

	c.indicator(true)
	c.io.Display.Clear()
	if blocking {
		c.io.Delay(c.cfg.SettleDelay)
	}

	state := disableInterrupts()
	c.cursor.set(next)
	restoreInterrupts(state)

	c.drawAt(next, c.encoder.Symbol())

	if blocking {
		c.io.Delay(c.cfg.SettleDelay)
	} else {
		c.settleUntil = now + c.cfg.SettleTicks
	}
	RecordTiming(EvtMove, uint8(ch), now, uint32(next.Line), uint32(next.Column))
}

// report writes the axis just handled. X opens a record, Y closes it.
func (c *Coordinator) report(ch ScanChannel) {
	pos := c.cursor.Position()
	out := c.io.Console
	if ch == ChannelX {
		_, _ = out.WriteString(c.cfg.LineLabel)
		_, _ = out.WriteString(utoa(uint32(pos.Line)))
		return
	}
	_, _ = out.WriteString(c.cfg.ColumnLabel)
	_, _ = out.WriteString(utoa(uint32(pos.Column)))
	_, _ = out.WriteString(c.cfg.RecordEnd)
}

func (c *Coordinator) drawAt(p Position, glyph uint8) {
	c.io.Display.GotoXY(p.Line, p.Column)
	c.io.Display.PutChar(glyph)
}

func (c *Coordinator) indicator(on bool) {
	_ = c.io.GPIO.SetPin(c.cfg.Pins.LED, on)
}

// position reads the cursor from the tick side.
func (c *Coordinator) position() Position {
	state := disableInterrupts()
	p := c.cursor.Position()
	restoreInterrupts(state)
	return p
}

// now reads the tick count from the completion side.
func (c *Coordinator) now() uint32 {
	state := disableInterrupts()
	t := c.ticks
	restoreInterrupts(state)
	return t
}
