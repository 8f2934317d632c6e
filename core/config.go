package core

import "time"

// SettleMode selects how a cursor move waits out joystick bounce.
type SettleMode string

const (
	// SettleDeadline suppresses further moves until a tick deadline passes.
	// Nothing blocks in interrupt context.
	SettleDeadline SettleMode = "deadline"

	// SettleBlocking busy-waits SettleDelay before and after the positional
	// write. Moves stall the handler for 2 x SettleDelay.
	SettleBlocking SettleMode = "blocking"
)

// PinConfig names the digital lines the firmware uses.
type PinConfig struct {
	JoystickButton GPIOPin `yaml:"joystick_button"`
	LED            GPIOPin `yaml:"led"`
	EncoderButton  GPIOPin `yaml:"encoder_button"`
	EncoderDT      GPIOPin `yaml:"encoder_dt"`
	EncoderCLK     GPIOPin `yaml:"encoder_clk"`
}

// Config holds every build-time constant of the firmware. Targets compile
// DefaultConfig in; host tools may overlay a YAML file on top of it.
type Config struct {
	Pins PinConfig `yaml:"pins"`

	// ADC selectors for the joystick axes.
	ChannelX ADCChannelID `yaml:"channel_x"`
	ChannelY ADCChannelID `yaml:"channel_y"`
	ADC      ADCConfig    `yaml:"adc"`

	// TickPeriod is the periodic interrupt interval.
	TickPeriod time.Duration `yaml:"tick_period"`

	// Readings above High move toward the high edge, below Low toward the
	// low edge; [Low, High] is the dead zone.
	HighThreshold ADCValue `yaml:"high_threshold"`
	LowThreshold  ADCValue `yaml:"low_threshold"`

	InitialSymbol uint8 `yaml:"initial_symbol"`
	BusyGlyph     uint8 `yaml:"busy_glyph"`

	Settle      SettleMode    `yaml:"settle"`
	SettleTicks uint32        `yaml:"settle_ticks"`
	SettleDelay time.Duration `yaml:"settle_delay"`

	// UART report labels.
	LineLabel   string `yaml:"line_label"`
	ColumnLabel string `yaml:"column_label"`
	RecordEnd   string `yaml:"record_end"`
}

// Arduino Uno digital pin numbers used by the joystick shield wiring.
const (
	unoPinD2  GPIOPin = 2
	unoPinD10 GPIOPin = 10
	unoPinD11 GPIOPin = 11
	unoPinD12 GPIOPin = 12
	unoPinD13 GPIOPin = 13
)

// DefaultConfig returns the configuration of the Uno joystick shield board.
func DefaultConfig() Config {
	return Config{
		Pins: PinConfig{
			JoystickButton: unoPinD2,
			LED:            unoPinD13,
			EncoderButton:  unoPinD10,
			EncoderDT:      unoPinD11,
			EncoderCLK:     unoPinD12,
		},
		ChannelX: 0,
		ChannelY: 1,
		ADC: ADCConfig{
			Reference: 5000,
			Prescaler: 128,
		},
		TickPeriod:    33 * time.Millisecond,
		HighThreshold: 900,
		LowThreshold:  100,
		InitialSymbol: 0x2a,
		BusyGlyph:     0xef,
		Settle:        SettleDeadline,
		SettleTicks:   3,
		SettleDelay:   50 * time.Millisecond,
		LineLabel:     "Line is: ",
		ColumnLabel:   "      Column is: ",
		RecordEnd:     " \r\n",
	}
}

// ApplyDefaults fills in zero-valued fields from DefaultConfig.
// Pins and channel selectors are left alone because zero is a valid value.
// The thresholds are defaulted as a pair when HighThreshold is unset; a zero
// LowThreshold next to a set HighThreshold disables low moves and is kept.
func (c *Config) ApplyDefaults() {
	def := DefaultConfig()

	if c.ADC.Reference == 0 {
		c.ADC.Reference = def.ADC.Reference
	}
	if c.ADC.Prescaler == 0 {
		c.ADC.Prescaler = def.ADC.Prescaler
	}
	if c.TickPeriod == 0 {
		c.TickPeriod = def.TickPeriod
	}
	if c.HighThreshold == 0 {
		c.HighThreshold = def.HighThreshold
		if c.LowThreshold == 0 {
			c.LowThreshold = def.LowThreshold
		}
	}
	if c.InitialSymbol == 0 {
		c.InitialSymbol = def.InitialSymbol
	}
	if c.BusyGlyph == 0 {
		c.BusyGlyph = def.BusyGlyph
	}
	if c.Settle == "" {
		c.Settle = def.Settle
	}
	if c.SettleTicks == 0 {
		c.SettleTicks = def.SettleTicks
	}
	if c.SettleDelay == 0 {
		c.SettleDelay = def.SettleDelay
	}
	if c.LineLabel == "" {
		c.LineLabel = def.LineLabel
	}
	if c.ColumnLabel == "" {
		c.ColumnLabel = def.ColumnLabel
	}
	if c.RecordEnd == "" {
		c.RecordEnd = def.RecordEnd
	}
}

// Validate checks the relations the handlers rely on.
func (c *Config) Validate() error {
	if c.ChannelX == c.ChannelY {
		return ErrBadConfig
	}
	if c.LowThreshold >= c.HighThreshold || c.HighThreshold > ADCMax {
		return ErrBadConfig
	}
	if c.InitialSymbol < SymbolMin {
		return ErrBadConfig
	}
	if c.TickPeriod <= 0 {
		return ErrBadConfig
	}
	switch c.Settle {
	case SettleDeadline, SettleBlocking:
	default:
		return ErrBadConfig
	}
	return nil
}
