package core

import (
	"io"
	"time"
)

// Board bundles the target collaborators that are not registered as global
// HAL drivers.
type Board struct {
	Display Display
	Console io.StringWriter
	Ticker  TickSource
	Delay   func(time.Duration)
}

// Boot performs the one-time setup of main: it configures the pins on the
// registered GPIO driver, powers up the registered ADC, hooks both handlers
// and starts the tick source. After Boot returns the caller only idles.
func Boot(cfg Config, b Board) (*Coordinator, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if b.Ticker == nil {
		return nil, ErrNoDriver
	}

	gpio := MustGPIO()
	adc := MustADC()

	pins := cfg.Pins
	for _, step := range []struct {
		pin       GPIOPin
		configure func(GPIOPin) error
	}{
		{pins.JoystickButton, gpio.ConfigureInputPullUp},
		{pins.LED, gpio.ConfigureOutput},
		{pins.EncoderButton, gpio.ConfigureInputPullUp},
		{pins.EncoderDT, gpio.ConfigureInput},
		{pins.EncoderCLK, gpio.ConfigureInput},
	} {
		if err := step.configure(step.pin); err != nil {
			return nil, err
		}
	}
	if err := gpio.SetPin(pins.LED, false); err != nil {
		return nil, err
	}

	if err := adc.Init(cfg.ADC); err != nil {
		return nil, err
	}

	c, err := NewCoordinator(cfg, Peripherals{
		GPIO:    gpio,
		ADC:     adc,
		Display: b.Display,
		Console: b.Console,
		Delay:   b.Delay,
	})
	if err != nil {
		return nil, err
	}

	adc.SetCompletionHandler(c.ConversionComplete)
	if err := b.Ticker.Start(cfg.TickPeriod, c.Tick); err != nil {
		return nil, err
	}

	DebugPrintln("joycursor: handlers armed, tick " + utoa(uint32(cfg.TickPeriod/time.Millisecond)) + "ms")
	return c, nil
}
