//go:build atmega328p

package main

import (
	"device/avr"
	"joycursor/core"
	"runtime/interrupt"
)

// AVRADCDriver implements core.ADCDriver with the converter in single
// conversion mode and its completion interrupt enabled.
type AVRADCDriver struct {
	handler func()
}

var adcDriver = &AVRADCDriver{}

// NewAVRADCDriver returns the driver bound to the ADC vector
func NewAVRADCDriver() *AVRADCDriver {
	return adcDriver
}

func init() {
	interrupt.New(avr.IRQ_ADC, func(interrupt.Interrupt) {
		if h := adcDriver.handler; h != nil {
			h()
		}
	})
}

// adcPrescalerBits returns ADPS2:0 for a clock division factor
func adcPrescalerBits(div uint8) (uint8, bool) {
	switch div {
	case 2:
		return 1, true
	case 4:
		return 2, true
	case 8:
		return 3, true
	case 16:
		return 4, true
	case 32:
		return 5, true
	case 64:
		return 6, true
	case 128:
		return 7, true
	}
	return 0, false
}

// Init selects the AVcc reference and powers the converter up.
// 16 MHz / 128 gives the 125 kHz ADC clock the datasheet asks for at
// full resolution.
func (d *AVRADCDriver) Init(cfg core.ADCConfig) error {
	ps, ok := adcPrescalerBits(cfg.Prescaler)
	if !ok {
		return core.ErrBadConfig
	}
	avr.ADMUX.Set(avr.ADMUX_REFS0)
	avr.ADCSRA.Set(avr.ADCSRA_ADEN | avr.ADCSRA_ADIE | ps)
	return nil
}

// SelectChannel rewrites MUX3:0 and keeps the reference bits.
func (d *AVRADCDriver) SelectChannel(ch core.ADCChannelID) error {
	if ch > 7 {
		return core.ErrUnknownChannel
	}
	avr.ADMUX.Set(avr.ADMUX_REFS0 | uint8(ch))
	return nil
}

func (d *AVRADCDriver) StartConversion() {
	avr.ADCSRA.SetBits(avr.ADCSRA_ADSC)
}

// Busy reports whether ADSC is still set
func (d *AVRADCDriver) Busy() bool {
	return avr.ADCSRA.HasBits(avr.ADCSRA_ADSC)
}

// Result reads ADCL first; that latches ADCH until it is read.
func (d *AVRADCDriver) Result() core.ADCValue {
	lo := avr.ADCL.Get()
	hi := avr.ADCH.Get()
	return core.ADCValue(hi&0x03)<<8 | core.ADCValue(lo)
}

func (d *AVRADCDriver) SetCompletionHandler(fn func()) {
	d.handler = fn
}
