package core

// ADCChannelID identifies an analog input selector (ADMUX MUX bits on AVR).
type ADCChannelID uint8

// ADCValue is a raw 10-bit conversion result.
type ADCValue uint16

// ADCMax is the largest value a 10-bit converter produces.
const ADCMax ADCValue = 1023

// ADCConfig is the high-level config the core cares about.
type ADCConfig struct {
	// Reference voltage in millivolts (AVcc on the Uno).
	Reference uint32 `yaml:"reference_mv"`

	// Prescaler divides the CPU clock for the converter. 128 gives
	// 125 kHz at 16 MHz, inside the 50-200 kHz window the datasheet asks for.
	Prescaler uint8 `yaml:"prescaler"`
}

// ADCDriver is the abstract single-shot, interrupt-driven converter.
//
// StartConversion returns immediately; the driver calls the registered
// completion handler exactly once when the result is ready.
type ADCDriver interface {
	// Init powers up and configures the ADC peripheral.
	Init(cfg ADCConfig) error

	// SelectChannel routes the given input to the converter for the next
	// conversion.
	SelectChannel(ch ADCChannelID) error

	// StartConversion triggers a single conversion on the selected channel.
	StartConversion()

	// Busy reports whether a conversion is in flight.
	Busy() bool

	// Result returns the last completed conversion.
	Result() ADCValue

	// SetCompletionHandler registers the conversion-complete callback.
	SetCompletionHandler(fn func())
}

// Global singleton used by core code.
var adcDriver ADCDriver

// SetADCDriver is called by target-specific code to register its driver.
func SetADCDriver(d ADCDriver) {
	adcDriver = d
}

// MustADC returns the configured driver or panics if missing.
func MustADC() ADCDriver {
	if adcDriver == nil {
		panic("ADC driver not configured")
	}
	return adcDriver
}
