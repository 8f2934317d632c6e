//go:build !tinygo

package sim

import (
	"sync"
	"time"

	"joycursor/core"
)

const (
	// cpuHz is the clock of the simulated part.
	cpuHz = 16000000

	// conversionClocks is the length of a normal conversion in ADC clocks.
	conversionClocks = 13
)

// ADC implements core.ADCDriver. A started conversion completes on the
// timer scheduler one conversion time later, latching the selected input at
// that moment, and then calls the completion handler.
type ADC struct {
	mu       sync.Mutex
	input    func(core.ADCChannelID) core.ADCValue
	selected core.ADCChannelID
	busy     bool
	result   core.ADCValue
	handler  func()
	convTime time.Duration
	timer    core.Timer
	count    uint32
}

// NewADC returns a converter that samples input on completion.
func NewADC(input func(core.ADCChannelID) core.ADCValue) *ADC {
	a := &ADC{input: input}
	a.timer.Handler = a.complete
	return a
}

// Init derives the conversion time from the prescaler.
func (a *ADC) Init(cfg core.ADCConfig) error {
	if cfg.Prescaler == 0 {
		return core.ErrBadConfig
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.convTime = time.Duration(conversionClocks*int64(cfg.Prescaler)) * time.Second / cpuHz
	return nil
}

func (a *ADC) SelectChannel(ch core.ADCChannelID) error {
	if ch > 7 {
		return core.ErrUnknownChannel
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.selected = ch
	return nil
}

// StartConversion is ignored while a conversion is in flight, like setting
// ADSC again on the real part.
func (a *ADC) StartConversion() {
	a.mu.Lock()
	if a.busy {
		a.mu.Unlock()
		return
	}
	a.busy = true
	a.timer.WakeTime = core.GetTime() + core.TimerFromDuration(a.convTime)
	a.mu.Unlock()
	core.ScheduleTimer(&a.timer)
}

func (a *ADC) Busy() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.busy
}

func (a *ADC) Result() core.ADCValue {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.result
}

func (a *ADC) SetCompletionHandler(fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.handler = fn
}

// Conversions returns how many conversions have completed.
func (a *ADC) Conversions() uint32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.count
}

func (a *ADC) complete(*core.Timer) uint8 {
	a.mu.Lock()
	if a.input != nil {
		a.result = a.input(a.selected)
	}
	if a.result > core.ADCMax {
		a.result = core.ADCMax
	}
	a.busy = false
	a.count++
	handler := a.handler
	a.mu.Unlock()

	if handler != nil {
		handler()
	}
	return core.SF_DONE
}
