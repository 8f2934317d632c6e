package core

// ScanChannel is the logical joystick axis the next conversion samples.
type ScanChannel uint8

const (
	ChannelX ScanChannel = iota
	ChannelY
)

func (c ScanChannel) String() string {
	if c == ChannelY {
		return "Y"
	}
	return "X"
}

// scanStep is one row of the scan transition table.
type scanStep struct {
	next     ScanChannel
	selector ADCChannelID
}

// Sampler multiplexes one ADC across the X and Y axes.
//
// Trigger runs in the tick handler; Complete runs in the conversion-complete
// handler and is the only writer of the current channel.
type Sampler struct {
	adc     ADCDriver
	table   [2]scanStep
	current ScanChannel

	overruns uint32
}

// NewSampler selects the X axis for the first conversion.
func NewSampler(adc ADCDriver, x, y ADCChannelID) (*Sampler, error) {
	if adc == nil {
		return nil, ErrNoDriver
	}
	if x == y {
		return nil, ErrBadConfig
	}
	s := &Sampler{
		adc: adc,
		table: [2]scanStep{
			ChannelX: {next: ChannelY, selector: x},
			ChannelY: {next: ChannelX, selector: y},
		},
		current: ChannelX,
	}
	if err := adc.SelectChannel(x); err != nil {
		return nil, err
	}
	return s, nil
}

// Channel returns the axis the next conversion samples.
func (s *Sampler) Channel() ScanChannel {
	return s.current
}

// Selector returns the ADC selector programmed for an axis.
func (s *Sampler) Selector(ch ScanChannel) ADCChannelID {
	return s.table[ch].selector
}

// Overruns counts ticks that found a conversion still in flight.
func (s *Sampler) Overruns() uint32 {
	return s.overruns
}

// Trigger starts one conversion on the current channel. It refuses while a
// conversion is in flight, so each trigger yields exactly one completion.
func (s *Sampler) Trigger() bool {
	if s.adc.Busy() {
		s.overruns++
		return false
	}
	s.adc.StartConversion()
	return true
}

// Complete reads the finished conversion, tags it with the channel that
// produced it and routes the converter to the other axis. now stamps the
// trace event recorded when the driver refuses the next selector.
func (s *Sampler) Complete(now uint32) (ScanChannel, ADCValue) {
	ch := s.current
	reading := s.adc.Result()
	if reading > ADCMax {
		reading = ADCMax
	}

	step := s.table[ch]
	s.current = step.next
	// A refused selector leaves the mux where it was, so the next reading
	// is mis-tagged.
	next := s.table[step.next].selector
	if err := s.adc.SelectChannel(next); err != nil {
		RecordTiming(EvtSelect, uint8(step.next), now, uint32(next), 0)
	}

	return ch, reading
}
