package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// TimingEvent captures a handler event for post-mortem analysis
type TimingEvent struct {
	EventType uint8  // Event type code
	Channel   uint8  // Scan channel, where it applies
	Clock     uint32 // Tick count at event
	Value1    uint32 // Context-dependent value
	Value2    uint32 // Context-dependent value
}

// Event type codes
const (
	EvtEncoder = 1 // encoder transition, Value1 = direction, Value2 = symbol
	EvtMove    = 2 // cursor moved, Value1 = line, Value2 = column
	EvtButton  = 3 // push button pressed, Channel = 0 encoder / 1 joystick
	EvtOverrun = 4 // tick found a conversion or its handler still running
	EvtSettle  = 5 // move suppressed by the settle deadline, Value1 = reading
	EvtSelect  = 6 // driver refused the next selector, Value1 = selector
	EvtLCDDrop = 7 // display queue full, Value1 = ops dropped so far
)

const (
	TimingRingSize = 16 // Keep last 16 events; SRAM is 2 KiB on the Uno
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false

	// Timing capture ring buffer (non-blocking, safe from interrupt context)
	timingRing     [TimingRingSize]TimingEvent
	timingRingHead uint8
	timingEnabled  bool = true

	// Async debug output channel
	debugChan chan string
)

// SetDebugWriter sets the platform-specific debug output function
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// SetTimingEnabled turns event capture on or off.
func SetTimingEnabled(enabled bool) {
	timingEnabled = enabled
}

// InitAsyncDebug starts the async debug output goroutine
// Call this from main() after SetDebugWriter
func InitAsyncDebug() {
	debugChan = make(chan string, 16)
	go debugOutputWorker()
}

func debugOutputWorker() {
	for msg := range debugChan {
		if debugPrintln != nil {
			debugPrintln(msg)
		}
	}
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// DebugAsync queues a debug message for async output (non-blocking)
// Drops the message when the channel is full
func DebugAsync(msg string) {
	if !debugEnabled || debugChan == nil {
		return
	}
	select {
	case debugChan <- msg:
	default:
	}
}

// RecordTiming captures an event in the ring buffer
func RecordTiming(eventType, channel uint8, clock, value1, value2 uint32) {
	if !timingEnabled {
		return
	}
	state := disableInterrupts()
	idx := timingRingHead
	timingRing[idx] = TimingEvent{
		EventType: eventType,
		Channel:   channel,
		Clock:     clock,
		Value1:    value1,
		Value2:    value2,
	}
	timingRingHead = (idx + 1) % TimingRingSize
	restoreInterrupts(state)
}

// TimingEvents returns the captured events, oldest first.
func TimingEvents() []TimingEvent {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	events := make([]TimingEvent, 0, TimingRingSize)
	start := timingRingHead
	for i := uint8(0); i < TimingRingSize; i++ {
		evt := timingRing[(start+i)%TimingRingSize]
		if evt.EventType == 0 {
			continue
		}
		events = append(events, evt)
	}
	return events
}

func eventName(eventType uint8) string {
	switch eventType {
	case EvtEncoder:
		return "ENCODER"
	case EvtMove:
		return "MOVE"
	case EvtButton:
		return "BUTTON"
	case EvtOverrun:
		return "OVERRUN!"
	case EvtSettle:
		return "SETTLE"
	case EvtSelect:
		return "SELECT!"
	case EvtLCDDrop:
		return "LCD-DROP!"
	default:
		return "UNKNOWN"
	}
}

// DumpTimingRing outputs the ring buffer through the debug writer
// Call from task context; it is not meant for interrupt handlers
func DumpTimingRing() {
	if debugPrintln == nil || inInterrupt() {
		return
	}

	debugPrintln("[TIMING] === Timing Ring Dump ===")
	for _, evt := range TimingEvents() {
		debugPrintln("[TIMING] " + eventName(evt.EventType) +
			" ch=" + itoa(int(evt.Channel)) +
			" clock=" + utoa(evt.Clock) +
			" v1=" + utoa(evt.Value1) +
			" v2=" + utoa(evt.Value2))
	}
	debugPrintln("[TIMING] === End Dump ===")
}

// ClearTimingRing clears the timing buffer
func ClearTimingRing() {
	state := disableInterrupts()
	for i := range timingRing {
		timingRing[i] = TimingEvent{}
	}
	timingRingHead = 0
	restoreInterrupts(state)
}
