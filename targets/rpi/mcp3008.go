//go:build linux && !tinygo

package main

import (
	"sync"

	"github.com/stianeikeland/go-rpio/v4"

	"joycursor/core"
)

const mcp3008Hz = 1000000

// mcp3008Frame is the single-ended read request for ch.
func mcp3008Frame(ch core.ADCChannelID) []byte {
	return []byte{0x01, byte(0x08|ch) << 4, 0x00}
}

// mcp3008Value extracts the 10-bit result from an exchanged frame.
func mcp3008Value(frame []byte) core.ADCValue {
	return core.ADCValue(frame[1]&0x03)<<8 | core.ADCValue(frame[2])
}

// MCP3008 implements core.ADCDriver over SPI0 CE0. The SPI exchange runs
// on the dispatcher, which then calls the completion handler, the way the
// conversion-complete interrupt would.
type MCP3008 struct {
	mu       sync.Mutex
	d        *dispatcher
	exchange func([]byte)
	selected core.ADCChannelID
	busy     bool
	result   core.ADCValue
	handler  func()
}

func NewMCP3008(d *dispatcher) *MCP3008 {
	return &MCP3008{d: d, exchange: rpio.SpiExchange}
}

func (m *MCP3008) Init(cfg core.ADCConfig) error {
	if err := rpio.SpiBegin(rpio.Spi0); err != nil {
		return err
	}
	rpio.SpiSpeed(mcp3008Hz)
	rpio.SpiChipSelect(0)
	return nil
}

func (m *MCP3008) SelectChannel(ch core.ADCChannelID) error {
	if ch > 7 {
		return core.ErrUnknownChannel
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected = ch
	return nil
}

func (m *MCP3008) StartConversion() {
	m.mu.Lock()
	if m.busy {
		m.mu.Unlock()
		return
	}
	m.busy = true
	m.mu.Unlock()

	if !m.d.postConversion(m.convert) {
		m.mu.Lock()
		m.busy = false
		m.mu.Unlock()
	}
}

func (m *MCP3008) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy
}

func (m *MCP3008) Result() core.ADCValue {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.result
}

func (m *MCP3008) SetCompletionHandler(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = fn
}

func (m *MCP3008) convert() {
	m.mu.Lock()
	frame := mcp3008Frame(m.selected)
	m.mu.Unlock()

	m.exchange(frame)

	m.mu.Lock()
	m.result = mcp3008Value(frame)
	m.busy = false
	handler := m.handler
	m.mu.Unlock()

	if handler != nil {
		handler()
	}
}

// Close releases the SPI pins.
func (m *MCP3008) Close() {
	rpio.SpiEnd(rpio.Spi0)
}
