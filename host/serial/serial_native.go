//go:build !tinygo

package serial

import (
	"fmt"
	"time"

	"github.com/tarm/serial"
)

// NativePort reads a board through tarm/serial
type NativePort struct {
	port *serial.Port
	r    idleReader
}

// Open opens a native serial port
func Open(cfg *Config) (Port, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: time.Duration(cfg.ReadTimeout) * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", cfg.Device, err)
	}

	return &NativePort{port: port, r: idleReader{r: port}}, nil
}

// Read blocks until at least one byte arrives or the port is closed
func (p *NativePort) Read(b []byte) (int, error) {
	return p.r.Read(b)
}

// Close closes the serial port
func (p *NativePort) Close() error {
	if p.port != nil {
		return p.port.Close()
	}
	return nil
}

// Flush drops whatever the driver buffered
func (p *NativePort) Flush() error {
	return p.port.Flush()
}
