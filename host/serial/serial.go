package serial

import (
	"io"
)

// Port is the receive side of a board's UART. The firmware never reads, so
// nothing is written back.
type Port interface {
	io.ReadCloser

	// Flush discards bytes received but not yet read
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate of the board's UART
	Baud int

	// Read timeout in milliseconds (0 = blocking). A timeout is not end of
	// stream; Read retries until data arrives or the port is closed.
	ReadTimeout int
}

// DefaultBaud is the rate the firmware configures UART0 with.
const DefaultBaud = 9600

// DefaultConfig returns the configuration for an Uno on device. The timeout
// bounds how long a Close from another goroutine waits for a pending Read.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        DefaultBaud,
		ReadTimeout: 100,
	}
}

// idleReader hides read timeouts. tarm/serial reports a timeout with no
// data as (0, io.EOF) on Linux and (0, nil) on Windows; both are retried.
type idleReader struct {
	r io.Reader
}

func (i idleReader) Read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	for {
		n, err := i.r.Read(b)
		if n > 0 || (err != nil && err != io.EOF) {
			return n, err
		}
	}
}
