package monitor

import (
	"context"
	"fmt"
	"time"

	"joycursor/core"
	"joycursor/host/serial"
)

// Conn is a read-only connection to a board's report UART
type Conn struct {
	port   serial.Port
	parser *Parser

	// Connection state
	connected bool
}

// NewConn creates a connection (not yet opened) that parses with cfg's labels
func NewConn(cfg core.Config) *Conn {
	return &Conn{parser: NewParser(cfg)}
}

// Connect opens device at the firmware's baud rate
func (c *Conn) Connect(device string) error {
	return c.ConnectWithConfig(serial.DefaultConfig(device))
}

// ConnectWithConfig opens the port with a custom serial config
func (c *Conn) ConnectWithConfig(cfg *serial.Config) error {
	port, err := serial.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open serial port: %w", err)
	}
	// Opening the port resets an Uno; let the bootloader hand over, then
	// drop what it printed
	time.Sleep(100 * time.Millisecond)
	if err := port.Flush(); err != nil {
		_ = port.Close()
		return fmt.Errorf("failed to flush serial port: %w", err)
	}

	c.Attach(port)
	return nil
}

// Attach uses an already open port
func (c *Conn) Attach(port serial.Port) {
	c.port = port
	c.connected = true
}

// Close closes the connection
func (c *Conn) Close() error {
	if c.port != nil {
		if err := c.port.Close(); err != nil {
			return err
		}
	}
	c.connected = false
	return nil
}

// IsConnected returns whether the port is open
func (c *Conn) IsConnected() bool {
	return c.connected
}

// Records streams parsed records to fn until the port closes or ctx ends.
func (c *Conn) Records(ctx context.Context, fn func(Record) error, bad func(string, error)) error {
	if !c.connected {
		return fmt.Errorf("not connected to board")
	}

	stop := context.AfterFunc(ctx, func() { _ = c.port.Close() })
	defer stop()

	err := c.parser.Scan(ctx, c.port, fn, bad)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
