//go:build atmega328p

package main

import "machine"

// uartConsole writes reports on UART0 byte by byte; WriteByte waits on the
// data register so it is usable from the completion interrupt.
type uartConsole struct {
	uart *machine.UART
}

func newUARTConsole(baud uint32) (*uartConsole, error) {
	u := machine.UART0
	if err := u.Configure(machine.UARTConfig{BaudRate: baud}); err != nil {
		return nil, err
	}
	return &uartConsole{uart: u}, nil
}

func (c *uartConsole) WriteString(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		if err := c.uart.WriteByte(s[i]); err != nil {
			return i, err
		}
	}
	return len(s), nil
}
