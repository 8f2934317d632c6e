package core

// itoa converts an integer to a string without using fmt package
// This is a lightweight alternative for embedded systems
func itoa(n int) string {
	if n < 0 {
		return "-" + utoa(uint32(-n))
	}
	return utoa(uint32(n))
}

// utoa converts an unsigned integer to its decimal string, the same text
// avr-libc's itoa(value, buf, 10) produces for the UART report.
func utoa(n uint32) string {
	var buf [10]byte
	return string(appendUint(buf[:0], n))
}

// appendUint appends the decimal digits of n to dst.
func appendUint(dst []byte, n uint32) []byte {
	if n == 0 {
		return append(dst, '0')
	}

	var tmp [10]byte
	pos := len(tmp)
	for n > 0 {
		pos--
		tmp[pos] = byte('0' + n%10)
		n /= 10
	}
	return append(dst, tmp[pos:]...)
}
