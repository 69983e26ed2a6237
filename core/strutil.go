package core

// itoa converts an integer to a string without using fmt package
// This is a lightweight alternative for embedded systems
func itoa(n int) string {
	return Itoa(int64(n))
}

// utoa converts an unsigned integer to a string
func utoa(n uint32) string {
	return Utoa(uint64(n))
}

// Itoa formats a signed value for debug output. Encoder positions are
// int64 so this is the widest form.
func Itoa(n int64) string {
	if n >= 0 {
		return Utoa(uint64(n))
	}
	// Negate in unsigned space so the minimum int64 survives.
	return "-" + Utoa(uint64(-(n+1))+1)
}

// Utoa formats an unsigned value for debug output.
func Utoa(n uint64) string {
	if n == 0 {
		return "0"
	}

	var buf [20]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}

// KV renders "key=value" pairs for log lines: KV("motor", 1) -> "motor=1".
func KV(key string, value int64) string {
	return key + "=" + Itoa(value)
}
