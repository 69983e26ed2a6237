package core

// Delay is the blocking wait capability. Both calls busy-wait or sleep the
// calling context; there is no yield visible to the driver layer.
type Delay interface {
	DelayMs(ms uint32)
	DelayUs(us uint32)
}

var delayDriver Delay = SystemDelay{}

// SetDelay overrides the default delay, typically with a simulated clock.
func SetDelay(d Delay) {
	delayDriver = d
}

// MustDelay returns the registered delay. A system delay is registered by
// default so this never panics unless SetDelay(nil) was called.
func MustDelay() Delay {
	if delayDriver == nil {
		panic("delay not configured")
	}
	return delayDriver
}
