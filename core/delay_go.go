//go:build !tinygo

package core

import "time"

// SystemDelay waits on the host scheduler.
type SystemDelay struct{}

func (SystemDelay) DelayMs(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

func (SystemDelay) DelayUs(us uint32) {
	time.Sleep(time.Duration(us) * time.Microsecond)
}
