//go:build tinygo

package core

import (
	"time"

	"tinygo.org/x/drivers/delay"
)

// SystemDelay waits on the MCU. Microsecond waits are cycle-counted busy
// loops so short pulses such as the nSLEEP confirmation keep their width.
type SystemDelay struct{}

func (SystemDelay) DelayMs(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

func (SystemDelay) DelayUs(us uint32) {
	delay.Sleep(time.Duration(us) * time.Microsecond)
}
