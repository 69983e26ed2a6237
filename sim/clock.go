package sim

import (
	"sync"

	"robodrive/core"
)

// Clock is a virtual time base. Delays advance it instantly instead of
// sleeping, and it keeps core's system time in step so housekeeping timers
// fire as they would on hardware.
type Clock struct {
	rec   *Recorder
	mu    sync.Mutex
	nowUs uint64
}

func NewClock(rec *Recorder) *Clock {
	return &Clock{rec: rec}
}

func (c *Clock) DelayMs(ms uint32) {
	c.rec.record(Call{Op: OpDelayMs, Value: ms})
	c.Advance(uint64(ms) * 1000)
}

func (c *Clock) DelayUs(us uint32) {
	c.rec.record(Call{Op: OpDelayUs, Value: us})
	c.Advance(uint64(us))
}

// Advance moves virtual time forward without recording a call.
func (c *Clock) Advance(us uint64) {
	c.mu.Lock()
	c.nowUs += us
	now := c.nowUs
	c.mu.Unlock()
	core.SetTime(core.TimerFromUS(uint32(now)))
}

// NowUs returns the virtual time in microseconds.
func (c *Clock) NowUs() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nowUs
}
