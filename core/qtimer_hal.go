package core

// CountDirection tells the update handler which way the counter wrapped.
type CountDirection int8

const (
	// CountUp is an overflow: the counter wrapped from modulus-1 to 0.
	CountUp CountDirection = 1
	// CountDown is an underflow: the counter wrapped from 0 to modulus-1.
	CountDown CountDirection = -1
)

func (d CountDirection) String() string {
	switch d {
	case CountUp:
		return "up"
	case CountDown:
		return "down"
	default:
		return "none"
	}
}

// UpdateHandler is invoked from interrupt context once per counter wrap.
type UpdateHandler func(dir CountDirection)

// QuadratureTimer is a free-running up/down counter clocked by the A/B
// inputs of one encoder. It raises an update event on every wrap.
type QuadratureTimer interface {
	// ClearUpdateFlag discards a pending update event.
	ClearUpdateFlag()

	// EnableUpdateInterrupt routes update events to h.
	EnableUpdateInterrupt(h UpdateHandler) error

	// ResetCounter sets the raw count to zero.
	ResetCounter()

	// StartEncoder starts decoding on both input channels.
	StartEncoder() error

	// Counter returns the raw count, always below the timer modulus.
	Counter() uint32
}
