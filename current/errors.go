package current

import "robodrive/core"

// TimeoutError reports the channels whose conversion did not complete.
// Bit n of Mask is channel n+1.
type TimeoutError struct {
	Mask uint32
}

func (e *TimeoutError) Error() string {
	msg := core.ErrConversionTimeout.Error() + ": channels"
	for _, ch := range e.Channels() {
		msg += " " + core.Itoa(int64(ch))
	}
	return msg
}

// Is matches core.ErrConversionTimeout.
func (e *TimeoutError) Is(target error) bool {
	return target == core.ErrConversionTimeout
}

// Channels lists the failed channels, ascending.
func (e *TimeoutError) Channels() []int {
	var out []int
	for ch := 1; ch <= 32; ch++ {
		if e.Mask&(1<<(ch-1)) != 0 {
			out = append(out, ch)
		}
	}
	return out
}
