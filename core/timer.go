package core

// TimerFreq is the tick rate of the system time base. Both the RP2040
// hardware timer and the host bench count microseconds.
const (
	TimerFreq = 1000000
)

var (
	systemTicks uint32
)

// GetTime returns the current system time in timer ticks
func GetTime() uint32 {
	return getSystemTicks()
}

// SetTime sets the current system time (for testing/hardware integration)
func SetTime(ticks uint32) {
	setSystemTicks(ticks)
}

// TimerFromUS converts microseconds to timer ticks
func TimerFromUS(us uint32) uint32 {
	return uint32(uint64(us) * TimerFreq / 1000000)
}

// TimerFromMS converts milliseconds to timer ticks
func TimerFromMS(ms uint32) uint32 {
	return uint32(uint64(ms) * TimerFreq / 1000)
}

// TimerToUS converts timer ticks to microseconds
func TimerToUS(ticks uint32) uint32 {
	return uint32(uint64(ticks) * 1000000 / TimerFreq)
}

// ProcessTimers runs every housekeeping timer that is due at the current
// system time. Targets call it from the main loop after refreshing the time.
func ProcessTimers() {
	currentTime = GetTime()
	TimerDispatch()
}
