package core

// Timer is a housekeeping callback scheduled on the system time base.
type Timer struct {
	WakeTime uint32
	Handler  func(*Timer) uint8
	Next     *Timer
}

const (
	SF_DONE       = 0
	SF_RESCHEDULE = 1
)

var (
	timerList   *Timer
	currentTime uint32
)

// before reports whether a is earlier than b, tolerating 32-bit wrap.
func before(a, b uint32) bool {
	return int32(a-b) < 0
}

// ScheduleTimer adds a timer to the schedule
func ScheduleTimer(t *Timer) {
	state := DisableInterrupts()
	defer RestoreInterrupts(state)

	insertTimer(t)
}

// insertTimer inserts a timer in sorted order by WakeTime
func insertTimer(t *Timer) {
	if timerList == nil || before(t.WakeTime, timerList.WakeTime) {
		t.Next = timerList
		timerList = t
		return
	}

	current := timerList
	for current.Next != nil && before(current.Next.WakeTime, t.WakeTime) {
		current = current.Next
	}

	t.Next = current.Next
	current.Next = t
}

// TimerDispatch runs all timers whose WakeTime is not after currentTime
func TimerDispatch() {
	state := DisableInterrupts()
	defer RestoreInterrupts(state)

	for timerList != nil && !before(currentTime, timerList.WakeTime) {
		timer := timerList
		timerList = timer.Next
		timer.Next = nil

		if timer.Handler(timer) == SF_RESCHEDULE {
			insertTimer(timer)
		}
	}
}

// ClearTimers drops every scheduled timer.
func ClearTimers() {
	state := DisableInterrupts()
	timerList = nil
	RestoreInterrupts(state)
}

// Every schedules fn to run each period ticks, first at start+period.
// The returned timer is owned by the scheduler.
func Every(start, period uint32, fn func()) *Timer {
	t := &Timer{WakeTime: start + period}
	t.Handler = func(t *Timer) uint8 {
		fn()
		t.WakeTime += period
		return SF_RESCHEDULE
	}
	ScheduleTimer(t)
	return t
}
