package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// Event captures one driver lifecycle event for post-mortem analysis
type Event struct {
	Kind   EventKind
	Index  uint8  // Motor or encoder index (1-based)
	Value1 uint32 // Context-dependent value
	Value2 uint32 // Context-dependent value
}

// EventKind identifies what happened
type EventKind uint8

// Event kinds
const (
	EvtNone EventKind = iota
	EvtWake
	EvtStart
	EvtStop
	EvtOff
	EvtOn
	EvtDuty
	EvtEncoderInit
	EvtWrap
	EvtADCTimeout
	EvtInitAbort
)

func (k EventKind) String() string {
	switch k {
	case EvtWake:
		return "WAKE"
	case EvtStart:
		return "START"
	case EvtStop:
		return "STOP"
	case EvtOff:
		return "OFF"
	case EvtOn:
		return "ON"
	case EvtDuty:
		return "DUTY"
	case EvtEncoderInit:
		return "ENC_INIT"
	case EvtWrap:
		return "WRAP"
	case EvtADCTimeout:
		return "ADC_TIMEOUT!"
	case EvtInitAbort:
		return "INIT_ABORT!"
	default:
		return "UNKNOWN"
	}
}

const (
	EventRingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false

	eventRing     [EventRingSize]Event
	eventRingHead uint8
	eventRingLen  uint8

	// Async debug output channel
	debugChan chan string
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// InitAsyncDebug starts the async debug output goroutine
// Call this from main() after SetDebugWriter
func InitAsyncDebug() {
	debugChan = make(chan string, 16)
	go debugOutputWorker()
}

func debugOutputWorker() {
	for msg := range debugChan {
		if debugPrintln != nil {
			debugPrintln(msg)
		}
	}
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// DebugAsync queues a debug message for async output (non-blocking)
// Drops the message when the channel is full or async output is not running.
func DebugAsync(msg string) {
	if debugChan != nil {
		select {
		case debugChan <- msg:
		default:
		}
	}
}

// RecordEvent appends an event to the ring buffer.
// Safe to call from the overflow handler: it only masks interrupts briefly.
func RecordEvent(kind EventKind, index uint8, value1, value2 uint32) {
	state := DisableInterrupts()
	idx := eventRingHead
	eventRing[idx] = Event{
		Kind:   kind,
		Index:  index,
		Value1: value1,
		Value2: value2,
	}
	eventRingHead = (idx + 1) % EventRingSize
	if eventRingLen < EventRingSize {
		eventRingLen++
	}
	RestoreInterrupts(state)
}

// Events returns the recorded events, oldest first.
func Events() []Event {
	state := DisableInterrupts()
	defer RestoreInterrupts(state)

	out := make([]Event, 0, eventRingLen)
	start := (eventRingHead + EventRingSize - eventRingLen) % EventRingSize
	for i := uint8(0); i < eventRingLen; i++ {
		out = append(out, eventRing[(start+i)%EventRingSize])
	}
	return out
}

// DumpEventRing writes the ring buffer through the debug writer
// (call on shutdown/error)
func DumpEventRing() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[EVENT] === Event Ring Dump ===")
	for _, evt := range Events() {
		debugPrintln(FormatEvent(evt))
	}
	debugPrintln("[EVENT] === End Dump ===")
}

// FormatEvent renders evt without fmt.
func FormatEvent(evt Event) string {
	return "[EVENT] " + evt.Kind.String() +
		" idx=" + itoa(int(evt.Index)) +
		" v1=" + utoa(evt.Value1) +
		" v2=" + utoa(evt.Value2)
}

// ClearEventRing clears the event buffer
func ClearEventRing() {
	state := DisableInterrupts()
	for i := range eventRing {
		eventRing[i] = Event{}
	}
	eventRingHead = 0
	eventRingLen = 0
	RestoreInterrupts(state)
}
