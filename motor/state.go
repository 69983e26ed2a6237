package motor

// State is the lifecycle state of one motor slot.
type State uint8

const (
	Uninitialized State = iota
	Sleeping
	Waking
	Standby
	Running
	Stopped
	Off
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Sleeping:
		return "sleeping"
	case Waking:
		return "waking"
	case Standby:
		return "standby"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	case Off:
		return "off"
	default:
		return "unknown"
	}
}
