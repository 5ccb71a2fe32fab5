package highlight

// State is the overlay lifecycle state. Exactly one holds at any time.
type State int

const (
	// Idle means no overlay is shown and nothing is scheduled.
	Idle State = iota
	// PendingShow means a show task is scheduled.
	PendingShow
	// Visible means the overlay is on screen and a hide task is scheduled.
	Visible
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case PendingShow:
		return "pending_show"
	case Visible:
		return "visible"
	default:
		return "unknown"
	}
}

// MarshalText lets State print by name in YAML and JSON output.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
