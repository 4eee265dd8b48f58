package progress

// Status is the lifecycle state of a single workshop item
type Status int

const (
	StatusWaiting Status = iota
	StatusDownloading
	StatusMoving
	StatusCompleted
	StatusError
)

// String returns the display label of the status
func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "Waiting"
	case StatusDownloading:
		return "Downloading"
	case StatusMoving:
		return "Moving"
	case StatusCompleted:
		return "Completed"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// IsTerminal reports whether no further transitions are allowed
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusError
}

// IsActive reports whether the item currently occupies a worker slot
func (s Status) IsActive() bool {
	return s == StatusDownloading || s == StatusMoving
}

// canTransition encodes WAITING → DOWNLOADING → MOVING → COMPLETED, with ERROR
// reachable from every non-terminal state. Staying in the same non-terminal
// state is allowed so progress can be bumped.
func canTransition(from, to Status) bool {
	if from.IsTerminal() {
		return false
	}
	if to == StatusError || to == from {
		return true
	}
	return to == from+1
}
