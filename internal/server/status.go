package server

// Status is a checkout's lifecycle state. The zero value StatusNone means
// "no checkout exists yet" and only appears as the current state when
// deciding whether a fresh checkout may be created.
type Status string

const (
	StatusNone     Status = ""
	StatusActive   Status = "active"
	StatusOverdue  Status = "overdue"
	StatusReturned Status = "returned"
)

// ParseStatus maps a wire string to a Status. StatusNone is not a valid
// wire value.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusActive, StatusOverdue, StatusReturned:
		return Status(s), true
	}
	return StatusNone, false
}

// CanTransition reports whether a checkout may move from current to
// requested. It is the single source of truth for status legality and is
// consulted both on creation (current == StatusNone) and on every update.
//
//	none     -> active
//	active   -> returned | overdue
//	overdue  -> returned
//	returned -> (terminal)
func CanTransition(current, requested Status) bool {
	switch current {
	case StatusNone:
		return requested == StatusActive
	case StatusActive:
		return requested == StatusReturned || requested == StatusOverdue
	case StatusOverdue:
		return requested == StatusReturned
	case StatusReturned:
		return false
	}
	return false
}
