package domain

// Status classifies how a dispatch attempt ended.
type Status int

const (
	// StatusFailed means the board did not accept the payload.
	StatusFailed Status = iota

	// StatusAccepted means the board accepted the payload.
	StatusAccepted

	// StatusUnchanged means the board reported the content identical to
	// what it already shows. Success-flavored, but callers may want to
	// know no flaps moved.
	StatusUnchanged
)

// String returns the status name for logs.
func (s Status) String() string {
	switch s {
	case StatusAccepted:
		return "accepted"
	case StatusUnchanged:
		return "unchanged"
	default:
		return "failed"
	}
}

// Outcome is the structured result of one dispatch attempt.
type Outcome struct {
	Status Status

	// Fallback is set when the accepted payload was the degraded
	// plain-text fallback rather than the grid.
	Fallback bool
}

// OK reports whether the dispatch ended in a success-flavored state.
func (o Outcome) OK() bool {
	return o.Status == StatusAccepted || o.Status == StatusUnchanged
}
