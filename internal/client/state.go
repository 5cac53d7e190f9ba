package client

// RequestStatus is the explicit lifecycle every asynchronous store operation
// moves through. A store is never left in StatusPending: each request either
// succeeds or fails.
type RequestStatus int

const (
	StatusIdle RequestStatus = iota
	StatusPending
	StatusSucceeded
	StatusFailed
)

func (s RequestStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}
