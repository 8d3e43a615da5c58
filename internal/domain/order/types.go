package order

import "errors"

var (
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// Status is the mutable part of an order. Everything else is a frozen
// snapshot of the package the customer bought.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusDelivered  Status = "delivered"
	StatusCompleted  Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusInProgress, StatusDelivered, StatusCompleted:
		return true
	default:
		return false
	}
}

// CanTransitionTo restricts the lifecycle to the linear
// in_progress -> delivered -> completed chain. Backward and skipping
// transitions are rejected.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusInProgress:
		return next == StatusDelivered
	case StatusDelivered:
		return next == StatusCompleted
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
