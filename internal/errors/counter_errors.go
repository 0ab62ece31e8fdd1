package errors

import "errors"

var (
	ErrTicketNotFound       = errors.New("ticket not found in queue")
	ErrTicketNotInQueue     = errors.New("ticket is not waiting in the queue")
	ErrSeatUnavailable      = errors.New("seat is already occupied")
	ErrSeatNotFound         = errors.New("seat not found")
	ErrNoActiveCall         = errors.New("no active call")
	ErrInvalidHistoryTarget = errors.New("call history entry cannot be cancelled")
	ErrNotMostRecent        = errors.New("ticket is not the most recently issued")
	ErrAlreadyCalled        = errors.New("ticket is no longer in the queue")
	ErrInvalidPayload       = errors.New("invalid command payload")
	ErrUnknownCommand       = errors.New("unknown command")
)
