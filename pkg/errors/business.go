package errors

import "fmt"

// Wire codes reported to the originator of a failed command.
const (
	CodeTicketNotFound       = "TicketNotFound"
	CodeTicketNotInQueue     = "TicketNotInQueue"
	CodeSeatUnavailable      = "SeatUnavailable"
	CodeSeatNotFound         = "SeatNotFound"
	CodeNoActiveCall         = "NoActiveCall"
	CodeInvalidHistoryTarget = "InvalidHistoryTarget"
	CodeNotMostRecent        = "NotMostRecent"
	CodeAlreadyCalled        = "AlreadyCalled"
	CodeConfigurationError   = "ConfigurationError"
	CodeInternalError        = "InternalError"
)

type BusinessError struct {
	Code    string
	Message string
}

func NewBusinessError(code string, message string) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
	}
}

func (e *BusinessError) Error() string {
	return fmt.Sprintf("%s - %s", e.Code, e.Message)
}
