package errors

import "net/http"

var httpStatuses = map[string]int{
	CodeTicketNotFound:       http.StatusNotFound,
	CodeTicketNotInQueue:     http.StatusConflict,
	CodeSeatUnavailable:      http.StatusConflict,
	CodeSeatNotFound:         http.StatusNotFound,
	CodeNoActiveCall:         http.StatusConflict,
	CodeInvalidHistoryTarget: http.StatusUnprocessableEntity,
	CodeNotMostRecent:        http.StatusConflict,
	CodeAlreadyCalled:        http.StatusConflict,
	CodeConfigurationError:   http.StatusBadRequest,
	CodeInternalError:        http.StatusInternalServerError,
}

// HTTPStatus maps a business code to an HTTP status.
func HTTPStatus(code string) int {
	if s, ok := httpStatuses[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}
