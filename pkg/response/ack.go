package response

import (
	"errors"

	pkgErrors "github.com/vogiaan1904/ticketbottle-counter/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const TypeAck = "ack"

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Ack is the reply sent to the originator of a command only.
type Ack struct {
	Type      string     `json:"type"`
	Command   string     `json:"command"`
	RequestID string     `json:"requestId,omitempty"`
	Success   bool       `json:"success"`
	Error     *ErrorBody `json:"error,omitempty"`
	Data      any        `json:"data,omitempty"`
}

func Success(command, requestID string, data any) Ack {
	return Ack{
		Type:      TypeAck,
		Command:   command,
		RequestID: requestID,
		Success:   true,
		Data:      data,
	}
}

// Failure builds a failed ack. Errors that are not business errors are
// reported as internal errors without leaking their text.
func Failure(command, requestID string, err error) Ack {
	return Ack{
		Type:      TypeAck,
		Command:   command,
		RequestID: requestID,
		Success:   false,
		Error:     errorBody(err),
	}
}

func errorBody(err error) *ErrorBody {
	var bErr *pkgErrors.BusinessError
	if errors.As(err, &bErr) {
		return &ErrorBody{Code: bErr.Code, Message: bErr.Message}
	}
	return &ErrorBody{Code: pkgErrors.CodeInternalError, Message: "Internal server error"}
}

func ParseGRPCError(err error) error {
	var bErr *pkgErrors.BusinessError
	if errors.As(err, &bErr) {
		return status.Error(pkgErrors.GRPCCode(bErr.Code), bErr.Error())
	}
	return status.Error(codes.Internal, "Internal server error")
}
