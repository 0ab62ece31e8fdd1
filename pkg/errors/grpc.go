package errors

import (
	"google.golang.org/grpc/codes"
)

var grpcCodes = map[string]codes.Code{
	CodeTicketNotFound:       codes.NotFound,
	CodeTicketNotInQueue:     codes.FailedPrecondition,
	CodeSeatUnavailable:      codes.FailedPrecondition,
	CodeSeatNotFound:         codes.NotFound,
	CodeNoActiveCall:         codes.FailedPrecondition,
	CodeInvalidHistoryTarget: codes.InvalidArgument,
	CodeNotMostRecent:        codes.FailedPrecondition,
	CodeAlreadyCalled:        codes.FailedPrecondition,
	CodeConfigurationError:   codes.InvalidArgument,
	CodeInternalError:        codes.Internal,
}

// GRPCCode maps a business code to a gRPC status code.
func GRPCCode(code string) codes.Code {
	if c, ok := grpcCodes[code]; ok {
		return c
	}
	return codes.Unknown
}
