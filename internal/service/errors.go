package service

import (
	"errors"
	"fmt"

	cerrors "github.com/vogiaan1904/ticketbottle-counter/internal/errors"
	pkgErrors "github.com/vogiaan1904/ticketbottle-counter/pkg/errors"
)

var ErrInternal = errors.New("internal error while processing command")

var businessCodes = map[error]string{
	cerrors.ErrTicketNotFound:       pkgErrors.CodeTicketNotFound,
	cerrors.ErrTicketNotInQueue:     pkgErrors.CodeTicketNotInQueue,
	cerrors.ErrSeatUnavailable:      pkgErrors.CodeSeatUnavailable,
	cerrors.ErrSeatNotFound:         pkgErrors.CodeSeatNotFound,
	cerrors.ErrNoActiveCall:         pkgErrors.CodeNoActiveCall,
	cerrors.ErrInvalidHistoryTarget: pkgErrors.CodeInvalidHistoryTarget,
	cerrors.ErrNotMostRecent:        pkgErrors.CodeNotMostRecent,
	cerrors.ErrAlreadyCalled:        pkgErrors.CodeAlreadyCalled,
	cerrors.ErrInvalidPayload:       pkgErrors.CodeConfigurationError,
	cerrors.ErrUnknownCommand:       pkgErrors.CodeConfigurationError,
	ErrInternal:                     pkgErrors.CodeInternalError,
}

// toBusinessError converts a command failure into its wire form.
func toBusinessError(err error) *pkgErrors.BusinessError {
	var be *pkgErrors.BusinessError
	if errors.As(err, &be) {
		return be
	}
	for sentinel, code := range businessCodes {
		if errors.Is(err, sentinel) {
			return pkgErrors.NewBusinessError(code, err.Error())
		}
	}
	return pkgErrors.NewBusinessError(pkgErrors.CodeInternalError, err.Error())
}

func invalidPayload(format string, args ...any) error {
	return fmt.Errorf("%w: %s", cerrors.ErrInvalidPayload, fmt.Sprintf(format, args...))
}
