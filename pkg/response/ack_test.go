package response

import (
	"errors"
	"fmt"
	"testing"

	pkgErrors "github.com/vogiaan1904/ticketbottle-counter/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestFailure(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"business", pkgErrors.NewBusinessError(pkgErrors.CodeNoActiveCall, "no active call"), pkgErrors.CodeNoActiveCall},
		{"wrapped business", fmt.Errorf("cancel: %w", pkgErrors.NewBusinessError(pkgErrors.CodeSeatUnavailable, "busy")), pkgErrors.CodeSeatUnavailable},
		{"plain", errors.New("boom"), pkgErrors.CodeInternalError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ack := Failure("cancelCall", "r1", tc.err)
			if ack.Success {
				t.Fatal("failure ack must not be successful")
			}
			if ack.Error == nil || ack.Error.Code != tc.wantCode {
				t.Fatalf("expected code %s, got %+v", tc.wantCode, ack.Error)
			}
			if ack.RequestID != "r1" || ack.Type != TypeAck {
				t.Fatalf("unexpected envelope %+v", ack)
			}
		})
	}
}

func TestParseGRPCError(t *testing.T) {
	err := ParseGRPCError(pkgErrors.NewBusinessError(pkgErrors.CodeTicketNotFound, "ticket 4 is not queued"))
	if got := status.Code(err); got != codes.NotFound {
		t.Fatalf("expected NotFound, got %v", got)
	}
	if got := status.Code(ParseGRPCError(errors.New("x"))); got != codes.Internal {
		t.Fatalf("expected Internal, got %v", got)
	}
}
