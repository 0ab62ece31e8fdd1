package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	cerrors "github.com/vogiaan1904/ticketbottle-counter/internal/errors"
	"github.com/vogiaan1904/ticketbottle-counter/pkg/response"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/vogiaan1904/ticketbottle-counter/internal/service")

// Command types accepted by Dispatch.
const (
	CmdIssueTicket       = "issueTicket"
	CmdCallNumber        = "callNumber"
	CmdCancelCall        = "cancelCall"
	CmdCancelHistoryCall = "cancelHistoryCall"
	CmdSkipTicket        = "skipTicket"
	CmdUndoLastTicket    = "undoLastTicket"
	CmdCompleteSession   = "completeSession"
	CmdReset             = "reset"

	CmdAddSeat        = "admin:addSeat"
	CmdRenameSeat     = "admin:renameSeat"
	CmdRemoveSeat     = "admin:removeSeat"
	CmdSetWaitMinutes = "admin:setWaitMinutes"
	CmdClearTickets   = "admin:clearTickets"
	CmdClearHistory   = "admin:clearHistory"
	CmdUpdateSettings = "admin:updateSettings"
)

// Command is the envelope every transport hands to Dispatch.
type Command struct {
	Type      string          `json:"type"`
	RequestID string          `json:"requestId,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

func (s *counterService) Dispatch(ctx context.Context, cmd Command) response.Ack {
	ctx, span := tracer.Start(ctx, "counter.Dispatch", trace.WithAttributes(
		attribute.String("counter.command", cmd.Type),
		attribute.String("counter.request_id", cmd.RequestID),
	))
	defer span.End()

	data, err := s.dispatch(ctx, cmd)
	if err != nil {
		ack := response.Failure(cmd.Type, cmd.RequestID, toBusinessError(err))
		span.SetStatus(codes.Error, ack.Error.Code)
		return ack
	}
	return response.Success(cmd.Type, cmd.RequestID, data)
}

func (s *counterService) dispatch(ctx context.Context, cmd Command) (any, error) {
	switch cmd.Type {
	case CmdIssueTicket:
		var in IssueTicketInput
		if err := decodePayload(cmd.Payload, &in); err != nil {
			return nil, err
		}
		return s.IssueTicket(ctx, in)
	case CmdCallNumber:
		var in CallNumberInput
		if err := decodePayload(cmd.Payload, &in); err != nil {
			return nil, err
		}
		return s.CallNumber(ctx, in)
	case CmdCancelCall:
		return s.CancelCall(ctx)
	case CmdCancelHistoryCall:
		var in CancelHistoryCallInput
		if err := decodePayload(cmd.Payload, &in); err != nil {
			return nil, err
		}
		return s.CancelHistoryCall(ctx, in)
	case CmdSkipTicket:
		var in SkipTicketInput
		if err := decodePayload(cmd.Payload, &in); err != nil {
			return nil, err
		}
		return s.SkipTicket(ctx, in)
	case CmdUndoLastTicket:
		return s.UndoLastTicket(ctx)
	case CmdCompleteSession:
		var in CompleteSessionInput
		if err := decodePayload(cmd.Payload, &in); err != nil {
			return nil, err
		}
		return s.CompleteSession(ctx, in)
	case CmdReset:
		return nil, s.Reset(ctx)
	case CmdAddSeat:
		var in AddSeatInput
		if err := decodePayload(cmd.Payload, &in); err != nil {
			return nil, err
		}
		return s.AddSeat(ctx, in)
	case CmdRenameSeat:
		var in RenameSeatInput
		if err := decodePayload(cmd.Payload, &in); err != nil {
			return nil, err
		}
		return nil, s.RenameSeat(ctx, in)
	case CmdRemoveSeat:
		var in RemoveSeatInput
		if err := decodePayload(cmd.Payload, &in); err != nil {
			return nil, err
		}
		return s.RemoveSeat(ctx, in)
	case CmdSetWaitMinutes:
		var in SetWaitMinutesInput
		if err := decodePayload(cmd.Payload, &in); err != nil {
			return nil, err
		}
		return nil, s.SetWaitMinutes(ctx, in)
	case CmdClearTickets:
		return s.ClearTickets(ctx)
	case CmdClearHistory:
		return s.ClearHistory(ctx)
	case CmdUpdateSettings:
		var in UpdateSettingsInput
		if err := decodePayload(cmd.Payload, &in); err != nil {
			return nil, err
		}
		return s.UpdateSettings(ctx, in)
	default:
		s.l.Warn(ctx, "Unknown command", "type", cmd.Type)
		return nil, fmt.Errorf("%w: %q", cerrors.ErrUnknownCommand, cmd.Type)
	}
}

// decodePayload decodes a command payload. A missing payload decodes as {}.
func decodePayload(raw json.RawMessage, v any) error {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return invalidPayload("decode payload: %v", err)
	}
	return nil
}
