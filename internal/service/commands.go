package service

import (
	"context"
	"time"

	"github.com/vogiaan1904/ticketbottle-counter/internal/counter"
	"github.com/vogiaan1904/ticketbottle-counter/internal/delivery/kafka"
	"github.com/vogiaan1904/ticketbottle-counter/internal/models"
)

func (s *counterService) IssueTicket(ctx context.Context, in IssueTicketInput) (*IssueTicketOutput, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}
	priority, err := models.ParsePriority(in.Priority)
	if err != nil {
		return nil, invalidPayload("%v", err)
	}
	source := in.Source
	if source == "" {
		source = kafka.SourceReception
	}

	var out IssueTicketOutput
	err = s.apply(ctx, CmdIssueTicket, func(e *counter.Engine, now time.Time) ([]effect, error) {
		t := e.Issue(now, priority)
		out = IssueTicketOutput{
			Number:               t.Number,
			Priority:             t.Priority,
			EstimatedWaitMinutes: t.EstimatedWaitMinutes,
			IssuedAt:             t.IssuedAt,
		}
		date := e.OperationalDate()
		return []effect{s.publish("ticket_issued", func(ctx context.Context) error {
			return s.prod.PublishTicketIssued(ctx, kafka.TicketIssuedEvent{
				Date:                 date,
				Number:               t.Number,
				Priority:             string(t.Priority),
				EstimatedWaitMinutes: t.EstimatedWaitMinutes,
				Source:               source,
				AppointmentID:        in.AppointmentID,
				IssuedAt:             t.IssuedAt,
			})
		})}, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *counterService) CallNumber(ctx context.Context, in CallNumberInput) (*CallNumberOutput, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	var out CallNumberOutput
	err := s.apply(ctx, CmdCallNumber, func(e *counter.Engine, now time.Time) ([]effect, error) {
		res, err := e.Call(now, in.Number, in.SeatID)
		if err != nil {
			return nil, err
		}
		out = CallNumberOutput{
			Number:            res.Call.Number,
			Seat:              res.Call.Seat,
			CalledAt:          res.Call.CalledAt,
			ActualWaitMinutes: res.ActualWaitMinutes,
		}
		date := e.OperationalDate()
		return []effect{s.publish("ticket_called", func(ctx context.Context) error {
			return s.prod.PublishTicketCalled(ctx, kafka.TicketCalledEvent{
				Date:              date,
				Number:            out.Number,
				SeatID:            out.Seat.ID,
				SeatLabel:         out.Seat.Label,
				ActualWaitMinutes: out.ActualWaitMinutes,
				CalledAt:          out.CalledAt,
			})
		})}, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *counterService) CancelCall(ctx context.Context) (*CancelCallOutput, error) {
	var out CancelCallOutput
	err := s.apply(ctx, CmdCancelCall, func(e *counter.Engine, now time.Time) ([]effect, error) {
		res, err := e.CancelCall(now)
		if err != nil {
			return nil, err
		}
		out = cancelOutput(res)
		return []effect{s.callCancelled(e.OperationalDate(), res, kafka.ReasonCallCancelled, now)}, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *counterService) CancelHistoryCall(ctx context.Context, in CancelHistoryCallInput) (*CancelCallOutput, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	var out CancelCallOutput
	err := s.apply(ctx, CmdCancelHistoryCall, func(e *counter.Engine, now time.Time) ([]effect, error) {
		res, err := e.CancelHistoryCall(now, in.Number, in.SeatID, in.HistoryIndex)
		if err != nil {
			return nil, err
		}
		out = cancelOutput(res)
		return []effect{s.callCancelled(e.OperationalDate(), res, kafka.ReasonHistoryCancelled, now)}, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func cancelOutput(res counter.CancelResult) CancelCallOutput {
	return CancelCallOutput{
		Number:   res.Ticket.Number,
		SeatID:   res.SeatID,
		Priority: res.Ticket.Priority,
		IssuedAt: res.Ticket.IssuedAt,
	}
}

func (s *counterService) callCancelled(date string, res counter.CancelResult, reason string, at time.Time) effect {
	return s.publish("call_cancelled", func(ctx context.Context) error {
		return s.prod.PublishCallCancelled(ctx, kafka.CallCancelledEvent{
			Date:        date,
			Number:      res.Ticket.Number,
			SeatID:      res.SeatID,
			Reason:      reason,
			CancelledAt: at,
		})
	})
}

func (s *counterService) SkipTicket(ctx context.Context, in SkipTicketInput) (*SkipTicketOutput, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	var out SkipTicketOutput
	err := s.apply(ctx, CmdSkipTicket, func(e *counter.Engine, now time.Time) ([]effect, error) {
		entry, err := e.Skip(now, in.Number)
		if err != nil {
			return nil, err
		}
		out = SkipTicketOutput{Number: entry.Number, SkippedAt: entry.SkippedAt}
		date := e.OperationalDate()
		return []effect{s.publish("ticket_skipped", func(ctx context.Context) error {
			return s.prod.PublishTicketSkipped(ctx, kafka.TicketSkippedEvent{
				Date:      date,
				Number:    entry.Number,
				Priority:  string(entry.Priority),
				SkippedAt: entry.SkippedAt,
			})
		})}, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *counterService) UndoLastTicket(ctx context.Context) (*UndoLastTicketOutput, error) {
	var out UndoLastTicketOutput
	err := s.apply(ctx, CmdUndoLastTicket, func(e *counter.Engine, now time.Time) ([]effect, error) {
		n, err := e.UndoLastTicket()
		if err != nil {
			return nil, err
		}
		out.Number = n
		date := e.OperationalDate()
		return []effect{s.publish("ticket_withdrawn", func(ctx context.Context) error {
			return s.prod.PublishTicketWithdrawn(ctx, kafka.TicketWithdrawnEvent{
				Date:        date,
				Number:      n,
				WithdrawnAt: now,
			})
		})}, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *counterService) CompleteSession(ctx context.Context, in CompleteSessionInput) (*CompleteSessionOutput, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	var out CompleteSessionOutput
	err := s.apply(ctx, CmdCompleteSession, func(e *counter.Engine, now time.Time) ([]effect, error) {
		res, err := e.CompleteSession(now, in.SeatID)
		if err != nil {
			return nil, err
		}
		out = CompleteSessionOutput{
			SeatID:          res.SeatID,
			Number:          res.Number,
			Released:        res.Released,
			DurationMinutes: res.Served.Minutes(),
		}
		if !res.Released {
			return nil, nil
		}
		date := e.OperationalDate()
		return []effect{s.publish("session_completed", func(ctx context.Context) error {
			return s.prod.PublishSessionCompleted(ctx, kafka.SessionCompletedEvent{
				Date:            date,
				Number:          res.Number,
				SeatID:          res.SeatID,
				DurationMinutes: res.Served.Minutes(),
				CompletedAt:     now,
			})
		})}, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *counterService) Reset(ctx context.Context) error {
	return s.apply(ctx, CmdReset, func(e *counter.Engine, _ time.Time) ([]effect, error) {
		e.Reset()
		return nil, nil
	})
}
