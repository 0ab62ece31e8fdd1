package service

import (
	"context"

	"github.com/vogiaan1904/ticketbottle-counter/internal/broadcast"
	"github.com/vogiaan1904/ticketbottle-counter/internal/models"
	"github.com/vogiaan1904/ticketbottle-counter/pkg/response"
)

// CounterService is the single writer of the counter state. Every method is
// serialized against every other one; a failed command leaves the state as it
// was and broadcasts nothing.
type CounterService interface {
	IssueTicket(ctx context.Context, in IssueTicketInput) (*IssueTicketOutput, error)
	CallNumber(ctx context.Context, in CallNumberInput) (*CallNumberOutput, error)
	CancelCall(ctx context.Context) (*CancelCallOutput, error)
	CancelHistoryCall(ctx context.Context, in CancelHistoryCallInput) (*CancelCallOutput, error)
	SkipTicket(ctx context.Context, in SkipTicketInput) (*SkipTicketOutput, error)
	UndoLastTicket(ctx context.Context) (*UndoLastTicketOutput, error)
	CompleteSession(ctx context.Context, in CompleteSessionInput) (*CompleteSessionOutput, error)
	Reset(ctx context.Context) error

	AddSeat(ctx context.Context, in AddSeatInput) (*models.Seat, error)
	RenameSeat(ctx context.Context, in RenameSeatInput) error
	RemoveSeat(ctx context.Context, in RemoveSeatInput) (*models.Seat, error)
	SetWaitMinutes(ctx context.Context, in SetWaitMinutesInput) error
	ClearTickets(ctx context.Context) (*ClearOutput, error)
	ClearHistory(ctx context.Context) (*ClearOutput, error)
	UpdateSettings(ctx context.Context, in UpdateSettingsInput) (*models.Settings, error)

	// Dispatch decodes a command envelope, runs it and builds the ack for its
	// originator.
	Dispatch(ctx context.Context, cmd Command) response.Ack

	// CheckRollover closes the operational day if the date changed.
	CheckRollover(ctx context.Context) bool
	Snapshot(ctx context.Context) models.Snapshot

	// Observe registers an observer. The current snapshot is already queued on
	// the returned client when Observe returns.
	Observe(ctx context.Context, kind string) *broadcast.Client
	Forget(client *broadcast.Client)

	// Restore loads the persisted preferences and the statistics archive.
	Restore(ctx context.Context) error
}
