package counter

import (
	"time"

	"github.com/vogiaan1904/ticketbottle-counter/internal/errors"
	"github.com/vogiaan1904/ticketbottle-counter/internal/models"
	"github.com/vogiaan1904/ticketbottle-counter/pkg/util"
)

type CallResult struct {
	Call              models.CurrentCall
	ActualWaitMinutes int
}

// Call moves a waiting ticket to an available seat.
func (e *Engine) Call(now time.Time, number int, seatID string) (CallResult, error) {
	t, ok := e.queue.Get(number)
	if !ok {
		return CallResult{}, errors.ErrTicketNotFound
	}
	s, err := e.seats.Assign(seatID, number, now)
	if err != nil {
		return CallResult{}, err
	}
	e.queue.Remove(number)

	wait := util.MinutesBetween(t.IssuedAt, now)
	e.calls.Record(models.CallHistoryEntry{
		Number:            number,
		Seat:              s.Ref(),
		CalledAt:          now,
		ActualWaitMinutes: &wait,
	})
	e.stats.RecordCall(wait)
	e.current = &models.CurrentCall{Number: number, Seat: s.Ref(), CalledAt: now}
	e.reannotate()

	return CallResult{Call: *e.current, ActualWaitMinutes: wait}, nil
}

type CancelResult struct {
	Ticket models.Ticket
	SeatID string
}

// CancelCall returns the active call's ticket to the queue.
func (e *Engine) CancelCall(now time.Time) (CancelResult, error) {
	if e.current == nil {
		return CancelResult{}, errors.ErrNoActiveCall
	}
	cur := *e.current

	e.seats.Vacate(cur.Seat.ID, cur.Number)
	t := e.requeue(cur.Number, cur.Seat.ID, cur.CalledAt)
	e.current = nil
	e.reannotate()
	return CancelResult{Ticket: t, SeatID: cur.Seat.ID}, nil
}

// CancelHistoryCall returns the ticket of a past call to the queue. The entry
// is addressed by number and seat id; historyIndex, a position in the call
// log, is only consulted when seatID is empty.
func (e *Engine) CancelHistoryCall(now time.Time, number int, seatID string, historyIndex *int) (CancelResult, error) {
	if seatID == "" {
		if historyIndex == nil {
			return CancelResult{}, errors.ErrInvalidHistoryTarget
		}
		entry, ok := e.calls.At(*historyIndex)
		if !ok || entry.Number != number || entry.Cancelled {
			return CancelResult{}, errors.ErrInvalidHistoryTarget
		}
		seatID = entry.Seat.ID
	}
	if _, ok := e.seats.Get(seatID); !ok {
		return CancelResult{}, errors.ErrInvalidHistoryTarget
	}
	entry, ok := e.calls.Find(number, seatID)
	if !ok {
		return CancelResult{}, errors.ErrInvalidHistoryTarget
	}

	if e.current != nil && e.current.Number == number && e.current.Seat.ID == seatID {
		return e.CancelCall(now)
	}

	e.seats.Vacate(seatID, number)
	t := e.requeue(number, seatID, entry.CalledAt)
	e.reannotate()
	return CancelResult{Ticket: t, SeatID: seatID}, nil
}

// requeue removes the call entry, reverts its wait sample and inserts the
// ticket, rebuilt from its issuance, like a newly issued one of its class.
func (e *Engine) requeue(number int, seatID string, calledAt time.Time) models.Ticket {
	if entry, ok := e.calls.Remove(number, seatID); ok && entry.ActualWaitMinutes != nil {
		e.stats.RevertCall(*entry.ActualWaitMinutes)
	}

	t := models.Ticket{Number: number, Priority: models.PriorityNormal, IssuedAt: calledAt}
	if issued, ok := e.issued.Get(number); ok {
		t.Priority = issued.Priority
		t.IssuedAt = issued.IssuedAt
	}
	e.queue.Insert(t)
	return t
}

type CompleteResult struct {
	SeatID   string
	Number   int
	Served   time.Duration
	Released bool
}

// CompleteSession frees a seat at the end of a consultation. Completing an
// available seat is a no-op.
func (e *Engine) CompleteSession(now time.Time, seatID string) (CompleteResult, error) {
	s, ok := e.seats.Get(seatID)
	if !ok {
		return CompleteResult{}, errors.ErrSeatNotFound
	}
	res := CompleteResult{SeatID: seatID}
	if s.OccupantTicket != nil {
		res.Number = *s.OccupantTicket
	}

	served, released, err := e.seats.Release(seatID, now)
	if err != nil {
		return CompleteResult{}, err
	}
	if !released {
		return res, nil
	}
	res.Served, res.Released = served, true
	e.stats.RecordSession(served)
	if e.current != nil && e.current.Seat.ID == seatID {
		e.current = nil
	}
	e.reannotate()
	return res, nil
}
