package counter

import (
	"time"

	"github.com/vogiaan1904/ticketbottle-counter/internal/errors"
	"github.com/vogiaan1904/ticketbottle-counter/internal/models"
)

// Issue allocates the next number of the day and queues it by priority.
func (e *Engine) Issue(now time.Time, priority models.Priority) models.Ticket {
	e.counter++
	n := e.counter
	t := models.Ticket{Number: n, IssuedAt: now, Priority: priority}

	e.issued.Record(models.IssuedHistoryEntry{
		Number:   n,
		IssuedAt: now,
		Date:     e.date,
		Priority: priority,
	})
	e.queue.Insert(t)
	e.stats.RecordIssue()
	e.lastIssued = &n
	e.reannotate()

	t, _ = e.queue.Get(n)
	return t
}

// UndoLastTicket withdraws the most recently issued ticket while it is still
// waiting, and gives its number back.
func (e *Engine) UndoLastTicket() (int, error) {
	head, ok := e.issued.Head()
	if e.lastIssued == nil || !ok || head.Number != *e.lastIssued {
		return 0, errors.ErrNotMostRecent
	}
	if !e.queue.Contains(head.Number) {
		return 0, errors.ErrAlreadyCalled
	}

	e.queue.Remove(head.Number)
	e.issued.DropHead()
	e.stats.RevertIssue()
	e.counter--
	e.lastIssued = nil
	e.reannotate()
	return head.Number, nil
}

// Skip drops a waiting ticket for good.
func (e *Engine) Skip(now time.Time, number int) (models.SkippedEntry, error) {
	t, ok := e.queue.Remove(number)
	if !ok {
		return models.SkippedEntry{}, errors.ErrTicketNotInQueue
	}
	e.issued.MarkSkipped(number, now)
	entry := models.SkippedEntry{Number: number, SkippedAt: now, Priority: t.Priority}
	e.skipped.Add(entry)
	e.reannotate()
	return entry, nil
}
