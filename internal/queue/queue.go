package queue

import "github.com/vogiaan1904/ticketbottle-counter/internal/models"

// TicketQueue is the ordered list of waiting tickets. Urgent tickets precede
// appointment tickets, which precede normal tickets; inside a class tickets
// keep insertion order. It is not safe for concurrent use.
type TicketQueue struct {
	entries []models.Ticket
}

func New() *TicketQueue {
	return &TicketQueue{}
}

// Insert places a ticket after the last ticket of the same or a more urgent
// class. A ticket returned by a cancelled call goes through Insert as well.
func (q *TicketQueue) Insert(t models.Ticket) {
	q.insertAt(q.classEnd(t.Priority.Rank()), t)
}

func (q *TicketQueue) classEnd(rank int) int {
	for i, t := range q.entries {
		if t.Priority.Rank() > rank {
			return i
		}
	}
	return len(q.entries)
}

func (q *TicketQueue) insertAt(idx int, t models.Ticket) {
	q.entries = append(q.entries, models.Ticket{})
	copy(q.entries[idx+1:], q.entries[idx:])
	q.entries[idx] = t
}

// Remove takes the ticket with the given number out of the queue.
func (q *TicketQueue) Remove(number int) (models.Ticket, bool) {
	idx := q.indexOf(number)
	if idx < 0 {
		return models.Ticket{}, false
	}
	t := q.entries[idx]
	q.entries = append(q.entries[:idx], q.entries[idx+1:]...)
	return t, true
}

func (q *TicketQueue) Get(number int) (models.Ticket, bool) {
	idx := q.indexOf(number)
	if idx < 0 {
		return models.Ticket{}, false
	}
	return q.entries[idx], true
}

func (q *TicketQueue) Contains(number int) bool {
	return q.indexOf(number) >= 0
}

func (q *TicketQueue) indexOf(number int) int {
	for i, t := range q.entries {
		if t.Number == number {
			return i
		}
	}
	return -1
}

func (q *TicketQueue) Len() int {
	return len(q.entries)
}

// Annotate sets each ticket's estimate from its 1-based position.
func (q *TicketQueue) Annotate(estimate func(position int) int) {
	for i := range q.entries {
		q.entries[i].EstimatedWaitMinutes = estimate(i + 1)
	}
}

// List returns a copy of the waiting tickets in service order.
func (q *TicketQueue) List() []models.Ticket {
	out := make([]models.Ticket, len(q.entries))
	copy(out, q.entries)
	return out
}

func (q *TicketQueue) Clear() {
	q.entries = nil
}

func (q *TicketQueue) Clone() *TicketQueue {
	c := &TicketQueue{entries: make([]models.Ticket, len(q.entries))}
	copy(c.entries, q.entries)
	return c
}
