package ledger

import (
	"time"

	"github.com/vogiaan1904/ticketbottle-counter/internal/models"
)

type callKey struct {
	number int
	seatID string
}

// CallLog is the bounded, most-recent-first log of calls. Active entries are
// indexed by ticket number and seat id.
type CallLog struct {
	limit   int
	entries []*models.CallHistoryEntry
	active  map[callKey]*models.CallHistoryEntry
}

func NewCallLog(limit int) *CallLog {
	return &CallLog{limit: limit, active: make(map[callKey]*models.CallHistoryEntry)}
}

// Record prepends e. A later call of the same number at the same seat takes
// over the index slot.
func (l *CallLog) Record(e models.CallHistoryEntry) {
	p := &e
	l.entries = append([]*models.CallHistoryEntry{p}, l.entries...)
	if !e.Cancelled {
		l.active[callKey{e.Number, e.Seat.ID}] = p
	}
	if l.limit > 0 && len(l.entries) > l.limit {
		for _, dropped := range l.entries[l.limit:] {
			k := callKey{dropped.Number, dropped.Seat.ID}
			if l.active[k] == dropped {
				delete(l.active, k)
			}
		}
		l.entries = l.entries[:l.limit]
	}
}

// Find returns the active entry for number at seatID.
func (l *CallLog) Find(number int, seatID string) (models.CallHistoryEntry, bool) {
	p, ok := l.active[callKey{number, seatID}]
	if !ok {
		return models.CallHistoryEntry{}, false
	}
	return *p, true
}

// At returns the entry at a position of the most-recent-first log.
func (l *CallLog) At(index int) (models.CallHistoryEntry, bool) {
	if index < 0 || index >= len(l.entries) {
		return models.CallHistoryEntry{}, false
	}
	return *l.entries[index], true
}

// Remove deletes the active entry for number at seatID from the log.
func (l *CallLog) Remove(number int, seatID string) (models.CallHistoryEntry, bool) {
	k := callKey{number, seatID}
	p, ok := l.active[k]
	if !ok {
		return models.CallHistoryEntry{}, false
	}
	delete(l.active, k)
	for i, e := range l.entries {
		if e == p {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			break
		}
	}
	return *p, true
}

// MarkCancelled flags the active entry as cancelled and keeps it in the log.
func (l *CallLog) MarkCancelled(number int, seatID string, at time.Time) bool {
	k := callKey{number, seatID}
	p, ok := l.active[k]
	if !ok {
		return false
	}
	delete(l.active, k)
	cancelledAt := at
	p.Cancelled = true
	p.CancelledAt = &cancelledAt
	return true
}

func (l *CallLog) Len() int {
	return len(l.entries)
}

func (l *CallLog) List() []models.CallHistoryEntry {
	out := make([]models.CallHistoryEntry, len(l.entries))
	for i, e := range l.entries {
		out[i] = *e
	}
	return out
}

func (l *CallLog) Clear() {
	l.entries = nil
	l.active = make(map[callKey]*models.CallHistoryEntry)
}

func (l *CallLog) Clone() *CallLog {
	c := NewCallLog(l.limit)
	c.entries = make([]*models.CallHistoryEntry, len(l.entries))
	for i, e := range l.entries {
		cp := *e
		c.entries[i] = &cp
		if l.active[callKey{e.Number, e.Seat.ID}] == e {
			c.active[callKey{e.Number, e.Seat.ID}] = &cp
		}
	}
	return c
}
