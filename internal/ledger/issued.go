package ledger

import (
	"time"

	"github.com/vogiaan1904/ticketbottle-counter/internal/models"
)

// IssuedLog holds one entry per ticket issued during the operational day,
// most recent first, indexed by number.
type IssuedLog struct {
	entries []*models.IssuedHistoryEntry
	byNum   map[int]*models.IssuedHistoryEntry
}

func NewIssuedLog() *IssuedLog {
	return &IssuedLog{byNum: make(map[int]*models.IssuedHistoryEntry)}
}

func (l *IssuedLog) Record(e models.IssuedHistoryEntry) {
	p := &e
	l.entries = append([]*models.IssuedHistoryEntry{p}, l.entries...)
	l.byNum[e.Number] = p
}

// Head returns the most recently issued entry.
func (l *IssuedLog) Head() (models.IssuedHistoryEntry, bool) {
	if len(l.entries) == 0 {
		return models.IssuedHistoryEntry{}, false
	}
	return *l.entries[0], true
}

func (l *IssuedLog) Get(number int) (models.IssuedHistoryEntry, bool) {
	p, ok := l.byNum[number]
	if !ok {
		return models.IssuedHistoryEntry{}, false
	}
	return *p, true
}

// DropHead removes the most recent entry.
func (l *IssuedLog) DropHead() {
	if len(l.entries) == 0 {
		return
	}
	delete(l.byNum, l.entries[0].Number)
	l.entries = l.entries[1:]
}

func (l *IssuedLog) MarkSkipped(number int, at time.Time) bool {
	p, ok := l.byNum[number]
	if !ok {
		return false
	}
	skippedAt := at
	p.Skipped = true
	p.SkippedAt = &skippedAt
	return true
}

func (l *IssuedLog) Len() int {
	return len(l.entries)
}

func (l *IssuedLog) List() []models.IssuedHistoryEntry {
	out := make([]models.IssuedHistoryEntry, len(l.entries))
	for i, e := range l.entries {
		out[i] = *e
	}
	return out
}

func (l *IssuedLog) Clear() {
	l.entries = nil
	l.byNum = make(map[int]*models.IssuedHistoryEntry)
}

func (l *IssuedLog) Clone() *IssuedLog {
	c := NewIssuedLog()
	c.entries = make([]*models.IssuedHistoryEntry, len(l.entries))
	for i, e := range l.entries {
		cp := *e
		c.entries[i] = &cp
		c.byNum[cp.Number] = &cp
	}
	return c
}
