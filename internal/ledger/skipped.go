package ledger

import "github.com/vogiaan1904/ticketbottle-counter/internal/models"

// SkippedLog keeps the most recent skipped tickets, newest first.
type SkippedLog struct {
	limit   int
	entries []models.SkippedEntry
}

func NewSkippedLog(limit int) *SkippedLog {
	return &SkippedLog{limit: limit}
}

func (l *SkippedLog) Add(e models.SkippedEntry) {
	l.entries = append([]models.SkippedEntry{e}, l.entries...)
	if l.limit > 0 && len(l.entries) > l.limit {
		l.entries = l.entries[:l.limit]
	}
}

func (l *SkippedLog) List() []models.SkippedEntry {
	return append([]models.SkippedEntry{}, l.entries...)
}

func (l *SkippedLog) Clear() {
	l.entries = nil
}

func (l *SkippedLog) Clone() *SkippedLog {
	return &SkippedLog{limit: l.limit, entries: append([]models.SkippedEntry(nil), l.entries...)}
}
