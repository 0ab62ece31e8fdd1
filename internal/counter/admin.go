package counter

import (
	"time"

	"github.com/vogiaan1904/ticketbottle-counter/internal/models"
)

func (e *Engine) AddSeat(label string) models.Seat {
	s := e.seats.Add(label)
	e.reannotate()
	return s
}

func (e *Engine) RenameSeat(id, label string) error {
	if err := e.seats.Rename(id, label); err != nil {
		return err
	}
	if s, ok := e.seats.Get(id); ok && e.current != nil && e.current.Seat.ID == id {
		e.current.Seat.Label = s.Label
	}
	return nil
}

// RemoveSeat deletes a seat. A ticket still served there is not requeued; its
// call entry is flagged cancelled.
func (e *Engine) RemoveSeat(now time.Time, id string) (models.Seat, error) {
	s, err := e.seats.Remove(id)
	if err != nil {
		return models.Seat{}, err
	}
	if s.OccupantTicket != nil {
		e.calls.MarkCancelled(*s.OccupantTicket, id, now)
	}
	if e.current != nil && e.current.Seat.ID == id {
		e.current = nil
	}
	e.reannotate()
	return s, nil
}

// SetWaitMinutes restarts the session average from the given baseline.
func (e *Engine) SetWaitMinutes(minutes int) {
	e.stats.SetSessionBaseline(float64(minutes))
	e.reannotate()
}

// ClearTickets empties the queue. Issued entries are kept.
func (e *Engine) ClearTickets() int {
	n := e.queue.Len()
	e.queue.Clear()
	e.lastIssued = nil
	return n
}

func (e *Engine) ClearHistory() int {
	n := e.calls.Len()
	e.calls.Clear()
	return n
}

type SettingsPatch struct {
	ShowEstimatedWaitTime *bool
	ShowPersonalStatus    *bool
}

func (e *Engine) UpdateSettings(p SettingsPatch) models.Settings {
	if p.ShowEstimatedWaitTime != nil {
		e.settings.ShowEstimatedWaitTime = *p.ShowEstimatedWaitTime
	}
	if p.ShowPersonalStatus != nil {
		e.settings.ShowPersonalStatus = *p.ShowPersonalStatus
	}
	return e.settings
}

// SetSettings replaces the preferences, used when they are loaded from storage.
func (e *Engine) SetSettings(s models.Settings) {
	e.settings = s
}
