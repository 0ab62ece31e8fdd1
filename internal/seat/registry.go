package seat

import (
	"fmt"
	"strings"
	"time"

	"github.com/vogiaan1904/ticketbottle-counter/internal/errors"
	"github.com/vogiaan1904/ticketbottle-counter/internal/models"
)

// Registry tracks the service points and their occupants, in display order.
// It is not safe for concurrent use.
type Registry struct {
	seats  []*models.Seat
	nextID int
}

func NewRegistry(labels []string) *Registry {
	r := &Registry{}
	for _, l := range labels {
		r.Add(l)
	}
	return r
}

// Add creates an available seat and returns it. Seat ids are never reused.
func (r *Registry) Add(label string) models.Seat {
	r.nextID++
	s := &models.Seat{
		ID:     fmt.Sprintf("seat-%d", r.nextID),
		Label:  strings.TrimSpace(label),
		Status: models.SeatStatusAvailable,
	}
	r.seats = append(r.seats, s)
	return *s
}

func (r *Registry) Rename(id, label string) error {
	s := r.find(id)
	if s == nil {
		return errors.ErrSeatNotFound
	}
	s.Label = strings.TrimSpace(label)
	return nil
}

// Remove deletes the seat and returns its last state so the caller can deal
// with a ticket that was still being served there.
func (r *Registry) Remove(id string) (models.Seat, error) {
	for i, s := range r.seats {
		if s.ID == id {
			r.seats = append(r.seats[:i], r.seats[i+1:]...)
			return *s, nil
		}
	}
	return models.Seat{}, errors.ErrSeatNotFound
}

func (r *Registry) Get(id string) (models.Seat, bool) {
	s := r.find(id)
	if s == nil {
		return models.Seat{}, false
	}
	return *s, true
}

func (r *Registry) find(id string) *models.Seat {
	for _, s := range r.seats {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Assign moves an available seat to busy with the given occupant.
func (r *Registry) Assign(id string, number int, at time.Time) (models.Seat, error) {
	s := r.find(id)
	if s == nil {
		return models.Seat{}, errors.ErrSeatNotFound
	}
	if !s.IsAvailable() {
		return models.Seat{}, errors.ErrSeatUnavailable
	}
	n, since := number, at
	s.Status = models.SeatStatusBusy
	s.OccupantTicket = &n
	s.OccupiedSince = &since
	return *s, nil
}

// Release frees the seat and reports how long the occupant was served. ok is
// false when the seat was already available.
func (r *Registry) Release(id string, at time.Time) (served time.Duration, ok bool, err error) {
	s := r.find(id)
	if s == nil {
		return 0, false, errors.ErrSeatNotFound
	}
	if s.IsAvailable() {
		return 0, false, nil
	}
	if s.OccupiedSince != nil {
		served = at.Sub(*s.OccupiedSince)
	}
	s.Status = models.SeatStatusAvailable
	s.OccupantTicket = nil
	s.OccupiedSince = nil
	return served, true, nil
}

// Vacate frees the seat only if it is occupied by number and reports whether
// it did. An unknown seat or another occupant leaves the registry unchanged.
func (r *Registry) Vacate(id string, number int) bool {
	s := r.find(id)
	if s == nil || s.OccupantTicket == nil || *s.OccupantTicket != number {
		return false
	}
	s.Status = models.SeatStatusAvailable
	s.OccupantTicket = nil
	s.OccupiedSince = nil
	return true
}

func (r *Registry) ReleaseAll() {
	for _, s := range r.seats {
		s.Status = models.SeatStatusAvailable
		s.OccupantTicket = nil
		s.OccupiedSince = nil
	}
}

// Counts returns the number of available and busy seats.
func (r *Registry) Counts() (available, busy int) {
	for _, s := range r.seats {
		if s.IsAvailable() {
			available++
		} else {
			busy++
		}
	}
	return available, busy
}

func (r *Registry) Len() int {
	return len(r.seats)
}

func (r *Registry) List() []models.Seat {
	out := make([]models.Seat, len(r.seats))
	for i, s := range r.seats {
		out[i] = copySeat(s)
	}
	return out
}

func (r *Registry) Clone() *Registry {
	c := &Registry{nextID: r.nextID, seats: make([]*models.Seat, len(r.seats))}
	for i, s := range r.seats {
		cp := copySeat(s)
		c.seats[i] = &cp
	}
	return c
}

func copySeat(s *models.Seat) models.Seat {
	cp := *s
	if s.OccupantTicket != nil {
		n := *s.OccupantTicket
		cp.OccupantTicket = &n
	}
	if s.OccupiedSince != nil {
		t := *s.OccupiedSince
		cp.OccupiedSince = &t
	}
	return cp
}
