package models

import "time"

type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "available"
	SeatStatusBusy      SeatStatus = "busy"
)

type Seat struct {
	ID             string     `json:"id"`
	Label          string     `json:"label"`
	Status         SeatStatus `json:"status"`
	OccupantTicket *int       `json:"occupantTicket,omitempty"`
	OccupiedSince  *time.Time `json:"occupiedSince,omitempty"`
}

func (s *Seat) IsAvailable() bool {
	return s.Status == SeatStatusAvailable
}

// Ref returns the identity part of the seat, copied by value.
func (s *Seat) Ref() SeatRef {
	return SeatRef{ID: s.ID, Label: s.Label}
}

// SeatRef is a point-in-time copy of a seat's identity stored in history.
type SeatRef struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}
