package seat

import (
	"errors"
	"testing"
	"time"

	cerrors "github.com/vogiaan1904/ticketbottle-counter/internal/errors"
	"github.com/vogiaan1904/ticketbottle-counter/internal/models"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func checkOccupancy(t *testing.T, r *Registry) {
	t.Helper()
	for _, s := range r.List() {
		busy := s.Status == models.SeatStatusBusy
		if busy != (s.OccupantTicket != nil) {
			t.Fatalf("seat %s: status %s with occupant %v", s.ID, s.Status, s.OccupantTicket)
		}
	}
}

func TestAssignRelease(t *testing.T) {
	r := NewRegistry([]string{"Room 1", "Room 2"})
	if r.Len() != 2 {
		t.Fatalf("expected 2 seats, got %d", r.Len())
	}

	s, err := r.Assign("seat-1", 4, t0)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if *s.OccupantTicket != 4 {
		t.Fatalf("unexpected occupant %v", s.OccupantTicket)
	}
	checkOccupancy(t, r)

	if _, err := r.Assign("seat-1", 5, t0); !errors.Is(err, cerrors.ErrSeatUnavailable) {
		t.Fatalf("expected ErrSeatUnavailable, got %v", err)
	}
	if avail, busy := r.Counts(); avail != 1 || busy != 1 {
		t.Fatalf("unexpected counts %d/%d", avail, busy)
	}

	served, ok, err := r.Release("seat-1", t0.Add(7*time.Minute))
	if err != nil || !ok || served != 7*time.Minute {
		t.Fatalf("release: served=%v ok=%v err=%v", served, ok, err)
	}
	checkOccupancy(t, r)

	if _, ok, err := r.Release("seat-1", t0); ok || err != nil {
		t.Fatalf("second release should be a no-op, ok=%v err=%v", ok, err)
	}
}

func TestUnknownSeat(t *testing.T) {
	r := NewRegistry(nil)
	if _, err := r.Assign("seat-9", 1, t0); !errors.Is(err, cerrors.ErrSeatNotFound) {
		t.Fatalf("expected ErrSeatNotFound, got %v", err)
	}
	if err := r.Rename("seat-9", "x"); !errors.Is(err, cerrors.ErrSeatNotFound) {
		t.Fatalf("expected ErrSeatNotFound, got %v", err)
	}
	if _, err := r.Remove("seat-9"); !errors.Is(err, cerrors.ErrSeatNotFound) {
		t.Fatalf("expected ErrSeatNotFound, got %v", err)
	}
}

func TestIDsNotReused(t *testing.T) {
	r := NewRegistry([]string{"A"})
	if _, err := r.Remove("seat-1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if s := r.Add("B"); s.ID != "seat-2" {
		t.Fatalf("expected seat-2, got %s", s.ID)
	}
}

func TestCloneIsDeep(t *testing.T) {
	r := NewRegistry([]string{"A"})
	c := r.Clone()
	if _, err := r.Assign("seat-1", 1, t0); err != nil {
		t.Fatal(err)
	}
	if s, _ := c.Get("seat-1"); !s.IsAvailable() {
		t.Fatal("clone observed mutation of original")
	}
}

func TestVacate(t *testing.T) {
	r := NewRegistry([]string{"Room 1"})
	if _, err := r.Assign("seat-1", 3, t0); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		id     string
		number int
		want   bool
	}{
		{"unknown seat", "seat-9", 3, false},
		{"other occupant", "seat-1", 4, false},
		{"occupant", "seat-1", 3, true},
		{"already free", "seat-1", 3, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Vacate(tc.id, tc.number); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			checkOccupancy(t, r)
		})
	}
	if s, _ := r.Get("seat-1"); !s.IsAvailable() {
		t.Fatal("seat still busy")
	}
}
