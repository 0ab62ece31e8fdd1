package queue

import (
	"testing"
	"time"

	"github.com/vogiaan1904/ticketbottle-counter/internal/models"
)

func ticket(n int, p models.Priority) models.Ticket {
	return models.Ticket{
		Number:   n,
		Priority: p,
		IssuedAt: time.Date(2026, 3, 2, 9, n, 0, 0, time.UTC),
	}
}

func numbers(q *TicketQueue) []int {
	var out []int
	for _, t := range q.List() {
		out = append(out, t.Number)
	}
	return out
}

func equal(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestInsertOrdering(t *testing.T) {
	tests := []struct {
		name   string
		issued []models.Priority
		want   []int
	}{
		{
			name:   "normals append",
			issued: []models.Priority{models.PriorityNormal, models.PriorityNormal, models.PriorityNormal},
			want:   []int{1, 2, 3},
		},
		{
			name:   "urgent jumps normals",
			issued: []models.Priority{models.PriorityNormal, models.PriorityNormal, models.PriorityNormal, models.PriorityUrgent},
			want:   []int{4, 1, 2, 3},
		},
		{
			name:   "urgents keep issuance order",
			issued: []models.Priority{models.PriorityNormal, models.PriorityUrgent, models.PriorityUrgent},
			want:   []int{2, 3, 1},
		},
		{
			name: "appointment sits between urgent and normal",
			issued: []models.Priority{
				models.PriorityNormal, models.PriorityAppointment, models.PriorityUrgent,
				models.PriorityAppointment, models.PriorityNormal,
			},
			want: []int{3, 2, 4, 1, 5},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := New()
			for i, p := range tc.issued {
				q.Insert(ticket(i+1, p))
			}
			if got := numbers(q); !equal(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestReinsertFollowsPriorityPolicy(t *testing.T) {
	tests := []struct {
		name   string
		remove int
		want   []int
	}{
		{"normal goes to the back", 1, []int{3, 4, 2, 1}},
		{"urgent goes after the last urgent", 3, []int{4, 3, 1, 2}},
		{"last urgent keeps its place", 4, []int{3, 4, 1, 2}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := New()
			q.Insert(ticket(1, models.PriorityNormal))
			q.Insert(ticket(2, models.PriorityNormal))
			q.Insert(ticket(3, models.PriorityUrgent))
			q.Insert(ticket(4, models.PriorityUrgent))

			removed, ok := q.Remove(tc.remove)
			if !ok {
				t.Fatalf("ticket %d not removed", tc.remove)
			}
			q.Insert(removed)
			if got := numbers(q); !equal(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestRemoveMissing(t *testing.T) {
	q := New()
	q.Insert(ticket(1, models.PriorityNormal))
	if _, ok := q.Remove(7); ok {
		t.Fatal("expected missing ticket")
	}
	if q.Len() != 1 {
		t.Fatalf("queue changed: %v", numbers(q))
	}
}

func TestAnnotateAndClone(t *testing.T) {
	q := New()
	q.Insert(ticket(1, models.PriorityNormal))
	q.Insert(ticket(2, models.PriorityNormal))
	c := q.Clone()

	q.Annotate(func(pos int) int { return pos * 10 })
	got, _ := q.Get(2)
	if got.EstimatedWaitMinutes != 20 {
		t.Fatalf("expected estimate 20, got %d", got.EstimatedWaitMinutes)
	}
	orig, _ := c.Get(2)
	if orig.EstimatedWaitMinutes != 0 {
		t.Fatal("clone shares storage with original")
	}
}
