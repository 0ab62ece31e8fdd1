package estimator

import (
	"testing"
	"time"
)

func TestEstimate(t *testing.T) {
	tests := []struct {
		name     string
		position int
		load     SeatLoad
		session  float64
		wait     float64
		want     int
	}{
		{"two free seats", 3, SeatLoad{Available: 2}, 10, 5, 20},
		{"one free seat", 3, SeatLoad{Available: 1, Busy: 1}, 10, 5, 30},
		{"first in line two free", 1, SeatLoad{Available: 2}, 10, 5, 10},
		{"all busy ahead of queue", 1, SeatLoad{Busy: 2}, 10, 5, 5},
		{"all busy deep queue", 5, SeatLoad{Busy: 2}, 10, 6, 5 + 9},
		{"odd session rounds up half", 4, SeatLoad{Busy: 1}, 7, 5, 4 + 15},
		{"no seats", 2, SeatLoad{}, 5, 5, 10},
		{"invalid position", 0, SeatLoad{Available: 1}, 5, 5, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Estimate(tc.position, tc.load, tc.session, tc.wait)
			if got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestRollingAverageWindow(t *testing.T) {
	r := NewRollingAverage(3, 5)
	if r.Value() != 5 {
		t.Fatalf("expected seed 5, got %v", r.Value())
	}
	r.Add(11)
	if r.Value() != 8 {
		t.Fatalf("expected 8, got %v", r.Value())
	}
	r.Add(2)
	r.Add(2)
	if r.Value() != 5 {
		t.Fatalf("seed should have left the window, got %v", r.Value())
	}
}

func TestStatisticsDayCycle(t *testing.T) {
	s := NewStatistics(StatisticsConfig{SessionMinutes: 5, WaitMinutes: 5, Window: 20, ArchiveLimit: 2})

	s.RecordIssue()
	s.RecordIssue()
	s.RecordIssue()
	s.RevertIssue()
	s.RecordCall(10)
	s.RecordCall(4)
	s.RecordCall(6)
	s.RevertCall(6)
	s.RecordSession(15 * time.Minute)

	if got := s.AverageSessionMinutes(); got != 10 {
		t.Fatalf("expected session average 10, got %v", got)
	}
	if got := s.TodayWaitMinutes(); got != 7 {
		t.Fatalf("expected today wait 7, got %v", got)
	}

	day := s.CloseDay("2026-03-02")
	if day.TotalIssued != 2 || day.TotalCalled != 2 || day.CompletedSessions != 1 || day.AverageWaitMinutes != 7 {
		t.Fatalf("unexpected archive entry %+v", day)
	}
	if got := s.AverageWaitMinutes(); got != 6 {
		t.Fatalf("expected wait average 6, got %v", got)
	}
	if v := s.View(); v.IssuedToday != 0 || v.CalledToday != 0 || len(v.Archive) != 1 {
		t.Fatalf("day not reset: %+v", v)
	}

	s.CloseDay("2026-03-03")
	s.CloseDay("2026-03-04")
	v := s.View()
	if len(v.Archive) != 2 || v.Archive[0].Date != "2026-03-04" {
		t.Fatalf("archive not bounded newest first: %+v", v.Archive)
	}
}

func TestStatisticsClone(t *testing.T) {
	s := NewStatistics(StatisticsConfig{SessionMinutes: 5, WaitMinutes: 5, Window: 5})
	c := s.Clone()
	s.RecordSession(25 * time.Minute)
	s.RecordIssue()
	if c.AverageSessionMinutes() != 5 || c.View().IssuedToday != 0 {
		t.Fatal("clone observed mutation of original")
	}
}
