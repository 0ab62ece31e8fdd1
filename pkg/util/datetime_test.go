package util

import (
	"testing"
	"time"
)

func TestDateKey(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	ts := time.Date(2026, 3, 31, 20, 0, 0, 0, time.UTC)

	if got := DateKey(ts, time.UTC); got != "2026-03-31" {
		t.Fatalf("utc: got %s", got)
	}
	if got := DateKey(ts, tokyo); got != "2026-04-01" {
		t.Fatalf("tokyo: got %s", got)
	}
}

func TestMinutesBetween(t *testing.T) {
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{"same instant", start, 0},
		{"before start", start.Add(-time.Minute), 0},
		{"rounds down", start.Add(7*time.Minute + 20*time.Second), 7},
		{"rounds up", start.Add(7*time.Minute + 40*time.Second), 8},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := MinutesBetween(start, tc.end); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}
