package util

import "time"

const (
	DateTimeFormat = "2006-01-02 15:04:05"
	DateFormat     = "2006-01-02"
	ISO8601Format  = "2006-01-02T15:04:05Z07:00"
)

func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeFormat)
}

// DateKey returns the calendar date of t in loc. The operational day of the
// counter is identified by this key.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateFormat)
}

func TimeToISO8601Str(t time.Time) string {
	return t.Format(ISO8601Format)
}

// MinutesBetween returns the whole minutes elapsed from start to end, rounded
// to nearest and never negative.
func MinutesBetween(start, end time.Time) int {
	d := end.Sub(start)
	if d <= 0 {
		return 0
	}
	return int((d + 30*time.Second) / time.Minute)
}
