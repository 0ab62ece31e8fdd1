package models

import "time"

type CurrentCall struct {
	Number   int       `json:"number"`
	Seat     SeatRef   `json:"seat"`
	CalledAt time.Time `json:"calledAt"`
}

type CallHistoryEntry struct {
	Number            int        `json:"number"`
	Seat              SeatRef    `json:"seat"`
	CalledAt          time.Time  `json:"calledAt"`
	ActualWaitMinutes *int       `json:"actualWaitMinutes,omitempty"`
	Cancelled         bool       `json:"cancelled"`
	CancelledAt       *time.Time `json:"cancelledAt,omitempty"`
}

type IssuedHistoryEntry struct {
	Number    int        `json:"number"`
	IssuedAt  time.Time  `json:"issuedAt"`
	Date      string     `json:"date"`
	Priority  Priority   `json:"priority"`
	Skipped   bool       `json:"skipped"`
	SkippedAt *time.Time `json:"skippedAt,omitempty"`
}

type SkippedEntry struct {
	Number    int       `json:"number"`
	SkippedAt time.Time `json:"skippedAt"`
	Priority  Priority  `json:"priority"`
}
