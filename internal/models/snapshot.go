package models

import "time"

// Snapshot is the complete observable state pushed to every observer.
type Snapshot struct {
	Version         uint64               `json:"version"`
	OperationalDate string               `json:"operationalDate"`
	GeneratedAt     time.Time            `json:"generatedAt"`
	Tickets         []Ticket             `json:"tickets"`
	Seats           []Seat               `json:"seats"`
	CurrentCall     *CurrentCall         `json:"currentCall"`
	CalledHistory   []CallHistoryEntry   `json:"calledHistory"`
	IssuedHistory   []IssuedHistoryEntry `json:"issuedHistory"`
	SkippedHistory  []SkippedEntry       `json:"skippedHistory"`
	Statistics      Statistics           `json:"statistics"`
	Settings        Settings             `json:"settings"`
}
