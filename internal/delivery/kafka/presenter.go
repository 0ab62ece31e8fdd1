package kafka

import "time"

// Events published BY the counter service. Every event is keyed by the
// operational date so that one day's events stay ordered on one partition.

type TicketIssuedEvent struct {
	Date                 string    `json:"date"`
	Number               int       `json:"number"`
	Priority             string    `json:"priority"`
	EstimatedWaitMinutes int       `json:"estimated_wait_minutes"`
	Source               string    `json:"source"`
	AppointmentID        string    `json:"appointment_id,omitempty"`
	IssuedAt             time.Time `json:"issued_at"`
	Timestamp            time.Time `json:"timestamp"`
}

type TicketCalledEvent struct {
	Date              string    `json:"date"`
	Number            int       `json:"number"`
	SeatID            string    `json:"seat_id"`
	SeatLabel         string    `json:"seat_label"`
	ActualWaitMinutes int       `json:"actual_wait_minutes"`
	CalledAt          time.Time `json:"called_at"`
	Timestamp         time.Time `json:"timestamp"`
}

type CallCancelledEvent struct {
	Date        string    `json:"date"`
	Number      int       `json:"number"`
	SeatID      string    `json:"seat_id"`
	Reason      string    `json:"reason"`
	CancelledAt time.Time `json:"cancelled_at"`
	Timestamp   time.Time `json:"timestamp"`
}

type TicketSkippedEvent struct {
	Date      string    `json:"date"`
	Number    int       `json:"number"`
	Priority  string    `json:"priority"`
	SkippedAt time.Time `json:"skipped_at"`
	Timestamp time.Time `json:"timestamp"`
}

type TicketWithdrawnEvent struct {
	Date        string    `json:"date"`
	Number      int       `json:"number"`
	WithdrawnAt time.Time `json:"withdrawn_at"`
	Timestamp   time.Time `json:"timestamp"`
}

type SessionCompletedEvent struct {
	Date            string    `json:"date"`
	Number          int       `json:"number"`
	SeatID          string    `json:"seat_id"`
	DurationMinutes float64   `json:"duration_minutes"`
	CompletedAt     time.Time `json:"completed_at"`
	Timestamp       time.Time `json:"timestamp"`
}

type DayClosedEvent struct {
	Date               string    `json:"date"`
	TotalIssued        int       `json:"total_issued"`
	TotalCalled        int       `json:"total_called"`
	CompletedSessions  int       `json:"completed_sessions"`
	AverageWaitMinutes float64   `json:"average_wait_minutes"`
	Timestamp          time.Time `json:"timestamp"`
}

// Events consumed BY the counter service (from the appointment service)

type AppointmentCheckedInEvent struct {
	AppointmentID string    `json:"appointment_id"`
	CheckedInAt   time.Time `json:"checked_in_at"`
	Timestamp     time.Time `json:"timestamp"`
}
