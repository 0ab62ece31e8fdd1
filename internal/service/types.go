package service

import (
	"time"

	"github.com/vogiaan1904/ticketbottle-counter/internal/models"
)

type IssueTicketInput struct {
	Priority      string `json:"priority" validate:"omitempty,oneof=urgent appointment normal"`
	Source        string `json:"-"`
	AppointmentID string `json:"-"`
}

type IssueTicketOutput struct {
	Number               int             `json:"number"`
	Priority             models.Priority `json:"priority"`
	EstimatedWaitMinutes int             `json:"estimatedWaitMinutes"`
	IssuedAt             time.Time       `json:"issuedAt"`
}

type CallNumberInput struct {
	Number int    `json:"number" validate:"required,gt=0"`
	SeatID string `json:"seatId" validate:"required"`
}

type CallNumberOutput struct {
	Number            int            `json:"number"`
	Seat              models.SeatRef `json:"seat"`
	CalledAt          time.Time      `json:"calledAt"`
	ActualWaitMinutes int            `json:"actualWaitMinutes"`
}

type CancelHistoryCallInput struct {
	Number       int    `json:"number" validate:"required,gt=0"`
	SeatID       string `json:"seatId" validate:"required_without=HistoryIndex"`
	HistoryIndex *int   `json:"historyIndex" validate:"omitempty,gte=0"`
}

type CancelCallOutput struct {
	Number   int             `json:"number"`
	SeatID   string          `json:"seatId"`
	Priority models.Priority `json:"priority"`
	IssuedAt time.Time       `json:"issuedAt"`
}

type SkipTicketInput struct {
	Number int `json:"number" validate:"required,gt=0"`
}

type SkipTicketOutput struct {
	Number    int       `json:"number"`
	SkippedAt time.Time `json:"skippedAt"`
}

type UndoLastTicketOutput struct {
	Number int `json:"number"`
}

type CompleteSessionInput struct {
	SeatID string `json:"seatId" validate:"required"`
}

type CompleteSessionOutput struct {
	SeatID          string  `json:"seatId"`
	Number          int     `json:"number,omitempty"`
	Released        bool    `json:"released"`
	DurationMinutes float64 `json:"durationMinutes,omitempty"`
}

type AddSeatInput struct {
	Label string `json:"label" validate:"required,max=64"`
}

type RenameSeatInput struct {
	SeatID string `json:"seatId" validate:"required"`
	Label  string `json:"label" validate:"required,max=64"`
}

type RemoveSeatInput struct {
	SeatID string `json:"seatId" validate:"required"`
}

type SetWaitMinutesInput struct {
	Minutes int `json:"minutes" validate:"required,gt=0,lte=240"`
}

type UpdateSettingsInput struct {
	ShowEstimatedWaitTime *bool `json:"showEstimatedWaitTime"`
	ShowPersonalStatus    *bool `json:"showPersonalStatus"`
}

type ClearOutput struct {
	Cleared int `json:"cleared"`
}
