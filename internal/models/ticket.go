package models

import (
	"fmt"
	"strings"
	"time"
)

type Priority string

const (
	PriorityUrgent      Priority = "urgent"
	PriorityAppointment Priority = "appointment"
	PriorityNormal      Priority = "normal"
)

// ParsePriority accepts the wire value of a priority class. The empty string
// means normal.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PriorityNormal, nil
	case PriorityUrgent, PriorityAppointment, PriorityNormal:
		return p, nil
	default:
		return "", fmt.Errorf("unknown priority %q", s)
	}
}

// Rank orders priority classes; lower ranks are served first.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityAppointment:
		return 1
	default:
		return 2
	}
}

type Ticket struct {
	Number               int       `json:"number"`
	IssuedAt             time.Time `json:"issuedAt"`
	Priority             Priority  `json:"priority"`
	EstimatedWaitMinutes int       `json:"estimatedWaitMinutes"`
}
