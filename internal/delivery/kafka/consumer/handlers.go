package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/vogiaan1904/ticketbottle-counter/internal/delivery/kafka"
	"github.com/vogiaan1904/ticketbottle-counter/internal/models"
	"github.com/vogiaan1904/ticketbottle-counter/internal/service"
)

func (c *Consumer) HandleAppointmentCheckedIn(ctx context.Context, message *sarama.ConsumerMessage) error {
	var e kafka.AppointmentCheckedInEvent
	if err := json.Unmarshal(message.Value, &e); err != nil {
		return fmt.Errorf("decode appointment check-in: %w", err)
	}

	out, err := c.svc.IssueTicket(ctx, service.IssueTicketInput{
		Priority:      string(models.PriorityAppointment),
		Source:        kafka.SourceAppointment,
		AppointmentID: e.AppointmentID,
	})
	if err != nil {
		return fmt.Errorf("issue appointment ticket: %w", err)
	}

	c.l.Info(ctx, "Appointment checked in",
		"appointment_id", e.AppointmentID,
		"number", out.Number,
		"estimated_wait_minutes", out.EstimatedWaitMinutes,
	)
	return nil
}
