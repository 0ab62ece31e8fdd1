package service

import (
	"context"

	"github.com/vogiaan1904/ticketbottle-counter/internal/delivery/kafka"
	"github.com/vogiaan1904/ticketbottle-counter/internal/models"
)

// publish wraps a producer call into an effect. Publishing failures are
// logged and never fail the command, which is already applied.
func (s *counterService) publish(name string, send func(ctx context.Context) error) effect {
	return func(ctx context.Context) {
		if s.prod == nil {
			return
		}
		if err := send(ctx); err != nil {
			s.l.Error(ctx, "Failed to publish counter event", "event", name, "error", err)
		}
	}
}

func (s *counterService) dayClosed(day models.DailyStatistics) effect {
	return func(ctx context.Context) {
		s.l.Info(ctx, "Operational day closed",
			"date", day.Date,
			"total_issued", day.TotalIssued,
			"average_wait_minutes", day.AverageWaitMinutes,
		)
		if s.stats != nil {
			if err := s.stats.Append(ctx, day); err != nil {
				s.l.Error(ctx, "Failed to archive daily statistics", "date", day.Date, "error", err)
			}
		}
		s.publish("day_closed", func(ctx context.Context) error {
			return s.prod.PublishDayClosed(ctx, kafka.DayClosedEvent{
				Date:               day.Date,
				TotalIssued:        day.TotalIssued,
				TotalCalled:        day.TotalCalled,
				CompletedSessions:  day.CompletedSessions,
				AverageWaitMinutes: day.AverageWaitMinutes,
			})
		})(ctx)
	}
}

func (s *counterService) persistSettings(settings models.Settings) effect {
	return func(ctx context.Context) {
		if s.settings == nil {
			return
		}
		if err := s.settings.Save(ctx, settings); err != nil {
			s.l.Error(ctx, "Failed to persist display settings", "error", err)
		}
	}
}
