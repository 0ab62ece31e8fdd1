package repository

import (
	"context"

	"github.com/vogiaan1904/ticketbottle-counter/internal/models"
)

// SettingsRepository stores the display preference blob, the only state that
// survives a restart.
type SettingsRepository interface {
	Load(ctx context.Context) (*models.Settings, error)
	Save(ctx context.Context, s models.Settings) error
}

// StatisticsRepository keeps the archive of closed operational days.
type StatisticsRepository interface {
	Append(ctx context.Context, day models.DailyStatistics) error
	List(ctx context.Context) ([]models.DailyStatistics, error)
}
