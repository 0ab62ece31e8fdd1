package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/vogiaan1904/ticketbottle-counter/internal/models"
	"github.com/vogiaan1904/ticketbottle-counter/pkg/logger"
)

const settingsKey = "counter:settings"

type redisSettingsRepository struct {
	cli *redis.Client
	l   logger.Logger
}

func NewRedisSettingsRepository(cli *redis.Client, l logger.Logger) SettingsRepository {
	return &redisSettingsRepository{
		cli: cli,
		l:   l,
	}
}

// Load returns nil when nothing was saved yet.
func (r *redisSettingsRepository) Load(ctx context.Context) (*models.Settings, error) {
	data, err := r.cli.Get(ctx, settingsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "redisSettingsRepository.Load: %v", err)
		return nil, err
	}

	var s models.Settings
	if err := json.Unmarshal(data, &s); err != nil {
		r.l.Errorf(ctx, "redisSettingsRepository.Load: %v", err)
		return nil, err
	}

	return &s, nil
}

func (r *redisSettingsRepository) Save(ctx context.Context, s models.Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	if err := r.cli.Set(ctx, settingsKey, data, 0).Err(); err != nil {
		r.l.Errorf(ctx, "redisSettingsRepository.Save: %v", err)
		return err
	}

	r.l.Debug(ctx, "Saved display settings",
		"show_estimated_wait_time", s.ShowEstimatedWaitTime,
		"show_personal_status", s.ShowPersonalStatus,
	)

	return nil
}
