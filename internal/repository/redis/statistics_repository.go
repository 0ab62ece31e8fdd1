package repository

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/vogiaan1904/ticketbottle-counter/internal/models"
	"github.com/vogiaan1904/ticketbottle-counter/pkg/logger"
)

const dailyStatsKey = "counter:stats:daily"

type redisStatisticsRepository struct {
	cli   *redis.Client
	limit int64
	l     logger.Logger
}

// NewRedisStatisticsRepository keeps at most limit days, newest first.
func NewRedisStatisticsRepository(cli *redis.Client, limit int, l logger.Logger) StatisticsRepository {
	if limit <= 0 {
		limit = 30
	}
	return &redisStatisticsRepository{
		cli:   cli,
		limit: int64(limit),
		l:     l,
	}
}

func (r *redisStatisticsRepository) Append(ctx context.Context, day models.DailyStatistics) error {
	data, err := json.Marshal(day)
	if err != nil {
		return err
	}

	pipe := r.cli.TxPipeline()
	pipe.LPush(ctx, dailyStatsKey, data)
	pipe.LTrim(ctx, dailyStatsKey, 0, r.limit-1)

	if _, err := pipe.Exec(ctx); err != nil {
		r.l.Errorf(ctx, "redisStatisticsRepository.Append: %v", err)
		return err
	}

	r.l.Info(ctx, "Archived daily statistics",
		"date", day.Date,
		"total_issued", day.TotalIssued,
	)

	return nil
}

func (r *redisStatisticsRepository) List(ctx context.Context) ([]models.DailyStatistics, error) {
	raw, err := r.cli.LRange(ctx, dailyStatsKey, 0, r.limit-1).Result()
	if err != nil {
		r.l.Errorf(ctx, "redisStatisticsRepository.List: %v", err)
		return nil, err
	}

	days := make([]models.DailyStatistics, 0, len(raw))
	for _, item := range raw {
		var d models.DailyStatistics
		if err := json.Unmarshal([]byte(item), &d); err != nil {
			r.l.Warn(ctx, "Skipping malformed daily statistics entry", "error", err)
			continue
		}
		days = append(days, d)
	}

	return days, nil
}
