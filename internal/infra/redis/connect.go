package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/vogiaan1904/ticketbottle-counter/config"
	pkgRedis "github.com/vogiaan1904/ticketbottle-counter/pkg/redis"
	"github.com/vogiaan1904/ticketbottle-counter/pkg/logger"
)

func Connect(ctx context.Context, cfg config.RedisConfig, l logger.Logger) (*redis.Client, error) {
	cli := pkgRedis.NewClient(cfg)

	if err := cli.Ping(ctx).Err(); err != nil {
		cli.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	l.Info(ctx, "Connected to Redis", "addr", cfg.Addr, "db", cfg.DB)

	return cli, nil
}

func Disconnect(ctx context.Context, cli *redis.Client, l logger.Logger) {
	if cli == nil {
		return
	}

	if err := cli.Close(); err != nil {
		l.Warnf(ctx, "infra.redis.Disconnect: %v", err)
		return
	}

	l.Info(ctx, "Connection to Redis closed")
}
