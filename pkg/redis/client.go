package redis

import (
	"github.com/redis/go-redis/v9"
	"github.com/vogiaan1904/ticketbottle-counter/config"
)

// clientName identifies counter connections in CLIENT LIST.
const clientName = "counter-service"

func NewClient(cfg config.RedisConfig) *redis.Client {
	opts := &redis.Options{
		Addr:         cfg.Addr,
		ClientName:   clientName,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   cfg.MaxRetries,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	return redis.NewClient(opts)
}
