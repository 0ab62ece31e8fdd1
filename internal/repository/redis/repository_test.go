package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/vogiaan1904/ticketbottle-counter/internal/models"
	"github.com/vogiaan1904/ticketbottle-counter/pkg/logger"
)

func newTestClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	cli := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = cli.Close() })
	return cli, mr
}

func TestSettingsRepository(t *testing.T) {
	ctx := context.Background()
	cli, mr := newTestClient(t)
	repo := NewRedisSettingsRepository(cli, logger.NewNop())

	got, err := repo.Load(ctx)
	if err != nil || got != nil {
		t.Fatalf("expected nothing saved, got %+v (%v)", got, err)
	}

	want := models.Settings{ShowEstimatedWaitTime: false, ShowPersonalStatus: true}
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err = repo.Load(ctx)
	if err != nil || got == nil || *got != want {
		t.Fatalf("expected %+v, got %+v (%v)", want, got, err)
	}

	mr.Set(settingsKey, "{broken")
	if _, err := repo.Load(ctx); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestStatisticsRepositoryTrims(t *testing.T) {
	ctx := context.Background()
	cli, mr := newTestClient(t)
	repo := NewRedisStatisticsRepository(cli, 2, logger.NewNop())

	for d := 1; d <= 3; d++ {
		if err := repo.Append(ctx, models.DailyStatistics{Date: fmt.Sprintf("2026-03-0%d", d), TotalIssued: d}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	mr.Lpush(dailyStatsKey, "garbage")

	days, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(days) != 1 || days[0].Date != "2026-03-03" {
		t.Fatalf("unexpected archive %+v", days)
	}

	if n, _ := cli.LLen(ctx, dailyStatsKey).Result(); n != 3 {
		t.Fatalf("expected 3 raw entries, got %d", n)
	}
}
