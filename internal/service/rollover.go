package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vogiaan1904/ticketbottle-counter/pkg/logger"
)

type RolloverScheduler interface {
	Start(ctx context.Context) error
	Stop() error
	GetStatus() SchedulerStatus
}

type SchedulerStatus struct {
	IsRunning bool      `json:"is_running"`
	StartedAt time.Time `json:"started_at,omitempty"`
	LastCheck time.Time `json:"last_check,omitempty"`
	Rollovers int64     `json:"rollovers"`
	Recovered int64     `json:"recovered"`
}

type SchedulerConfig struct {
	CheckInterval   time.Duration
	ShutdownTimeout time.Duration
}

type rolloverScheduler struct {
	svc    CounterService
	logger logger.Logger
	config SchedulerConfig

	mu        sync.RWMutex
	isRunning bool
	startedAt time.Time
	stopCh    chan struct{}
	ticker    *time.Ticker
	wg        sync.WaitGroup

	lastCheck time.Time
	rollovers int64
	recovered int64
}

// NewRolloverScheduler periodically asks the service to close the operational
// day. The check competes for the same lock as every command.
func NewRolloverScheduler(svc CounterService, l logger.Logger, cfg SchedulerConfig) RolloverScheduler {
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = time.Minute
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	return &rolloverScheduler{
		svc:    svc,
		logger: l,
		config: cfg,
	}
}

func (rs *rolloverScheduler) Start(ctx context.Context) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.isRunning {
		return errors.New("rollover scheduler is already running")
	}

	rs.logger.Info(ctx, "Starting rollover scheduler", "interval", rs.config.CheckInterval)

	rs.isRunning = true
	rs.startedAt = time.Now()
	rs.stopCh = make(chan struct{})
	rs.ticker = time.NewTicker(rs.config.CheckInterval)

	rs.wg.Add(1)
	go rs.loop(ctx, rs.ticker, rs.stopCh)

	return nil
}

func (rs *rolloverScheduler) Stop() error {
	rs.mu.Lock()
	if !rs.isRunning {
		rs.mu.Unlock()
		return errors.New("rollover scheduler is not running")
	}

	rs.logger.Info(context.Background(), "Stopping rollover scheduler...")

	close(rs.stopCh)
	rs.ticker.Stop()
	rs.isRunning = false
	rs.mu.Unlock()

	// The loop takes rs.mu when it records a check, so wait unlocked.
	done := make(chan struct{})
	go func() {
		rs.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		rs.logger.Info(context.Background(), "Rollover scheduler stopped gracefully")
	case <-time.After(rs.config.ShutdownTimeout):
		rs.logger.Warn(context.Background(), "Rollover scheduler shutdown timeout exceeded")
	}

	return nil
}

func (rs *rolloverScheduler) loop(ctx context.Context, ticker *time.Ticker, stopCh <-chan struct{}) {
	defer rs.wg.Done()

	for {
		select {
		case <-ctx.Done():
			rs.logger.Info(ctx, "Rollover scheduler stopped due to context cancellation")
			return
		case <-stopCh:
			return
		case <-ticker.C:
			rs.check(ctx)
		}
	}
}

func (rs *rolloverScheduler) check(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			rs.mu.Lock()
			rs.recovered++
			rs.mu.Unlock()
			rs.logger.Error(ctx, "Rollover check panicked", "panic", fmt.Sprint(r))
		}
	}()

	rolled := rs.svc.CheckRollover(ctx)

	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.lastCheck = time.Now()
	if rolled {
		rs.rollovers++
	}
}

func (rs *rolloverScheduler) GetStatus() SchedulerStatus {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	return SchedulerStatus{
		IsRunning: rs.isRunning,
		StartedAt: rs.startedAt,
		LastCheck: rs.lastCheck,
		Rollovers: rs.rollovers,
		Recovered: rs.recovered,
	}
}
