package service

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/vogiaan1904/ticketbottle-counter/internal/broadcast"
	"github.com/vogiaan1904/ticketbottle-counter/internal/counter"
	"github.com/vogiaan1904/ticketbottle-counter/internal/delivery/kafka/producer"
	"github.com/vogiaan1904/ticketbottle-counter/internal/models"
	repository "github.com/vogiaan1904/ticketbottle-counter/internal/repository/redis"
	"github.com/vogiaan1904/ticketbottle-counter/pkg/clock"
	pkgLog "github.com/vogiaan1904/ticketbottle-counter/pkg/logger"
)

// effect runs after the state lock is released.
type effect func(ctx context.Context)

// mutation runs under the state lock against the engine.
type mutation func(e *counter.Engine, now time.Time) ([]effect, error)

type counterService struct {
	mu       sync.Mutex
	engine   *counter.Engine
	version  uint64
	rollover func(e *counter.Engine, now time.Time) (models.DailyStatistics, bool)

	clk       clock.Clock
	hub       *broadcast.Hub
	prod      producer.Producer
	settings  repository.SettingsRepository
	stats     repository.StatisticsRepository
	validate  *validator.Validate
	l         pkgLog.Logger
	obsBuffer int
}

// NewCounterService wires the engine to its collaborators. prod, settings and
// stats may be nil when Kafka or Redis are disabled.
func NewCounterService(
	engine *counter.Engine,
	clk clock.Clock,
	hub *broadcast.Hub,
	prod producer.Producer,
	settings repository.SettingsRepository,
	stats repository.StatisticsRepository,
	l pkgLog.Logger,
	obsBuffer int,
) CounterService {
	return &counterService{
		engine:    engine,
		rollover:  (*counter.Engine).CheckRollover,
		clk:       clk,
		hub:       hub,
		prod:      prod,
		settings:  settings,
		stats:     stats,
		validate:  validator.New(),
		l:         l,
		obsBuffer: obsBuffer,
	}
}

// apply serializes fn against every other command, broadcasts the new
// snapshot on success and then runs the side effects outside the lock.
func (s *counterService) apply(ctx context.Context, cmd string, fn mutation) error {
	effects, err := s.mutate(ctx, cmd, fn)
	for _, fx := range effects {
		fx(ctx)
	}
	if err != nil {
		s.l.Warn(ctx, "Command rejected", "command", cmd, "error", err)
		return err
	}
	s.l.Info(ctx, "Command applied", "command", cmd)
	return nil
}

func (s *counterService) mutate(ctx context.Context, cmd string, fn mutation) ([]effect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clk.Now()
	effects, rolled := s.rolloverLocked(ctx, now)

	fx, err := s.run(ctx, cmd, now, fn)
	if err != nil {
		if rolled {
			s.broadcastLocked(now)
		}
		return effects, err
	}

	s.broadcastLocked(now)
	return append(effects, fx...), nil
}

// run executes fn and restores the previous state if it panics.
func (s *counterService) run(ctx context.Context, cmd string, now time.Time, fn mutation) (fx []effect, err error) {
	backup := s.engine.Clone()
	defer func() {
		if r := recover(); r != nil {
			s.engine = backup
			s.l.Error(ctx, "Command panicked, state restored",
				"command", cmd,
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
			fx, err = nil, ErrInternal
		}
	}()
	return fn(s.engine, now)
}

// rolloverLocked closes the day when now has crossed midnight. It runs under
// the same restore guard as commands; a panic leaves the day open.
func (s *counterService) rolloverLocked(ctx context.Context, now time.Time) ([]effect, bool) {
	rolled := false
	effects, err := s.run(ctx, "rollover", now, func(e *counter.Engine, now time.Time) ([]effect, error) {
		day, ok := s.rollover(e, now)
		if !ok {
			return nil, nil
		}
		rolled = true
		return []effect{s.dayClosed(day)}, nil
	})
	if err != nil {
		return nil, false
	}
	return effects, rolled
}

func (s *counterService) CheckRollover(ctx context.Context) bool {
	effects, rolled := s.checkRollover(ctx)
	for _, fx := range effects {
		fx(ctx)
	}
	return rolled
}

func (s *counterService) checkRollover(ctx context.Context) ([]effect, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clk.Now()
	effects, rolled := s.rolloverLocked(ctx, now)
	if rolled {
		s.broadcastLocked(now)
	}
	return effects, rolled
}

type observerMessage struct {
	Type string          `json:"type"`
	Data models.Snapshot `json:"data"`
}

func (s *counterService) snapshotLocked(now time.Time) models.Snapshot {
	snap := s.engine.Snapshot(now)
	snap.Version = s.version
	return snap
}

func (s *counterService) encodeLocked(msgType string, now time.Time) []byte {
	payload, err := json.Marshal(observerMessage{Type: msgType, Data: s.snapshotLocked(now)})
	if err != nil {
		s.l.Error(context.Background(), "Failed to encode snapshot", "error", err)
		return nil
	}
	return payload
}

func (s *counterService) broadcastLocked(now time.Time) {
	s.version++
	if payload := s.encodeLocked(broadcast.TypeUpdate, now); payload != nil {
		s.hub.Broadcast(payload)
	}
}

func (s *counterService) Snapshot(ctx context.Context) models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(s.clk.Now())
}

func (s *counterService) Observe(ctx context.Context, kind string) *broadcast.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := broadcast.NewClient(uuid.NewString(), kind, s.obsBuffer)
	if payload := s.encodeLocked(broadcast.TypeInit, s.clk.Now()); payload != nil {
		c.Send <- payload
	}
	s.hub.Register(c)

	s.l.Info(ctx, "Observer connected",
		"client_id", c.ID,
		"kind", kind,
		"observers", s.hub.Len(),
	)
	return c
}

func (s *counterService) Forget(client *broadcast.Client) {
	s.hub.Unregister(client)
	s.l.Info(context.Background(), "Observer disconnected",
		"client_id", client.ID,
		"kind", client.Kind,
	)
}

func (s *counterService) Restore(ctx context.Context) error {
	var (
		saved *models.Settings
		days  []models.DailyStatistics
		err   error
	)
	if s.settings != nil {
		if saved, err = s.settings.Load(ctx); err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
	}
	if s.stats != nil {
		if days, err = s.stats.List(ctx); err != nil {
			return fmt.Errorf("load statistics archive: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if saved != nil {
		s.engine.SetSettings(*saved)
	}
	s.engine.LoadArchive(days)

	s.l.Info(ctx, "Restored persisted state",
		"settings_found", saved != nil,
		"archived_days", len(days),
	)
	return nil
}

func (s *counterService) validateInput(in any) error {
	if err := s.validate.Struct(in); err != nil {
		return invalidPayload("%v", err)
	}
	return nil
}
