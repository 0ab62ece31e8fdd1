// Package counter holds the queue orchestration state machine. An Engine is
// a plain value owner: it is not safe for concurrent use and every method
// takes the current time from the caller.
package counter

import (
	"time"

	"github.com/vogiaan1904/ticketbottle-counter/internal/estimator"
	"github.com/vogiaan1904/ticketbottle-counter/internal/ledger"
	"github.com/vogiaan1904/ticketbottle-counter/internal/models"
	"github.com/vogiaan1904/ticketbottle-counter/internal/queue"
	"github.com/vogiaan1904/ticketbottle-counter/internal/seat"
	"github.com/vogiaan1904/ticketbottle-counter/pkg/util"
)

type Config struct {
	Seats               []string
	SessionMinutes      float64
	WaitMinutes         float64
	AverageWindow       int
	CallHistoryLimit    int
	SkippedHistoryLimit int
	ArchiveLimit        int
	Location            *time.Location
	Settings            models.Settings
}

type Engine struct {
	cfg Config

	date    string
	counter int
	// lastIssued is the number eligible for undo; nil once it was undone.
	lastIssued *int

	queue    *queue.TicketQueue
	seats    *seat.Registry
	calls    *ledger.CallLog
	issued   *ledger.IssuedLog
	skipped  *ledger.SkippedLog
	stats    *estimator.Statistics
	current  *models.CurrentCall
	settings models.Settings
}

func New(cfg Config, now time.Time) *Engine {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &Engine{
		cfg:     cfg,
		date:    util.DateKey(now, cfg.Location),
		queue:   queue.New(),
		seats:   seat.NewRegistry(cfg.Seats),
		calls:   ledger.NewCallLog(cfg.CallHistoryLimit),
		issued:  ledger.NewIssuedLog(),
		skipped: ledger.NewSkippedLog(cfg.SkippedHistoryLimit),
		stats: estimator.NewStatistics(estimator.StatisticsConfig{
			SessionMinutes: cfg.SessionMinutes,
			WaitMinutes:    cfg.WaitMinutes,
			Window:         cfg.AverageWindow,
			ArchiveLimit:   cfg.ArchiveLimit,
		}),
		settings: cfg.Settings,
	}
}

// Clone returns a deep copy used to roll back a command that panicked.
func (e *Engine) Clone() *Engine {
	c := *e
	if e.lastIssued != nil {
		n := *e.lastIssued
		c.lastIssued = &n
	}
	if e.current != nil {
		cur := *e.current
		c.current = &cur
	}
	c.queue = e.queue.Clone()
	c.seats = e.seats.Clone()
	c.calls = e.calls.Clone()
	c.issued = e.issued.Clone()
	c.skipped = e.skipped.Clone()
	c.stats = e.stats.Clone()
	return &c
}

func (e *Engine) OperationalDate() string {
	return e.date
}

// CheckRollover closes the operational day when now falls on another date.
// The archived aggregate is returned when a rollover happened.
func (e *Engine) CheckRollover(now time.Time) (models.DailyStatistics, bool) {
	today := util.DateKey(now, e.cfg.Location)
	if today == e.date {
		return models.DailyStatistics{}, false
	}
	day := e.stats.CloseDay(e.date)
	e.clearDay()
	e.date = today
	return day, true
}

// Reset clears the day like a rollover but archives nothing.
func (e *Engine) Reset() {
	e.stats.ResetDay()
	e.clearDay()
}

func (e *Engine) clearDay() {
	e.queue.Clear()
	e.calls.Clear()
	e.skipped.Clear()
	e.issued.Clear()
	e.seats.ReleaseAll()
	e.current = nil
	e.counter = 0
	e.lastIssued = nil
}

// LoadArchive seeds the archived daily statistics, newest first.
func (e *Engine) LoadArchive(days []models.DailyStatistics) {
	e.stats.LoadArchive(days)
}

func (e *Engine) Settings() models.Settings {
	return e.settings
}

func (e *Engine) reannotate() {
	avail, busy := e.seats.Counts()
	load := estimator.SeatLoad{Available: avail, Busy: busy}
	session := e.stats.AverageSessionMinutes()
	wait := e.stats.AverageWaitMinutes()
	e.queue.Annotate(func(pos int) int {
		return estimator.Estimate(pos, load, session, wait)
	})
}

// Snapshot copies the observable state.
func (e *Engine) Snapshot(now time.Time) models.Snapshot {
	var cur *models.CurrentCall
	if e.current != nil {
		c := *e.current
		cur = &c
	}
	return models.Snapshot{
		OperationalDate: e.date,
		GeneratedAt:     now,
		Tickets:         e.queue.List(),
		Seats:           e.seats.List(),
		CurrentCall:     cur,
		CalledHistory:   e.calls.List(),
		IssuedHistory:   e.issued.List(),
		SkippedHistory:  e.skipped.List(),
		Statistics:      e.stats.View(),
		Settings:        e.settings,
	}
}
