package estimator

import (
	"math"
	"time"

	"github.com/vogiaan1904/ticketbottle-counter/internal/models"
)

type StatisticsConfig struct {
	SessionMinutes float64
	WaitMinutes    float64
	Window         int
	ArchiveLimit   int
}

// Statistics owns the rolling averages read by the estimator and the
// accumulators of the current operational day.
type Statistics struct {
	cfg        StatisticsConfig
	avgSession *RollingAverage
	avgWait    *RollingAverage

	issued    int
	called    int
	completed int
	waitSum   int

	archive []models.DailyStatistics
}

func NewStatistics(cfg StatisticsConfig) *Statistics {
	return &Statistics{
		cfg:        cfg,
		avgSession: NewRollingAverage(cfg.Window, cfg.SessionMinutes),
		avgWait:    NewRollingAverage(cfg.Window, cfg.WaitMinutes),
	}
}

func (s *Statistics) AverageSessionMinutes() float64 { return s.avgSession.Value() }
func (s *Statistics) AverageWaitMinutes() float64    { return s.avgWait.Value() }

func (s *Statistics) RecordIssue() { s.issued++ }

func (s *Statistics) RevertIssue() {
	if s.issued > 0 {
		s.issued--
	}
}

func (s *Statistics) RecordCall(waitMinutes int) {
	s.called++
	s.waitSum += waitMinutes
}

// RevertCall removes a call that was cancelled and returned to the queue.
func (s *Statistics) RevertCall(waitMinutes int) {
	if s.called == 0 {
		return
	}
	s.called--
	s.waitSum -= waitMinutes
	if s.waitSum < 0 {
		s.waitSum = 0
	}
}

// RecordSession feeds a completed session into the session average.
func (s *Statistics) RecordSession(served time.Duration) {
	s.completed++
	s.avgSession.Add(served.Minutes())
}

// SetSessionBaseline restarts the session average from minutes.
func (s *Statistics) SetSessionBaseline(minutes float64) {
	s.avgSession.Reset(minutes)
}

// TodayWaitMinutes is the mean wait of the calls made today.
func (s *Statistics) TodayWaitMinutes() float64 {
	if s.called == 0 {
		return 0
	}
	return float64(s.waitSum) / float64(s.called)
}

// CloseDay archives the aggregate for date, folds the day's mean wait into the
// wait average and starts a new day.
func (s *Statistics) CloseDay(date string) models.DailyStatistics {
	day := models.DailyStatistics{
		Date:               date,
		TotalIssued:        s.issued,
		TotalCalled:        s.called,
		CompletedSessions:  s.completed,
		AverageWaitMinutes: math.Round(s.TodayWaitMinutes()*10) / 10,
	}
	if s.called > 0 {
		s.avgWait.Add(s.TodayWaitMinutes())
	}
	s.archive = append([]models.DailyStatistics{day}, s.archive...)
	if s.cfg.ArchiveLimit > 0 && len(s.archive) > s.cfg.ArchiveLimit {
		s.archive = s.archive[:s.cfg.ArchiveLimit]
	}
	s.ResetDay()
	return day
}

// ResetDay drops today's accumulators without archiving them.
func (s *Statistics) ResetDay() {
	s.issued, s.called, s.completed, s.waitSum = 0, 0, 0, 0
}

// LoadArchive replaces the archived days, newest first.
func (s *Statistics) LoadArchive(days []models.DailyStatistics) {
	s.archive = append([]models.DailyStatistics(nil), days...)
	if s.cfg.ArchiveLimit > 0 && len(s.archive) > s.cfg.ArchiveLimit {
		s.archive = s.archive[:s.cfg.ArchiveLimit]
	}
}

func (s *Statistics) View() models.Statistics {
	return models.Statistics{
		AverageSessionMinutes: math.Round(s.AverageSessionMinutes()*10) / 10,
		AverageWaitMinutes:    math.Round(s.AverageWaitMinutes()*10) / 10,
		IssuedToday:           s.issued,
		CalledToday:           s.called,
		CompletedToday:        s.completed,
		TodayWaitMinutes:      math.Round(s.TodayWaitMinutes()*10) / 10,
		Archive:               append([]models.DailyStatistics{}, s.archive...),
	}
}

func (s *Statistics) Clone() *Statistics {
	c := *s
	c.avgSession = s.avgSession.Clone()
	c.avgWait = s.avgWait.Clone()
	c.archive = append([]models.DailyStatistics(nil), s.archive...)
	return &c
}
