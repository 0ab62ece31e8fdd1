package service

import (
	"context"
	"time"

	"github.com/vogiaan1904/ticketbottle-counter/internal/counter"
	"github.com/vogiaan1904/ticketbottle-counter/internal/models"
)

func (s *counterService) AddSeat(ctx context.Context, in AddSeatInput) (*models.Seat, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	var out models.Seat
	err := s.apply(ctx, CmdAddSeat, func(e *counter.Engine, _ time.Time) ([]effect, error) {
		out = e.AddSeat(in.Label)
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *counterService) RenameSeat(ctx context.Context, in RenameSeatInput) error {
	if err := s.validateInput(in); err != nil {
		return err
	}
	return s.apply(ctx, CmdRenameSeat, func(e *counter.Engine, _ time.Time) ([]effect, error) {
		return nil, e.RenameSeat(in.SeatID, in.Label)
	})
}

func (s *counterService) RemoveSeat(ctx context.Context, in RemoveSeatInput) (*models.Seat, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	var out models.Seat
	err := s.apply(ctx, CmdRemoveSeat, func(e *counter.Engine, now time.Time) ([]effect, error) {
		removed, err := e.RemoveSeat(now, in.SeatID)
		if err != nil {
			return nil, err
		}
		out = removed
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *counterService) SetWaitMinutes(ctx context.Context, in SetWaitMinutesInput) error {
	if err := s.validateInput(in); err != nil {
		return err
	}
	return s.apply(ctx, CmdSetWaitMinutes, func(e *counter.Engine, _ time.Time) ([]effect, error) {
		e.SetWaitMinutes(in.Minutes)
		return nil, nil
	})
}

func (s *counterService) ClearTickets(ctx context.Context) (*ClearOutput, error) {
	var out ClearOutput
	err := s.apply(ctx, CmdClearTickets, func(e *counter.Engine, _ time.Time) ([]effect, error) {
		out.Cleared = e.ClearTickets()
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *counterService) ClearHistory(ctx context.Context) (*ClearOutput, error) {
	var out ClearOutput
	err := s.apply(ctx, CmdClearHistory, func(e *counter.Engine, _ time.Time) ([]effect, error) {
		out.Cleared = e.ClearHistory()
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *counterService) UpdateSettings(ctx context.Context, in UpdateSettingsInput) (*models.Settings, error) {
	var out models.Settings
	err := s.apply(ctx, CmdUpdateSettings, func(e *counter.Engine, _ time.Time) ([]effect, error) {
		out = e.UpdateSettings(counter.SettingsPatch{
			ShowEstimatedWaitTime: in.ShowEstimatedWaitTime,
			ShowPersonalStatus:    in.ShowPersonalStatus,
		})
		return []effect{s.persistSettings(out)}, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
