package service

import (
	"context"
	"time"

	"worktime/internal/modules/history/domain"
	historyout "worktime/internal/modules/history/port/out"
)

type HistoryService struct {
	source historyout.SessionSource
}

func NewHistoryService(source historyout.SessionSource) *HistoryService {
	return &HistoryService{source: source}
}

// Report aggregates the view nav points at. Buckets are computed in the
// location of nav.Date.
func (s *HistoryService) Report(ctx context.Context, nav domain.Navigator) (domain.Report, error) {
	start, end := nav.FetchRange()
	entries, err := s.source.Entries(ctx, start, end)
	if err != nil {
		return domain.Report{}, err
	}
	return domain.BuildReport(entries, nav), nil
}

// Timeline lays out the day of now including the running session.
func (s *HistoryService) Timeline(ctx context.Context, now time.Time) ([]domain.Block, error) {
	start, end := domain.DayRange(now)
	entries, err := s.source.Entries(ctx, start, end)
	if err != nil {
		return nil, err
	}
	active, err := s.source.Active(ctx)
	if err != nil {
		return nil, err
	}
	if active != nil {
		a := *active
		a.Start = a.Start.In(now.Location())
		active = &a
	}
	return domain.Timeline(entries, active, now), nil
}
