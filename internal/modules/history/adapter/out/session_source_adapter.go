package out

import (
	"context"
	"time"

	"worktime/internal/modules/history/domain"
	historyout "worktime/internal/modules/history/port/out"
	sessiondto "worktime/internal/modules/session/dto"
	sessionin "worktime/internal/modules/session/port/in"
)

type SessionSourceAdapter struct {
	sessions sessionin.Usecase
}

func NewSessionSourceAdapter(sessions sessionin.Usecase) historyout.SessionSource {
	return &SessionSourceAdapter{sessions: sessions}
}

func (a *SessionSourceAdapter) Entries(ctx context.Context, start, end time.Time) ([]domain.Entry, error) {
	sessions, err := a.sessions.SessionsInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Entry, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toEntry(s, start.Location()))
	}
	return out, nil
}

func (a *SessionSourceAdapter) Active(ctx context.Context) (*domain.Entry, error) {
	status, err := a.sessions.Status(ctx, nil)
	if err != nil {
		return nil, err
	}
	if !status.Tracking {
		return nil, nil
	}
	e := toEntry(status.Active, time.Local)
	e.DurationSeconds = status.ElapsedSeconds
	return &e, nil
}

func toEntry(s sessiondto.SessionOutput, loc *time.Location) domain.Entry {
	e := domain.Entry{
		ID:              s.ID,
		Title:           s.Title,
		Start:           s.StartedAt.In(loc),
		DurationSeconds: s.DurationSeconds,
		Active:          s.Active,
	}
	if !s.EndedAt.IsZero() {
		e.End = s.EndedAt.In(loc)
	}
	return e
}
