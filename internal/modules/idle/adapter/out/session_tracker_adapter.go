package out

import (
	"context"
	"time"

	idleout "worktime/internal/modules/idle/port/out"
	sessionin "worktime/internal/modules/session/port/in"
)

type SessionTrackerAdapter struct {
	sessions sessionin.Usecase
}

func NewSessionTrackerAdapter(sessions sessionin.Usecase) idleout.Tracker {
	return &SessionTrackerAdapter{sessions: sessions}
}

func (a *SessionTrackerAdapter) StopAt(ctx context.Context, at time.Time) (idleout.StopResult, error) {
	out, err := a.sessions.StopAt(ctx, at)
	if err != nil {
		return idleout.StopResult{}, err
	}
	return idleout.StopResult{Recorded: out.Recorded, Discarded: out.Discarded, SessionID: out.Session.ID}, nil
}

func (a *SessionTrackerAdapter) Discard(ctx context.Context) (bool, error) {
	return a.sessions.Discard(ctx)
}
