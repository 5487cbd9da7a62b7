package out

import (
	"context"

	"worktime/internal/modules/session/domain"
)

// SessionStore persists the whole completed-session list as one value.
type SessionStore interface {
	LoadSessions(ctx context.Context) ([]domain.WorkSession, error)
	SaveSessions(ctx context.Context, sessions []domain.WorkSession) error
}

type ActiveSessionStore interface {
	SaveActive(ctx context.Context, session domain.WorkSession) error
	LoadActive(ctx context.Context) (domain.WorkSession, error)
	ClearActive(ctx context.Context) error
}
