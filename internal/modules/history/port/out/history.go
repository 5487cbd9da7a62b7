package out

import (
	"context"
	"time"

	"worktime/internal/modules/history/domain"
)

// SessionSource supplies completed sessions and the running one.
type SessionSource interface {
	Entries(ctx context.Context, start, end time.Time) ([]domain.Entry, error)
	Active(ctx context.Context) (*domain.Entry, error)
}
