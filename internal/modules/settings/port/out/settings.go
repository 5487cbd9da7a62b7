package out

import (
	"context"

	"worktime/internal/modules/settings/domain"
)

type SettingsStore interface {
	// Load decodes the stored blob over base, so absent fields keep their
	// base value.
	Load(ctx context.Context, base domain.AppSettings) (domain.AppSettings, error)
	Save(ctx context.Context, settings domain.AppSettings) error
}
