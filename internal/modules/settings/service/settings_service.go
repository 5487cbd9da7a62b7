package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"worktime/internal/modules/settings/domain"
	settingsout "worktime/internal/modules/settings/port/out"
	apperrors "worktime/internal/platform/errors"
)

type SettingsService struct {
	store  settingsout.SettingsStore
	logger *slog.Logger
}

func NewSettingsService(store settingsout.SettingsStore, logger *slog.Logger) *SettingsService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SettingsService{store: store, logger: logger}
}

// Get returns the stored settings over the defaults. Fields that fail
// validation fall back to their default.
func (s *SettingsService) Get(ctx context.Context) (domain.AppSettings, error) {
	stored, err := s.store.Load(ctx, domain.Defaults())
	if err != nil {
		return domain.AppSettings{}, err
	}
	if verr := stored.Validate(); verr != nil {
		s.logger.Warn("stored settings invalid, using defaults for bad fields", "error", verr)
		stored = stored.Sanitize()
	}
	return stored, nil
}

func (s *SettingsService) Update(ctx context.Context, patch domain.Patch) (domain.AppSettings, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return domain.AppSettings{}, err
	}
	next := current.Apply(patch)
	if err := next.Validate(); err != nil {
		return domain.AppSettings{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := s.store.Save(ctx, next); err != nil {
		return domain.AppSettings{}, err
	}
	s.logger.Info("settings updated", "timezone", next.Timezone, "time_format", next.TimeFormat, "target_hours", next.TargetHours)
	return next, nil
}
