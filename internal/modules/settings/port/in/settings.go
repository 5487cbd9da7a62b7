package in

import (
	"context"

	"worktime/internal/modules/settings/dto"
)

type Usecase interface {
	Get(ctx context.Context) (dto.SettingsOutput, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.SettingsOutput, error)
	Progress(ctx context.Context, totalSeconds int64) (dto.ProgressOutput, error)
}
