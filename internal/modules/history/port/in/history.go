package in

import (
	"context"
	"time"

	"worktime/internal/modules/history/dto"
)

type Usecase interface {
	Report(ctx context.Context, input dto.ReportInput) (dto.ReportOutput, error)
	Navigate(ctx context.Context, input dto.NavigateInput) (dto.ReportOutput, error)
	Timeline(ctx context.Context, loc *time.Location) ([]dto.BlockOutput, error)
}
