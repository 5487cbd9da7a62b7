package in

import (
	"context"
	"time"

	"worktime/internal/modules/session/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.SessionOutput, error)
	Stop(ctx context.Context) (dto.StopOutput, error)
	StopAt(ctx context.Context, at time.Time) (dto.StopOutput, error)
	Discard(ctx context.Context) (bool, error)
	Update(ctx context.Context, input dto.UpdateInput) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Get(ctx context.Context, id string) (dto.SessionOutput, error)
	List(ctx context.Context) ([]dto.SessionOutput, error)
	SessionsInRange(ctx context.Context, start, end time.Time) ([]dto.SessionOutput, error)
	Import(ctx context.Context, payload []byte) (dto.ImportOutput, error)
	Export(ctx context.Context) ([]byte, error)
	Status(ctx context.Context, loc *time.Location) (dto.StatusOutput, error)
}
