package in

import (
	"context"

	"worktime/internal/modules/idle/dto"
)

type Usecase interface {
	Activity(kind string)
	State(ctx context.Context) dto.StateOutput
	Resolve(ctx context.Context, resolution string) (dto.ResolveOutput, error)
}
