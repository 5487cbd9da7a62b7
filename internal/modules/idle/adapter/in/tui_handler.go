package in

import (
	"context"

	idledto "worktime/internal/modules/idle/dto"
	idlein "worktime/internal/modules/idle/port/in"
)

type TUIHandler struct {
	usecase idlein.Usecase
}

func NewTUIHandler(usecase idlein.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Activity(kind string) {
	h.usecase.Activity(kind)
}

func (h TUIHandler) State(ctx context.Context) idledto.StateOutput {
	return h.usecase.State(ctx)
}

func (h TUIHandler) Resume(ctx context.Context) (idledto.ResolveOutput, error) {
	return h.usecase.Resolve(ctx, "resume")
}

func (h TUIHandler) Stop(ctx context.Context) (idledto.ResolveOutput, error) {
	return h.usecase.Resolve(ctx, "stop")
}

func (h TUIHandler) Discard(ctx context.Context) (idledto.ResolveOutput, error) {
	return h.usecase.Resolve(ctx, "discard")
}
