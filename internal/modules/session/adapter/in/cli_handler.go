package in

import (
	"context"
	"time"

	sessiondto "worktime/internal/modules/session/dto"
	sessionin "worktime/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, title, description string, offsetMinutes int) (sessiondto.SessionOutput, error) {
	return h.usecase.Start(ctx, sessiondto.StartInput{Title: title, Description: description, OffsetMinutes: offsetMinutes})
}

func (h CLIHandler) Stop(ctx context.Context) (sessiondto.StopOutput, error) {
	return h.usecase.Stop(ctx)
}

func (h CLIHandler) Discard(ctx context.Context) (bool, error) {
	return h.usecase.Discard(ctx)
}

func (h CLIHandler) Status(ctx context.Context, loc *time.Location) (sessiondto.StatusOutput, error) {
	return h.usecase.Status(ctx, loc)
}

func (h CLIHandler) List(ctx context.Context) ([]sessiondto.SessionOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) ListRange(ctx context.Context, from, to time.Time) ([]sessiondto.SessionOutput, error) {
	return h.usecase.SessionsInRange(ctx, from, to)
}

// Edit applies only the fields that are set, keeping the rest of the stored
// session.
func (h CLIHandler) Edit(ctx context.Context, id string, title, description *string, start, end *time.Time) (sessiondto.SessionOutput, error) {
	current, err := h.usecase.Get(ctx, id)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	input := sessiondto.UpdateInput{
		ID:          current.ID,
		Title:       current.Title,
		Description: current.Description,
		StartedAt:   current.StartedAt,
		EndedAt:     current.EndedAt,
	}
	if title != nil {
		input.Title = *title
	}
	if description != nil {
		input.Description = *description
	}
	if start != nil {
		input.StartedAt = *start
	}
	if end != nil {
		input.EndedAt = *end
	}
	if _, err := h.usecase.Update(ctx, input); err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) Delete(ctx context.Context, id string) (bool, error) {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) Import(ctx context.Context, payload []byte) (sessiondto.ImportOutput, error) {
	return h.usecase.Import(ctx, payload)
}

func (h CLIHandler) Export(ctx context.Context) ([]byte, error) {
	return h.usecase.Export(ctx)
}
