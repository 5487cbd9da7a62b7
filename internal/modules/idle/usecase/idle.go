package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"worktime/internal/modules/idle/domain"
	idledto "worktime/internal/modules/idle/dto"
	idlein "worktime/internal/modules/idle/port/in"
	idleout "worktime/internal/modules/idle/port/out"
	"worktime/internal/modules/idle/service"
	"worktime/internal/platform/clock"
	apperrors "worktime/internal/platform/errors"
)

type Interactor struct {
	watchdog *service.Watchdog
	tracker  idleout.Tracker
	clock    clock.Clock
	logger   *slog.Logger
}

func NewInteractor(watchdog *service.Watchdog, tracker idleout.Tracker, clock clock.Clock, logger *slog.Logger) idlein.Usecase {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Interactor{watchdog: watchdog, tracker: tracker, clock: clock, logger: logger}
}

func (i *Interactor) Activity(kind string) {
	i.watchdog.Activity(domain.ActivityKind(kind))
}

func (i *Interactor) State(_ context.Context) idledto.StateOutput {
	state := i.watchdog.State()
	out := idledto.StateOutput{Idle: state.Idle, LastActive: state.LastActive}
	if state.Idle {
		out.IdleFor = state.IdleFor(i.clock.Now())
	}
	return out
}

// Resolve applies the user's answer to the idle prompt and re-arms the
// watchdog. Stopping ends the session at the last moment the user was seen.
func (i *Interactor) Resolve(ctx context.Context, resolution string) (idledto.ResolveOutput, error) {
	r, err := domain.ParseResolution(resolution)
	if err != nil {
		return idledto.ResolveOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	out := idledto.ResolveOutput{Resolution: string(r)}
	state := i.watchdog.State()

	switch r {
	case domain.ResolutionStop:
		res, err := i.tracker.StopAt(ctx, state.LastActive)
		if err != nil {
			return idledto.ResolveOutput{}, err
		}
		out.Recorded, out.Discarded, out.SessionID = res.Recorded, res.Discarded, res.SessionID
	case domain.ResolutionDiscard:
		discarded, err := i.tracker.Discard(ctx)
		if err != nil {
			return idledto.ResolveOutput{}, err
		}
		out.Discarded = discarded
	}

	i.watchdog.ResetIdle()
	i.logger.Info("idle resolved", "resolution", r, "recorded", out.Recorded, "discarded", out.Discarded)
	return out, nil
}
