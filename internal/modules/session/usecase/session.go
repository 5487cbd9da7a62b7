package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"worktime/internal/modules/session/domain"
	sessiondto "worktime/internal/modules/session/dto"
	sessionin "worktime/internal/modules/session/port/in"
	"worktime/internal/modules/session/service"
	"worktime/internal/platform/clock"
	apperrors "worktime/internal/platform/errors"
)

type Interactor struct {
	svc   *service.SessionService
	clock clock.Clock
}

func NewInteractor(svc *service.SessionService, clock clock.Clock) sessionin.Usecase {
	return &Interactor{svc: svc, clock: clock}
}

func (i *Interactor) Start(ctx context.Context, input sessiondto.StartInput) (sessiondto.SessionOutput, error) {
	session, err := i.svc.Start(ctx, input.Title, input.Description, input.OffsetMinutes)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) Stop(ctx context.Context) (sessiondto.StopOutput, error) {
	return i.StopAt(ctx, i.clock.Now())
}

func (i *Interactor) StopAt(ctx context.Context, at time.Time) (sessiondto.StopOutput, error) {
	res, err := i.svc.StopAt(ctx, at.UnixMilli())
	if err != nil {
		return sessiondto.StopOutput{}, err
	}
	out := sessiondto.StopOutput{Recorded: res.Recorded, Discarded: res.Discarded}
	if res.Recorded || res.Discarded {
		out.Session = toOutput(res.Session)
	}
	return out, nil
}

func (i *Interactor) Discard(ctx context.Context) (bool, error) {
	return i.svc.Discard(ctx)
}

func (i *Interactor) Update(ctx context.Context, input sessiondto.UpdateInput) (bool, error) {
	if strings.TrimSpace(input.ID) == "" {
		return false, fmt.Errorf("%w: session id is required", apperrors.ErrInvalidInput)
	}
	if input.StartedAt.IsZero() || input.EndedAt.IsZero() {
		return false, fmt.Errorf("%w: start and end are required", apperrors.ErrInvalidInput)
	}
	end := input.EndedAt.UnixMilli()
	return i.svc.Update(ctx, domain.WorkSession{
		ID:          input.ID,
		Title:       input.Title,
		Description: input.Description,
		StartTime:   input.StartedAt.UnixMilli(),
		EndTime:     &end,
	})
}

func (i *Interactor) Delete(ctx context.Context, id string) (bool, error) {
	return i.svc.Delete(ctx, id)
}

func (i *Interactor) Get(_ context.Context, id string) (sessiondto.SessionOutput, error) {
	session, ok := i.svc.Get(id)
	if !ok {
		return sessiondto.SessionOutput{}, fmt.Errorf("%w: session %s", apperrors.ErrNotFound, id)
	}
	return toOutput(session), nil
}

func (i *Interactor) List(_ context.Context) ([]sessiondto.SessionOutput, error) {
	return toOutputs(i.svc.Sessions()), nil
}

func (i *Interactor) SessionsInRange(_ context.Context, start, end time.Time) ([]sessiondto.SessionOutput, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: range end precedes start", apperrors.ErrInvalidInput)
	}
	return toOutputs(i.svc.SessionsInRange(start.UnixMilli(), end.UnixMilli())), nil
}

func (i *Interactor) Import(ctx context.Context, payload []byte) (sessiondto.ImportOutput, error) {
	imported, skipped, err := i.svc.Import(ctx, payload)
	if err != nil {
		return sessiondto.ImportOutput{}, err
	}
	return sessiondto.ImportOutput{Imported: imported, Skipped: skipped}, nil
}

func (i *Interactor) Export(_ context.Context) ([]byte, error) {
	return i.svc.Export()
}

// Status reports the active session and the sessions started since midnight
// in loc. A nil loc uses the clock's zone. TotalSecondsToday includes the
// running session's elapsed seconds.
func (i *Interactor) Status(_ context.Context, loc *time.Location) (sessiondto.StatusOutput, error) {
	snap := i.svc.Snapshot()
	now := i.clock.Now()
	if loc != nil {
		now = now.In(loc)
	}
	dayStart := clock.StartOfDay(now)
	dayEnd := dayStart.AddDate(0, 0, 1)
	today := domain.InRange(snap.Sessions, dayStart.UnixMilli(), dayEnd.UnixMilli())

	out := sessiondto.StatusOutput{
		TodaySessions:     toOutputs(today),
		TotalSecondsToday: domain.TotalSeconds(today),
	}
	if snap.Active != nil {
		out.Tracking = true
		out.Active = toOutput(*snap.Active)
		out.ElapsedSeconds = snap.ElapsedSeconds
		out.TotalSecondsToday += snap.ElapsedSeconds
	}
	return out, nil
}

func toOutput(s domain.WorkSession) sessiondto.SessionOutput {
	out := sessiondto.SessionOutput{
		ID:              s.ID,
		Title:           s.Title,
		Description:     s.Description,
		StartedAt:       s.StartedAt(),
		DurationSeconds: s.DurationSeconds,
		Active:          s.IsActive(),
	}
	if ended, ok := s.EndedAt(); ok {
		out.EndedAt = ended
	}
	return out
}

func toOutputs(list []domain.WorkSession) []sessiondto.SessionOutput {
	out := make([]sessiondto.SessionOutput, 0, len(list))
	for _, s := range list {
		out = append(out, toOutput(s))
	}
	return out
}
