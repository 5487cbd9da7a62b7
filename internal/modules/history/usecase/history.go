package usecase

import (
	"context"
	"fmt"
	"time"

	"worktime/internal/modules/history/domain"
	historydto "worktime/internal/modules/history/dto"
	historyin "worktime/internal/modules/history/port/in"
	"worktime/internal/modules/history/service"
	"worktime/internal/platform/clock"
	apperrors "worktime/internal/platform/errors"
)

type Interactor struct {
	svc   *service.HistoryService
	clock clock.Clock
}

func NewInteractor(svc *service.HistoryService, clock clock.Clock) historyin.Usecase {
	return &Interactor{svc: svc, clock: clock}
}

func (i *Interactor) Report(ctx context.Context, input historydto.ReportInput) (historydto.ReportOutput, error) {
	nav, err := i.navigator(input.View, input.Date, input.Location)
	if err != nil {
		return historydto.ReportOutput{}, err
	}
	return i.report(ctx, nav.ChangeDate(input.Shift))
}

func (i *Interactor) Navigate(ctx context.Context, input historydto.NavigateInput) (historydto.ReportOutput, error) {
	nav, err := i.navigator(input.View, input.Date, input.Location)
	if err != nil {
		return historydto.ReportOutput{}, err
	}
	switch input.Action {
	case historydto.ActionShift:
		nav = nav.ChangeDate(input.Delta)
	case historydto.ActionToday:
		nav = nav.JumpToToday(i.now(input.Location))
	case historydto.ActionSelectDay:
		if input.Day.IsZero() {
			return historydto.ReportOutput{}, fmt.Errorf("%w: day is required", apperrors.ErrInvalidInput)
		}
		nav = nav.SelectDay(inLocation(input.Day, input.Location))
	case historydto.ActionSelectMonth:
		if input.Month < 0 || input.Month > 11 {
			return historydto.ReportOutput{}, fmt.Errorf("%w: month index %d out of range", apperrors.ErrInvalidInput, input.Month)
		}
		nav = nav.SelectMonth(input.Month)
	case historydto.ActionView:
		mode, err := domain.ParseMode(input.Target)
		if err != nil {
			return historydto.ReportOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		nav = nav.SetMode(mode)
	default:
		return historydto.ReportOutput{}, fmt.Errorf("%w: unknown navigation %q", apperrors.ErrInvalidInput, input.Action)
	}
	return i.report(ctx, nav)
}

func (i *Interactor) Timeline(ctx context.Context, loc *time.Location) ([]historydto.BlockOutput, error) {
	blocks, err := i.svc.Timeline(ctx, i.now(loc))
	if err != nil {
		return nil, err
	}
	out := make([]historydto.BlockOutput, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, historydto.BlockOutput{Entry: toEntry(b.Entry), Left: b.Left, Width: b.Width})
	}
	return out, nil
}

func (i *Interactor) navigator(view string, date time.Time, loc *time.Location) (domain.Navigator, error) {
	mode := domain.ModeMonth
	if view != "" {
		parsed, err := domain.ParseMode(view)
		if err != nil {
			return domain.Navigator{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		mode = parsed
	}
	if date.IsZero() {
		date = i.now(loc)
	}
	return domain.Navigator{Mode: mode, Date: inLocation(date, loc)}, nil
}

func (i *Interactor) report(ctx context.Context, nav domain.Navigator) (historydto.ReportOutput, error) {
	r, err := i.svc.Report(ctx, nav)
	if err != nil {
		return historydto.ReportOutput{}, err
	}
	out := historydto.ReportOutput{
		View:         string(r.Mode),
		Label:        r.Label,
		Date:         nav.Date,
		Start:        r.Start,
		End:          r.End,
		Cells:        make([]historydto.CellOutput, 0, len(r.Cells)),
		Entries:      make([]historydto.EntryOutput, 0, len(r.Entries)),
		TotalSeconds: r.TotalSeconds,
	}
	for _, c := range r.Cells {
		out.Cells = append(out.Cells, historydto.CellOutput{
			Start:        c.Start,
			End:          c.End,
			TotalSeconds: c.TotalSeconds,
			Sessions:     len(c.Entries),
			InMonth:      c.InMonth,
		})
	}
	for _, e := range r.Entries {
		out.Entries = append(out.Entries, toEntry(e))
	}
	return out, nil
}

func (i *Interactor) now(loc *time.Location) time.Time {
	return inLocation(i.clock.Now(), loc)
}

func inLocation(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		return t
	}
	return t.In(loc)
}

func toEntry(e domain.Entry) historydto.EntryOutput {
	return historydto.EntryOutput{
		ID:              e.ID,
		Title:           e.Title,
		StartedAt:       e.Start,
		EndedAt:         e.End,
		DurationSeconds: e.DurationSeconds,
		Active:          e.Active,
	}
}
