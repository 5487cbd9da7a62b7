package in

import (
	"context"
	"time"

	historydto "worktime/internal/modules/history/dto"
	historyin "worktime/internal/modules/history/port/in"
)

// Handler serves both the report command and the history tab.
type Handler struct {
	usecase historyin.Usecase
}

func NewHandler(usecase historyin.Usecase) Handler {
	return Handler{usecase: usecase}
}

func (h Handler) Report(ctx context.Context, view string, date time.Time, shift int, loc *time.Location) (historydto.ReportOutput, error) {
	return h.usecase.Report(ctx, historydto.ReportInput{View: view, Date: date, Shift: shift, Location: loc})
}

func (h Handler) Shift(ctx context.Context, cur historydto.ReportOutput, delta int, loc *time.Location) (historydto.ReportOutput, error) {
	return h.navigate(ctx, cur, historydto.NavigateInput{Action: historydto.ActionShift, Delta: delta}, loc)
}

func (h Handler) Today(ctx context.Context, cur historydto.ReportOutput, loc *time.Location) (historydto.ReportOutput, error) {
	return h.navigate(ctx, cur, historydto.NavigateInput{Action: historydto.ActionToday}, loc)
}

func (h Handler) SelectDay(ctx context.Context, cur historydto.ReportOutput, day time.Time, loc *time.Location) (historydto.ReportOutput, error) {
	return h.navigate(ctx, cur, historydto.NavigateInput{Action: historydto.ActionSelectDay, Day: day}, loc)
}

func (h Handler) SelectMonth(ctx context.Context, cur historydto.ReportOutput, month int, loc *time.Location) (historydto.ReportOutput, error) {
	return h.navigate(ctx, cur, historydto.NavigateInput{Action: historydto.ActionSelectMonth, Month: month}, loc)
}

func (h Handler) SetView(ctx context.Context, cur historydto.ReportOutput, view string, loc *time.Location) (historydto.ReportOutput, error) {
	return h.navigate(ctx, cur, historydto.NavigateInput{Action: historydto.ActionView, Target: view}, loc)
}

func (h Handler) Timeline(ctx context.Context, loc *time.Location) ([]historydto.BlockOutput, error) {
	return h.usecase.Timeline(ctx, loc)
}

func (h Handler) navigate(ctx context.Context, cur historydto.ReportOutput, input historydto.NavigateInput, loc *time.Location) (historydto.ReportOutput, error) {
	input.View = cur.View
	input.Date = cur.Date
	input.Location = loc
	return h.usecase.Navigate(ctx, input)
}
