package usecase

import (
	"context"
	"time"

	"worktime/internal/modules/settings/domain"
	settingsdto "worktime/internal/modules/settings/dto"
	settingsin "worktime/internal/modules/settings/port/in"
	"worktime/internal/modules/settings/service"
)

type Interactor struct {
	svc *service.SettingsService
}

func NewInteractor(svc *service.SettingsService) settingsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Get(ctx context.Context) (settingsdto.SettingsOutput, error) {
	s, err := i.svc.Get(ctx)
	if err != nil {
		return settingsdto.SettingsOutput{}, err
	}
	return toOutput(s), nil
}

func (i *Interactor) Update(ctx context.Context, input settingsdto.UpdateInput) (settingsdto.SettingsOutput, error) {
	s, err := i.svc.Update(ctx, domain.Patch{
		Timezone:    input.Timezone,
		TimeFormat:  input.TimeFormat,
		TargetHours: input.TargetHours,
	})
	if err != nil {
		return settingsdto.SettingsOutput{}, err
	}
	return toOutput(s), nil
}

func (i *Interactor) Progress(ctx context.Context, totalSeconds int64) (settingsdto.ProgressOutput, error) {
	s, err := i.svc.Get(ctx)
	if err != nil {
		return settingsdto.ProgressOutput{}, err
	}
	return settingsdto.ProgressOutput{
		TotalSeconds: totalSeconds,
		TargetHours:  s.TargetHours,
		Percent:      domain.Progress(totalSeconds, s.TargetHours),
	}, nil
}

func toOutput(s domain.AppSettings) settingsdto.SettingsOutput {
	loc, err := s.Location()
	if err != nil {
		loc = time.Local
	}
	return settingsdto.SettingsOutput{Timezone: s.Timezone, TimeFormat: s.TimeFormat, TargetHours: s.TargetHours, Location: loc}
}
