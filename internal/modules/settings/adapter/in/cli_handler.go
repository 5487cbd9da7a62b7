package in

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	settingsdto "worktime/internal/modules/settings/dto"
	settingsin "worktime/internal/modules/settings/port/in"
	apperrors "worktime/internal/platform/errors"
)

type CLIHandler struct {
	usecase settingsin.Usecase
}

func NewCLIHandler(usecase settingsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context) (settingsdto.SettingsOutput, error) {
	return h.usecase.Get(ctx)
}

func (h CLIHandler) Progress(ctx context.Context, totalSeconds int64) (settingsdto.ProgressOutput, error) {
	return h.usecase.Progress(ctx, totalSeconds)
}

// Set updates one setting by key. Keys accept both camelCase and
// kebab-case spellings.
func (h CLIHandler) Set(ctx context.Context, key, value string) (settingsdto.SettingsOutput, error) {
	input := settingsdto.UpdateInput{}
	switch strings.ToLower(strings.ReplaceAll(key, "-", "")) {
	case "timezone":
		input.Timezone = &value
	case "timeformat":
		input.TimeFormat = &value
	case "targethours":
		hours, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return settingsdto.SettingsOutput{}, fmt.Errorf("%w: target hours %q is not a number", apperrors.ErrInvalidInput, value)
		}
		input.TargetHours = &hours
	default:
		return settingsdto.SettingsOutput{}, fmt.Errorf("%w: unknown setting %q", apperrors.ErrInvalidInput, key)
	}
	return h.usecase.Update(ctx, input)
}
