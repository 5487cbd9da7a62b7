package out

import (
	"context"
	"fmt"

	"worktime/internal/modules/settings/domain"
	settingsout "worktime/internal/modules/settings/port/out"
	"worktime/internal/platform/kv"
)

type KVSettingsStore struct {
	kv kv.Store
}

func NewKVSettingsStore(store kv.Store) settingsout.SettingsStore {
	return &KVSettingsStore{kv: store}
}

func (s *KVSettingsStore) Load(ctx context.Context, base domain.AppSettings) (domain.AppSettings, error) {
	out := base
	if _, err := kv.GetJSON(ctx, s.kv, kv.KeySettings, &out); err != nil {
		return base, fmt.Errorf("load settings: %w", err)
	}
	return out, nil
}

func (s *KVSettingsStore) Save(ctx context.Context, settings domain.AppSettings) error {
	if err := kv.SetJSON(ctx, s.kv, kv.KeySettings, settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
