package out

import (
	"context"
	"fmt"

	"worktime/internal/modules/session/domain"
	sessionout "worktime/internal/modules/session/port/out"
	apperrors "worktime/internal/platform/errors"
	"worktime/internal/platform/kv"
)

// KVSessionStore keeps the completed list under "sessions" and the running
// session under "activeSession" of the same kv.Store.
type KVSessionStore struct {
	kv kv.Store
}

func NewKVSessionStore(store kv.Store) *KVSessionStore {
	return &KVSessionStore{kv: store}
}

var (
	_ sessionout.SessionStore       = (*KVSessionStore)(nil)
	_ sessionout.ActiveSessionStore = (*KVSessionStore)(nil)
)

func (s *KVSessionStore) LoadSessions(ctx context.Context) ([]domain.WorkSession, error) {
	sessions := []domain.WorkSession{}
	if _, err := kv.GetJSON(ctx, s.kv, kv.KeySessions, &sessions); err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	if sessions == nil {
		sessions = []domain.WorkSession{}
	}
	return sessions, nil
}

func (s *KVSessionStore) SaveSessions(ctx context.Context, sessions []domain.WorkSession) error {
	if sessions == nil {
		sessions = []domain.WorkSession{}
	}
	if err := kv.SetJSON(ctx, s.kv, kv.KeySessions, sessions); err != nil {
		return fmt.Errorf("save sessions: %w", err)
	}
	return nil
}

func (s *KVSessionStore) SaveActive(ctx context.Context, session domain.WorkSession) error {
	if err := kv.SetJSON(ctx, s.kv, kv.KeyActiveSession, session); err != nil {
		return fmt.Errorf("save active session: %w", err)
	}
	return nil
}

func (s *KVSessionStore) LoadActive(ctx context.Context) (domain.WorkSession, error) {
	active := domain.WorkSession{}
	ok, err := kv.GetJSON(ctx, s.kv, kv.KeyActiveSession, &active)
	if err != nil {
		return domain.WorkSession{}, fmt.Errorf("load active session: %w", err)
	}
	if !ok || active.ID == "" {
		return domain.WorkSession{}, apperrors.ErrNoActiveSession
	}
	return active, nil
}

func (s *KVSessionStore) ClearActive(ctx context.Context) error {
	if err := s.kv.Remove(ctx, kv.KeyActiveSession); err != nil {
		return fmt.Errorf("clear active session: %w", err)
	}
	return nil
}
