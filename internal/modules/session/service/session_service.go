package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"worktime/internal/modules/session/domain"
	sessionout "worktime/internal/modules/session/port/out"
	"worktime/internal/platform/clock"
	apperrors "worktime/internal/platform/errors"
	"worktime/internal/platform/id"
)

const TickInterval = time.Second

// SessionService owns the completed-session list and the single active
// session. Every mutation writes the store first and commits to memory only
// once the write succeeded.
type SessionService struct {
	clock  clock.Clock
	idGen  id.Generator
	store  sessionout.SessionStore
	active sessionout.ActiveSessionStore
	logger *slog.Logger

	mu       sync.Mutex
	sessions []domain.WorkSession
	current  *domain.WorkSession
	elapsed  int64
	tick     clock.Timer
	tickGen  uint64
	closed   bool
}

// Snapshot is a consistent copy of the tracker state.
type Snapshot struct {
	Sessions       []domain.WorkSession
	Active         *domain.WorkSession
	ElapsedSeconds int64
}

func NewSessionService(clock clock.Clock, idGen id.Generator, store sessionout.SessionStore, active sessionout.ActiveSessionStore, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SessionService{
		clock:    clock,
		idGen:    idGen,
		store:    store,
		active:   active,
		logger:   logger,
		sessions: []domain.WorkSession{},
	}
}

// Restore loads persisted state. A recovered active session resumes ticking
// with its elapsed time computed from the persisted start.
func (s *SessionService) Restore(ctx context.Context) error {
	sessions, err := s.store.LoadSessions(ctx)
	if err != nil {
		return err
	}
	domain.SortNewestFirst(sessions)

	var current *domain.WorkSession
	active, err := s.active.LoadActive(ctx)
	switch {
	case err == nil:
		if domain.IndexByID(sessions, active.ID) >= 0 {
			s.logger.Warn("active session already recorded as completed, clearing", "id", active.ID)
			if cerr := s.active.ClearActive(ctx); cerr != nil {
				return cerr
			}
		} else {
			active.EndTime = nil
			current = &active
		}
	case errors.Is(err, apperrors.ErrNoActiveSession):
	default:
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = sessions
	s.current = current
	if current != nil {
		s.startTickerLocked()
		s.logger.Info("resumed active session", "id", current.ID, "elapsed_seconds", s.elapsed)
	}
	return nil
}

func (s *SessionService) Start(ctx context.Context, title, description string, offsetMinutes int) (domain.WorkSession, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.WorkSession{}, fmt.Errorf("%w: title is required", apperrors.ErrInvalidInput)
	}
	if offsetMinutes < 0 || offsetMinutes > domain.MaxStartOffsetMinutes {
		return domain.WorkSession{}, fmt.Errorf("%w: offset must be between 0 and %d minutes", apperrors.ErrInvalidInput, domain.MaxStartOffsetMinutes)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.WorkSession{}, fmt.Errorf("tracker is closed")
	}
	if s.current != nil {
		return domain.WorkSession{}, apperrors.ErrActiveSessionExists
	}

	started := s.clock.Now().Add(-time.Duration(offsetMinutes) * time.Minute)
	session := domain.WorkSession{
		ID:          s.idGen.New(),
		Title:       title,
		Description: strings.TrimSpace(description),
		StartTime:   started.UnixMilli(),
	}
	if err := s.active.SaveActive(ctx, session); err != nil {
		return domain.WorkSession{}, err
	}
	s.current = &session
	s.startTickerLocked()
	s.logger.Info("session started", "id", session.ID, "title", session.Title, "offset_minutes", offsetMinutes)
	return session, nil
}

// StopResult reports how StopAt ended the active session. Session is the
// recorded session, or the dropped one when Discarded is set.
type StopResult struct {
	Session   domain.WorkSession
	Recorded  bool
	Discarded bool
}

// Stop ends the active session now.
func (s *SessionService) Stop(ctx context.Context) (StopResult, error) {
	return s.StopAt(ctx, s.clock.Now().UnixMilli())
}

// StopAt ends the active session at endMs. An end before the start discards
// the session instead of recording it. Without an active session it is a
// no-op.
func (s *SessionService) StopAt(ctx context.Context, endMs int64) (StopResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return StopResult{}, nil
	}

	sealed, ok := s.current.Seal(endMs)
	if !ok {
		s.logger.Warn("stop time precedes start, discarding session", "id", s.current.ID)
		dropped := *s.current
		if err := s.discardLocked(ctx); err != nil {
			return StopResult{}, err
		}
		return StopResult{Session: dropped, Discarded: true}, nil
	}

	next := domain.Insert(s.sessions, sealed)
	if err := s.store.SaveSessions(ctx, next); err != nil {
		return StopResult{}, err
	}
	s.sessions = next
	s.current = nil
	s.stopTickerLocked()
	s.logger.Info("session stopped", "id", sealed.ID, "duration_seconds", sealed.DurationSeconds)
	res := StopResult{Session: sealed, Recorded: true}
	if err := s.active.ClearActive(ctx); err != nil {
		return res, err
	}
	return res, nil
}

// Discard drops the active session without recording it.
func (s *SessionService) Discard(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return false, nil
	}
	if err := s.discardLocked(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (s *SessionService) discardLocked(ctx context.Context) error {
	if err := s.active.ClearActive(ctx); err != nil {
		return err
	}
	s.logger.Info("session discarded", "id", s.current.ID)
	s.current = nil
	s.stopTickerLocked()
	return nil
}

// Update replaces the completed session with the same id. Unknown ids are
// reported as false without touching the store.
func (s *SessionService) Update(ctx context.Context, session domain.WorkSession) (bool, error) {
	session.Title = strings.TrimSpace(session.Title)
	if session.EndTime == nil {
		return false, fmt.Errorf("%w: completed session requires an end time", apperrors.ErrInvalidInput)
	}
	if err := session.Validate(); err != nil {
		return false, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	session.DurationSeconds = domain.ElapsedSeconds(session.StartTime, *session.EndTime)

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := domain.IndexByID(s.sessions, session.ID)
	if idx < 0 {
		return false, nil
	}
	next := domain.Clone(s.sessions)
	next[idx] = session
	domain.SortNewestFirst(next)
	if err := s.store.SaveSessions(ctx, next); err != nil {
		return false, err
	}
	s.sessions = next
	s.logger.Info("session updated", "id", session.ID)
	return true, nil
}

func (s *SessionService) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := domain.IndexByID(s.sessions, id)
	if idx < 0 {
		return false, nil
	}
	next := make([]domain.WorkSession, 0, len(s.sessions)-1)
	next = append(next, s.sessions[:idx]...)
	next = append(next, s.sessions[idx+1:]...)
	if err := s.store.SaveSessions(ctx, next); err != nil {
		return false, err
	}
	s.sessions = next
	s.logger.Info("session deleted", "id", id)
	return true, nil
}

func (s *SessionService) Get(id string) (domain.WorkSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := domain.IndexByID(s.sessions, id)
	if idx < 0 {
		return domain.WorkSession{}, false
	}
	return domain.Clone(s.sessions[idx : idx+1])[0], true
}

func (s *SessionService) Sessions() []domain.WorkSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Clone(s.sessions)
}

// SessionsInRange returns completed sessions with startMs <= start < endMs.
func (s *SessionService) SessionsInRange(startMs, endMs int64) []domain.WorkSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Clone(domain.InRange(s.sessions, startMs, endMs))
}

func (s *SessionService) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{Sessions: domain.Clone(s.sessions)}
	if s.current != nil {
		active := *s.current
		snap.Active = &active
		snap.ElapsedSeconds = domain.ElapsedSeconds(active.StartTime, s.clock.Now().UnixMilli())
	}
	return snap
}

// ElapsedSeconds is the value published by the last tick.
func (s *SessionService) ElapsedSeconds() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// Close stops the tick loop. The active session stays persisted.
func (s *SessionService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.stopTickerLocked()
}
