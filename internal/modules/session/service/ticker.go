package service

import "worktime/internal/modules/session/domain"

// The tick loop is a chain of one-shot timers. Each chain carries the
// generation it was started under, so a chain outliving its session stops
// at its next fire.

func (s *SessionService) startTickerLocked() {
	s.stopTickerLocked()
	s.tickGen++
	s.recomputeLocked()
	s.scheduleLocked(s.tickGen)
}

func (s *SessionService) stopTickerLocked() {
	if s.tick != nil {
		s.tick.Stop()
		s.tick = nil
	}
	s.tickGen++
	s.elapsed = 0
}

func (s *SessionService) scheduleLocked(gen uint64) {
	if s.closed {
		return
	}
	s.tick = s.clock.AfterFunc(TickInterval, func() { s.onTick(gen) })
}

func (s *SessionService) onTick(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.tickGen || s.current == nil {
		return
	}
	s.recomputeLocked()
	s.scheduleLocked(gen)
}

func (s *SessionService) recomputeLocked() {
	if s.current == nil {
		s.elapsed = 0
		return
	}
	s.elapsed = domain.ElapsedSeconds(s.current.StartTime, s.clock.Now().UnixMilli())
}
