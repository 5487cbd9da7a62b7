package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"worktime/internal/modules/session/domain"
	apperrors "worktime/internal/platform/errors"
)

// maxImportMillis bounds imported timestamps to the range a JavaScript Date
// can represent, well inside int64.
const maxImportMillis = 8.64e15

// importRow accepts the loosely typed rows found in hand-edited or foreign
// exports: numeric ids and fractional timestamps are tolerated.
type importRow struct {
	ID              json.RawMessage `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	StartTime       float64         `json:"startTime"`
	EndTime         *float64        `json:"endTime"`
	DurationSeconds float64         `json:"durationSeconds"`
}

// Import merges the sessions in payload into the completed list. Rows that
// cannot be decoded, lack an id or start time, or whose id is already known
// are skipped. A payload that is not a JSON array changes nothing.
func (s *SessionService) Import(ctx context.Context, payload []byte) (imported, skipped int, err error) {
	rows, err := decodeImportPayload(payload)
	if err != nil {
		return 0, 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(s.sessions)+len(rows))
	for _, existing := range s.sessions {
		seen[existing.ID] = struct{}{}
	}
	if s.current != nil {
		seen[s.current.ID] = struct{}{}
	}

	next := domain.Clone(s.sessions)
	for _, raw := range rows {
		session, ok := normalizeImportRow(raw)
		if !ok {
			skipped++
			continue
		}
		if _, dup := seen[session.ID]; dup {
			skipped++
			continue
		}
		seen[session.ID] = struct{}{}
		next = append(next, session)
		imported++
	}
	if imported == 0 {
		s.logger.Info("import finished", "imported", 0, "skipped", skipped)
		return 0, skipped, nil
	}

	domain.SortNewestFirst(next)
	if err := s.store.SaveSessions(ctx, next); err != nil {
		return 0, 0, err
	}
	s.sessions = next
	s.logger.Info("import finished", "imported", imported, "skipped", skipped)
	return imported, skipped, nil
}

// Export renders the completed list as an indented JSON array, newest first.
func (s *SessionService) Export() ([]byte, error) {
	sessions := s.Sessions()
	payload, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return payload, nil
}

func decodeImportPayload(payload []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(payload, []byte("\xef\xbb\xbf")))
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, apperrors.ErrMalformedImport
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(trimmed, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMalformedImport, err)
	}
	return rows, nil
}

func normalizeImportRow(raw json.RawMessage) (domain.WorkSession, bool) {
	row := importRow{}
	if err := json.Unmarshal(raw, &row); err != nil {
		return domain.WorkSession{}, false
	}
	id, ok := importID(row.ID)
	if !ok || row.StartTime == 0 || math.IsNaN(row.StartTime) || math.IsInf(row.StartTime, 0) {
		return domain.WorkSession{}, false
	}
	if row.DurationSeconds < 0 {
		return domain.WorkSession{}, false
	}

	startMs := math.Floor(row.StartTime)
	var endMs float64
	if row.EndTime != nil {
		endMs = math.Floor(*row.EndTime)
	} else {
		endMs = startMs + math.Floor(row.DurationSeconds*1000)
	}
	if !inImportRange(startMs) || !inImportRange(endMs) || endMs < startMs {
		return domain.WorkSession{}, false
	}
	start, end := int64(startMs), int64(endMs)

	title := strings.TrimSpace(row.Title)
	if title == "" {
		title = domain.UntitledTitle
	}
	return domain.WorkSession{
		ID:              id,
		Title:           title,
		Description:     row.Description,
		StartTime:       start,
		EndTime:         &end,
		DurationSeconds: domain.ElapsedSeconds(start, end),
	}, true
}

// inImportRange rejects NaN and infinities along with out-of-range values.
func inImportRange(ms float64) bool {
	return ms >= -maxImportMillis && ms <= maxImportMillis
}

func importID(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		text = strings.TrimSpace(text)
		return text, text != ""
	}
	var number json.Number
	if err := json.Unmarshal(raw, &number); err == nil {
		if f, ferr := number.Float64(); ferr == nil && f != 0 {
			return strconv.FormatFloat(f, 'f', -1, 64), true
		}
	}
	return "", false
}
