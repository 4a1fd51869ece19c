package sessiondb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/gmshoot/shotvision/internal/timeutil"
	"github.com/gmshoot/shotvision/internal/vision"
)

// Session is one persisted detection session.
type Session struct {
	SessionID      string  `json:"session_id"`
	StartedAt      int64   `json:"started_at"`
	TargetType     string  `json:"target_type"`
	TargetDistance float64 `json:"target_distance_m"`
	TotalShots     int     `json:"total_shots"`
	// Stats holds the final session statistics, nil while in progress.
	Stats *vision.SessionStatistics `json:"stats,omitempty"`
}

// ShotRow joins a scored result with its detection metadata for storage.
type ShotRow struct {
	SessionID        string            `json:"session_id"`
	Seq              int               `json:"seq"`
	Result           vision.ShotResult `json:"result"`
	TimestampSeconds float64           `json:"timestamp_seconds"`
	KeyFrameDigest   uint64            `json:"key_frame_digest"`
	CreatedAt        int64             `json:"created_at"`
}

// SessionStore provides persistence for sessions and their shots.
type SessionStore struct {
	db    *DB
	clock timeutil.Clock
}

// NewSessionStore creates a SessionStore over an open database.
func NewSessionStore(db *DB) *SessionStore {
	return NewSessionStoreWithClock(db, timeutil.RealClock{})
}

// NewSessionStoreWithClock creates a SessionStore with an injected clock,
// so tests can pin timestamps and observe retry backoff.
func NewSessionStoreWithClock(db *DB, clock timeutil.Clock) *SessionStore {
	return &SessionStore{db: db, clock: clock}
}

// CreateSession persists a new session. If SessionID is empty, a UUID is
// generated; if StartedAt is zero, the current time is used.
func (s *SessionStore) CreateSession(sess *Session) error {
	if sess.SessionID == "" {
		sess.SessionID = uuid.New().String()
	}
	if sess.StartedAt == 0 {
		sess.StartedAt = s.clock.Now().UnixNano()
	}
	err := retryOnBusy(s.clock, func() error {
		_, err := s.db.Exec(`
			INSERT INTO sessions (session_id, started_at, target_type, target_distance_m, total_shots)
			VALUES (?, ?, ?, ?, 0)`,
			sess.SessionID, sess.StartedAt, sess.TargetType, sess.TargetDistance,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("inserting session %s: %w", sess.SessionID, err)
	}
	return nil
}

// InsertShot persists one scored shot for a session. The digest is stored
// as hex text because sqlite integers are signed 64-bit.
func (s *SessionStore) InsertShot(row *ShotRow) error {
	if row.CreatedAt == 0 {
		row.CreatedAt = s.clock.Now().UnixNano()
	}
	r := row.Result
	err := retryOnBusy(s.clock, func() error {
		_, err := s.db.Exec(`
			INSERT INTO shot_results (
				shot_id, session_id, seq, x, y,
				raw_distance, corrected_distance, scoring_zone, score, compensated_score,
				is_bullseye, angle_degrees, confidence, timestamp_seconds, key_frame_digest, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ShotID, row.SessionID, row.Seq, r.Coordinates.X, r.Coordinates.Y,
			r.RawDistance, r.CorrectedDistance, r.ScoringZone, r.Score, r.CompensatedScore,
			boolToInt(r.IsBullseye), r.AngleFromCenterDegrees, r.Confidence,
			row.TimestampSeconds, strconv.FormatUint(row.KeyFrameDigest, 16), row.CreatedAt,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("inserting shot %s: %w", r.ShotID, err)
	}
	return nil
}

// FinishSession records the final statistics and shot count for a session.
func (s *SessionStore) FinishSession(sessionID string, stats vision.SessionStatistics) error {
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	err = retryOnBusy(s.clock, func() error {
		result, err := s.db.Exec(`
			UPDATE sessions SET total_shots = ?, stats_json = ? WHERE session_id = ?`,
			stats.TotalShots, string(statsJSON), sessionID,
		)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("session %s not found", sessionID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("finishing session %s: %w", sessionID, err)
	}
	return nil
}

// GetSession returns one session by ID.
func (s *SessionStore) GetSession(sessionID string) (*Session, error) {
	row := s.db.QueryRow(`
		SELECT session_id, started_at, target_type, target_distance_m, total_shots, stats_json
		FROM sessions WHERE session_id = ?`, sessionID)

	var sess Session
	var statsJSON sql.NullString
	err := row.Scan(&sess.SessionID, &sess.StartedAt, &sess.TargetType,
		&sess.TargetDistance, &sess.TotalShots, &statsJSON)
	if err != nil {
		return nil, fmt.Errorf("loading session %s: %w", sessionID, err)
	}
	if statsJSON.Valid && statsJSON.String != "" {
		var stats vision.SessionStatistics
		if err := json.Unmarshal([]byte(statsJSON.String), &stats); err != nil {
			return nil, fmt.Errorf("parsing stats for session %s: %w", sessionID, err)
		}
		sess.Stats = &stats
	}
	return &sess, nil
}

// ListShots returns all shots for a session in sequence order.
func (s *SessionStore) ListShots(sessionID string) ([]*ShotRow, error) {
	rows, err := s.db.Query(`
		SELECT shot_id, session_id, seq, x, y,
		       raw_distance, corrected_distance, scoring_zone, score, compensated_score,
		       is_bullseye, angle_degrees, confidence, timestamp_seconds, key_frame_digest, created_at
		FROM shot_results WHERE session_id = ? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing shots for %s: %w", sessionID, err)
	}
	defer rows.Close()

	var shots []*ShotRow
	for rows.Next() {
		row, err := scanShot(rows)
		if err != nil {
			return nil, err
		}
		shots = append(shots, row)
	}
	return shots, rows.Err()
}

// scanShot scans one shot row from a sql.Rows cursor.
func scanShot(rows *sql.Rows) (*ShotRow, error) {
	var row ShotRow
	var bullseye int
	var digest sql.NullString
	err := rows.Scan(
		&row.Result.ShotID, &row.SessionID, &row.Seq,
		&row.Result.Coordinates.X, &row.Result.Coordinates.Y,
		&row.Result.RawDistance, &row.Result.CorrectedDistance,
		&row.Result.ScoringZone, &row.Result.Score, &row.Result.CompensatedScore,
		&bullseye, &row.Result.AngleFromCenterDegrees, &row.Result.Confidence,
		&row.TimestampSeconds, &digest, &row.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning shot row: %w", err)
	}
	row.Result.IsBullseye = bullseye != 0
	if digest.Valid {
		if v, err := strconv.ParseUint(digest.String, 16, 64); err == nil {
			row.KeyFrameDigest = v
		}
	}
	return &row, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
