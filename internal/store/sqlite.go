package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"call-coaching-go/internal/types"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const createAnalysesTableSQL = `
CREATE TABLE IF NOT EXISTS signal_analyses (
	id TEXT PRIMARY KEY,
	recording_id TEXT NOT NULL,
	created_at_utc TEXT NOT NULL,
	escalation_risk TEXT NOT NULL,
	customer_satisfaction INTEGER NOT NULL,
	keyword_version TEXT NOT NULL,
	payload TEXT NOT NULL
)`

var createAnalysesIndexesSQL = []string{
	`CREATE INDEX IF NOT EXISTS idx_signal_analyses_recording ON signal_analyses(recording_id)`,
	`CREATE INDEX IF NOT EXISTS idx_signal_analyses_created ON signal_analyses(created_at_utc)`,
}

const insertAnalysisSQL = `
INSERT INTO signal_analyses (
	id,
	recording_id,
	created_at_utc,
	escalation_risk,
	customer_satisfaction,
	keyword_version,
	payload
) VALUES (?, ?, ?, ?, ?, ?, ?)`

const selectAnalysesSQL = `
SELECT id, recording_id, created_at_utc, keyword_version, payload
FROM signal_analyses`

const defaultListLimit = 100

// fixed width so created_at_utc sorts lexically
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// StoredAnalysis is a persisted score record.
type StoredAnalysis struct {
	ID             string               `json:"id"`
	RecordingID    string               `json:"recordingId"`
	CreatedAt      time.Time            `json:"createdAt"`
	KeywordVersion string               `json:"keywordVersion"`
	Analysis       types.SignalAnalysis `json:"analysis"`
}

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the database at path and ensures the schema.
// ":memory:" is accepted for tests.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("db path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// a single connection keeps ":memory:" databases coherent
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	s := &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(createAnalysesTableSQL); err != nil {
		return fmt.Errorf("create signal_analyses table: %w", err)
	}
	for _, stmt := range createAnalysesIndexesSQL {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("create signal_analyses index: %w", err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists one analysis and returns its generated id.
func (s *Store) Save(ctx context.Context, recordingID, keywordVersion string, a types.SignalAnalysis) (string, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("encode analysis: %w", err)
	}
	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, insertAnalysisSQL,
		id,
		recordingID,
		s.now().UTC().Format(timeLayout),
		string(a.EscalationRisk),
		a.CustomerSatisfaction,
		keywordVersion,
		string(payload),
	)
	if err != nil {
		return "", fmt.Errorf("insert analysis: %w", err)
	}
	return id, nil
}

// List returns the newest analyses first. limit <= 0 uses the default.
func (s *Store) List(ctx context.Context, limit int) ([]StoredAnalysis, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.query(ctx, selectAnalysesSQL+` ORDER BY created_at_utc DESC, id LIMIT ?`, limit)
}

// ListByRecording returns every analysis of one recording, oldest first.
func (s *Store) ListByRecording(ctx context.Context, recordingID string) ([]StoredAnalysis, error) {
	return s.query(ctx, selectAnalysesSQL+` WHERE recording_id = ? ORDER BY created_at_utc, id`, recordingID)
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM signal_analyses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count analyses: %w", err)
	}
	return n, nil
}

// Analyses returns the bare score records, newest first, ready for
// aggregation. limit <= 0 returns every stored analysis.
func (s *Store) Analyses(ctx context.Context, limit int) ([]types.SignalAnalysis, error) {
	var (
		rows []StoredAnalysis
		err  error
	)
	if limit > 0 {
		rows, err = s.List(ctx, limit)
	} else {
		rows, err = s.query(ctx, selectAnalysesSQL+` ORDER BY created_at_utc DESC, id`)
	}
	if err != nil {
		return nil, err
	}
	out := make([]types.SignalAnalysis, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Analysis)
	}
	return out, nil
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]StoredAnalysis, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	var out []StoredAnalysis
	for rows.Next() {
		var (
			rec       StoredAnalysis
			createdAt string
			payload   string
		)
		if err := rows.Scan(&rec.ID, &rec.RecordingID, &createdAt, &rec.KeywordVersion, &payload); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		if rec.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at_utc %q: %w", createdAt, err)
		}
		if err := json.Unmarshal([]byte(payload), &rec.Analysis); err != nil {
			return nil, fmt.Errorf("decode analysis %s: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analyses: %w", err)
	}
	return out, nil
}
