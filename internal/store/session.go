package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLSessionRepo implements SessionRepo on the interview_sessions table.
type SQLSessionRepo struct {
	db *sql.DB
}

// SaveSession inserts a finished interview. Saving the same ID twice is an
// error because records are append-only.
func (r *SQLSessionRepo) SaveSession(ctx context.Context, rec *SessionRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO interview_sessions (
			id, name, candidate_name, target_role, started_at, ended_at,
			turn_count, grade, recommendation, confidence, state_json, report_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.CandidateName, rec.TargetRole,
		rec.StartedAt.UTC().Format(time.RFC3339Nano), rec.EndedAt.UTC().Format(time.RFC3339Nano),
		rec.TurnCount, rec.Grade, rec.Recommendation, rec.Confidence,
		rec.StateJSON, rec.ReportJSON,
	)
	if err != nil {
		return fmt.Errorf("save session %s: %w", rec.ID, err)
	}
	return nil
}

// ListSessions returns the most recent sessions first.
func (r *SQLSessionRepo) ListSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	q := `SELECT id, name, candidate_name, target_role, started_at, ended_at,
		turn_count, grade, recommendation, confidence, state_json, report_json
		FROM interview_sessions ORDER BY started_at DESC, id`
	var args []any
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// GetSession looks a session up by ID or by its human-readable name.
// It returns nil when nothing matches.
func (r *SQLSessionRepo) GetSession(ctx context.Context, id string) (*SessionRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, candidate_name, target_role, started_at, ended_at,
		turn_count, grade, recommendation, confidence, state_json, report_json
		FROM interview_sessions WHERE id = ? OR name = ? LIMIT 1`, id, id)
	rec, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

func scanSession(row rowScanner) (*SessionRecord, error) {
	var (
		rec            SessionRecord
		started, ended string
	)
	err := row.Scan(&rec.ID, &rec.Name, &rec.CandidateName, &rec.TargetRole, &started, &ended,
		&rec.TurnCount, &rec.Grade, &rec.Recommendation, &rec.Confidence, &rec.StateJSON, &rec.ReportJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}
	rec.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
	rec.EndedAt, _ = time.Parse(time.RFC3339Nano, ended)
	return &rec, nil
}
