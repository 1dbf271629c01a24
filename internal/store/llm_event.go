package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLEventRepo implements EventRepo on the llm_requests table.
type SQLEventRepo struct {
	db  *sql.DB
	now func() time.Time
}

func (r *SQLEventRepo) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

func (r *SQLEventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO llm_requests (
			timestamp, session_id, provider, model, purpose,
			input_tokens, output_tokens, latency_ms, success,
			error_message, request_body, response_body
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.clock().UTC().Format(time.RFC3339Nano),
		data.SessionID, data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs, boolToInt(data.Success),
		data.ErrorMessage, data.RequestBody, data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

// QueryLLMEvents returns events newest first.
func (r *SQLEventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	var (
		where []string
		args  []any
	)
	if opts.Purpose != "" {
		where = append(where, "purpose = ?")
		args = append(args, opts.Purpose)
	}
	if opts.SessionID != "" {
		where = append(where, "session_id = ?")
		args = append(args, opts.SessionID)
	}
	if !opts.From.IsZero() {
		where = append(where, "timestamp >= ?")
		args = append(args, opts.From.UTC().Format(time.RFC3339Nano))
	}
	if !opts.To.IsZero() {
		where = append(where, "timestamp <= ?")
		args = append(args, opts.To.UTC().Format(time.RFC3339Nano))
	}

	q := `SELECT id, timestamp, session_id, provider, model, purpose,
		input_tokens, output_tokens, latency_ms, success,
		error_message, request_body, response_body
		FROM llm_requests`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id DESC"
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMEvent
	for rows.Next() {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// GetLLMEvent returns a single event, or nil if it does not exist.
func (r *SQLEventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, timestamp, session_id, provider, model, purpose,
		input_tokens, output_tokens, latency_ms, success,
		error_message, request_body, response_body
		FROM llm_requests WHERE id = ?`, id)
	e, err := scanLLMEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

// LLMUsageByPurpose aggregates usage per purpose, busiest first.
func (r *SQLEventRepo) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT purpose, COUNT(*), SUM(input_tokens), SUM(output_tokens), CAST(AVG(latency_ms) AS INTEGER)
		FROM llm_requests GROUP BY purpose ORDER BY COUNT(*) DESC, purpose`)
	if err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}
	defer rows.Close()

	var out []PurposeUsage
	for rows.Next() {
		var u PurposeUsage
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// LLMUsageByModel aggregates usage per model, busiest first.
func (r *SQLEventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT model, COUNT(*), SUM(input_tokens), SUM(output_tokens)
		FROM llm_requests GROUP BY model ORDER BY COUNT(*) DESC, model`)
	if err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}
	defer rows.Close()

	var out []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLLMEvent(row rowScanner) (*LLMEvent, error) {
	var (
		e       LLMEvent
		ts      string
		success int
	)
	err := row.Scan(&e.ID, &ts, &e.SessionID, &e.Provider, &e.Model, &e.Purpose,
		&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &success,
		&e.ErrorMessage, &e.RequestBody, &e.ResponseBody)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan LLM event: %w", err)
	}
	e.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
	e.Success = success != 0
	return &e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
