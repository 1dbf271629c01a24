package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	Purpose   string    // exact purpose match
	SessionID string    // exact session match
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	SessionID    string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates token usage for one purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

// SessionRecord is a finished interview as persisted in the database.
type SessionRecord struct {
	ID             string
	Name           string
	CandidateName  string
	TargetRole     string
	StartedAt      time.Time
	EndedAt        time.Time
	TurnCount      int
	Grade          string
	Recommendation string
	Confidence     int
	StateJSON      string
	ReportJSON     string
}

// SessionRepo persists finished interviews. Records are append-only.
type SessionRepo interface {
	SaveSession(ctx context.Context, rec *SessionRecord) error
	ListSessions(ctx context.Context, limit int) ([]SessionRecord, error)
	GetSession(ctx context.Context, id string) (*SessionRecord, error)
}
