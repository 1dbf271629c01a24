package sessionlog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/interviewer/internal/feedback"
	"github.com/abhisek/interviewer/internal/session"
	"github.com/abhisek/interviewer/internal/store"
)

// DBSink saves finished interviews through a store.SessionRepo.
type DBSink struct {
	repo store.SessionRepo
}

// NewDBSink creates a sink over repo.
func NewDBSink(repo store.SessionRepo) *DBSink {
	return &DBSink{repo: repo}
}

// Save stores the record and returns its session ID.
func (s *DBSink) Save(ctx context.Context, rec *session.Record) (string, error) {
	sr, err := ToStored(rec)
	if err != nil {
		return "", err
	}
	if err := s.repo.SaveSession(ctx, sr); err != nil {
		return "", err
	}
	return sr.ID, nil
}

// ToStored flattens a record into a database row.
func ToStored(rec *session.Record) (*store.SessionRecord, error) {
	stateJSON, err := json.Marshal(rec.State)
	if err != nil {
		return nil, fmt.Errorf("marshal session state: %w", err)
	}
	sr := &store.SessionRecord{
		ID:            rec.State.SessionID,
		Name:          FileName(rec.State),
		CandidateName: rec.State.CandidateName,
		TargetRole:    rec.State.TargetRole,
		StartedAt:     rec.State.StartedAt,
		EndedAt:       rec.State.EndedAt,
		TurnCount:     rec.State.TurnCount,
		StateJSON:     string(stateJSON),
	}
	if rec.Report != nil {
		reportJSON, err := json.Marshal(rec.Report)
		if err != nil {
			return nil, fmt.Errorf("marshal report: %w", err)
		}
		sr.Grade = string(rec.Report.Grade)
		sr.Recommendation = string(rec.Report.Recommendation)
		sr.Confidence = rec.Report.Confidence
		sr.ReportJSON = string(reportJSON)
	}
	return sr, nil
}

// FromStored rebuilds a record from a database row.
func FromStored(sr *store.SessionRecord) (*session.Record, error) {
	rec := &session.Record{}
	if err := json.Unmarshal([]byte(sr.StateJSON), &rec.State); err != nil {
		return nil, fmt.Errorf("decode session state: %w", err)
	}
	if sr.ReportJSON != "" {
		var r feedback.Report
		if err := json.Unmarshal([]byte(sr.ReportJSON), &r); err != nil {
			return nil, fmt.Errorf("decode report: %w", err)
		}
		rec.Report = &r
	}
	return rec, nil
}
