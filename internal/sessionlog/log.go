// Package sessionlog persists finished interviews as JSON files and as
// rows in the SQLite store.
package sessionlog

import (
	"encoding/json"
	"io"
	"time"

	"github.com/abhisek/interviewer/internal/feedback"
	"github.com/abhisek/interviewer/internal/session"
)

// Log is the on-disk interview log.
type Log struct {
	SessionID       string    `json:"session_id"`
	ParticipantName string    `json:"participant_name"`
	Position        string    `json:"position"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time,omitempty"`
	Turns           []LogTurn `json:"turns"`
	FinalAnswer     string    `json:"final_answer,omitempty"`
	FinalFeedback   *Feedback `json:"final_feedback,omitempty"`
}

// LogTurn is one turn in the log.
type LogTurn struct {
	TurnID              int    `json:"turn_id"`
	AgentVisibleMessage string `json:"agent_visible_message"`
	UserMessage         string `json:"user_message"`
	InternalThoughts    string `json:"internal_thoughts"`
	Timestamp           string `json:"timestamp"`
}

// Feedback is the report grouped into verdict, hard skills, soft skills
// and roadmap sections.
type Feedback struct {
	Verdict struct {
		Grade           feedback.Grade          `json:"grade"`
		Recommendation  feedback.Recommendation `json:"recommendation"`
		ConfidenceScore int                     `json:"confidence_score"`
	} `json:"verdict"`
	HardSkills struct {
		ConfirmedSkills []string `json:"confirmed_skills"`
		KnowledgeGaps   []string `json:"knowledge_gaps"`
		Corrections     []string `json:"corrections"`
	} `json:"hard_skills"`
	SoftSkills feedback.SoftSkills `json:"soft_skills"`
	Roadmap    struct {
		Topics    []string `json:"topics"`
		Resources []string `json:"resources"`
	} `json:"roadmap"`
	RoadmapWithResources []feedback.Resource `json:"roadmap_with_resources"`
	Source               string              `json:"source"`
}

const timeLayout = "2006-01-02T15:04:05.000000"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}

// FromRecord converts a finished interview into its log form.
func FromRecord(rec *session.Record) *Log {
	st := rec.State
	l := &Log{
		SessionID:       st.SessionID,
		ParticipantName: st.CandidateName,
		Position:        st.TargetRole,
		StartTime:       formatTime(st.StartedAt),
		EndTime:         formatTime(st.EndedAt),
		Turns:           make([]LogTurn, 0, len(st.Turns)),
		FinalAnswer:     st.FinalAnswer,
	}
	for _, t := range st.Turns {
		l.Turns = append(l.Turns, LogTurn{
			TurnID:              t.ID,
			AgentVisibleMessage: t.VisibleQuestion,
			UserMessage:         t.CandidateAnswer,
			InternalThoughts:    t.InternalNotes,
			Timestamp:           formatTime(t.Timestamp),
		})
	}
	if rec.Report != nil {
		l.FinalFeedback = fromReport(rec.Report)
	}
	return l
}

func fromReport(r *feedback.Report) *Feedback {
	f := &Feedback{
		SoftSkills:           r.SoftSkills,
		RoadmapWithResources: r.RoadmapResources,
		Source:               r.Source,
	}
	f.Verdict.Grade = r.Grade
	f.Verdict.Recommendation = r.Recommendation
	f.Verdict.ConfidenceScore = r.Confidence
	f.HardSkills.ConfirmedSkills = r.ConfirmedSkills
	f.HardSkills.KnowledgeGaps = r.KnowledgeGaps
	f.HardSkills.Corrections = r.Corrections
	f.Roadmap.Topics = r.RoadmapTopics
	f.Roadmap.Resources = r.RoadmapLinks
	return f
}

// Write encodes the log as indented JSON.
func (l *Log) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(l)
}
