package session

import (
	"time"

	"github.com/abhisek/interviewer/internal/feedback"
)

// Phase is the lifecycle stage of an interview. It only moves forward.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseInProgress
	PhaseTerminated
)

func (p Phase) String() string {
	switch p {
	case PhaseInProgress:
		return "in-progress"
	case PhaseTerminated:
		return "terminated"
	default:
		return "not-started"
	}
}

// TurnKind distinguishes system greetings from question turns.
type TurnKind string

const (
	TurnGreeting TurnKind = "greeting"
	TurnQuestion TurnKind = "question"
)

// Turn is one logged exchange. A question turn carries the answer that
// prompted it, so turn i answers the question of turn i-1.
// Turns are appended once and never changed.
type Turn struct {
	ID              int       `json:"turn_id"`
	Kind            TurnKind  `json:"kind"`
	VisibleQuestion string    `json:"visible_question"`
	CandidateAnswer string    `json:"candidate_answer"`
	InternalNotes   string    `json:"internal_notes"`
	Timestamp       time.Time `json:"timestamp"`
}

// State is the interview as seen by the controller.
//
// Invariants: TurnCount equals the number of question turns, LastQuestion
// is the question of the last turn, and Terminated never reverts.
type State struct {
	SessionID     string    `json:"session_id"`
	CandidateName string    `json:"candidate_name"`
	TargetRole    string    `json:"target_role"`
	StartedAt     time.Time `json:"started_at"`
	EndedAt       time.Time `json:"ended_at,omitzero"`
	Turns         []Turn    `json:"turns"`
	// Responses is every non-empty answer in order, including the last
	// one given before termination.
	Responses    []string `json:"responses"`
	LastQuestion string   `json:"last_question"`
	TurnCount    int      `json:"turn_count"`
	Terminated   bool     `json:"terminated"`
	// FinalAnswer answers LastQuestion when the interview ended on a real
	// answer rather than a stop word.
	FinalAnswer string `json:"final_answer,omitempty"`
}

// Clone returns a deep copy.
func (s *State) Clone() State {
	c := *s
	c.Turns = append([]Turn(nil), s.Turns...)
	c.Responses = append([]string(nil), s.Responses...)
	return c
}

// Pairs matches every answer with the question it responded to.
func (s *State) Pairs() []feedback.QAPair {
	var out []feedback.QAPair
	for i := 1; i < len(s.Turns); i++ {
		t := s.Turns[i]
		if t.Kind != TurnQuestion || t.CandidateAnswer == "" {
			continue
		}
		out = append(out, feedback.QAPair{
			Question: s.Turns[i-1].VisibleQuestion,
			Answer:   t.CandidateAnswer,
		})
	}
	if s.FinalAnswer != "" {
		out = append(out, feedback.QAPair{Question: s.LastQuestion, Answer: s.FinalAnswer})
	}
	return out
}

// AskedQuestions lists the visible questions in order.
func (s *State) AskedQuestions() []string {
	var out []string
	for _, t := range s.Turns {
		if t.Kind == TurnQuestion {
			out = append(out, t.VisibleQuestion)
		}
	}
	return out
}
