package session

import (
	"time"
	"unicode/utf8"
)

// Summary holds the figures shown when an interview ends.
type Summary struct {
	Duration       time.Duration
	QuestionsAsked int
	Answers        int
	AvgAnswerRunes int
}

// BuildSummary creates a Summary from the interview state.
func BuildSummary(state *State) *Summary {
	end := state.EndedAt
	if end.IsZero() {
		end = time.Now()
	}

	total := 0
	for _, r := range state.Responses {
		total += utf8.RuneCountInString(r)
	}
	var avg int
	if len(state.Responses) > 0 {
		avg = total / len(state.Responses)
	}

	return &Summary{
		Duration:       end.Sub(state.StartedAt),
		QuestionsAsked: state.TurnCount,
		Answers:        len(state.Responses),
		AvgAnswerRunes: avg,
	}
}
