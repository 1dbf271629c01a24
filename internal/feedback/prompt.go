package feedback

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/interviewer/internal/llm"
)

// Prompt bounds.
const (
	MaxPromptPairs = 6
	MaxPairRunes   = 200
)

const systemPrompt = `You are an expert assessor of IT specialists. Analyse the interview answers and return structured feedback as a single JSON object.`

// buildUserMessage renders the assessment request for one interview.
func buildUserMessage(in Input) string {
	var b strings.Builder

	b.WriteString("Analyse this technical interview and produce detailed feedback.\n\n")
	fmt.Fprintf(&b, "Candidate: %s\n", in.CandidateName)
	fmt.Fprintf(&b, "Position: %s\n", in.Role)
	fmt.Fprintf(&b, "Questions answered: %d\n\n", len(in.Pairs))

	b.WriteString("QUESTIONS AND ANSWERS:\n")
	b.WriteString(formatPairs(in.Pairs))
	b.WriteString("\n")

	b.WriteString(`Return JSON with this structure:
{
  "verdict": {"grade": "Junior | Middle | Senior", "recommendation": "Hire | No Hire | Strong Hire", "confidence_score": 0-100},
  "hard_skills": {
    "confirmed_skills": ["topics the candidate answered accurately"],
    "knowledge_gaps": ["topics with mistakes or 'I don't know'"],
    "corrections": ["the correct answer for each knowledge gap"]
  },
  "soft_skills": {"clarity": "Low | Medium | High", "honesty": "Low | Medium | High", "engagement": "Low | Medium | High"},
  "roadmap": {"topics": ["concrete topics to study"], "resources": ["links to documentation or articles"]}
}

Give one short correction per knowledge gap, in the same order.`)
	return b.String()
}

// formatPairs lists at most MaxPromptPairs pairs, each side truncated to
// MaxPairRunes.
func formatPairs(pairs []QAPair) string {
	if len(pairs) == 0 {
		return "No questions were answered.\n"
	}
	if len(pairs) > MaxPromptPairs {
		pairs = pairs[:MaxPromptPairs]
	}
	var b strings.Builder
	for i, p := range pairs {
		fmt.Fprintf(&b, "Question %d: %s\n", i+1, truncateRunes(p.Question, MaxPairRunes))
		fmt.Fprintf(&b, "Answer %d: %s\n\n", i+1, truncateRunes(p.Answer, MaxPairRunes))
	}
	return b.String()
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

var stringArray = map[string]any{"type": "array", "items": map[string]any{"type": "string"}}

// ReportSchema describes the expected reply. Replies are parsed out of
// free text, so the schema is checked after the fact and a mismatch is
// only logged; Normalize repairs whatever it can.
var ReportSchema = &llm.Schema{
	Name:        "interview-feedback",
	Description: "Structured assessment of a technical interview",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"verdict": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"grade":            map[string]any{"type": "string"},
					"recommendation":   map[string]any{"type": "string"},
					"confidence_score": map[string]any{"type": []any{"number", "string"}},
				},
				"required": []any{"grade", "recommendation"},
			},
			"hard_skills": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"confirmed_skills": stringArray,
					"knowledge_gaps":   stringArray,
					"corrections":      stringArray,
				},
			},
			"soft_skills": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"clarity":    map[string]any{"type": "string"},
					"honesty":    map[string]any{"type": "string"},
					"engagement": map[string]any{"type": "string"},
				},
			},
			"roadmap": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"topics":    stringArray,
					"resources": stringArray,
				},
			},
		},
		"required": []any{"verdict", "hard_skills"},
	},
}
