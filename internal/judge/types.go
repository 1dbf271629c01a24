// Package judge rates a candidate answer and recommends how the next
// question should shift. An LLM does the rating when one is reachable;
// otherwise ordered rule classifiers take over.
package judge

// Class is the quality bucket of one answer.
type Class string

const (
	ClassStrong   Class = "strong"
	ClassAdequate Class = "adequate"
	ClassWeak     Class = "weak"
	ClassOffTopic Class = "off-topic"
)

// Source records who produced a judgment.
const (
	SourceLLM  = "llm"
	SourceRule = "rule"
)

// Input is one question/answer exchange to be judged.
type Input struct {
	Role     string
	Question string
	Answer   string
}

// Judgment is the free-text verdict handed to the difficulty resolver.
type Judgment struct {
	Text       string
	Class      Class  // empty when the LLM produced free text
	Source     string // llm or rule
	Classifier string // rule name, empty for llm
}
