package judge

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Classifier is a rule-based answer classifier.
// It returns a class and the judgment text, or ("", "") if the rule doesn't apply.
type Classifier interface {
	Name() string
	Classify(input *Input) (Class, string)
}

// DefaultClassifiers returns classifiers in priority order. Non-answers are
// checked first so a long "I don't know, but..." ramble is not rated strong.
func DefaultClassifiers() []Classifier {
	return []Classifier{
		&NonAnswerClassifier{},
		&LengthClassifier{StrongOver: StrongAnswerRunes, WeakUnder: WeakAnswerRunes},
	}
}

// RunClassifiers executes rule-based classifiers in order.
// Returns the first match, or ("", "", "") if no rules apply.
func RunClassifiers(classifiers []Classifier, input *Input) (Class, string, string) {
	for _, c := range classifiers {
		class, text := c.Classify(input)
		if class != "" {
			return class, text, c.Name()
		}
	}
	return "", "", ""
}

// Judgment texts produced by the rules. Each names exactly one action so the
// difficulty resolver picks it up unambiguously.
const (
	strongText   = "The answer is detailed and confident. Ask a harder question next."
	adequateText = "The answer covers the basics. Keep the difficulty at the same level."
	weakText     = "The answer is too brief to show real understanding. Ask a simpler question next."
	unknownText  = "The candidate could not answer. Ask a simpler question next."
)

var nonAnswerPhrases = []string{
	"i don't know", "i dont know", "i do not know", "no idea", "not sure",
	"never heard", "can't answer", "cannot answer", "pass",
	"не знаю", "понятия не имею", "не помню", "затрудняюсь",
}

// NonAnswerClassifier flags answers that admit not knowing.
type NonAnswerClassifier struct{}

func (c *NonAnswerClassifier) Name() string { return "non-answer" }

func (c *NonAnswerClassifier) Classify(input *Input) (Class, string) {
	a := strings.ToLower(strings.TrimSpace(input.Answer))
	a = strings.TrimRight(a, ".!?… ")
	if a == "" {
		return "", ""
	}
	for _, p := range nonAnswerPhrases {
		if a == p || (startsWithWord(a, p) && utf8.RuneCountInString(a) < 2*utf8.RuneCountInString(p)+20) {
			return ClassWeak, unknownText
		}
	}
	return "", ""
}

// startsWithWord reports whether s begins with phrase followed by a word
// boundary, so "pass" does not match "passwords".
func startsWithWord(s, phrase string) bool {
	if !strings.HasPrefix(s, phrase) {
		return false
	}
	next, _ := utf8.DecodeRuneInString(s[len(phrase):])
	return next == utf8.RuneError || !(unicode.IsLetter(next) || unicode.IsDigit(next))
}

// Answer length thresholds in runes.
const (
	StrongAnswerRunes = 100
	WeakAnswerRunes   = 30
)

// LengthClassifier rates an answer by how much the candidate wrote.
// It always matches, so it belongs last in the chain.
type LengthClassifier struct {
	StrongOver int
	WeakUnder  int
}

func (c *LengthClassifier) Name() string { return "length" }

func (c *LengthClassifier) Classify(input *Input) (Class, string) {
	n := utf8.RuneCountInString(strings.TrimSpace(input.Answer))
	switch {
	case n > c.StrongOver:
		return ClassStrong, strongText
	case n < c.WeakUnder:
		return ClassWeak, weakText
	default:
		return ClassAdequate, adequateText
	}
}
