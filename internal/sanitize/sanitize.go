// Package sanitize reduces free-form generated text to a single clean
// interview question.
//
// The pipeline is an ordered list of pure rules. Each rule sees the
// current text and the raw input, so later rules can fall back to the
// original lines.
package sanitize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rule is one text transformation step.
type Rule interface {
	Name() string
	Apply(text, raw string) string
}

// DefaultStopPhrases mark the start of explanatory continuation that must
// not reach the candidate.
var DefaultStopPhrases = []string{
	// Russian lead-ins.
	"Почему", "Например", "Пример:", "Если", "Задача:", "Цель:", "Пояснение",
	// English lead-ins.
	"Explanation:", "Reasoning:", "Rationale:", "Justification:", "Example:",
	"For example", "Why this question", "Why I ask", "Note:", "Task:", "Goal:",
	// Separators and decoration.
	"---", "###", "//", "📌", "💡", "🎯", "🤔", "🔍",
}

// DefaultRules is the pipeline used by Question.
func DefaultRules() []Rule {
	return []Rule{
		FirstContentLine{MinRunes: 10},
		StripDecoration{},
		CollapseWhitespace{},
		StopPhraseTruncate{Phrases: DefaultStopPhrases},
		StripPrefix{Labels: DefaultLabels},
		ShortFallback{MinRunes: 15, RawMinRunes: 30, LineMinRunes: 20},
	}
}

// Question sanitizes raw generated text with DefaultRules. The result has
// no newline and is non-empty for any input that is not blank.
func Question(raw string) string {
	return Apply(DefaultRules(), raw)
}

// Apply runs rules in order and guarantees a single-line result. When the
// rules strip everything, the result is the single raw line the pipeline
// started from, so that feeding it back in yields the same line.
func Apply(rules []Rule, raw string) string {
	text := raw
	for _, r := range rules {
		text = r.Apply(text, raw)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		text = fallbackLine(rules, raw)
	}
	return text
}

func fallbackLine(rules []Rule, raw string) string {
	for _, r := range rules {
		if fc, ok := r.(FirstContentLine); ok {
			return singleLine(fc.Apply(raw, raw))
		}
	}
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return singleLine(line)
		}
	}
	return ""
}

// FirstContentLine selects the first line longer than MinRunes that is
// not a markup-only line. Input with no such line is returned trimmed.
type FirstContentLine struct {
	MinRunes int
}

func (FirstContentLine) Name() string { return "first-content-line" }

func (r FirstContentLine) Apply(text, _ string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if runeLen(line) > r.MinRunes && !isMarkupOnly(line) {
			return line
		}
	}
	return singleLine(text)
}

// decorationReplacer removes quoting and emphasis characters anywhere.
// Apostrophes are kept so contractions survive.
var decorationReplacer = strings.NewReplacer(
	`"`, "", "`", "", "«", "", "»", "",
	"“", "", "”", "", "„", "", "*", "", "~", "",
)

// StripDecoration removes quotes, emphasis marks, leading bullets and
// heading marks.
type StripDecoration struct{}

func (StripDecoration) Name() string { return "strip-decoration" }

func (StripDecoration) Apply(text, _ string) string {
	return trimBullets(decorationReplacer.Replace(text))
}

func trimBullets(s string) string {
	return strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune("-•>–—#", r)
	})
}

// CollapseWhitespace folds every whitespace run into one space.
type CollapseWhitespace struct{}

func (CollapseWhitespace) Name() string { return "collapse-whitespace" }

func (CollapseWhitespace) Apply(text, _ string) string {
	return strings.Join(strings.Fields(text), " ")
}

// StopPhraseTruncate cuts the text at the earliest stop phrase.
type StopPhraseTruncate struct {
	Phrases []string
}

func (StopPhraseTruncate) Name() string { return "stop-phrase" }

func (r StopPhraseTruncate) Apply(text, _ string) string {
	return truncateAtStop(text, r.Phrases)
}

func truncateAtStop(text string, phrases []string) string {
	cut := len(text)
	for _, p := range phrases {
		if i := strings.Index(text, p); i >= 0 && i < cut {
			cut = i
		}
	}
	return strings.TrimSpace(text[:cut])
}

// DefaultLabels are prefixes that introduce the question itself.
var DefaultLabels = []string{"Question:", "Next question:", "Вопрос:", "Следующий вопрос:", "Q:"}

// StripPrefix removes leading list numbering such as "1." or "2)", any
// bullets it uncovers and question labels such as "Question:".
type StripPrefix struct {
	Labels []string
}

func (StripPrefix) Name() string { return "strip-prefix" }

func (r StripPrefix) Apply(text, _ string) string {
	for {
		text = strings.TrimSpace(trimBullets(text))
		if next, ok := cutNumbering(text); ok {
			text = next
			continue
		}
		if next, ok := cutLabel(text, r.Labels); ok {
			text = next
			continue
		}
		return text
	}
}

func cutLabel(s string, labels []string) (string, bool) {
	for _, l := range labels {
		if len(s) >= len(l) && strings.EqualFold(s[:len(l)], l) {
			return s[len(l):], true
		}
	}
	return s, false
}

func cutNumbering(s string) (string, bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(s) || (s[i] != '.' && s[i] != ')') {
		return s, false
	}
	return s[i+1:], true
}

// ShortFallback replaces a result shorter than MinRunes when the raw input
// was longer than RawMinRunes. It picks the first raw line longer than
// LineMinRunes that does not start with markup and still reaches MinRunes
// once cleaned.
type ShortFallback struct {
	MinRunes     int
	RawMinRunes  int
	LineMinRunes int
}

func (ShortFallback) Name() string { return "short-fallback" }

func (r ShortFallback) Apply(text, raw string) string {
	if runeLen(text) >= r.MinRunes || runeLen(raw) <= r.RawMinRunes {
		return text
	}
	clean := []Rule{StripDecoration{}, CollapseWhitespace{}, StopPhraseTruncate{Phrases: DefaultStopPhrases}, StripPrefix{Labels: DefaultLabels}}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if runeLen(line) <= r.LineMinRunes || startsWithMarkup(line) {
			continue
		}
		cand := line
		for _, c := range clean {
			cand = c.Apply(cand, raw)
		}
		if runeLen(cand) >= r.MinRunes {
			return cand
		}
	}
	return text
}

func isMarkupOnly(line string) bool {
	for _, r := range line {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func startsWithMarkup(line string) bool {
	r, _ := utf8.DecodeRuneInString(line)
	return strings.ContainsRune("*-#>`_~•|=", r)
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
