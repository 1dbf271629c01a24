package difficulty

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		judgment string
		want     Action
	}{
		{"strong english", "Strong, detailed answer. Praise the candidate and ask a harder question.", ActionIncrease},
		{"strong russian", "Хороший ответ. Задай более сложный вопрос.", ActionIncrease},
		{"adequate", "Reasonable answer. Keep the difficulty and move to a new area.", ActionHold},
		{"adequate russian", "Средний ответ. Продолжай на том же уровне.", ActionHold},
		{"weak", "The answer is shallow. Ask a simpler question about the basics.", ActionDecrease},
		{"weak russian", "Слабый ответ. Задай более простой вопрос.", ActionDecrease},
		{"off topic", "The answer is off-topic. Politely bring the candidate back to the topic.", ActionRedirect},
		{"off topic russian", "Ответ не по теме. Вежливо верни к теме.", ActionRedirect},
		{"empty", "", ActionHold},
		{"whitespace", "   \n", ActionHold},
		{"no cues", "The candidate mentioned goroutines.", ActionHold},
		{"ambiguous", "Either ask a harder question or an easier one.", ActionHold},
		{"case insensitive", "ASK A HARDER QUESTION", ActionIncrease},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.judgment)
			assert.Equal(t, tt.want, got.Action)
			assert.NotEmpty(t, got.Text)
			assert.True(t, strings.HasSuffix(got.Text, tt.want.Directive()))
		})
	}
}

func TestResolve_TextCarriesJudgment(t *testing.T) {
	got := Resolve("Ask a harder question.")
	assert.True(t, strings.HasPrefix(got.Text, "Ask a harder question."))

	empty := Resolve("")
	assert.Equal(t, ActionHold.Directive(), empty.Text)
}

func TestDirective_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for _, a := range []Action{ActionIncrease, ActionHold, ActionDecrease, ActionRedirect} {
		d := a.Directive()
		assert.NotEmpty(t, d)
		assert.False(t, seen[d])
		seen[d] = true
	}
}
