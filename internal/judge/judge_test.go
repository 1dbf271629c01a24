package judge

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/interviewer/internal/difficulty"
	"github.com/abhisek/interviewer/internal/llm"
)

func TestLengthClassifier(t *testing.T) {
	c := &LengthClassifier{StrongOver: StrongAnswerRunes, WeakUnder: WeakAnswerRunes}

	tests := []struct {
		name   string
		answer string
		want   Class
	}{
		{"long", strings.Repeat("a", 101), ClassStrong},
		{"at strong threshold", strings.Repeat("a", 100), ClassAdequate},
		{"middle", strings.Repeat("a", 50), ClassAdequate},
		{"at weak threshold", strings.Repeat("a", 30), ClassAdequate},
		{"short", "REST", ClassWeak},
		{"cyrillic counted in runes", strings.Repeat("я", 40), ClassAdequate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, text := c.Classify(&Input{Answer: tt.answer})
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, text)
		})
	}
}

func TestNonAnswerClassifier(t *testing.T) {
	c := &NonAnswerClassifier{}

	for _, a := range []string{"I don't know", "не знаю.", "No idea!", "  pass ", "pass, next one please", "не знаю, честно"} {
		class, _ := c.Classify(&Input{Answer: a})
		assert.Equal(t, ClassWeak, class, a)
	}
	for _, a := range []string{
		"", "I know REST and gRPC well", "passing tests matter because " + strings.Repeat("x", 40),
		"Passwords are hashed.", "Passive replicas only serve reads", "not surely the same",
	} {
		class, _ := c.Classify(&Input{Answer: a})
		assert.Empty(t, class, a)
	}
}

func TestRunClassifiers_WordPrefixIsNotANonAnswer(t *testing.T) {
	class, text, name := RunClassifiers(DefaultClassifiers(), &Input{Answer: "Passwords are hashed."})
	assert.Equal(t, ClassWeak, class)
	assert.Equal(t, "length", name)
	assert.NotEqual(t, unknownText, text)
}

func TestRunClassifiers_NonAnswerPriority(t *testing.T) {
	class, _, name := RunClassifiers(DefaultClassifiers(), &Input{Answer: "I don't know"})
	assert.Equal(t, ClassWeak, class)
	assert.Equal(t, "non-answer", name)
}

func TestRunClassifiers_NoMatch(t *testing.T) {
	class, text, name := RunClassifiers(nil, &Input{Answer: "x"})
	assert.Empty(t, class)
	assert.Empty(t, text)
	assert.Empty(t, name)
}

func TestDefaultClassifiers_Order(t *testing.T) {
	cs := DefaultClassifiers()
	require.Len(t, cs, 2)
	assert.Equal(t, "non-answer", cs[0].Name())
	assert.Equal(t, "length", cs[1].Name())
}

func TestRuleTextsResolveToOneAction(t *testing.T) {
	tests := map[string]difficulty.Action{
		strongText:   difficulty.ActionIncrease,
		adequateText: difficulty.ActionHold,
		weakText:     difficulty.ActionDecrease,
		unknownText:  difficulty.ActionDecrease,
	}
	for text, want := range tests {
		assert.Equal(t, want, difficulty.Resolve(text).Action, text)
	}
}

func TestJudge_UsesLLM(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText("Solid answer with real detail. Ask a harder question."))
	j := New(mock, DefaultConfig(), nil)

	got := j.Judge(context.Background(), Input{Role: "Backend Developer", Question: "What is REST?", Answer: "ok"})
	assert.Equal(t, SourceLLM, got.Source)
	assert.Equal(t, "Solid answer with real detail. Ask a harder question.", got.Text)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Equal(t, 200, req.MaxTokens)
	assert.InDelta(t, 0.3, req.Temperature, 1e-9)
	assert.Contains(t, req.Messages[0].Content, "What is REST?")
	assert.Contains(t, req.Messages[0].Content, "Backend Developer")
	assert.Contains(t, req.System, "off-topic")
}

func TestJudge_FallsBackOnError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("boom")})
	j := New(mock, DefaultConfig(), nil)

	got := j.Judge(context.Background(), Input{Answer: strings.Repeat("detail ", 20)})
	assert.Equal(t, SourceRule, got.Source)
	assert.Equal(t, ClassStrong, got.Class)
	assert.Equal(t, "length", got.Classifier)
}

func TestJudge_FallsBackOnEmptyReply(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText("   "))
	j := New(mock, DefaultConfig(), nil)

	got := j.Judge(context.Background(), Input{Answer: "no"})
	assert.Equal(t, SourceRule, got.Source)
	assert.Equal(t, ClassWeak, got.Class)
}

func TestJudge_NilProvider(t *testing.T) {
	j := New(nil, DefaultConfig(), nil)
	got := j.Judge(context.Background(), Input{Answer: "I used Redis as a cache in front of Postgres"})
	assert.Equal(t, SourceRule, got.Source)
	assert.Equal(t, ClassAdequate, got.Class)
}
