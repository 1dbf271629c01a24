package question

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/interviewer/internal/difficulty"
	"github.com/abhisek/interviewer/internal/llm"
	"github.com/abhisek/interviewer/internal/sanitize"
)

func TestGenerate_PromptContents(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText("How does an index speed up a SQL query?"))
	g := NewGenerator(mock, DefaultConfig())

	in := Input{
		Role:           "Backend Developer",
		Instruction:    difficulty.Resolve("Good answer. Ask a harder question."),
		QuestionNumber: 3,
		PriorQuestions: []string{"What is REST?", "What is a goroutine?"},
		Context:        []string{"Database indexing: B-tree indexes speed up lookups."},
	}
	got, err := g.Generate(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "How does an index speed up a SQL query?", got)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Equal(t, 200, req.MaxTokens)
	assert.InDelta(t, 0.7, req.Temperature, 1e-9)

	msg := req.Messages[0].Content
	assert.Contains(t, msg, "Question number: 3")
	assert.Contains(t, msg, "Ask a harder question.")
	assert.Contains(t, msg, difficulty.ActionIncrease.Directive())
	assert.Contains(t, msg, "1. What is REST?")
	assert.Contains(t, msg, "2. What is a goroutine?")
	assert.Contains(t, msg, "B-tree indexes")
}

func TestGenerate_NoContextSection(t *testing.T) {
	msg := buildUserMessage(Input{Role: "QA Engineer", Instruction: difficulty.Resolve("")}, DefaultConfig())
	assert.NotContains(t, msg, "Reference material")
	assert.Contains(t, msg, "Already asked in this interview:\nNone")
}

func TestBuildPrior_KeepsMostRecent(t *testing.T) {
	var prior []string
	for i := 1; i <= 10; i++ {
		prior = append(prior, fmt.Sprintf("q%d", i))
	}
	got := buildPrior(prior, 8)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "1. q3", lines[0])
	assert.Equal(t, "8. q10", lines[7])
}

func TestGenerate_CapabilityError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("down")})
	g := NewGenerator(mock, DefaultConfig())

	_, err := g.Generate(context.Background(), Input{Role: "x"})
	var capErr *llm.CapabilityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, Purpose, capErr.Purpose)
}

func TestGenerate_NilProvider(t *testing.T) {
	g := NewGenerator(nil, DefaultConfig())
	_, err := g.Generate(context.Background(), Input{Role: "x"})
	var capErr *llm.CapabilityError
	require.ErrorAs(t, err, &capErr)
}

func TestFallback(t *testing.T) {
	for _, a := range []difficulty.Action{
		difficulty.ActionIncrease, difficulty.ActionHold,
		difficulty.ActionDecrease, difficulty.ActionRedirect,
	} {
		q := Fallback(a, "Frontend Developer", 2, nil)
		assert.Contains(t, q, "Frontend Developer")
		// Bank questions survive sanitization untouched.
		assert.Equal(t, q, sanitize.Question(q), "action %s", a)
	}

	assert.NotEqual(t, Fallback(difficulty.ActionHold, "QA", 2, nil), Fallback(difficulty.ActionHold, "QA", 3, nil))
	assert.Equal(t, Fallback(difficulty.ActionHold, "QA", 5, nil), Fallback(difficulty.ActionHold, "QA", 5, nil))
	assert.Contains(t, Fallback(difficulty.Action("bogus"), "", -1, nil), "engineer")
}

func TestFallback_SkipsAskedQuestions(t *testing.T) {
	first := Fallback(difficulty.ActionHold, "QA", 2, nil)
	next := Fallback(difficulty.ActionHold, "QA", 2, []string{"  " + strings.ToUpper(first)})
	assert.NotEqual(t, first, next)

	// Asking for one action long enough spills into the other banks and
	// never repeats until every bank is used up.
	var asked []string
	total := 0
	for _, qs := range bank {
		total += len(qs)
	}
	for n := 0; n < total; n++ {
		q := Fallback(difficulty.ActionRedirect, "QA", n, asked)
		require.NotContains(t, asked, q)
		assert.Equal(t, q, sanitize.Question(q))
		asked = append(asked, q)
	}

	// Everything asked: a repeat is the only option left.
	assert.Contains(t, asked, Fallback(difficulty.ActionRedirect, "QA", 0, asked))
}

func TestGreeting(t *testing.T) {
	assert.Equal(t, "Hello, Ana! I am running a technical interview for the Backend Developer position. Let's begin.", Greeting("Ana", "Backend Developer"))
	assert.Equal(t, FirstQuestion, sanitize.Question(FirstQuestion))
}
