// Package question asks the generation capability for the next interview
// question and supplies a deterministic bank when it cannot.
package question

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/interviewer/internal/difficulty"
	"github.com/abhisek/interviewer/internal/llm"
)

// Purpose labels question requests in the LLM event log.
const Purpose = "question-gen"

// Config holds generation limits.
type Config struct {
	MaxTokens         int
	Temperature       float64
	MaxPriorQuestions int // prior questions listed in the prompt
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:         200,
		Temperature:       0.7,
		MaxPriorQuestions: 8,
	}
}

// Input is everything the next question depends on.
type Input struct {
	Role           string
	CandidateName  string
	Instruction    difficulty.Instruction
	QuestionNumber int
	PriorQuestions []string
	// Context is optional reference material from the knowledge store.
	Context []string
}

// Generator produces raw question text. Callers sanitize it.
type Generator struct {
	provider llm.Provider
	cfg      Config
}

// NewGenerator creates a generator backed by provider.
func NewGenerator(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, cfg: cfg}
}

// Generate returns the model's raw reply. Failures come back as
// *llm.CapabilityError.
func (g *Generator) Generate(ctx context.Context, in Input) (string, error) {
	return llm.Complete(llm.WithPurpose(ctx, Purpose), g.provider, llm.Prompt{
		System:      systemPrompt,
		User:        buildUserMessage(in, g.cfg),
		Temperature: g.cfg.Temperature,
		MaxTokens:   g.cfg.MaxTokens,
	})
}

const systemPrompt = `You are a strict technical interviewer. Reply with ONE question only: no explanations, no formatting, no bullet markers, no numbering. At most two sentences.`

// buildUserMessage constructs the user message from Input and Config limits.
func buildUserMessage(in Input, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Position: %s\n", in.Role)
	fmt.Fprintf(&b, "Question number: %d\n", in.QuestionNumber)
	b.WriteString("\nInstruction from the observer:\n")
	b.WriteString(in.Instruction.Text)
	b.WriteString("\n")

	b.WriteString("\nAlready asked in this interview:\n")
	b.WriteString(buildPrior(in.PriorQuestions, cfg.MaxPriorQuestions))
	b.WriteString("\n")

	if len(in.Context) > 0 {
		b.WriteString("\nReference material for this position:\n")
		for _, c := range in.Context {
			fmt.Fprintf(&b, "- %s\n", c)
		}
	}

	fmt.Fprintf(&b, "\nAsk a technical question that fits the %s position and follows the instruction. Do not repeat earlier questions.", in.Role)
	return b.String()
}

// buildPrior formats prior questions, keeping only the most recent max.
func buildPrior(prior []string, max int) string {
	if len(prior) == 0 {
		return "None"
	}
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}
	var b strings.Builder
	for i, q := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
