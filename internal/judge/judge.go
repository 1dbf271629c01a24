package judge

import (
	"bytes"
	"context"
	"text/template"

	"go.uber.org/zap"

	"github.com/abhisek/interviewer/internal/llm"
)

// Purpose labels judge requests in the LLM event log.
const Purpose = "judge"

// Config holds configuration for the judge.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   200,
		Temperature: 0.3,
	}
}

// Judge rates answers. A nil provider means rules only.
type Judge struct {
	provider    llm.Provider
	cfg         Config
	classifiers []Classifier
	logger      *zap.Logger
}

// New creates a judge backed by provider, falling back to DefaultClassifiers.
func New(provider llm.Provider, cfg Config, logger *zap.Logger) *Judge {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Judge{
		provider:    provider,
		cfg:         cfg,
		classifiers: DefaultClassifiers(),
		logger:      logger,
	}
}

// Judge returns a verdict for one answer. It never fails: capability errors
// are logged and the rule classifiers answer instead.
func (j *Judge) Judge(ctx context.Context, in Input) Judgment {
	if j.provider != nil {
		text, err := j.ask(ctx, in)
		if err == nil {
			return Judgment{Text: text, Source: SourceLLM}
		}
		j.logger.Warn("judge capability failed, using rules", zap.Error(err))
	}

	class, text, name := RunClassifiers(j.classifiers, &in)
	if class == "" {
		class, text, name = ClassAdequate, adequateText, "default"
	}
	return Judgment{Text: text, Class: class, Source: SourceRule, Classifier: name}
}

func (j *Judge) ask(ctx context.Context, in Input) (string, error) {
	var buf bytes.Buffer
	if err := judgeUserTemplate.Execute(&buf, in); err != nil {
		return "", err
	}
	return llm.Complete(llm.WithPurpose(ctx, Purpose), j.provider, llm.Prompt{
		System:      judgeSystemPrompt,
		User:        buf.String(),
		Temperature: j.cfg.Temperature,
		MaxTokens:   j.cfg.MaxTokens,
	})
}

const judgeSystemPrompt = `You are a senior technical interviewer observing an interview. Rate the candidate's last answer and tell the interviewer how to steer the next question.

Classify the answer as exactly one of:
- strong: correct, detailed, shows experience. Recommend: ask a harder question.
- adequate: correct but shallow. Recommend: keep the difficulty at the same level.
- weak: wrong, vague, or "I don't know". Recommend: ask a simpler question.
- off-topic: unrelated to the question. Recommend: redirect back to the topic.

Reply in two short sentences: the assessment, then the recommendation. Use only one recommendation.`

var judgeUserTemplate = template.Must(template.New("judge").Parse(`Position: {{.Role}}
Question: {{.Question}}
Candidate's answer: {{.Answer}}`))
