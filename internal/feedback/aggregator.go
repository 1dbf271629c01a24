package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/interviewer/internal/knowledge"
	"github.com/abhisek/interviewer/internal/llm"
)

// Purpose labels feedback requests in the LLM event log.
const Purpose = "feedback"

// ErrNoJSON is reported (and logged) when a reply has no JSON object.
var ErrNoJSON = errors.New("feedback: no JSON object in reply")

// Config holds generation limits.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1500,
		Temperature: 0.3,
	}
}

// Knowledge finds reference snippets for gaps. *knowledge.Store satisfies it.
type Knowledge interface {
	Search(ctx context.Context, query string, category knowledge.Category, k int) []knowledge.Item
}

// Input is a finished interview.
type Input struct {
	CandidateName string
	Role          string
	Pairs         []QAPair
	// Answers is the full response history used for the default grade.
	// When nil the answers from Pairs are used.
	Answers []string
}

func (in Input) answers() []string {
	if in.Answers != nil {
		return in.Answers
	}
	out := make([]string, 0, len(in.Pairs))
	for _, p := range in.Pairs {
		out = append(out, p.Answer)
	}
	return out
}

// Aggregator builds reports. Both provider and kb may be nil.
type Aggregator struct {
	provider llm.Provider
	cfg      Config
	kb       Knowledge
	logger   *zap.Logger
}

// NewAggregator creates an aggregator.
func NewAggregator(provider llm.Provider, cfg Config, kb Knowledge, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{provider: provider, cfg: cfg, kb: kb, logger: logger}
}

// Aggregate produces the report for a finished interview. It always
// returns a complete report.
func (a *Aggregator) Aggregate(ctx context.Context, in Input) *Report {
	raw, err := a.ask(ctx, in)
	if err != nil {
		a.logger.Warn("feedback capability failed, using default report", zap.Error(err))
		return DefaultReport(in.Role, in.answers())
	}

	if err := llm.ValidateJSON(ReportSchema, json.RawMessage(raw.text)); err != nil {
		a.logger.Debug("feedback reply does not match schema", zap.Error(err))
	}

	rep := Normalize(raw.fields)
	rep.Source = SourceLLM
	rep.RoadmapResources = a.resources(ctx, in.Role, rep.KnowledgeGaps)
	return &rep
}

type reply struct {
	text   string
	fields map[string]any
}

func (a *Aggregator) ask(ctx context.Context, in Input) (*reply, error) {
	text, err := llm.Complete(llm.WithPurpose(ctx, Purpose), a.provider, llm.Prompt{
		System:      systemPrompt,
		User:        buildUserMessage(in),
		Temperature: a.cfg.Temperature,
		MaxTokens:   a.cfg.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	obj, ok := extractJSON(text)
	if !ok {
		return nil, ErrNoJSON
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(obj), &fields); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: json.RawMessage(obj), Err: err}
	}
	return &reply{text: obj, fields: fields}, nil
}

// extractJSON returns the text from the first '{' to the last '}'.
func extractJSON(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return "", false
	}
	return s[start : end+1], true
}

// resources matches the first MaxResourceGaps gaps against the resource
// table for the role and attaches one knowledge snippet to each.
func (a *Aggregator) resources(ctx context.Context, role string, gaps []string) []Resource {
	category := knowledge.Classify(role, knowledge.CategoryBackend)
	if len(gaps) > MaxResourceGaps {
		gaps = gaps[:MaxResourceGaps]
	}
	out := make([]Resource, 0, len(gaps))
	for _, gap := range gaps {
		res := MatchResource(category, gap)
		if a.kb != nil {
			if items := a.kb.Search(ctx, gap, category, 1); len(items) > 0 {
				res.Reference = items[0].Text
			}
		}
		out = append(out, res)
	}
	return out
}
