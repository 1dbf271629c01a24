// Package session runs one adaptive interview: it owns the turn log and
// decides what happens after each answer.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/interviewer/internal/difficulty"
	"github.com/abhisek/interviewer/internal/feedback"
	"github.com/abhisek/interviewer/internal/judge"
	"github.com/abhisek/interviewer/internal/knowledge"
	"github.com/abhisek/interviewer/internal/llm"
	"github.com/abhisek/interviewer/internal/question"
	"github.com/abhisek/interviewer/internal/sanitize"
)

var (
	ErrAlreadyStarted    = errors.New("session: already started")
	ErrNotStarted        = errors.New("session: not started")
	ErrSessionTerminated = errors.New("session: terminated")
)

// Defaults.
const (
	DefaultMaxQuestions = 10
	DefaultContextItems = 3
)

// DefaultStopWords end the interview when sent as the whole answer.
var DefaultStopWords = []string{"стоп", "stop"}

// Config tunes one interview.
type Config struct {
	MaxQuestions int
	StopWords    []string
	// GroundQuestions feeds knowledge snippets into question generation.
	GroundQuestions bool
	ContextItems    int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxQuestions: DefaultMaxQuestions,
		StopWords:    DefaultStopWords,
		ContextItems: DefaultContextItems,
	}
}

// Judge rates answers. *judge.Judge satisfies it.
type Judge interface {
	Judge(ctx context.Context, in judge.Input) judge.Judgment
}

// QuestionGenerator writes the next raw question. *question.Generator
// satisfies it.
type QuestionGenerator interface {
	Generate(ctx context.Context, in question.Input) (string, error)
}

// FeedbackAggregator builds the final report. *feedback.Aggregator
// satisfies it.
type FeedbackAggregator interface {
	Aggregate(ctx context.Context, in feedback.Input) *feedback.Report
}

// Knowledge grounds questions. *knowledge.Store satisfies it.
type Knowledge interface {
	Search(ctx context.Context, query string, category knowledge.Category, k int) []knowledge.Item
	PositionContext(role string, k int) []knowledge.Item
}

// Deps are the collaborators of a Controller. Knowledge and Sink are
// optional.
type Deps struct {
	Judge     Judge
	Questions QuestionGenerator
	Feedback  FeedbackAggregator
	Knowledge Knowledge
	Sink      Sink
	Logger    *zap.Logger
	Now       func() time.Time
}

// ResultKind says what SubmitAnswer produced.
type ResultKind string

const (
	ResultQuestion  ResultKind = "question"
	ResultElaborate ResultKind = "elaborate"
	ResultReport    ResultKind = "report"
)

// Result is the outcome of one answer.
type Result struct {
	Kind     ResultKind
	Question string           // next question, or the elaborate prompt
	Report   *feedback.Report // set when Kind is ResultReport
	LogRef   string           // where the finished interview was saved
}

// Controller is the interview state machine. Calls are serialized, so one
// answer is fully processed before the next is accepted.
type Controller struct {
	mu    sync.Mutex
	cfg   Config
	deps  Deps
	phase Phase
	state State
}

// New creates a controller in PhaseNotStarted.
func New(cfg Config, deps Deps) *Controller {
	if cfg.MaxQuestions <= 0 {
		cfg.MaxQuestions = DefaultMaxQuestions
	}
	if len(cfg.StopWords) == 0 {
		cfg.StopWords = DefaultStopWords
	}
	if cfg.ContextItems <= 0 {
		cfg.ContextItems = DefaultContextItems
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Controller{cfg: cfg, deps: deps}
}

// Phase reports the lifecycle stage.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// State returns a deep copy of the interview state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Start opens the interview with a greeting and the first question, which
// it returns.
func (c *Controller) Start(ctx context.Context, name, role string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseNotStarted {
		return "", ErrAlreadyStarted
	}

	now := c.deps.Now()
	c.state = State{
		SessionID:     uuid.NewString(),
		CandidateName: name,
		TargetRole:    role,
		StartedAt:     now,
	}
	c.appendTurn(TurnGreeting, question.Greeting(name, role), "", "[system] interview started")
	c.appendTurn(TurnQuestion, question.FirstQuestion, "", "[interviewer] first question")
	c.state.TurnCount = 1
	c.state.LastQuestion = question.FirstQuestion
	c.phase = PhaseInProgress

	c.deps.Logger.Info("interview started",
		zap.String("session_id", c.state.SessionID),
		zap.String("role", role),
		zap.Int("max_questions", c.cfg.MaxQuestions),
	)
	return question.FirstQuestion, nil
}

// SubmitAnswer processes one candidate answer.
func (c *Controller) SubmitAnswer(ctx context.Context, answer string) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.phase {
	case PhaseNotStarted:
		return Result{}, ErrNotStarted
	case PhaseTerminated:
		return Result{}, ErrSessionTerminated
	}

	ctx = llm.WithSessionID(ctx, c.state.SessionID)
	answer = strings.TrimSpace(answer)

	stop := c.isStopWord(answer)
	if stop || c.state.TurnCount >= c.cfg.MaxQuestions {
		return c.terminate(ctx, answer, stop), nil
	}

	if answer == "" {
		return Result{Kind: ResultElaborate, Question: question.Elaborate}, nil
	}

	c.state.Responses = append(c.state.Responses, answer)

	j := c.deps.Judge.Judge(ctx, judge.Input{
		Role:     c.state.TargetRole,
		Question: c.state.LastQuestion,
		Answer:   answer,
	})
	instr := difficulty.Resolve(j.Text)
	number := c.state.TurnCount + 1
	asked := c.state.AskedQuestions()

	raw, err := c.deps.Questions.Generate(ctx, question.Input{
		Role:           c.state.TargetRole,
		CandidateName:  c.state.CandidateName,
		Instruction:    instr,
		QuestionNumber: number,
		PriorQuestions: asked,
		Context:        c.grounding(ctx, answer),
	})
	if err != nil {
		c.deps.Logger.Warn("question generation failed, using question bank",
			zap.String("session_id", c.state.SessionID), zap.Error(err))
		raw = question.Fallback(instr.Action, c.state.TargetRole, number, asked)
	}

	q := sanitize.Question(raw)
	if q == "" {
		q = question.Fallback(instr.Action, c.state.TargetRole, number, asked)
	}

	c.appendTurn(TurnQuestion, q, answer, j.Text)
	c.state.TurnCount++
	c.state.LastQuestion = q

	c.deps.Logger.Debug("turn completed",
		zap.String("session_id", c.state.SessionID),
		zap.Int("turn_count", c.state.TurnCount),
		zap.String("action", string(instr.Action)),
		zap.String("judge_source", j.Source),
	)
	return Result{Kind: ResultQuestion, Question: q}, nil
}

func (c *Controller) terminate(ctx context.Context, answer string, stop bool) Result {
	c.phase = PhaseTerminated
	c.state.Terminated = true
	c.state.EndedAt = c.deps.Now()
	if !stop && answer != "" {
		c.state.Responses = append(c.state.Responses, answer)
		c.state.FinalAnswer = answer
	}

	report := c.deps.Feedback.Aggregate(ctx, feedback.Input{
		CandidateName: c.state.CandidateName,
		Role:          c.state.TargetRole,
		Pairs:         c.state.Pairs(),
		Answers:       c.state.Responses,
	})
	if report == nil {
		report = feedback.DefaultReport(c.state.TargetRole, c.state.Responses)
	}

	var ref string
	if c.deps.Sink != nil {
		var err error
		ref, err = c.deps.Sink.Save(ctx, &Record{State: c.state.Clone(), Report: report})
		if err != nil {
			c.deps.Logger.Error("failed to save interview",
				zap.String("session_id", c.state.SessionID), zap.Error(err))
		}
	}

	c.deps.Logger.Info("interview finished",
		zap.String("session_id", c.state.SessionID),
		zap.Int("turn_count", c.state.TurnCount),
		zap.Bool("stopped", stop),
		zap.String("grade", string(report.Grade)),
		zap.String("report_source", report.Source),
	)
	return Result{Kind: ResultReport, Report: report, LogRef: ref}
}

// grounding returns knowledge snippets for the next question, or nil when
// grounding is off.
func (c *Controller) grounding(ctx context.Context, answer string) []string {
	if !c.cfg.GroundQuestions || c.deps.Knowledge == nil {
		return nil
	}
	category := knowledge.Classify(c.state.TargetRole, knowledge.CategoryGeneral)
	items := c.deps.Knowledge.Search(ctx, c.state.LastQuestion+" "+answer, category, c.cfg.ContextItems)
	if len(items) == 0 {
		items = c.deps.Knowledge.PositionContext(c.state.TargetRole, c.cfg.ContextItems)
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Text)
	}
	return out
}

func (c *Controller) isStopWord(answer string) bool {
	a := strings.ToLower(strings.TrimFunc(answer, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	}))
	if a == "" {
		return false
	}
	for _, w := range c.cfg.StopWords {
		if a == strings.ToLower(w) {
			return true
		}
	}
	return false
}

func (c *Controller) appendTurn(kind TurnKind, visible, answer, notes string) {
	c.state.Turns = append(c.state.Turns, Turn{
		ID:              len(c.state.Turns) + 1,
		Kind:            kind,
		VisibleQuestion: visible,
		CandidateAnswer: answer,
		InternalNotes:   notes,
		Timestamp:       c.deps.Now(),
	})
}
