// Package interview is the screen where the candidate answers questions.
package interview

import (
	"context"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/interviewer/internal/router"
	"github.com/abhisek/interviewer/internal/screen"
	"github.com/abhisek/interviewer/internal/screens/report"
	"github.com/abhisek/interviewer/internal/session"
	"github.com/abhisek/interviewer/internal/ui/components"
	"github.com/abhisek/interviewer/internal/ui/layout"
	"github.com/abhisek/interviewer/internal/ui/theme"
)

// Controller drives one interview. *session.Controller satisfies it.
type Controller interface {
	Start(ctx context.Context, name, role string) (string, error)
	SubmitAnswer(ctx context.Context, answer string) (session.Result, error)
	State() session.State
}

// Options configure the screen.
type Options struct {
	Name         string
	Role         string
	MaxQuestions int
	// StopWord is submitted when the candidate ends the interview early.
	StopWord string
}

type speaker int

const (
	speakerInterviewer speaker = iota
	speakerCandidate
)

type entry struct {
	who  speaker
	text string
}

// InterviewScreen shows the transcript and takes answers.
type InterviewScreen struct {
	ctrl        Controller
	opts        Options
	transcript  []entry
	input       components.TextInput
	spinner     spinner.Model
	busy        bool
	turnCount   int
	quitConfirm bool
	errMsg      string
}

var _ screen.Screen = (*InterviewScreen)(nil)
var _ screen.KeyHintProvider = (*InterviewScreen)(nil)
var _ screen.StatusProvider = (*InterviewScreen)(nil)
var _ screen.InputCapturer = (*InterviewScreen)(nil)

// New creates an InterviewScreen around a fresh controller.
func New(ctrl Controller, opts Options) *InterviewScreen {
	if opts.StopWord == "" {
		opts.StopWord = session.DefaultStopWords[len(session.DefaultStopWords)-1]
	}
	if opts.MaxQuestions <= 0 {
		opts.MaxQuestions = session.DefaultMaxQuestions
	}
	return &InterviewScreen{
		ctrl:    ctrl,
		opts:    opts,
		input:   components.NewTextInput("", "Type your answer...", 0),
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(theme.Hint)),
		busy:    true,
	}
}

func (s *InterviewScreen) Init() tea.Cmd {
	return tea.Batch(s.start(), s.input.Init(), s.spinner.Tick)
}

func (s *InterviewScreen) Title() string {
	return s.opts.Role
}

func (s *InterviewScreen) Status() string {
	if s.turnCount == 0 {
		return ""
	}
	return components.NewProgressBar("", s.turnCount, s.opts.MaxQuestions, 24).View()
}

func (s *InterviewScreen) CapturesInput() bool {
	return true
}

func (s *InterviewScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	if s.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Finish now"},
			{Key: "N", Description: "Keep going"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send answer"},
		{Key: "Esc", Description: "Finish early"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *InterviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		return s.handleStarted(msg)

	case answeredMsg:
		return s.handleAnswered(msg)

	case spinner.TickMsg:
		if !s.busy {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *InterviewScreen) start() tea.Cmd {
	ctrl, name, role := s.ctrl, s.opts.Name, s.opts.Role
	return func() tea.Msg {
		if _, err := ctrl.Start(context.Background(), name, role); err != nil {
			return startedMsg{Err: err}
		}
		return startedMsg{Turns: ctrl.State().Turns}
	}
}

func (s *InterviewScreen) submit(answer string) tea.Cmd {
	ctrl := s.ctrl
	return func() tea.Msg {
		res, err := ctrl.SubmitAnswer(context.Background(), answer)
		return answeredMsg{Result: res, TurnCount: ctrl.State().TurnCount, Err: err}
	}
}

func (s *InterviewScreen) handleStarted(msg startedMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	for _, t := range msg.Turns {
		s.say(speakerInterviewer, t.VisibleQuestion)
	}
	s.turnCount = 1
	return s, nil
}

func (s *InterviewScreen) handleAnswered(msg answeredMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.turnCount = msg.TurnCount

	switch msg.Result.Kind {
	case session.ResultReport:
		rs := report.New(report.Data{
			Name:    s.opts.Name,
			Role:    s.opts.Role,
			Report:  msg.Result.Report,
			Summary: session.BuildSummary(ptr(s.ctrl.State())),
			LogRef:  msg.Result.LogRef,
		})
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: rs} }
	default:
		s.say(speakerInterviewer, msg.Result.Question)
		return s, nil
	}
}

func (s *InterviewScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.busy {
		return s, nil
	}

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.quitConfirm = false
			return s, s.send(s.opts.StopWord, false)
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.quitConfirm = true
		return s, nil
	case "enter":
		answer := s.input.Value()
		s.input.Reset()
		return s, s.send(answer, true)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// send hands an answer to the controller. Stop requests are not echoed
// into the transcript.
func (s *InterviewScreen) send(answer string, echo bool) tea.Cmd {
	if echo {
		s.say(speakerCandidate, answer)
	}
	s.busy = true
	return tea.Batch(s.submit(answer), s.spinner.Tick)
}

func (s *InterviewScreen) say(who speaker, text string) {
	s.transcript = append(s.transcript, entry{who: who, text: text})
}

func ptr[T any](v T) *T { return &v }
