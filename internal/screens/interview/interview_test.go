package interview

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/interviewer/internal/feedback"
	"github.com/abhisek/interviewer/internal/router"
	"github.com/abhisek/interviewer/internal/session"
)

// fakeController replays scripted results.
type fakeController struct {
	startErr error
	results  []session.Result
	answers  []string
	state    session.State
}

func (f *fakeController) Start(_ context.Context, name, role string) (string, error) {
	if f.startErr != nil {
		return "", f.startErr
	}
	f.state = session.State{
		CandidateName: name,
		TargetRole:    role,
		TurnCount:     1,
		Turns: []session.Turn{
			{Kind: session.TurnGreeting, VisibleQuestion: "Hello, " + name + "!"},
			{Kind: session.TurnQuestion, VisibleQuestion: "First question?"},
		},
	}
	return "First question?", nil
}

func (f *fakeController) SubmitAnswer(_ context.Context, answer string) (session.Result, error) {
	f.answers = append(f.answers, answer)
	if len(f.results) == 0 {
		return session.Result{}, session.ErrSessionTerminated
	}
	res := f.results[0]
	f.results = f.results[1:]
	if res.Kind == session.ResultQuestion {
		f.state.TurnCount++
	}
	return res, nil
}

func (f *fakeController) State() session.State { return f.state }

func keyRune(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func keyCode(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// started returns a screen that has processed its start command.
func started(t *testing.T, ctrl *fakeController) *InterviewScreen {
	t.Helper()
	s := New(ctrl, Options{Name: "Ada", Role: "Go Developer", MaxQuestions: 5})
	s.Update(s.start()())
	return s
}

func typeAnswer(s *InterviewScreen, text string) tea.Cmd {
	for _, r := range text {
		s.Update(keyRune(r))
	}
	_, cmd := s.Update(keyCode(tea.KeyEnter))
	return cmd
}

// runSubmit executes the submit command directly, skipping the spinner.
func runSubmit(s *InterviewScreen) tea.Msg {
	return s.submit(s.lastAnswer())()
}

func (s *InterviewScreen) lastAnswer() string {
	for i := len(s.transcript) - 1; i >= 0; i-- {
		if s.transcript[i].who == speakerCandidate {
			return s.transcript[i].text
		}
	}
	return ""
}

func TestStartShowsGreetingAndFirstQuestion(t *testing.T) {
	s := started(t, &fakeController{})

	if s.busy {
		t.Error("expected screen to accept input after start")
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "Hello, Ada!") || !strings.Contains(view, "First question?") {
		t.Errorf("expected greeting and first question, got %q", view)
	}
	if s.turnCount != 1 {
		t.Errorf("expected turn count 1, got %d", s.turnCount)
	}
}

func TestStartErrorShown(t *testing.T) {
	s := started(t, &fakeController{startErr: errors.New("boom")})

	if !strings.Contains(s.View(100, 30), "boom") {
		t.Error("expected start error in view")
	}
	_, cmd := s.Update(keyRune('x'))
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected any key to go back after an error")
	}
}

func TestAnswerAppendsNextQuestion(t *testing.T) {
	ctrl := &fakeController{results: []session.Result{
		{Kind: session.ResultQuestion, Question: "Second question?"},
	}}
	s := started(t, ctrl)

	if cmd := typeAnswer(s, "goroutines"); cmd == nil {
		t.Fatal("expected submit command")
	}
	if !s.busy {
		t.Error("expected busy while waiting for the controller")
	}

	// Keys are ignored while busy.
	s.Update(keyRune('z'))
	if s.input.Value() != "" {
		t.Errorf("expected input cleared and locked, got %q", s.input.Value())
	}

	s.Update(runSubmit(s))
	if s.busy {
		t.Error("expected idle after the answer was processed")
	}
	if got := ctrl.answers; len(got) != 1 || got[0] != "goroutines" {
		t.Errorf("unexpected answers sent: %v", got)
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "goroutines") || !strings.Contains(view, "Second question?") {
		t.Errorf("expected answer and next question in transcript, got %q", view)
	}
	if s.turnCount != 2 {
		t.Errorf("expected turn count 2, got %d", s.turnCount)
	}
}

func TestReportReplacesScreen(t *testing.T) {
	ctrl := &fakeController{results: []session.Result{
		{Kind: session.ResultReport, Report: &feedback.Report{Grade: feedback.GradeJunior}, LogRef: "x.json"},
	}}
	s := started(t, ctrl)
	typeAnswer(s, "done")

	_, cmd := s.Update(runSubmit(s))
	if cmd == nil {
		t.Fatal("expected navigation command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen.Title() != "Interview feedback" {
		t.Errorf("expected report screen, got %q", msg.Screen.Title())
	}
}

func TestEscConfirmSendsStopWord(t *testing.T) {
	ctrl := &fakeController{results: []session.Result{{Kind: session.ResultReport}}}
	s := New(ctrl, Options{Name: "Ada", Role: "Go Developer", StopWord: "stop"})
	s.Update(s.start()())

	s.Update(keyCode(tea.KeyEscape))
	if !s.quitConfirm {
		t.Fatal("expected quit confirmation")
	}
	if !strings.Contains(s.View(100, 30), "Finish the interview now?") {
		t.Error("expected confirmation dialog")
	}

	_, cmd := s.Update(keyRune('y'))
	if cmd == nil {
		t.Fatal("expected submit command")
	}
	// The stop word goes straight to the controller without a transcript entry.
	for _, e := range s.transcript {
		if e.who == speakerCandidate {
			t.Errorf("stop request should not be echoed, got %q", e.text)
		}
	}
	s.Update(s.submit("stop")())
	if len(ctrl.answers) != 1 || ctrl.answers[0] != "stop" {
		t.Errorf("expected stop word submitted, got %v", ctrl.answers)
	}
}

func TestEscCancel(t *testing.T) {
	s := started(t, &fakeController{})
	s.Update(keyCode(tea.KeyEscape))
	s.Update(keyRune('n'))
	if s.quitConfirm {
		t.Error("expected confirmation dismissed")
	}
}

func TestEmptyAnswerShownAsNoAnswer(t *testing.T) {
	ctrl := &fakeController{results: []session.Result{
		{Kind: session.ResultElaborate, Question: "Please give a more detailed answer."},
	}}
	s := started(t, ctrl)
	typeAnswer(s, "")
	s.Update(runSubmit(s))

	view := s.View(100, 30)
	if !strings.Contains(view, "(no answer)") {
		t.Error("expected empty answer placeholder")
	}
	if !strings.Contains(view, "more detailed answer") {
		t.Error("expected elaborate prompt")
	}
}

func TestTranscriptKeepsNewestVisible(t *testing.T) {
	s := started(t, &fakeController{})
	for i := 0; i < 30; i++ {
		s.say(speakerInterviewer, "filler")
	}
	s.say(speakerInterviewer, "latest question")

	if !strings.Contains(s.View(100, 12), "latest question") {
		t.Error("expected newest message visible in a short view")
	}
}

func TestStatusShowsProgress(t *testing.T) {
	s := New(&fakeController{}, Options{Name: "Ada", Role: "Go Developer", MaxQuestions: 5})
	if s.Status() != "" {
		t.Error("expected no status before start")
	}
	s.Update(s.start()())
	if !strings.Contains(s.Status(), "1/5") {
		t.Errorf("expected 1/5 in status, got %q", s.Status())
	}
}
