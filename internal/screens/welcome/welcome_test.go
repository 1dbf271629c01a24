package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/interviewer/internal/router"
	"github.com/abhisek/interviewer/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

func newTestWelcome() (*WelcomeScreen, *int) {
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(factory), &callCount
}

func sendTicks(w *WelcomeScreen, n int) {
	for i := 0; i < n; i++ {
		w.Update(tickMsg(time.Now()))
	}
}

func TestPhaseTransitions(t *testing.T) {
	w, _ := newTestWelcome()

	if strings.Contains(w.View(100, 30), "Adaptive technical interviews") {
		t.Error("tagline should not be visible at start")
	}

	sendTicks(w, 5)
	if w.elapsed != phase1End {
		t.Errorf("expected elapsed %v, got %v", phase1End, w.elapsed)
	}

	sendTicks(w, 10)
	if !strings.Contains(w.View(100, 30), "Adaptive technical interviews") {
		t.Error("tagline should be visible after phase 2")
	}
}

func TestKeypressEmitsReplace(t *testing.T) {
	w, callCount := newTestWelcome()
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress should trigger transition")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen == nil {
		t.Error("replace screen should not be nil")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}
}

func TestNoAutoTransition(t *testing.T) {
	w, callCount := newTestWelcome()

	sendTicks(w, 45)
	if *callCount != 0 {
		t.Errorf("factory should not be called without keypress, got %d", *callCount)
	}
	if w.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, w.elapsed)
	}
}

func TestFactoryCalledOnce(t *testing.T) {
	w, callCount := newTestWelcome()

	w.Update(tea.KeyPressMsg{Code: 'a'})
	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called exactly once, got %d", *callCount)
	}
}

func TestTicksStopAfterTransition(t *testing.T) {
	w, _ := newTestWelcome()
	w.Update(tea.KeyPressMsg{Code: 'a'})

	if _, cmd := w.Update(tickMsg(time.Now())); cmd != nil {
		t.Error("expected no further ticks after transition")
	}
}

func TestCompactBanner(t *testing.T) {
	if got := RenderBanner(40); !strings.Contains(got, bannerCompact) {
		t.Errorf("expected compact banner on narrow terminal, got %q", got)
	}
}
