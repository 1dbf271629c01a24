package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/interviewer/internal/router"
	"github.com/abhisek/interviewer/internal/screen"
	"github.com/abhisek/interviewer/internal/screens/report"
	"github.com/abhisek/interviewer/internal/session"
	"github.com/abhisek/interviewer/internal/sessionlog"
	"github.com/abhisek/interviewer/internal/store"
	"github.com/abhisek/interviewer/internal/ui/layout"
	"github.com/abhisek/interviewer/internal/ui/theme"
)

// pageSize bounds how many past interviews are loaded.
const pageSize = 50

type historyLoadedMsg struct {
	Sessions []store.SessionRecord
	Err      error
}

// HistoryScreen lists past interviews.
type HistoryScreen struct {
	repo     store.SessionRepo
	sessions []store.SessionRecord
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.SessionRepo) *HistoryScreen {
	return &HistoryScreen{repo: repo}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		sessions, err := repo.ListSessions(context.Background(), pageSize)
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Past interviews"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Open"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			return s, s.open()
		}
	}
	return s, nil
}

// open pushes the report of the selected interview.
func (s *HistoryScreen) open() tea.Cmd {
	if s.selected >= len(s.sessions) {
		return nil
	}
	rec, err := sessionlog.FromStored(&s.sessions[s.selected])
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	rs := report.New(report.Data{
		Name:    rec.State.CandidateName,
		Role:    rec.State.TargetRole,
		Report:  rec.Report,
		Summary: session.BuildSummary(&rec.State),
		LogRef:  rec.State.SessionID,
	})
	return func() tea.Msg { return router.PushScreenMsg{Screen: rs} }
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
			fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width,
			"\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return layout.Centered(theme.Hint, width, "\n\n  No interviews yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	// Keep the selection on screen.
	first := 0
	if visible := height - 2; visible > 0 && s.selected >= visible {
		first = s.selected - visible + 1
	}

	for i := first; i < len(s.sessions); i++ {
		sr := s.sessions[i]
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "> "
			style = theme.Selected
		}

		verdict := sr.Recommendation
		if verdict == "" {
			verdict = "no report"
		}
		line := fmt.Sprintf("%s%s  %-20s  %-24s  %2d questions  %s %s",
			prefix, sr.StartedAt.Local().Format("Jan 02, 2006 15:04"),
			truncate(sr.CandidateName, 20), truncate(sr.TargetRole, 24),
			sr.TurnCount, sr.Grade, verdict)

		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
