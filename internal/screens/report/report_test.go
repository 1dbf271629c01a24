package report

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/interviewer/internal/feedback"
	"github.com/abhisek/interviewer/internal/session"
)

func testData() Data {
	return Data{
		Name: "Ada",
		Role: "Backend Developer",
		Report: &feedback.Report{
			Grade:           feedback.GradeMiddle,
			Recommendation:  feedback.RecommendHire,
			Confidence:      80,
			ConfirmedSkills: []string{"HTTP basics"},
			KnowledgeGaps:   []string{"Database indexing"},
			Corrections:     []string{"Use B-tree indexes for range queries"},
			SoftSkills: feedback.SoftSkills{
				Clarity: feedback.RatingHigh, Honesty: feedback.RatingHigh, Engagement: feedback.RatingMedium,
			},
			RoadmapTopics: []string{"SQL performance"},
			RoadmapLinks:  []string{"https://roadmap.sh/sql"},
		},
		Summary: &session.Summary{Duration: 3*time.Minute + 5*time.Second, QuestionsAsked: 4, Answers: 4},
		LogRef:  "sessions/Ada_20260101_120000.json",
	}
}

func TestViewShowsAllSections(t *testing.T) {
	view := New(testData()).View(100, 200)

	for _, want := range []string{
		"A. Verdict", "B. Hard skills", "C. Soft skills", "D. Roadmap",
		"Middle", "Hire", "80%", "Database indexing", "Correct answer",
		"3:05", "Saved to sessions/Ada_20260101_120000.json",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestViewWithoutReport(t *testing.T) {
	view := New(Data{Name: "Ada"}).View(80, 20)
	if !strings.Contains(view, "No feedback available") {
		t.Errorf("expected empty-state message, got %q", view)
	}
}

func TestScrollClampedToContent(t *testing.T) {
	s := New(testData())
	s.View(100, 10)

	for i := 0; i < 500; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	view := s.View(100, 10)
	if got := strings.Count(view, "\n") + 1; got != 10 {
		t.Errorf("expected a full page of 10 lines at the bottom, got %d", got)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.offset < 0 {
		t.Errorf("offset must not go negative, got %d", s.offset)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyHome})
	if s.offset != 0 {
		t.Errorf("expected home to reset offset, got %d", s.offset)
	}
}

func TestQuitKey(t *testing.T) {
	_, cmd := New(testData()).Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}
