// Package report shows the final assessment of an interview.
package report

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/interviewer/internal/feedback"
	"github.com/abhisek/interviewer/internal/screen"
	"github.com/abhisek/interviewer/internal/session"
	"github.com/abhisek/interviewer/internal/ui/layout"
	"github.com/abhisek/interviewer/internal/ui/theme"
)

// Data is what the screen displays. Summary and LogRef are optional.
type Data struct {
	Name    string
	Role    string
	Report  *feedback.Report
	Summary *session.Summary
	LogRef  string
}

// ReportScreen displays a feedback report with vertical scrolling.
type ReportScreen struct {
	data   Data
	offset int
	// lastHeight is the visible height seen by the latest View.
	lastHeight int
}

var _ screen.Screen = (*ReportScreen)(nil)
var _ screen.KeyHintProvider = (*ReportScreen)(nil)

// New creates a new ReportScreen.
func New(data Data) *ReportScreen {
	return &ReportScreen{data: data}
}

func (s *ReportScreen) Init() tea.Cmd {
	return nil
}

func (s *ReportScreen) Title() string {
	return "Interview feedback"
}

func (s *ReportScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
		{Key: "Q", Description: "Quit"},
	}
}

func (s *ReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "q":
		return s, tea.Quit
	case "up", "k":
		s.scroll(-1)
	case "down", "j":
		s.scroll(1)
	case "pgup":
		s.scroll(-max(s.lastHeight-1, 1))
	case "pgdown", "space":
		s.scroll(max(s.lastHeight-1, 1))
	case "home", "g":
		s.offset = 0
	}
	return s, nil
}

func (s *ReportScreen) scroll(n int) {
	s.offset = max(s.offset+n, 0)
}

func (s *ReportScreen) View(width, height int) string {
	s.lastHeight = height
	lines := strings.Split(s.render(width), "\n")

	maxOffset := max(len(lines)-height, 0)
	if s.offset > maxOffset {
		s.offset = maxOffset
	}
	end := min(s.offset+height, len(lines))
	return strings.Join(lines[s.offset:end], "\n")
}

func (s *ReportScreen) render(width int) string {
	r := s.data.Report
	if r == nil {
		return layout.Centered(theme.Hint, width, "\n\nNo feedback available.")
	}

	cw := min(width-4, 90)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	body := theme.Body.Width(cw)

	var b strings.Builder
	line := func(s string) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(s)))
		b.WriteString("\n")
	}
	section := func(title string) {
		b.WriteString("\n")
		line(theme.Section.Render(title))
		line(dim.Render(strings.Repeat("─", cw)))
	}

	line(theme.Title.Width(cw).Render(fmt.Sprintf("%s · %s", s.data.Name, s.data.Role)))
	if sum := s.data.Summary; sum != nil {
		mins := int(sum.Duration.Minutes())
		secs := int(sum.Duration.Seconds()) % 60
		line(dim.Width(cw).Align(lipgloss.Center).Render(fmt.Sprintf(
			"Duration %d:%02d    Questions %d    Answers %d", mins, secs, sum.QuestionsAsked, sum.Answers)))
	}

	section("A. Verdict")
	line(fmt.Sprintf("Grade           %s", theme.Body.Bold(true).Render(string(r.Grade))))
	line(fmt.Sprintf("Recommendation  %s",
		lipgloss.NewStyle().Foreground(recommendationColor(r.Recommendation)).Bold(true).Render(string(r.Recommendation))))
	line(fmt.Sprintf("Confidence      %d%%", r.Confidence))

	section("B. Hard skills")
	line(theme.Good.Render("Confirmed"))
	for _, sk := range r.ConfirmedSkills {
		line(body.Render("  ✓ " + sk))
	}
	line("")
	line(theme.Bad.Render("Gaps"))
	for i, g := range r.KnowledgeGaps {
		line(body.Render("  ✗ " + g))
		if i < len(r.Corrections) {
			line(dim.Width(cw).Render("    Correct answer: " + r.Corrections[i]))
		}
	}

	section("C. Soft skills")
	line(fmt.Sprintf("Clarity     %s", ratingStyle(r.SoftSkills.Clarity)))
	line(fmt.Sprintf("Honesty     %s", ratingStyle(r.SoftSkills.Honesty)))
	line(fmt.Sprintf("Engagement  %s", ratingStyle(r.SoftSkills.Engagement)))

	section("D. Roadmap")
	for i, t := range r.RoadmapTopics {
		line(body.Render(fmt.Sprintf("%d. %s", i+1, t)))
		if i < len(r.RoadmapLinks) {
			line(dim.Render("   " + r.RoadmapLinks[i]))
		}
	}
	for _, res := range r.RoadmapResources {
		line("")
		line(body.Render(fmt.Sprintf("%s → %s", res.Topic, res.Recommended)))
		line(dim.Width(cw).Render(fmt.Sprintf("   %s: %s", res.Description, res.URL)))
		if res.Reference != "" {
			line(theme.Hint.Width(cw).Render("   " + res.Reference))
		}
	}

	if s.data.LogRef != "" {
		b.WriteString("\n")
		line(theme.Hint.Render("Saved to " + s.data.LogRef))
	}
	return b.String()
}

func ratingStyle(r feedback.Rating) string {
	c := theme.Text
	switch r {
	case feedback.RatingHigh:
		c = theme.Success
	case feedback.RatingLow:
		c = theme.Error
	}
	return lipgloss.NewStyle().Foreground(c).Render(string(r))
}

func recommendationColor(r feedback.Recommendation) color.Color {
	switch r {
	case feedback.RecommendStrongHire:
		return theme.Accent
	case feedback.RecommendHire:
		return theme.Success
	default:
		return theme.Error
	}
}
