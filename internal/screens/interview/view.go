package interview

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/interviewer/internal/ui/layout"
	"github.com/abhisek/interviewer/internal/ui/theme"
)

// inputHeight is the room kept below the transcript for the answer field
// and the status line.
const inputHeight = 3

func (s *InterviewScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
			fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", s.errMsg))
	}
	if s.quitConfirm {
		return renderQuitConfirm(width)
	}

	s.input.SetWidth(max(width-8, 10))

	transcript := s.renderTranscript(width - 4)
	transcript = tail(transcript, height-inputHeight)

	var b strings.Builder
	b.WriteString(strings.Join(transcript, "\n"))
	b.WriteString("\n\n")
	if s.busy {
		b.WriteString("  " + s.spinner.View() + theme.Hint.Render(" Interviewer is thinking..."))
	} else {
		b.WriteString("  " + s.input.View())
	}
	return b.String()
}

// renderTranscript returns the conversation as display lines.
func (s *InterviewScreen) renderTranscript(width int) []string {
	msgStyle := theme.Message.Width(max(width, 20))

	var lines []string
	for _, e := range s.transcript {
		label := theme.Interviewer.Render("Interviewer")
		text := e.text
		if e.who == speakerCandidate {
			label = theme.Candidate.Render("You")
			if text == "" {
				text = theme.Hint.Render("(no answer)")
			}
		}
		lines = append(lines, "  "+label)
		lines = append(lines, strings.Split(msgStyle.Render(text), "\n")...)
		lines = append(lines, "")
	}
	return lines
}

// tail keeps the last n lines so the newest message stays visible.
func tail(lines []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if len(lines) <= n {
		return lines
	}
	return lines[len(lines)-n:]
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.Centered(theme.Body.Bold(true), width, "Finish the interview now?"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width,
		"Your answers so far will be assessed."))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Success), width, "[Y] Yes, finish"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Primary), width, "[N] No, keep going"))
	return b.String()
}
