package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/interviewer/internal/ui/theme"
)

// ProgressBar displays how far through a fixed number of steps we are.
type ProgressBar struct {
	Label string
	Done  int
	Total int
	Width int
}

// NewProgressBar creates a progress bar for done out of total steps.
func NewProgressBar(label string, done, total, width int) ProgressBar {
	return ProgressBar{Label: label, Done: done, Total: total, Width: width}
}

// Fraction returns the completed share, clamped to [0, 1].
func (p ProgressBar) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	f := float64(p.Done) / float64(p.Total)
	return max(0, min(f, 1))
}

// View renders the bar followed by "done/total".
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	counter := fmt.Sprintf("  %d/%d", p.Done, p.Total)
	barWidth := p.Width - lipgloss.Width(result) - len(counter)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Fraction())
	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(counter)
	return result
}
