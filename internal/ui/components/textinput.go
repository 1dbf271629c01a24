package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/interviewer/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with the application styling and a
// label shown before the field.
type TextInput struct {
	Model textinput.Model
	Label string
}

// NewTextInput creates a focused text input. charLimit <= 0 means no limit.
func NewTextInput(label, placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()

	return TextInput{Model: ti, Label: label}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label and the field.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.Label == "" {
		return view
	}
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	if t.Model.Focused() {
		style = style.Foreground(theme.Primary).Bold(true)
	}
	return style.Render(t.Label) + "\n" + view
}

// Value returns the input with surrounding whitespace removed.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}

// SetWidth sets the visible width of the field.
func (t *TextInput) SetWidth(w int) {
	t.Model.SetWidth(w)
}

// Focus focuses the field.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus from the field.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Reset clears the field.
func (t *TextInput) Reset() {
	t.Model.Reset()
}
