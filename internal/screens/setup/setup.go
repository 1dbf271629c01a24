// Package setup asks for the candidate's name and target position before
// an interview starts.
package setup

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/interviewer/internal/router"
	"github.com/abhisek/interviewer/internal/screen"
	"github.com/abhisek/interviewer/internal/ui/components"
	"github.com/abhisek/interviewer/internal/ui/layout"
	"github.com/abhisek/interviewer/internal/ui/theme"
)

const (
	fieldName = iota
	fieldRole
)

const fieldWidth = 40

// SetupScreen collects the interview parameters.
type SetupScreen struct {
	fields []components.TextInput
	focus  int
	errMsg string
	start  func(name, role string) screen.Screen
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a SetupScreen prefilled with name and role. start builds the
// interview screen once both are given.
func New(name, role string, start func(name, role string) screen.Screen) *SetupScreen {
	nameIn := components.NewTextInput("Your name", "Jane Doe", 80)
	nameIn.Model.SetValue(name)
	roleIn := components.NewTextInput("Position", "Backend Developer", 120)
	roleIn.Model.SetValue(role)
	for _, f := range []*components.TextInput{&nameIn, &roleIn} {
		f.SetWidth(fieldWidth)
	}

	s := &SetupScreen{
		fields: []components.TextInput{nameIn, roleIn},
		start:  start,
	}
	if name != "" && role == "" {
		s.focus = fieldRole
	}
	s.applyFocus()
	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.fields[s.focus].Focus()
}

func (s *SetupScreen) Title() string {
	return "New interview"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab", "down":
			s.focus = (s.focus + 1) % len(s.fields)
			return s, s.applyFocus()
		case "shift+tab", "up":
			s.focus = (s.focus + len(s.fields) - 1) % len(s.fields)
			return s, s.applyFocus()
		case "enter":
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	s.fields[s.focus], cmd = s.fields[s.focus].Update(msg)
	return s, cmd
}

func (s *SetupScreen) applyFocus() tea.Cmd {
	var cmd tea.Cmd
	for i := range s.fields {
		if i == s.focus {
			cmd = s.fields[i].Focus()
		} else {
			s.fields[i].Blur()
		}
	}
	return cmd
}

// submit starts the interview, or moves to the first empty field.
func (s *SetupScreen) submit() tea.Cmd {
	name := s.fields[fieldName].Value()
	role := s.fields[fieldRole].Value()

	switch {
	case name == "":
		s.errMsg = "Please enter your name."
		s.focus = fieldName
		return s.applyFocus()
	case role == "":
		s.errMsg = "Please enter the position you are interviewing for."
		s.focus = fieldRole
		return s.applyFocus()
	}

	s.errMsg = ""
	next := s.start(name, role)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *SetupScreen) View(width, height int) string {
	parts := make([]string, 0, len(s.fields))
	for _, f := range s.fields {
		parts = append(parts, f.View())
	}
	form := strings.Join(parts, "\n\n")
	if s.errMsg != "" {
		form += "\n\n" + theme.Bad.Render(s.errMsg)
	}

	content := theme.Title.Render("Who is interviewing today?") + "\n\n" + theme.Card.Render(form)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
