package home

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

// Factories build the screens reachable from home. History may be nil
// when no session store is available.
type Factories struct {
	Interview func() screen.Screen
	History   func() screen.Screen
}

// HomeScreen is the main menu.
type HomeScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(f Factories) *HomeScreen {
	items := []components.MenuItem{
		{Label: "Start interview", Action: push(f.Interview)},
		{Label: "Past interviews", Action: push(f.History), Disabled: f.History == nil},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}
	return &HomeScreen{menu: components.NewMenu(items)}
}

func push(factory func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		if factory == nil {
			return nil
		}
		s := factory()
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string
	sections = append(sections,
		theme.Title.Render("Technical interview"),
		theme.Subtitle.Render("Answer in your own words. Press Esc to finish early."),
		"",
		theme.Card.Render(strings.TrimRight(h.menu.View(), "\n")),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
