// Package app hosts the interactive terminal interface.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/interviewer/internal/router"
	"github.com/abhisek/interviewer/internal/screen"
	"github.com/abhisek/interviewer/internal/screens/history"
	"github.com/abhisek/interviewer/internal/screens/home"
	"github.com/abhisek/interviewer/internal/screens/interview"
	"github.com/abhisek/interviewer/internal/screens/setup"
	"github.com/abhisek/interviewer/internal/screens/welcome"
	"github.com/abhisek/interviewer/internal/store"
	"github.com/abhisek/interviewer/internal/ui/layout"
)

// Options wire the interface to the interview machinery.
type Options struct {
	// NewController returns a fresh controller for each interview.
	NewController func() interview.Controller
	// Sessions enables the past interviews screen when set.
	Sessions     store.SessionRepo
	MaxQuestions int
	StopWord     string

	// Name and Role prefill the setup form. With both set the interview
	// starts immediately.
	Name string
	Role string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel picks the first screen from opts.
func newAppModel(opts Options) AppModel {
	startInterview := func(name, role string) screen.Screen {
		return interview.New(opts.NewController(), interview.Options{
			Name:         name,
			Role:         role,
			MaxQuestions: opts.MaxQuestions,
			StopWord:     opts.StopWord,
		})
	}

	if opts.Name != "" && opts.Role != "" {
		return AppModel{router: router.New(startInterview(opts.Name, opts.Role))}
	}

	factories := home.Factories{
		Interview: func() screen.Screen { return setup.New(opts.Name, opts.Role, startInterview) },
	}
	if opts.Sessions != nil {
		factories.History = func() screen.Screen { return history.New(opts.Sessions) }
	}
	homeScreen := func() screen.Screen { return home.New(factories) }

	return AppModel{router: router.New(welcome.New(homeScreen))}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.InputCapturer); ok && c.CapturesInput() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render composes the header, active screen and footer.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var title, status string
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}
	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
