package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/interviewer/internal/router"
	"github.com/abhisek/interviewer/internal/screen"
	"github.com/abhisek/interviewer/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const deskArt = `   ┌──────────────────┐
   │  > tell me about │
   │    your stack_   │
   └────────┬─────────┘
     ───────┴───────`

// cursorFrames blink the prompt under the desk art.
var cursorFrames = []string{"▌", " "}

type tickMsg time.Time

// WelcomeScreen shows a splash animation before handing over to the next
// screen.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with the screen built
// by next on the first key press.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	art := lipgloss.NewStyle().Foreground(theme.Secondary).Render(deskArt)
	if w.elapsed >= phase1End {
		cursor := cursorFrames[(w.tickCount/5)%len(cursorFrames)]
		art += "\n" + lipgloss.NewStyle().Foreground(theme.Accent).Render("        "+cursor)
	}
	sections = append(sections, art)

	if w.elapsed >= phase2End {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
				Render("Adaptive technical interviews"),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
