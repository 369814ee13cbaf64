package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathdash/internal/game"
	"github.com/abhisek/mathdash/internal/profile"
	"github.com/abhisek/mathdash/internal/router"
	"github.com/abhisek/mathdash/internal/screen"
	"github.com/abhisek/mathdash/internal/screens/login"
	"github.com/abhisek/mathdash/internal/screens/modeselect"
	"github.com/abhisek/mathdash/internal/screens/nav"
	"github.com/abhisek/mathdash/internal/screens/play"
	"github.com/abhisek/mathdash/internal/screens/signup"
	"github.com/abhisek/mathdash/internal/screens/welcome"
	"github.com/abhisek/mathdash/internal/ui/layout"
)

// Options holds the services the screens are built from.
type Options struct {
	Profiles       *profile.Service
	Problems       game.Problems
	RoundSeconds   int
	InactivityDays int
	Logger         *slog.Logger
	SkipSplash     bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	screens screens
	player  layout.Player
	width   int
	height  int
}

// newAppModel creates an AppModel starting on the splash screen, or
// directly on the first real screen when SkipSplash is set.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	m := AppModel{screens: screens{opts: opts}}
	if opts.SkipSplash {
		m.router = router.New(m.screens.start())
	} else {
		m.router = router.New(welcome.New(m.screens.start))
	}
	m.refreshPlayer()
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
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
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}

	case nav.GoToMsg:
		m.screens.opts.Logger.Debug("navigate", "to", msg.Target.String())
		m.refreshPlayer()
		return m, m.router.Reset(m.screens.build(msg.Target))

	case nav.PlayerChangedMsg:
		m.refreshPlayer()
		return m, nil
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// refreshPlayer reloads the header's player details from the store.
func (m *AppModel) refreshPlayer() {
	name, p, err := m.screens.opts.Profiles.CurrentUser(context.Background())
	if err != nil {
		m.player = layout.Player{}
		return
	}
	m.player = layout.Player{Name: name, HighScore: p.HighScore}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.player, m.width)
	footer := layout.RenderFooter(m.keyHints(active), m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) keyHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	return []layout.KeyHint{
		{Key: "any key", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// screens builds the top-level screens from Options.
type screens struct {
	opts Options
}

// start picks the first screen: mode select for a logged-in player,
// login otherwise.
func (s screens) start() screen.Screen {
	if _, _, err := s.opts.Profiles.CurrentUser(context.Background()); err == nil {
		return s.build(nav.ModeSelect)
	}
	return s.build(nav.Login)
}

func (s screens) build(t nav.Target) screen.Screen {
	switch t {
	case nav.ModeSelect:
		return modeselect.New(s.opts.Profiles)
	case nav.Game:
		return play.New(s.opts.Profiles, s.opts.Problems,
			game.WithRoundSeconds(s.opts.RoundSeconds),
			game.WithLogger(s.opts.Logger),
		)
	default:
		return login.New(s.opts.Profiles, func(prefill func(string)) screen.Screen {
			return signup.New(s.opts.Profiles, s.opts.InactivityDays, prefill)
		})
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
