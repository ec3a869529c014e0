package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/commitwiz/commit-wizard/internal/config"
	"github.com/commitwiz/commit-wizard/internal/ui/state"
)

var _ tea.Model = (*wrapper)(nil)

type (
	frameTickMsg struct{}
	// wrapper adapts Model to tea.Model. Frames are rebuilt on the redraw
	// tick and right after input; in between View returns the cached frame.
	wrapper struct {
		ui          *Model
		interval    time.Duration
		render      bool
		cachedFrame string
	}
)

func (w *wrapper) tick() tea.Cmd {
	return tea.Tick(w.interval, func(time.Time) tea.Msg {
		return frameTickMsg{}
	})
}

func (w *wrapper) Init() tea.Cmd {
	w.render = true
	return tea.Batch(w.ui.Init(), w.tick())
}

func (w *wrapper) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(frameTickMsg); ok {
		w.render = true
		return w, w.tick()
	}
	cmd := w.ui.Update(msg)
	switch msg.(type) {
	case tea.KeyMsg, tea.WindowSizeMsg:
		w.render = true
	}
	return w, cmd
}

func (w *wrapper) View() string {
	if w.render {
		w.cachedFrame = w.ui.View()
		w.render = false
	}
	return w.cachedFrame
}

// New returns the screen as a tea.Model.
func New(s *state.AppState, repo Repository, generator Generator, opts Options) tea.Model {
	return &wrapper{
		ui:       NewUI(s, repo, generator, opts),
		interval: config.Current.UI.TickInterval(),
	}
}

// Run shows the screen on the alternate screen until the user quits.
func Run(s *state.AppState, repo Repository, generator Generator, opts Options) error {
	p := tea.NewProgram(New(s, repo, generator, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "running the commit screen")
	}
	return nil
}
