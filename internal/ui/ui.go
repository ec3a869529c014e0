// Package ui is the interactive commit screen: three panels over a shortcut
// bar, plus the editor, diff, help and status overlays.
package ui

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/commitwiz/commit-wizard/internal/changes"
	"github.com/commitwiz/commit-wizard/internal/config"
	"github.com/commitwiz/commit-wizard/internal/ui/diff"
	"github.com/commitwiz/commit-wizard/internal/ui/editor"
	"github.com/commitwiz/commit-wizard/internal/ui/helppage"
	"github.com/commitwiz/commit-wizard/internal/ui/popup"
	"github.com/commitwiz/commit-wizard/internal/ui/render"
	"github.com/commitwiz/commit-wizard/internal/ui/state"
	"github.com/commitwiz/commit-wizard/internal/ui/status"
)

// Repository reads diffs and records commits.
type Repository interface {
	FileDiff(path string) (string, error)
	CommitGroup(group *changes.ChangeGroup) (string, error)
}

// Generator writes a commit description and body for a group.
type Generator interface {
	GenerateCommitMessage(ctx context.Context, group *changes.ChangeGroup, files []changes.ChangedFile, diff string) (string, string, error)
}

type Options struct {
	// AIEnabled turns on the AI generate action. It needs a Generator.
	AIEnabled bool
	// Clipboard receives copied commit messages. Defaults to the system
	// clipboard.
	Clipboard func(string) error
}

type Model struct {
	state          *state.AppState
	repo           Repository
	generator      Generator
	aiEnabled      bool
	clipboard      func(string) error
	keyMap         config.KeyMappings[key.Binding]
	diff           *diff.Model
	popup          *popup.Model
	help           *helppage.Model
	status         *status.Model
	displayContext *render.DisplayContext
	width          int
	height         int
	quitting       bool
}

func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle("commit-wizard")
}

func (m *Model) State() *state.AppState {
	return m.state
}

// Quitting reports whether the quit key was pressed.
func (m *Model) Quitting() bool {
	return m.quitting
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m.state.Editor.Update(msg)
}

// handleKey gives the key to whichever view is on top. Help sits above the
// editor, the diff viewer above the status popup, and the panels only see
// keys when nothing is open.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.state.Overlay() {
	case state.OverlayHelp:
		return m.handleHelpKey(msg)
	case state.OverlayDiff:
		return m.handleDiffKey(msg)
	case state.OverlayEditor:
		return m.handleEditorKey(msg)
	case state.OverlayPopup:
		return m.handlePopupKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m *Model) handleHelpKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keyMap.Cancel, m.keyMap.Help) {
		m.state.CloseHelp()
	}
	return nil
}

func (m *Model) handleDiffKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keyMap.Cancel):
		m.state.CloseDiff()
	case key.Matches(msg, m.keyMap.Down):
		m.state.ScrollDiff(1)
	case key.Matches(msg, m.keyMap.Up):
		m.state.ScrollDiff(-1)
	case key.Matches(msg, m.keyMap.PageDown):
		m.state.ScrollDiff(m.diffPageSize())
	case key.Matches(msg, m.keyMap.PageUp):
		m.state.ScrollDiff(-m.diffPageSize())
	}
	return nil
}

func (m *Model) handleEditorKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keyMap.Help) {
		m.state.OpenHelp()
		return nil
	}
	result, cmd := m.state.Editor.HandleKey(msg)
	switch result {
	case editor.Saved:
		m.applyEditedMessage(m.state.Editor.Value())
		m.state.CloseEditor()
	case editor.Cancelled:
		m.state.CloseEditor()
	}
	return cmd
}

func (m *Model) handlePopupKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keyMap.Dismiss, m.keyMap.ClearStatus):
		m.state.ClearStatus()
	case key.Matches(msg, m.keyMap.Down):
		m.state.ScrollPopupDown()
	case key.Matches(msg, m.keyMap.Up):
		m.state.ScrollPopupUp()
	}
	return nil
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keyMap.NextPanel):
		m.state.NextPanel()
	case key.Matches(msg, m.keyMap.PrevPanel):
		m.state.PrevPanel()
	case key.Matches(msg, m.keyMap.Down):
		m.state.MoveDown()
	case key.Matches(msg, m.keyMap.Up):
		m.state.MoveUp()
	case key.Matches(msg, m.keyMap.Edit):
		return m.editSelected()
	case key.Matches(msg, m.keyMap.Diff):
		m.showDiff()
	case key.Matches(msg, m.keyMap.AIGenerate):
		m.generateMessage()
	case key.Matches(msg, m.keyMap.Commit):
		m.commitSelected()
	case key.Matches(msg, m.keyMap.CommitAll):
		m.commitAll()
	case key.Matches(msg, m.keyMap.Copy):
		m.copyMessage()
	case key.Matches(msg, m.keyMap.ClearStatus):
		m.state.ClearStatus()
	}
	return nil
}

func (m *Model) diffPageSize() int {
	return max(m.height-5, 1)
}

// NewUI builds the screen model around s. A nil generator disables the AI
// action whatever opts says.
func NewUI(s *state.AppState, repo Repository, generator Generator, opts Options) *Model {
	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.WriteAll
	}
	aiEnabled := opts.AIEnabled && generator != nil
	return &Model{
		state:          s,
		repo:           repo,
		generator:      generator,
		aiEnabled:      aiEnabled,
		clipboard:      clip,
		keyMap:         config.Current.GetKeyMap(),
		diff:           diff.New(),
		popup:          popup.New(),
		help:           helppage.New(),
		status:         status.New(aiEnabled),
		displayContext: render.NewDisplayContext(),
	}
}
