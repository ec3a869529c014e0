// Package editor wraps a textarea as the commit message editor. The editor
// keeps the text it was opened with so a cancelled edit can be rolled back.
package editor

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/commitwiz/commit-wizard/internal/config"
)

// Result tells the caller what a key did to the editor.
type Result int

const (
	Continue Result = iota
	Saved
	Cancelled
)

func (r Result) String() string {
	switch r {
	case Saved:
		return "saved"
	case Cancelled:
		return "cancelled"
	default:
		return "continue"
	}
}

type Editor struct {
	textarea textarea.Model
	original string
	active   bool
	keyMap   config.KeyMappings[key.Binding]
}

func New() *Editor {
	t := textarea.New()
	t.CharLimit = 0
	t.MaxHeight = 0
	t.ShowLineNumbers = false
	t.Prompt = ""
	t.Placeholder = "commit message"
	return &Editor{
		textarea: t,
		keyMap:   config.Current.GetKeyMap(),
	}
}

// Activate loads text into the buffer and remembers it as the original.
func (e *Editor) Activate(text string) tea.Cmd {
	e.original = text
	e.active = true
	e.textarea.SetValue(text)
	return e.textarea.Focus()
}

// HandleKey applies a key to an active editor. The save binding keeps the
// buffer, the cancel binding restores the original text and anything else
// edits the buffer.
func (e *Editor) HandleKey(msg tea.KeyMsg) (Result, tea.Cmd) {
	if !e.active {
		return Continue, nil
	}
	switch {
	case key.Matches(msg, e.keyMap.Save):
		e.Save()
		return Saved, nil
	case key.Matches(msg, e.keyMap.Cancel):
		e.Cancel()
		return Cancelled, nil
	}
	var cmd tea.Cmd
	e.textarea, cmd = e.textarea.Update(msg)
	return Continue, cmd
}

// Update forwards messages other than keys, such as cursor blinks, to an
// active editor.
func (e *Editor) Update(msg tea.Msg) tea.Cmd {
	if !e.active {
		return nil
	}
	if _, ok := msg.(tea.KeyMsg); ok {
		return nil
	}
	var cmd tea.Cmd
	e.textarea, cmd = e.textarea.Update(msg)
	return cmd
}

// Save keeps the buffer as the new original and deactivates the editor.
func (e *Editor) Save() {
	if !e.active {
		return
	}
	e.original = e.textarea.Value()
	e.deactivate()
}

// Cancel restores the original text and deactivates the editor.
func (e *Editor) Cancel() {
	if !e.active {
		return
	}
	e.textarea.SetValue(e.original)
	e.deactivate()
}

func (e *Editor) deactivate() {
	e.active = false
	e.textarea.Blur()
}

func (e *Editor) Active() bool {
	return e.active
}

func (e *Editor) Value() string {
	return e.textarea.Value()
}

func (e *Editor) Original() string {
	return e.original
}

func (e *Editor) SetSize(width, height int) {
	e.textarea.SetWidth(max(width, 1))
	e.textarea.SetHeight(max(height, 1))
}

func (e *Editor) View() string {
	return e.textarea.View()
}
