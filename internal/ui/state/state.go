// Package state holds everything the wizard screen shows: the commit groups,
// the cursors into them, the open overlay and the status message.
package state

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/commitwiz/commit-wizard/internal/changes"
	"github.com/commitwiz/commit-wizard/internal/ui/editor"
)

type Panel int

const (
	PanelGroups Panel = iota
	PanelCommitMessage
	PanelFiles
)

func (p Panel) String() string {
	switch p {
	case PanelCommitMessage:
		return "commit message"
	case PanelFiles:
		return "files"
	default:
		return "groups"
	}
}

// Overlay is the view that currently receives keys. Lower values take
// priority when the loop dispatches input.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayHelp
	OverlayDiff
	OverlayEditor
	OverlayPopup
)

func (o Overlay) String() string {
	switch o {
	case OverlayHelp:
		return "help"
	case OverlayDiff:
		return "diff"
	case OverlayEditor:
		return "editor"
	case OverlayPopup:
		return "popup"
	default:
		return "none"
	}
}

type AppState struct {
	Groups []*changes.ChangeGroup
	Editor *editor.Editor

	selectedIndex     int
	activePanel       Panel
	selectedFileIndex int
	messageScroll     int

	overlay       Overlay
	statusMessage string
	popupScroll   int

	diffPath    string
	diffContent string
	diffScroll  int
}

// New validates groups and builds the initial state with the first group
// selected and the groups panel active.
func New(groups []*changes.ChangeGroup) (*AppState, error) {
	if err := changes.ValidateNoDuplicateFiles(groups); err != nil {
		return nil, err
	}
	return &AppState{
		Groups: groups,
		Editor: editor.New(),
	}, nil
}

func (s *AppState) SelectedIndex() int     { return s.selectedIndex }
func (s *AppState) ActivePanel() Panel     { return s.activePanel }
func (s *AppState) SelectedFileIndex() int { return s.selectedFileIndex }
func (s *AppState) MessageScroll() int     { return s.messageScroll }
func (s *AppState) Overlay() Overlay       { return s.overlay }
func (s *AppState) StatusMessage() string  { return s.statusMessage }
func (s *AppState) PopupScroll() int       { return s.popupScroll }
func (s *AppState) DiffPath() string       { return s.diffPath }
func (s *AppState) DiffContent() string    { return s.diffContent }
func (s *AppState) DiffScroll() int        { return s.diffScroll }

// SelectedGroup returns the group under the cursor, or nil when there are no
// groups.
func (s *AppState) SelectedGroup() *changes.ChangeGroup {
	if s.selectedIndex < 0 || s.selectedIndex >= len(s.Groups) {
		return nil
	}
	return s.Groups[s.selectedIndex]
}

// SelectedFile returns the file under the files panel cursor.
func (s *AppState) SelectedFile() (changes.ChangedFile, bool) {
	g := s.SelectedGroup()
	if g == nil || s.selectedFileIndex < 0 || s.selectedFileIndex >= len(g.Files) {
		return changes.ChangedFile{}, false
	}
	return g.Files[s.selectedFileIndex], true
}

func (s *AppState) NextPanel() {
	s.activePanel = (s.activePanel + 1) % 3
}

func (s *AppState) PrevPanel() {
	s.activePanel = (s.activePanel + 2) % 3
}

func (s *AppState) MoveDown() {
	switch s.activePanel {
	case PanelGroups:
		if len(s.Groups) == 0 {
			return
		}
		s.selectGroup((s.selectedIndex + 1) % len(s.Groups))
	case PanelCommitMessage:
		s.messageScroll = min(s.messageScroll+1, s.lastMessageLine())
	case PanelFiles:
		if n := s.fileCount(); n > 0 {
			s.selectedFileIndex = (s.selectedFileIndex + 1) % n
		}
	}
}

func (s *AppState) MoveUp() {
	switch s.activePanel {
	case PanelGroups:
		if len(s.Groups) == 0 {
			return
		}
		s.selectGroup((s.selectedIndex + len(s.Groups) - 1) % len(s.Groups))
	case PanelCommitMessage:
		s.messageScroll = max(s.messageScroll-1, 0)
	case PanelFiles:
		if n := s.fileCount(); n > 0 {
			s.selectedFileIndex = (s.selectedFileIndex + n - 1) % n
		}
	}
}

func (s *AppState) selectGroup(index int) {
	s.selectedIndex = index
	s.selectedFileIndex = 0
	s.messageScroll = 0
}

func (s *AppState) fileCount() int {
	if g := s.SelectedGroup(); g != nil {
		return len(g.Files)
	}
	return 0
}

func (s *AppState) lastMessageLine() int {
	g := s.SelectedGroup()
	if g == nil {
		return 0
	}
	return lastLine(g.FullMessage())
}

func lastLine(text string) int {
	return max(len(Lines(text))-1, 0)
}

// Lines splits text for display, ignoring a trailing newline.
func Lines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// SetStatus records message for the status popup. The popup opens at once
// when nothing else is showing, otherwise as soon as the open overlay closes.
func (s *AppState) SetStatus(message string) {
	s.statusMessage = message
	s.popupScroll = 0
	if s.overlay == OverlayNone {
		s.overlay = OverlayPopup
	}
}

// ClearStatus drops the status message and closes its popup.
func (s *AppState) ClearStatus() {
	s.statusMessage = ""
	s.popupScroll = 0
	if s.overlay == OverlayPopup {
		s.overlay = OverlayNone
	}
}

// closeOverlay falls back to the status popup when a message is pending.
func (s *AppState) closeOverlay() {
	if s.statusMessage != "" {
		s.overlay = OverlayPopup
		return
	}
	s.overlay = OverlayNone
}

func (s *AppState) ScrollPopupDown() {
	s.popupScroll = min(s.popupScroll+1, lastLine(s.statusMessage))
}

func (s *AppState) ScrollPopupUp() {
	s.popupScroll = max(s.popupScroll-1, 0)
}

// OpenEditor starts editing text and shows the editor.
func (s *AppState) OpenEditor(text string) tea.Cmd {
	s.overlay = OverlayEditor
	return s.Editor.Activate(text)
}

// CloseEditor hides the editor. The editor must already be saved or
// cancelled.
func (s *AppState) CloseEditor() {
	if s.overlay == OverlayEditor || s.overlay == OverlayHelp {
		s.closeOverlay()
	}
}

// OpenHelp shows the key help above the editor.
func (s *AppState) OpenHelp() {
	if s.overlay == OverlayEditor {
		s.overlay = OverlayHelp
	}
}

// CloseHelp returns to the editor.
func (s *AppState) CloseHelp() {
	if s.overlay == OverlayHelp {
		s.overlay = OverlayEditor
	}
}

// OpenDiff shows content, the diff of path, from the top.
func (s *AppState) OpenDiff(path, content string) {
	s.diffPath = path
	s.diffContent = content
	s.diffScroll = 0
	s.overlay = OverlayDiff
}

func (s *AppState) CloseDiff() {
	if s.overlay != OverlayDiff {
		return
	}
	s.diffPath = ""
	s.diffContent = ""
	s.diffScroll = 0
	s.closeOverlay()
}

// ScrollDiff moves the diff view by delta lines, staying within the content.
func (s *AppState) ScrollDiff(delta int) {
	s.diffScroll = max(0, min(s.diffScroll+delta, lastLine(s.diffContent)))
}
