package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
	"github.com/commitwiz/commit-wizard/internal/changes"
	"github.com/commitwiz/commit-wizard/internal/ui/common"
	"github.com/commitwiz/commit-wizard/internal/ui/layout"
	"github.com/commitwiz/commit-wizard/internal/ui/render"
	"github.com/commitwiz/commit-wizard/internal/ui/state"
)

const shortcutBarHeight = 3

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	m.displayContext.Clear()
	dl := m.displayContext

	box := layout.NewBox(cellbuf.Rect(0, 0, m.width, m.height))
	content, bar := box.CutBottom(shortcutBarHeight)
	m.status.ViewRect(dl, bar)

	columns := content.H(layout.Percent(50), layout.Fill(1))
	m.renderGroups(dl, columns[0])
	right := columns[1].V(layout.Percent(50), layout.Fill(1))
	m.renderMessage(dl, right[0])
	m.renderFiles(dl, right[1])

	overlay := m.state.Overlay()
	if overlay == state.OverlayEditor || overlay == state.OverlayHelp || overlay == state.OverlayDiff {
		dl.AddDim(content.R, render.ZShade)
	}
	if m.state.StatusMessage() != "" {
		m.popup.SetMessage(m.state.StatusMessage(), m.state.PopupScroll(), overlay == state.OverlayPopup)
		m.popup.ViewRect(dl, box)
	}
	if overlay == state.OverlayEditor || overlay == state.OverlayHelp {
		m.renderEditor(dl, content)
	}
	if overlay == state.OverlayHelp {
		m.help.ViewRect(dl, box)
	}
	if overlay == state.OverlayDiff {
		m.diff.SetContent(m.state.DiffPath(), m.state.DiffContent())
		m.diff.SetOffset(m.state.DiffScroll())
		m.diff.ViewRect(dl, content)
	}

	return strings.ReplaceAll(dl.RenderToString(m.width, m.height), "\r", "")
}

func (m *Model) panelBorder(panel state.Panel, name string) lipgloss.Style {
	if m.state.Overlay() == state.OverlayNone && m.state.ActivePanel() == panel {
		name = "active border"
	}
	return common.DefaultPalette.GetBorder(name, lipgloss.RoundedBorder())
}

// scrollOffset keeps the cursor inside a window of height rows.
func scrollOffset(cursor, height int) int {
	if height <= 0 {
		return 0
	}
	return max(0, cursor-height+1)
}

func (m *Model) renderGroups(dl *render.DisplayContext, box layout.Box) {
	title := fmt.Sprintf(" Commit Groups (%d) ", len(m.state.Groups))
	selected := common.DefaultPalette.Get("selected")
	committed := common.DefaultPalette.Get("committed")

	rows := make([]string, 0, len(m.state.Groups))
	for i, g := range m.state.Groups {
		marker := "  "
		if i == m.state.SelectedIndex() {
			marker = "▶ "
		}
		text := g.Header()
		if g.Committed {
			text = "✓ " + text
		}
		switch {
		case i == m.state.SelectedIndex():
			rows = append(rows, selected.Render(marker+text))
		case g.Committed:
			rows = append(rows, committed.Render(marker+text))
		default:
			rows = append(rows, marker+text)
		}
	}
	offset := scrollOffset(m.state.SelectedIndex(), box.R.Dy()-2)
	common.DrawPanel(dl, box, title, common.Window(rows, offset), m.panelBorder(state.PanelGroups, "groups border"), render.ZBase)
}

func (m *Model) renderMessage(dl *render.DisplayContext, box layout.Box) {
	border := m.panelBorder(state.PanelCommitMessage, "message border")
	g := m.state.SelectedGroup()
	if g == nil {
		common.DrawPanel(dl, box, " Commit Message ", []string{"No group selected"}, border, render.ZBase)
		return
	}
	lines := state.Lines(g.FullMessage())
	title := " Commit Message "
	if visible := box.R.Dy() - 2; len(lines) > visible && visible > 0 {
		title = fmt.Sprintf(" Commit Message (%d/%d) ", m.state.MessageScroll()+1, len(lines))
	}
	common.DrawPanel(dl, box, title, common.Window(lines, m.state.MessageScroll()), border, render.ZBase)
}

func fileIcon(f changes.ChangedFile) (string, string) {
	switch {
	case f.IsNew():
		return "+", "status new"
	case f.IsDeleted():
		return "-", "status deleted"
	case f.IsModified():
		return "~", "status modified"
	case f.IsRenamed():
		return "→", "status renamed"
	default:
		return "•", "dimmed"
	}
}

func (m *Model) renderFiles(dl *render.DisplayContext, box layout.Box) {
	border := m.panelBorder(state.PanelFiles, "files border")
	g := m.state.SelectedGroup()
	if g == nil || len(g.Files) == 0 {
		common.DrawPanel(dl, box, " Files (0) ", []string{"No files"}, border, render.ZBase)
		return
	}
	filesActive := m.state.ActivePanel() == state.PanelFiles
	selected := common.DefaultPalette.Get("selected")
	rows := make([]string, 0, len(g.Files))
	for i, f := range g.Files {
		icon, style := fileIcon(f)
		marker := " "
		if filesActive && i == m.state.SelectedFileIndex() {
			marker = "▶"
		}
		row := marker + common.DefaultPalette.Get(style).Render(icon) + " " + f.Path
		if filesActive && i == m.state.SelectedFileIndex() {
			row = selected.Render(marker + icon + " " + f.Path)
		}
		rows = append(rows, row)
	}
	offset := 0
	if filesActive {
		offset = scrollOffset(m.state.SelectedFileIndex(), box.R.Dy()-2)
	}
	title := fmt.Sprintf(" Files (%d) ", len(g.Files))
	common.DrawPanel(dl, box, title, common.Window(rows, offset), border, render.ZBase)
}

func (m *Model) renderEditor(dl *render.DisplayContext, box layout.Box) {
	frame := box.Center(box.R.Dx()*8/10, box.R.Dy()*8/10)
	w, h := frame.R.Dx()-2, frame.R.Dy()-2
	if w <= 0 || h <= 0 {
		return
	}
	m.state.Editor.SetSize(w, h)
	title := " Edit Commit Message (Ctrl+S save, Esc cancel, F1 help) "
	border := common.DefaultPalette.GetBorder("editor border", lipgloss.RoundedBorder())
	common.DrawPanel(dl, frame, title, strings.Split(m.state.Editor.View(), "\n"), border, render.ZEditor)
}
