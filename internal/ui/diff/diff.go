// Package diff is the full screen viewer for the diff of one file.
package diff

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/commitwiz/commit-wizard/internal/config"
	"github.com/commitwiz/commit-wizard/internal/ui/common"
	"github.com/commitwiz/commit-wizard/internal/ui/layout"
	"github.com/commitwiz/commit-wizard/internal/ui/render"
	"go.uber.org/zap"
)

var _ common.Drawable = (*Model)(nil)

type Model struct {
	view    viewport.Model
	path    string
	content string
}

func New() *Model {
	return &Model{view: viewport.New(0, 0)}
}

// SetContent shows output, the diff of path. Highlighting is applied when it
// is enabled in the configuration; a failure falls back to plain text.
func (m *Model) SetContent(path string, output string) {
	content := strings.ReplaceAll(output, "\r", "")
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		content = "(empty)"
	}
	if path == m.path && content == m.content {
		return
	}
	m.path = path
	m.content = content

	rendered := content
	if config.Current.UI.DiffHighlight {
		if highlighted, err := Highlight(content, config.Current.UI.DiffStyle); err == nil {
			rendered = highlighted
		} else {
			zap.L().Debug("diff highlighting failed", zap.String("path", path), zap.Error(err))
		}
	}
	m.view.SetContent(rendered)
	m.view.GotoTop()
}

func (m *Model) Path() string {
	return m.path
}

// SetOffset scrolls the view so that line offset is at the top.
func (m *Model) SetOffset(offset int) {
	m.view.SetYOffset(offset)
}

func (m *Model) YOffset() int {
	return m.view.YOffset
}

func (m *Model) View() string {
	return m.view.View()
}

func (m *Model) ViewRect(dl *render.DisplayContext, box layout.Box) {
	m.view.Width = max(box.R.Dx()-2, 0)
	m.view.Height = max(box.R.Dy()-2, 0)
	title := " Diff: " + m.path + " (↑↓ scroll, Esc close) "
	border := common.DefaultPalette.GetBorder("diff border", lipgloss.RoundedBorder())
	common.DrawPanel(dl, box, title, strings.Split(m.view.View(), "\n"), border, render.ZDiff)
}
