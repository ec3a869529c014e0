// Package popup renders the status message box shown after actions.
package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/cellbuf"
	"github.com/commitwiz/commit-wizard/internal/config"
	"github.com/commitwiz/commit-wizard/internal/ui/common"
	"github.com/commitwiz/commit-wizard/internal/ui/layout"
	"github.com/commitwiz/commit-wizard/internal/ui/render"
)

var _ common.Drawable = (*Model)(nil)

const (
	activeTitle   = " Status (↑↓ scroll, Enter/Esc close) "
	inactiveTitle = " Status "
	closeButton   = " Close "
)

type Model struct {
	message string
	scroll  int
	active  bool

	widthPercentage int
	height          int

	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
	activeBorder lipgloss.Style
	border       lipgloss.Style
}

func New() *Model {
	return &Model{
		widthPercentage: config.Current.UI.PopupWidthPercentage,
		height:          config.Current.UI.PopupHeight,
		successStyle:    common.DefaultPalette.Get("success"),
		errorStyle:      common.DefaultPalette.Get("error"),
		activeBorder:    common.DefaultPalette.GetBorder("popup active border", lipgloss.RoundedBorder()),
		border:          common.DefaultPalette.GetBorder("popup border", lipgloss.RoundedBorder()),
	}
}

// SetMessage sets what the next ViewRect draws. An active popup is the one
// receiving keys.
func (m *Model) SetMessage(message string, scroll int, active bool) {
	m.message = message
	m.scroll = scroll
	m.active = active
}

func (m *Model) messageStyle() lipgloss.Style {
	switch {
	case strings.HasPrefix(m.message, "✗"):
		return m.errorStyle
	case strings.HasPrefix(m.message, "✓"):
		return m.successStyle
	default:
		return lipgloss.NewStyle()
	}
}

// Frame returns where the popup goes inside box.
func (m *Model) Frame(box layout.Box) layout.Box {
	pct := m.widthPercentage
	if pct <= 0 || pct > 100 {
		pct = 70
	}
	height := m.height
	if height < 3 {
		height = 6
	}
	return box.Center(box.R.Dx()*pct/100, height)
}

// Lines returns the message wrapped to width, starting at the scroll offset.
func (m *Model) Lines(width int) []string {
	if width <= 0 || m.message == "" {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(m.message, "\n") {
		lines = append(lines, strings.Split(ansi.Wrap(line, width, ""), "\n")...)
	}
	return common.Window(lines, m.scroll)
}

func (m *Model) ViewRect(dl *render.DisplayContext, box layout.Box) {
	if m.message == "" {
		return
	}
	frame := m.Frame(box)
	border, title := m.border, inactiveTitle
	if m.active {
		border, title = m.activeBorder, activeTitle
	}

	style := m.messageStyle()
	var body []string
	for _, line := range m.Lines(frame.R.Dx() - 2) {
		body = append(body, style.Render(line))
	}
	common.DrawPanel(dl, frame, title, body, border, render.ZPopup)

	if m.active && frame.R.Dx() > len(closeButton)+2 {
		x := frame.R.Max.X - len(closeButton) - 1
		y := frame.R.Max.Y - 1
		button := common.DefaultPalette.Get("title").Reverse(true).Render(closeButton)
		dl.AddDraw(cellbuf.Rect(x, y, len(closeButton), 1), button, render.ZPopup)
	}
}
