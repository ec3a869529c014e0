// Package status draws the keyboard shortcut bar at the bottom of the screen.
package status

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/commitwiz/commit-wizard/internal/config"
	"github.com/commitwiz/commit-wizard/internal/ui/common"
	"github.com/commitwiz/commit-wizard/internal/ui/layout"
	"github.com/commitwiz/commit-wizard/internal/ui/render"
)

var _ common.Drawable = (*Model)(nil)

const title = " Keyboard Shortcuts "

type Model struct {
	help      help.Model
	keyMap    config.KeyMappings[key.Binding]
	aiEnabled bool
	border    lipgloss.Style
}

func New(aiEnabled bool) *Model {
	h := help.New()
	h.ShortSeparator = "  "
	h.Styles.ShortKey = common.DefaultPalette.Get("help shortcut")
	h.Styles.ShortDesc = lipgloss.NewStyle()
	h.Styles.ShortSeparator = lipgloss.NewStyle()
	h.Styles.Ellipsis = common.DefaultPalette.Get("dimmed")
	return &Model{
		help:      h,
		keyMap:    config.Current.GetKeyMap(),
		aiEnabled: aiEnabled,
		border:    common.DefaultPalette.GetBorder("shortcuts border", lipgloss.NormalBorder()),
	}
}

// shortcut relabels b with its first key, written the way it is typed.
func shortcut(b key.Binding, desc string) key.Binding {
	keys := b.Keys()
	label := ""
	if len(keys) > 0 {
		label = keyLabel(keys[0])
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

func keyLabel(k string) string {
	if rest, ok := strings.CutPrefix(k, "ctrl+"); ok {
		return "Ctrl+" + strings.ToUpper(rest)
	}
	if k == "tab" {
		return "Tab"
	}
	return k
}

// ShortHelp lists the shortcuts of the main screen. The AI entry is only
// there when AI generation is enabled.
func (m *Model) ShortHelp() []key.Binding {
	bindings := []key.Binding{
		key.NewBinding(
			key.WithKeys(append(m.keyMap.Up.Keys(), m.keyMap.Down.Keys()...)...),
			key.WithHelp("↑↓/jk", "Navigate"),
		),
		shortcut(m.keyMap.NextPanel, "Panel"),
		shortcut(m.keyMap.Edit, "Edit"),
		shortcut(m.keyMap.Diff, "Diff"),
	}
	if m.aiEnabled {
		bindings = append(bindings, shortcut(m.keyMap.AIGenerate, "AI"))
	}
	return append(bindings,
		shortcut(m.keyMap.Commit, "Commit"),
		shortcut(m.keyMap.CommitAll, "Commit All"),
		shortcut(m.keyMap.Copy, "Copy"),
		shortcut(m.keyMap.ClearStatus, "Clear Status"),
		shortcut(m.keyMap.Quit, "Quit"),
	)
}

func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.ShortHelp()}
}

// View renders the shortcuts on one line, cut with an ellipsis past width.
func (m *Model) View(width int) string {
	m.help.Width = width
	return m.help.ShortHelpView(m.ShortHelp())
}

func (m *Model) ViewRect(dl *render.DisplayContext, box layout.Box) {
	inner := box.R.Dx() - 2
	if inner <= 0 {
		return
	}
	line := lipgloss.PlaceHorizontal(inner, lipgloss.Center, m.View(inner))
	common.DrawPanel(dl, box, title, []string{line}, m.border, render.ZBase)
}
