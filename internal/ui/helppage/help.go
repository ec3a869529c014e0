// Package helppage shows the keys understood by the commit message editor.
package helppage

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/commitwiz/commit-wizard/internal/config"
	"github.com/commitwiz/commit-wizard/internal/ui/common"
	"github.com/commitwiz/commit-wizard/internal/ui/layout"
	"github.com/commitwiz/commit-wizard/internal/ui/render"
)

var _ common.Drawable = (*Model)(nil)

type Model struct {
	keyMap config.KeyMappings[key.Binding]
	styles styles
}

type styles struct {
	border   lipgloss.Style
	title    lipgloss.Style
	shortcut lipgloss.Style
	dimmed   lipgloss.Style
}

func (h *Model) printKeyBinding(k key.Binding) string {
	return h.printKey(k.Help().Key, k.Help().Desc)
}

func (h *Model) printKey(key string, desc string) string {
	keyAligned := fmt.Sprintf("%9s", key)
	return lipgloss.JoinHorizontal(0, h.styles.shortcut.Render(keyAligned), h.styles.dimmed.Render(desc))
}

func (h *Model) printTitle(header string) string {
	return lipgloss.JoinHorizontal(0, fmt.Sprintf("%9s", ""), h.styles.title.Render(header))
}

func (h *Model) View() string {
	lines := []string{
		h.printTitle("Editor"),
		h.printKeyBinding(h.keyMap.Save),
		h.printKeyBinding(h.keyMap.Cancel),
		h.printKeyBinding(h.keyMap.Help),
		"",
		h.printTitle("Text"),
		h.printKey("enter", "new line"),
		h.printKey("ctrl+a", "line start"),
		h.printKey("ctrl+e", "line end"),
		h.printKey("alt+←/→", "word back/forward"),
		h.printKey("ctrl+k", "delete to line end"),
		h.printKey("ctrl+u", "delete to line start"),
		h.printKey("alt+bksp", "delete word"),
		h.printKey("ctrl+v", "paste"),
		"",
		h.printTitle("Message"),
		h.styles.dimmed.Render(strings.Repeat(" ", 9) + "first line: type(scope): TICKET: summary"),
		h.styles.dimmed.Render(strings.Repeat(" ", 9) + "then a blank line and one \"- \" line per change"),
	}
	return h.styles.border.Render(strings.Join(lines, "\n"))
}

// ViewRect draws the help centred in box, above every other layer.
func (h *Model) ViewRect(dl *render.DisplayContext, box layout.Box) {
	content := h.View()
	w, hgt := lipgloss.Size(content)
	frame := box.Center(w, hgt)
	dl.AddFill(frame.R, ' ', lipgloss.NewStyle(), render.ZHelp)
	dl.AddDraw(frame.R, content, render.ZHelp)
}

func New() *Model {
	return &Model{
		keyMap: config.Current.GetKeyMap(),
		styles: styles{
			border:   common.DefaultPalette.GetBorder("help border", lipgloss.NormalBorder()).Padding(1),
			title:    common.DefaultPalette.Get("help title").PaddingLeft(1),
			dimmed:   common.DefaultPalette.Get("help dimmed").PaddingLeft(1),
			shortcut: common.DefaultPalette.Get("help shortcut"),
		},
	}
}
