package common

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/cellbuf"
	"github.com/commitwiz/commit-wizard/internal/ui/layout"
	"github.com/commitwiz/commit-wizard/internal/ui/render"
)

// DrawPanel draws a bordered block filling box with title written over the
// top border. Lines of body that do not fit are clipped.
func DrawPanel(dl *render.DisplayContext, box layout.Box, title string, body []string, border lipgloss.Style, z int) {
	w, h := box.R.Dx(), box.R.Dy()
	if w < 2 || h < 2 {
		return
	}
	inner := ClipLines(body, w-2, h-2)
	content := border.Width(w - 2).Height(h - 2).Render(strings.Join(inner, "\n"))
	dl.AddFill(box.R, ' ', lipgloss.NewStyle(), z)
	dl.AddDraw(box.R, content, z)

	if title == "" {
		return
	}
	title = ansi.Truncate(title, w-2, "")
	titleStyle := DefaultPalette.Get("title").Foreground(border.GetBorderTopForeground())
	rect := cellbuf.Rect(box.R.Min.X+1, box.R.Min.Y, ansi.StringWidth(title), 1)
	dl.AddDraw(rect, titleStyle.Render(title), z)
}

// ClipLines keeps at most height lines of at most width cells each.
func ClipLines(lines []string, width, height int) []string {
	if height <= 0 || width <= 0 {
		return nil
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	clipped := make([]string, len(lines))
	for i, line := range lines {
		clipped[i] = ansi.Truncate(line, width, "")
	}
	return clipped
}

// Window returns the lines of lines starting at offset, clamped so that an
// offset past the end yields the last line.
func Window(lines []string, offset int) []string {
	if len(lines) == 0 {
		return lines
	}
	offset = max(0, min(offset, len(lines)-1))
	return lines[offset:]
}
