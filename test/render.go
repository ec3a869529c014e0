package test

import (
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/cellbuf"
	"github.com/commitwiz/commit-wizard/internal/ui/common"
	"github.com/commitwiz/commit-wizard/internal/ui/layout"
	"github.com/commitwiz/commit-wizard/internal/ui/render"
)

// RenderDrawable renders a drawable into a fixed-size buffer.
func RenderDrawable(model common.Drawable, width, height int) string {
	dl := render.NewDisplayContext()
	box := layout.NewBox(cellbuf.Rect(0, 0, width, height))
	model.ViewRect(dl, box)
	return dl.RenderToString(width, height)
}

// RenderPlain is RenderDrawable without colours and attributes.
func RenderPlain(model common.Drawable, width, height int) string {
	return ansi.Strip(RenderDrawable(model, width, height))
}
