package common

import (
	"github.com/commitwiz/commit-wizard/internal/ui/layout"
	"github.com/commitwiz/commit-wizard/internal/ui/render"
)

// Drawable is a piece of the screen that renders itself into the box it is
// given.
type Drawable interface {
	ViewRect(dl *render.DisplayContext, box layout.Box)
}
