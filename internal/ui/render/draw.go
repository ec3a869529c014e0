package render

import "github.com/charmbracelet/x/cellbuf"

// Draw places rendered content in a rectangle of the frame.
type Draw struct {
	Rect    cellbuf.Rectangle
	Content string
	Z       int
}
