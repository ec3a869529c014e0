package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
)

// Effect rewrites cells that were already drawn.
type Effect interface {
	Apply(buf *cellbuf.Buffer)
	GetZ() int
	GetRect() cellbuf.Rectangle
}

// Attr is a set of text attributes an AttrEffect turns on.
type Attr uint8

const (
	AttrBold Attr = 1 << iota
	AttrFaint
	AttrReverse
)

// AttrEffect adds Attrs to every drawn cell of Rect. Colors and content are
// left alone.
type AttrEffect struct {
	Rect  cellbuf.Rectangle
	Attrs Attr
	Z     int
}

func (e AttrEffect) Apply(buf *cellbuf.Buffer) {
	rect := e.Rect.Intersect(buf.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			cell := buf.Cell(x, y)
			if cell == nil {
				continue
			}
			c := cell.Clone()
			if e.Attrs&AttrBold != 0 {
				c.Style.Bold(true)
			}
			if e.Attrs&AttrFaint != 0 {
				c.Style.Faint(true)
			}
			if e.Attrs&AttrReverse != 0 {
				c.Style.Reverse(true)
			}
			buf.SetCell(x, y, c)
		}
	}
}

func (e AttrEffect) GetZ() int                  { return e.Z }
func (e AttrEffect) GetRect() cellbuf.Rectangle { return e.Rect }

// FillEffect overwrites every cell of Rect with Char.
type FillEffect struct {
	Rect  cellbuf.Rectangle
	Char  rune
	Style cellbuf.Style
	Z     int
}

func (e FillEffect) Apply(buf *cellbuf.Buffer) {
	buf.FillRect(&cellbuf.Cell{Rune: e.Char, Width: 1, Style: e.Style}, e.Rect)
}

func (e FillEffect) GetZ() int                  { return e.Z }
func (e FillEffect) GetRect() cellbuf.Rectangle { return e.Rect }

// lipglossToStyle keeps the colors and the attributes the palette uses.
func lipglossToStyle(ls lipgloss.Style) cellbuf.Style {
	var cs cellbuf.Style
	if _, none := ls.GetForeground().(lipgloss.NoColor); !none {
		cs.Fg = ls.GetForeground()
	}
	if _, none := ls.GetBackground().(lipgloss.NoColor); !none {
		cs.Bg = ls.GetBackground()
	}
	if ls.GetBold() {
		cs.Bold(true)
	}
	if ls.GetFaint() {
		cs.Faint(true)
	}
	return cs
}
