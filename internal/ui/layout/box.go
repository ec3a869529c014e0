// Package layout splits the screen into rectangles for the panels and
// overlays of the wizard.
package layout

import "github.com/charmbracelet/x/cellbuf"

// Box is a screen rectangle with helpers for carving it up.
type Box struct {
	R cellbuf.Rectangle
}

func NewBox(r cellbuf.Rectangle) Box {
	return Box{R: r}
}

// Spec sizes one slot of a V or H split.
type Spec interface {
	size(total, remaining int, fillWeight float64) int
}

// Fixed is a size in cells.
type Fixed int

// Percent is a share (0-100) of the whole box.
type Percent int

// FillSpec takes a weighted share of whatever Fixed and Percent slots left.
type FillSpec float64

func (f Fixed) size(total, _ int, _ float64) int {
	return clamp(int(f), 0, total)
}

func (p Percent) size(total, _ int, _ float64) int {
	return total * clamp(int(p), 0, 100) / 100
}

func (f FillSpec) size(_, remaining int, fillWeight float64) int {
	if remaining <= 0 || fillWeight <= 0 || f <= 0 {
		return 0
	}
	return int(float64(remaining) * float64(f) / fillWeight)
}

// Fill returns a Spec sharing the leftover space by weight.
func Fill(weight float64) Spec {
	return FillSpec(weight)
}

// split turns specs into sizes along an axis of length total. Rounding
// leftovers go to the last Fill slot.
func split(total int, specs []Spec) []int {
	sizes := make([]int, len(specs))
	consumed := 0
	fillWeight := 0.0
	lastFill := -1
	for i, spec := range specs {
		if f, ok := spec.(FillSpec); ok {
			fillWeight += float64(f)
			lastFill = i
			continue
		}
		sizes[i] = spec.size(total, 0, 0)
		consumed += sizes[i]
	}

	remaining := max(total-consumed, 0)
	allocated := 0
	for i, spec := range specs {
		if _, ok := spec.(FillSpec); ok {
			sizes[i] = spec.size(total, remaining, fillWeight)
			allocated += sizes[i]
		}
	}
	if lastFill >= 0 && fillWeight > 0 && remaining > allocated {
		sizes[lastFill] += remaining - allocated
	}
	return sizes
}

// V splits the box top to bottom. Slots that do not fit are returned empty
// at the bottom edge.
func (b Box) V(specs ...Spec) []Box {
	if len(specs) == 0 {
		return []Box{b}
	}
	result := make([]Box, len(specs))
	y := b.R.Min.Y
	for i, size := range split(max(b.R.Dy(), 0), specs) {
		next := min(y+size, b.R.Max.Y)
		result[i] = Box{R: cellbuf.Rectangle{
			Min: cellbuf.Pos(b.R.Min.X, y),
			Max: cellbuf.Pos(b.R.Max.X, next),
		}}
		y = next
	}
	return result
}

// H splits the box left to right. Slots that do not fit are returned empty
// at the right edge.
func (b Box) H(specs ...Spec) []Box {
	if len(specs) == 0 {
		return []Box{b}
	}
	result := make([]Box, len(specs))
	x := b.R.Min.X
	for i, size := range split(max(b.R.Dx(), 0), specs) {
		next := min(x+size, b.R.Max.X)
		result[i] = Box{R: cellbuf.Rectangle{
			Min: cellbuf.Pos(x, b.R.Min.Y),
			Max: cellbuf.Pos(next, b.R.Max.Y),
		}}
		x = next
	}
	return result
}

// CutTop returns the top h rows and the rest.
func (b Box) CutTop(h int) (top, rest Box) {
	boxes := b.V(Fixed(h), Fill(1))
	return boxes[0], boxes[1]
}

// CutBottom returns the rest and the bottom h rows.
func (b Box) CutBottom(h int) (rest, bottom Box) {
	h = clamp(h, 0, b.R.Dy())
	boxes := b.V(Fixed(b.R.Dy()-h), Fill(1))
	return boxes[0], boxes[1]
}

// Inset shrinks the box by n cells on every side.
func (b Box) Inset(n int) Box {
	return Box{R: b.R.Inset(n)}
}

// Center returns a w x h box centred in b, clamped to b's size.
func (b Box) Center(w, h int) Box {
	w = clamp(w, 0, b.R.Dx())
	h = clamp(h, 0, b.R.Dy())
	x := b.R.Min.X + (b.R.Dx()-w)/2
	y := b.R.Min.Y + (b.R.Dy()-h)/2
	return Box{R: cellbuf.Rect(x, y, w, h)}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
