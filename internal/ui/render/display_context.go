package render

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
)

// DisplayContext collects the draw and effect operations of one frame. The
// operations are executed by Render in z order; operations sharing a z run
// in the order they were added.
type DisplayContext struct {
	draws   []drawOp
	effects []effectOp
	order   int
}

type drawOp struct {
	Draw
	order int
}

type effectOp struct {
	effect Effect
	order  int
}

type renderOp struct {
	z      int
	order  int
	draw   Draw
	effect Effect
}

func NewDisplayContext() *DisplayContext {
	return &DisplayContext{
		draws:   make([]drawOp, 0, 16),
		effects: make([]effectOp, 0, 8),
	}
}

func (dl *DisplayContext) nextOrder() int {
	dl.order++
	return dl.order
}

// AddDraw places pre-rendered content, usually the output of a lipgloss
// style, inside rect. Content outside rect is clipped.
func (dl *DisplayContext) AddDraw(rect cellbuf.Rectangle, content string, z int) {
	if rect.Empty() {
		return
	}
	dl.draws = append(dl.draws, drawOp{
		Draw:  Draw{Rect: rect, Content: content, Z: z},
		order: dl.nextOrder(),
	})
}

// AddFill paints every cell of rect with ch. It is mostly used to blank the
// area below an overlay.
func (dl *DisplayContext) AddFill(rect cellbuf.Rectangle, ch rune, style lipgloss.Style, z int) {
	dl.AddEffect(FillEffect{Rect: rect, Char: ch, Style: lipglossToStyle(style), Z: z})
}

func (dl *DisplayContext) AddEffect(effect Effect) {
	if effect.GetRect().Empty() {
		return
	}
	dl.effects = append(dl.effects, effectOp{effect: effect, order: dl.nextOrder()})
}

func (dl *DisplayContext) AddReverse(rect cellbuf.Rectangle, z int) {
	dl.AddEffect(AttrEffect{Rect: rect, Attrs: AttrReverse, Z: z})
}

// AddDim fades whatever was drawn in rect below z.
func (dl *DisplayContext) AddDim(rect cellbuf.Rectangle, z int) {
	dl.AddEffect(AttrEffect{Rect: rect, Attrs: AttrFaint, Z: z})
}

func (dl *DisplayContext) AddBold(rect cellbuf.Rectangle, z int) {
	dl.AddEffect(AttrEffect{Rect: rect, Attrs: AttrBold, Z: z})
}

// Clear drops every operation so the context can be reused for the next frame.
func (dl *DisplayContext) Clear() {
	dl.draws = dl.draws[:0]
	dl.effects = dl.effects[:0]
	dl.order = 0
}

// Len returns the number of pending operations.
func (dl *DisplayContext) Len() int {
	return len(dl.draws) + len(dl.effects)
}

// Render executes the operations against buf, lowest z first.
func (dl *DisplayContext) Render(buf *cellbuf.Buffer) {
	if dl.Len() == 0 {
		return
	}

	ops := make([]renderOp, 0, dl.Len())
	for _, op := range dl.draws {
		ops = append(ops, renderOp{z: op.Z, order: op.order, draw: op.Draw})
	}
	for _, op := range dl.effects {
		ops = append(ops, renderOp{z: op.effect.GetZ(), order: op.order, effect: op.effect})
	}

	sort.SliceStable(ops, func(i, j int) bool {
		if ops[i].z != ops[j].z {
			return ops[i].z < ops[j].z
		}
		return ops[i].order < ops[j].order
	})

	for _, op := range ops {
		if op.effect != nil {
			op.effect.Apply(buf)
			continue
		}
		cellbuf.SetContentRect(buf, op.draw.Content, op.draw.Rect)
	}
}

// RenderToString renders into a fresh width x height buffer.
func (dl *DisplayContext) RenderToString(width, height int) string {
	buf := cellbuf.NewBuffer(width, height)
	dl.Render(buf)
	return cellbuf.Render(buf)
}

// DrawList returns a copy of the queued draws.
func (dl *DisplayContext) DrawList() []Draw {
	result := make([]Draw, len(dl.draws))
	for i, op := range dl.draws {
		result[i] = op.Draw
	}
	return result
}
