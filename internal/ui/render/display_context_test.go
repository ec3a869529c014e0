package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/cellbuf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayContext_AddDraw(t *testing.T) {
	dl := NewDisplayContext()
	dl.AddDraw(cellbuf.Rect(0, 0, 10, 1), "test", ZBase)

	draws := dl.DrawList()
	require.Len(t, draws, 1)
	assert.Equal(t, "test", draws[0].Content)
	assert.Equal(t, ZBase, draws[0].Z)
}

func TestDisplayContext_IgnoresEmptyRects(t *testing.T) {
	dl := NewDisplayContext()
	dl.AddDraw(cellbuf.Rect(0, 0, 0, 1), "nothing", ZBase)
	dl.AddReverse(cellbuf.Rect(3, 3, 0, 0), ZBase)
	assert.Equal(t, 0, dl.Len())
}

func TestDisplayContext_BasicRender(t *testing.T) {
	dl := NewDisplayContext()
	dl.AddDraw(cellbuf.Rect(0, 0, 5, 1), "Hello", ZBase)

	output := dl.RenderToString(10, 1)
	assert.Contains(t, output, "Hello")
}

func TestDisplayContext_HigherZWins(t *testing.T) {
	dl := NewDisplayContext()
	dl.AddDraw(cellbuf.Rect(0, 0, 5, 1), "Popup", ZPopup)
	dl.AddDraw(cellbuf.Rect(0, 0, 10, 1), "Background", ZBase)

	output := dl.RenderToString(10, 1)
	assert.True(t, strings.HasPrefix(output, "Popup"), output)
	assert.Contains(t, output, "round")
}

func TestDisplayContext_SameZKeepsInsertionOrder(t *testing.T) {
	dl := NewDisplayContext()
	dl.AddDraw(cellbuf.Rect(0, 0, 5, 1), "first", ZBase)
	dl.AddDraw(cellbuf.Rect(0, 0, 5, 1), "later", ZBase)

	assert.Equal(t, "later", strings.TrimRight(dl.RenderToString(5, 1), " "))
}

func TestDisplayContext_FillBlanksLowerLayers(t *testing.T) {
	dl := NewDisplayContext()
	dl.AddDraw(cellbuf.Rect(0, 0, 10, 1), "0123456789", ZBase)
	dl.AddFill(cellbuf.Rect(2, 0, 4, 1), ' ', lipgloss.NewStyle(), ZPopup)

	assert.Equal(t, "01    6789", dl.RenderToString(10, 1))
}

func TestDisplayContext_ClearDropsOperations(t *testing.T) {
	dl := NewDisplayContext()
	dl.AddDraw(cellbuf.Rect(0, 0, 5, 1), "Hello", ZBase)
	dl.AddBold(cellbuf.Rect(0, 0, 5, 1), ZShade)
	require.Equal(t, 2, dl.Len())

	dl.Clear()
	assert.Equal(t, 0, dl.Len())
	assert.Empty(t, dl.DrawList())
}

func TestReverseEffect_ChangesStyleOnly(t *testing.T) {
	plain := NewDisplayContext()
	plain.AddDraw(cellbuf.Rect(0, 0, 4, 1), "abcd", ZBase)

	reversed := NewDisplayContext()
	reversed.AddDraw(cellbuf.Rect(0, 0, 4, 1), "abcd", ZBase)
	reversed.AddReverse(cellbuf.Rect(1, 0, 2, 1), ZShade)

	want := plain.RenderToString(4, 1)
	got := reversed.RenderToString(4, 1)
	assert.NotEqual(t, want, got)
	assert.Equal(t, want, ansi.Strip(got))
}

func TestAttrEffect_CombinesAttributes(t *testing.T) {
	single := NewDisplayContext()
	single.AddDraw(cellbuf.Rect(0, 0, 4, 1), "abcd", ZBase)
	single.AddDim(cellbuf.Rect(0, 0, 4, 1), ZShade)

	both := NewDisplayContext()
	both.AddDraw(cellbuf.Rect(0, 0, 4, 1), "abcd", ZBase)
	both.AddEffect(AttrEffect{Rect: cellbuf.Rect(0, 0, 4, 1), Attrs: AttrFaint | AttrBold, Z: ZShade})

	dimmed := single.RenderToString(4, 1)
	got := both.RenderToString(4, 1)
	assert.NotEqual(t, dimmed, got)
	assert.Equal(t, "abcd", ansi.Strip(got))
}

func TestDim_DrawsAboveStayUndimmed(t *testing.T) {
	dl := NewDisplayContext()
	dl.AddDraw(cellbuf.Rect(0, 0, 4, 1), "abcd", ZBase)
	dl.AddDim(cellbuf.Rect(0, 0, 4, 1), ZShade)
	dl.AddDraw(cellbuf.Rect(0, 0, 4, 1), "wxyz", ZEditor)

	plain := NewDisplayContext()
	plain.AddDraw(cellbuf.Rect(0, 0, 4, 1), "wxyz", ZBase)

	assert.Equal(t, plain.RenderToString(4, 1), dl.RenderToString(4, 1))
}

func TestEffectsAreClippedToBuffer(t *testing.T) {
	dl := NewDisplayContext()
	dl.AddDraw(cellbuf.Rect(0, 0, 2, 1), "ok", ZBase)
	dl.AddBold(cellbuf.Rect(-5, -5, 20, 20), ZShade)

	var out string
	assert.NotPanics(t, func() { out = dl.RenderToString(2, 1) })
	assert.Equal(t, "ok", ansi.Strip(out))
}
