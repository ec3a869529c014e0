package diff

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/cellbuf"
	"github.com/commitwiz/commit-wizard/internal/config"
	"github.com/commitwiz/commit-wizard/internal/ui/layout"
	"github.com/commitwiz/commit-wizard/internal/ui/render"
	"github.com/commitwiz/commit-wizard/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDiff = `diff --git a/main.go b/main.go
index 1111111..2222222 100644
--- a/main.go
+++ b/main.go
@@ -1,3 +1,3 @@
 package main
-var x = 1
+var x = 2
`

func withHighlight(t *testing.T, enabled bool) {
	t.Helper()
	previous := config.Current.UI.DiffHighlight
	config.Current.UI.DiffHighlight = enabled
	t.Cleanup(func() { config.Current.UI.DiffHighlight = previous })
}

func TestHighlight_KeepsText(t *testing.T) {
	out, err := Highlight(sampleDiff, "dracula")
	require.NoError(t, err)
	assert.Equal(t, sampleDiff, ansi.Strip(out))
	assert.NotEqual(t, sampleDiff, out)
}

func TestHighlight_UnknownStyleFallsBack(t *testing.T) {
	out, err := Highlight("+added\n", "no-such-style")
	require.NoError(t, err)
	assert.Equal(t, "+added\n", ansi.Strip(out))
}

func TestSetContent_TrimsCarriageReturnsAndHandlesEmpty(t *testing.T) {
	withHighlight(t, false)

	model := New()
	model.view.Width, model.view.Height = 20, 5
	model.SetContent("a.txt", "line1\r\nline2\r\n")
	assert.Equal(t, "line1\nline2", test.Stripped(model.View()))

	empty := New()
	empty.view.Width, empty.view.Height = 10, 3
	empty.SetContent("b.txt", "")
	assert.Equal(t, "(empty)", test.Stripped(empty.View()))
}

func TestSetOffset(t *testing.T) {
	withHighlight(t, false)

	model := New()
	model.view.Width, model.view.Height = 5, 2
	model.SetContent("n.txt", "1\n2\n3\n4\n5\n")

	model.SetOffset(2)
	assert.Equal(t, 2, model.YOffset())
	assert.Equal(t, "3\n4", test.Stripped(model.View()))

	model.SetContent("other.txt", "x\n")
	assert.Equal(t, 0, model.YOffset())
}

func TestViewRect(t *testing.T) {
	withHighlight(t, true)

	model := New()
	model.SetContent("main.go", sampleDiff)

	dl := render.NewDisplayContext()
	model.ViewRect(dl, layout.NewBox(cellbuf.Rect(0, 0, 60, 12)))
	out := ansi.Strip(dl.RenderToString(60, 12))

	assert.Contains(t, out, "Diff: main.go")
	assert.Contains(t, out, "+var x = 2")
	assert.Contains(t, out, "-var x = 1")
	for _, d := range dl.DrawList() {
		assert.Equal(t, render.ZDiff, d.Z)
	}
	assert.True(t, strings.HasPrefix(strings.Split(out, "\n")[0], "╭"))
}
