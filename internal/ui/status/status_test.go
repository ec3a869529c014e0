package status

import (
	"strings"
	"testing"

	"github.com/commitwiz/commit-wizard/test"
	"github.com/stretchr/testify/assert"
)

func TestView_WithAI(t *testing.T) {
	m := New(true)
	assert.Equal(t,
		"↑↓/jk Navigate  Tab Panel  e Edit  d Diff  a AI  c Commit  C Commit All  y Copy  Ctrl+L Clear Status  q Quit",
		test.Stripped(m.View(0)))
}

func TestView_WithoutAI(t *testing.T) {
	m := New(false)
	view := test.Stripped(m.View(0))
	assert.NotContains(t, view, "a AI")
	assert.Contains(t, view, "e Edit  d Diff  c Commit")
}

func TestView_Truncates(t *testing.T) {
	m := New(true)
	view := test.Stripped(m.View(30))
	assert.LessOrEqual(t, len([]rune(view)), 30)
	assert.True(t, strings.HasPrefix(view, "↑↓/jk Navigate"))
}

func TestKeyLabel(t *testing.T) {
	assert.Equal(t, "Ctrl+L", keyLabel("ctrl+l"))
	assert.Equal(t, "Tab", keyLabel("tab"))
	assert.Equal(t, "C", keyLabel("C"))
}

func TestViewRect(t *testing.T) {
	out := test.RenderPlain(New(true), 140, 3)
	lines := strings.Split(out, "\n")
	assert.Contains(t, lines[0], "Keyboard Shortcuts")
	assert.Contains(t, lines[1], "Ctrl+L Clear Status")
}
