package ui

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/commitwiz/commit-wizard/internal/changes"
	"github.com/commitwiz/commit-wizard/test"
	"github.com/stretchr/testify/assert"
)

func TestView_EmptyBeforeWindowSize(t *testing.T) {
	f := newFixture(t, false)
	f.model.width, f.model.height = 0, 0
	assert.Empty(t, f.model.View())
}

func TestView_Panels(t *testing.T) {
	f := newFixture(t, true)
	view := test.Stripped(f.model.View())

	assert.Contains(t, view, "Commit Groups (3)")
	assert.Contains(t, view, "▶ feat(api): LU-1: add login")
	assert.Contains(t, view, "  fix(db): fix pool")
	assert.Contains(t, view, "Commit Message")
	assert.Contains(t, view, "- validate token")
	assert.Contains(t, view, "Files (2)")
	assert.Contains(t, view, "~ api/login.go")
	assert.Contains(t, view, "+ api/token.go")
	assert.Contains(t, view, "Keyboard Shortcuts")
	assert.Contains(t, view, "a AI")
	assert.NotContains(t, view, "Enter/Esc close")
}

func TestView_ShortcutsWithoutAI(t *testing.T) {
	f := newFixture(t, false)
	assert.NotContains(t, test.Stripped(f.model.View()), "a AI")
}

func TestView_FileIcons(t *testing.T) {
	f := newFixture(t, false)
	f.press(test.Type("j"), test.Type("j"))
	view := test.Stripped(f.model.View())
	assert.Contains(t, view, "- README.md")

	renamed := changes.NewChangedFile("new.go", changes.IndexRenamed)
	icon, _ := fileIcon(renamed)
	assert.Equal(t, "→", icon)
	icon, _ = fileIcon(changes.ChangedFile{Path: "x"})
	assert.Equal(t, "•", icon)
}

func TestView_CommittedGroupMarker(t *testing.T) {
	f := newFixture(t, false)
	f.state().Groups[1].Committed = true
	assert.Contains(t, test.Stripped(f.model.View()), "✓ fix(db): fix pool")
}

func TestView_NoGroups(t *testing.T) {
	f := newFixture(t, false, []*changes.ChangeGroup{}...)
	view := test.Stripped(f.model.View())
	assert.Contains(t, view, "Commit Groups (0)")
	assert.Contains(t, view, "No group selected")
	assert.Contains(t, view, "No files")
}

func TestView_PopupTitles(t *testing.T) {
	f := newFixture(t, false)
	f.press(test.Type("c"))
	view := test.Stripped(f.model.View())
	assert.Contains(t, view, "Status (↑↓ scroll, Enter/Esc close)")
	assert.Contains(t, view, "✓ Committed selected group successfully")

	// a status raised under the diff viewer is drawn but not focused
	f.press(test.Press(tea.KeyEnter))
	f.repo.Diffs["api/login.go"] = "+a\n"
	f.state().Groups[0].Committed = true
	f.press(test.Press(tea.KeyTab), test.Press(tea.KeyTab), test.Type("d"))
	view = test.Stripped(f.model.View())
	assert.Contains(t, view, "Diff: api/login.go")
	assert.NotContains(t, view, "Enter/Esc close")
}

func TestView_EditorOverlay(t *testing.T) {
	f := newFixture(t, false)
	f.press(test.Type("e"))
	raw := f.model.View()
	assert.Contains(t, test.Stripped(raw), "Edit Commit Message")
	// The panels below the editor are faded.
	assert.NotEqual(t, ansi.Strip(raw), raw)
}

func TestView_MessageScrollIndicator(t *testing.T) {
	body := make([]string, 40)
	for i := range body {
		body[i] = "line"
	}
	g := changes.NewChangeGroup(changes.Chore, "", nil, "", "many lines", body)
	f := newFixture(t, false, g)
	f.press(test.Press(tea.KeyTab), test.Type("j"))
	view := test.Stripped(f.model.View())
	assert.Contains(t, view, "Commit Message (2/42)")
}

func TestScrollOffset(t *testing.T) {
	assert.Equal(t, 0, scrollOffset(3, 10))
	assert.Equal(t, 1, scrollOffset(10, 10))
	assert.Equal(t, 0, scrollOffset(5, 0))
}

func TestView_GroupListFollowsSelection(t *testing.T) {
	var groups []*changes.ChangeGroup
	for i := range 60 {
		path := fmt.Sprintf("file%02d.go", i)
		groups = append(groups, changes.NewChangeGroup(changes.Feat, "", []changes.ChangedFile{modified(path)}, "", "change "+path, nil))
	}
	f := newFixture(t, false, groups...)
	f.press(test.Type("k"))
	view := test.Stripped(f.model.View())
	assert.Contains(t, view, "▶ feat: change file59.go")
	assert.NotContains(t, view, "change file00.go")
}
