package ui

import (
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
	"github.com/commitwiz/commit-wizard/internal/changes"
	"github.com/commitwiz/commit-wizard/internal/ui/state"
	"github.com/commitwiz/commit-wizard/test"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

type fixture struct {
	model     *Model
	repo      *test.FakeRepository
	generator *test.FakeGenerator
	clipboard *test.FakeClipboard
}

func modified(path string) changes.ChangedFile {
	return changes.NewChangedFile(path, changes.WorktreeModified)
}

func sampleGroups() []*changes.ChangeGroup {
	return []*changes.ChangeGroup{
		changes.NewChangeGroup(changes.Feat, "api", []changes.ChangedFile{modified("api/login.go"), changes.NewChangedFile("api/token.go", changes.WorktreeNew)}, "LU-1", "add login", []string{"validate token"}),
		changes.NewChangeGroup(changes.Fix, "db", []changes.ChangedFile{modified("db/conn.go")}, "", "fix pool", nil),
		changes.NewChangeGroup(changes.Docs, "", []changes.ChangedFile{changes.NewChangedFile("README.md", changes.WorktreeDeleted)}, "", "drop readme", nil),
	}
}

func newFixture(t *testing.T, aiEnabled bool, groups ...*changes.ChangeGroup) *fixture {
	t.Helper()
	if groups == nil {
		groups = sampleGroups()
	}
	s, err := state.New(groups)
	require.NoError(t, err)
	f := &fixture{
		repo:      &test.FakeRepository{Diffs: map[string]string{}},
		generator: &test.FakeGenerator{},
		clipboard: &test.FakeClipboard{},
	}
	f.model = NewUI(s, f.repo, f.generator, Options{AIEnabled: aiEnabled, Clipboard: f.clipboard.Write})
	f.model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return f
}

func (f *fixture) press(keys ...tea.Cmd) {
	for _, k := range keys {
		test.SimulateModel(f.model, k)
	}
}

func (f *fixture) state() *state.AppState {
	return f.model.State()
}

func TestTabCyclesPanels(t *testing.T) {
	f := newFixture(t, false)
	for range 3 {
		f.press(test.Press(tea.KeyTab))
	}
	assert.Equal(t, state.PanelGroups, f.state().ActivePanel())

	f.press(test.Press(tea.KeyShiftTab))
	assert.Equal(t, state.PanelFiles, f.state().ActivePanel())
}

func TestNavigation(t *testing.T) {
	f := newFixture(t, false)
	f.press(test.Type("j"), test.Press(tea.KeyDown))
	assert.Equal(t, 2, f.state().SelectedIndex())

	f.press(test.Type("k"))
	assert.Equal(t, 1, f.state().SelectedIndex())
}

func TestQuit(t *testing.T) {
	for _, k := range []tea.Cmd{test.Type("q"), test.Press(tea.KeyEsc), test.Press(tea.KeyCtrlC)} {
		f := newFixture(t, false)
		var msgs []tea.Msg
		test.SimulateModel(f.model, k, func(msg tea.Msg) { msgs = append(msgs, msg) })
		assert.True(t, f.model.Quitting())
		assert.Contains(t, msgs, tea.QuitMsg{})
	}
}

func TestCommitSelected(t *testing.T) {
	f := newFixture(t, false)
	f.repo.Output = "[main abc123] feat(api): LU-1: add login"

	f.press(test.Type("c"))

	g := f.state().Groups[0]
	assert.True(t, g.Committed)
	assert.Equal(t, []string{"feat(api): LU-1: add login\n\n- validate token\n"}, f.repo.Committed)
	assert.Contains(t, f.state().StatusMessage(), "✓ Committed selected group successfully")
	assert.Contains(t, f.state().StatusMessage(), "abc123")
	assert.Equal(t, state.OverlayPopup, f.state().Overlay())
}

func TestCommitSelected_AlreadyCommitted(t *testing.T) {
	f := newFixture(t, false)
	f.state().Groups[0].Committed = true

	f.press(test.Type("c"))

	assert.Equal(t, 0, f.repo.CommitCalls)
	assert.Equal(t, "✗ Group already committed", f.state().StatusMessage())
}

func TestCommitSelected_Failure(t *testing.T) {
	f := newFixture(t, false)
	f.repo.CommitErrors = map[string]error{"add login": errors.New("hook rejected")}

	f.press(test.Type("c"))

	assert.False(t, f.state().Groups[0].Committed)
	assert.Equal(t, "✗ Commit failed: hook rejected", f.state().StatusMessage())
}

func TestCommitAll_StopsAtFirstFailure(t *testing.T) {
	f := newFixture(t, false)
	f.repo.CommitErrors = map[string]error{"fix pool": errors.New("boom")}

	f.press(test.Type("C"))

	groups := f.state().Groups
	assert.True(t, groups[0].Committed)
	assert.False(t, groups[1].Committed)
	assert.False(t, groups[2].Committed)
	assert.Equal(t, 2, f.repo.CommitCalls)
	assert.Contains(t, f.state().StatusMessage(), "✗ Failed to commit all: group 2")
	assert.Contains(t, f.state().StatusMessage(), "boom")
}

func TestCommitAll_SkipsCommittedGroups(t *testing.T) {
	f := newFixture(t, false)
	f.state().Groups[1].Committed = true

	f.press(test.Type("C"))

	assert.Equal(t, 2, f.repo.CommitCalls)
	for _, g := range f.state().Groups {
		assert.True(t, g.Committed)
	}
	assert.Equal(t, "✓ Successfully committed all groups (2)", f.state().StatusMessage())

	f.press(test.Press(tea.KeyEsc), test.Type("C"))
	assert.Equal(t, 2, f.repo.CommitCalls)
	assert.Equal(t, "✓ All groups already committed", f.state().StatusMessage())
}

func TestPopupSwallowsKeysUntilDismissed(t *testing.T) {
	f := newFixture(t, false)
	f.press(test.Type("c"))
	require.Equal(t, state.OverlayPopup, f.state().Overlay())

	f.press(test.Type("q"), test.Type("j"))
	assert.False(t, f.model.Quitting())
	assert.Equal(t, 0, f.state().SelectedIndex())

	f.press(test.Press(tea.KeyEnter))
	assert.Equal(t, state.OverlayNone, f.state().Overlay())
	assert.Empty(t, f.state().StatusMessage())
}

func TestClearStatus(t *testing.T) {
	f := newFixture(t, false)
	f.state().SetStatus("✗ Commit failed: boom")

	f.press(test.Press(tea.KeyCtrlL))
	assert.Empty(t, f.state().StatusMessage())
	assert.Equal(t, state.OverlayNone, f.state().Overlay())

	f.press(test.Press(tea.KeyCtrlL))
	assert.Equal(t, state.OverlayNone, f.state().Overlay())
}

func TestEditSaveUpdatesGroup(t *testing.T) {
	f := newFixture(t, false)
	f.press(test.Type("e"))
	require.Equal(t, state.OverlayEditor, f.state().Overlay())
	assert.Equal(t, "feat(api): LU-1: add login\n\n- validate token\n", f.state().Editor.Value())

	f.press(test.Type("x"), test.Press(tea.KeyCtrlS))

	g := f.state().Groups[0]
	assert.Equal(t, "add login", g.Description)
	assert.Equal(t, []string{"validate token", "x"}, g.BodyLines)
	assert.Equal(t, state.OverlayPopup, f.state().Overlay())
	assert.Equal(t, "✓ Updated commit message from editor", f.state().StatusMessage())
}

func TestEditCtrlHDeletesInsteadOfOpeningHelp(t *testing.T) {
	f := newFixture(t, false)
	f.press(test.Type("e"), test.Press(tea.KeyCtrlH))

	assert.Equal(t, state.OverlayEditor, f.state().Overlay())
	assert.Equal(t, "feat(api): LU-1: add login\n\n- validate token", f.state().Editor.Value())
}

func TestEditCancelKeepsGroup(t *testing.T) {
	f := newFixture(t, false)
	f.press(test.Type("e"), test.Type("z"), test.Press(tea.KeyEsc))

	assert.Equal(t, "add login", f.state().Groups[0].Description)
	assert.Equal(t, state.OverlayNone, f.state().Overlay())
	assert.False(t, f.model.Quitting())
}

func TestEditRefusesCommittedGroup(t *testing.T) {
	f := newFixture(t, false)
	f.state().Groups[0].Committed = true
	f.press(test.Type("e"))

	assert.Equal(t, state.OverlayPopup, f.state().Overlay())
	assert.Equal(t, "✗ Cannot edit a committed group", f.state().StatusMessage())
}

func TestHelpOverEditor(t *testing.T) {
	f := newFixture(t, false)
	f.press(test.Type("e"), test.Press(tea.KeyF1))
	require.Equal(t, state.OverlayHelp, f.state().Overlay())
	assert.Contains(t, test.Stripped(f.model.View()), "ctrl+s save")

	f.press(test.Type("q"))
	assert.Equal(t, state.OverlayHelp, f.state().Overlay())
	assert.False(t, f.model.Quitting())

	f.press(test.Press(tea.KeyEsc))
	assert.Equal(t, state.OverlayEditor, f.state().Overlay())
	assert.True(t, f.state().Editor.Active())
}

func TestDiffRequiresFilesPanel(t *testing.T) {
	f := newFixture(t, false)
	f.press(test.Type("d"))

	assert.Empty(t, f.repo.DiffCalls)
	assert.Equal(t, "Switch to the Files panel (Tab) to view a diff", f.state().StatusMessage())
}

func TestDiffViewer(t *testing.T) {
	f := newFixture(t, false)
	f.repo.Diffs["api/token.go"] = "+package api\n+\n+var token string\n"

	f.press(test.Press(tea.KeyTab), test.Press(tea.KeyTab), test.Type("j"), test.Type("d"))
	require.Equal(t, state.OverlayDiff, f.state().Overlay())
	assert.Equal(t, "api/token.go", f.state().DiffPath())
	assert.Contains(t, test.Stripped(f.model.View()), "+var token string")

	f.press(test.Type("j"), test.Type("j"))
	assert.Equal(t, 2, f.state().DiffScroll())
	f.press(test.Type("c"))
	assert.Equal(t, 0, f.repo.CommitCalls)

	f.press(test.Press(tea.KeyEsc))
	assert.Equal(t, state.OverlayNone, f.state().Overlay())
	assert.False(t, f.model.Quitting())
}

func TestDiffWithoutStagedChanges(t *testing.T) {
	f := newFixture(t, false)
	f.press(test.Press(tea.KeyTab), test.Press(tea.KeyTab), test.Type("d"))

	assert.Equal(t, "No staged changes for api/login.go", f.state().StatusMessage())
	assert.Equal(t, state.OverlayPopup, f.state().Overlay())
}

func TestDiffOfCommittedGroupShowsNoteAfterClose(t *testing.T) {
	f := newFixture(t, false)
	f.state().Groups[0].Committed = true
	f.repo.Diffs["api/login.go"] = "+x\n"

	f.press(test.Press(tea.KeyTab), test.Press(tea.KeyTab), test.Type("d"))
	require.Equal(t, state.OverlayDiff, f.state().Overlay())
	assert.Contains(t, f.state().StatusMessage(), "already committed")

	f.press(test.Press(tea.KeyEsc))
	assert.Equal(t, state.OverlayPopup, f.state().Overlay())
}

func TestAIGenerate(t *testing.T) {
	f := newFixture(t, true)
	f.repo.Diffs["api/login.go"] = "+login\n"
	f.generator.Description = "add token login"
	f.generator.Body = "- check expiry\n\n- refresh session\n"

	f.press(test.Type("a"))

	g := f.state().Groups[0]
	assert.Equal(t, "add token login", g.Description)
	assert.Equal(t, []string{"check expiry", "refresh session"}, g.BodyLines)
	assert.Equal(t, "✓ AI generated commit message successfully", f.state().StatusMessage())

	require.Len(t, f.generator.Calls, 1)
	call := f.generator.Calls[0]
	assert.NotSame(t, g, call.Group)
	assert.Equal(t, "+login\n", call.Diff)
	assert.Len(t, call.Files, 2)
}

func TestAIGenerate_Failure(t *testing.T) {
	f := newFixture(t, true)
	f.generator.Err = errors.New("rate limited")

	f.press(test.Type("a"))

	assert.Equal(t, "add login", f.state().Groups[0].Description)
	assert.Equal(t, "✗ AI generation failed: rate limited", f.state().StatusMessage())
}

func TestAIGenerate_Disabled(t *testing.T) {
	f := newFixture(t, false)
	f.press(test.Type("a"))

	assert.Empty(t, f.generator.Calls)
	assert.Contains(t, f.state().StatusMessage(), "✗ AI mode not enabled")
}

func TestAIGenerate_RefusesCommittedGroup(t *testing.T) {
	f := newFixture(t, true)
	f.state().Groups[0].Committed = true
	f.press(test.Type("a"))

	assert.Empty(t, f.generator.Calls)
	assert.Equal(t, "✗ Cannot regenerate a committed group", f.state().StatusMessage())
}

func TestNilGeneratorDisablesAI(t *testing.T) {
	s, err := state.New(sampleGroups())
	require.NoError(t, err)
	m := NewUI(s, &test.FakeRepository{}, nil, Options{AIEnabled: true})
	test.SimulateModel(m, test.Type("a"))
	assert.Contains(t, s.StatusMessage(), "AI mode not enabled")
}

func TestCopy(t *testing.T) {
	f := newFixture(t, false)
	f.press(test.Type("y"))

	assert.Equal(t, "feat(api): LU-1: add login\n\n- validate token\n", f.clipboard.Text)
	assert.Equal(t, "✓ Copied commit message to clipboard", f.state().StatusMessage())

	f.clipboard.Err = errors.New("no display")
	f.press(test.Press(tea.KeyEsc), test.Type("y"))
	assert.Equal(t, "✗ Failed to copy to clipboard: no display", f.state().StatusMessage())
}

func TestActionsWithoutGroups(t *testing.T) {
	f := newFixture(t, true, []*changes.ChangeGroup{}...)
	for _, k := range []string{"e", "c", "a", "y"} {
		f.press(test.Type(k))
		assert.Equal(t, "No group selected", f.state().StatusMessage())
		f.press(test.Press(tea.KeyEsc))
	}
	f.press(test.Type("C"))
	assert.Equal(t, "✓ All groups already committed", f.state().StatusMessage())
}
