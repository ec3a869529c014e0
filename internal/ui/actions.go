package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/commitwiz/commit-wizard/internal/logging"
	"github.com/commitwiz/commit-wizard/internal/ui/state"
	"go.uber.org/zap"
)

const noGroupSelected = "No group selected"

func (m *Model) editSelected() tea.Cmd {
	g := m.state.SelectedGroup()
	if g == nil {
		m.state.SetStatus(noGroupSelected)
		return nil
	}
	if g.Committed {
		m.state.SetStatus("✗ Cannot edit a committed group")
		return nil
	}
	return m.state.OpenEditor(g.FullMessage())
}

func (m *Model) applyEditedMessage(text string) {
	g := m.state.SelectedGroup()
	if g == nil || g.Committed {
		return
	}
	g.SetFromCommitText(text)
	m.state.SetStatus("✓ Updated commit message from editor")
}

func (m *Model) showDiff() {
	if m.state.ActivePanel() != state.PanelFiles {
		m.state.SetStatus("Switch to the Files panel (Tab) to view a diff")
		return
	}
	f, ok := m.state.SelectedFile()
	if !ok {
		m.state.SetStatus("No file selected")
		return
	}
	out, err := m.repo.FileDiff(f.Path)
	if err != nil {
		logging.LogError("diff", err)
		m.state.SetStatus(fmt.Sprintf("✗ Failed to get diff: %v", err))
		return
	}
	if strings.TrimSpace(out) == "" {
		m.state.SetStatus(fmt.Sprintf("No staged changes for %s", f.Path))
		return
	}
	m.state.OpenDiff(f.Path, out)
	if g := m.state.SelectedGroup(); g != nil && g.Committed {
		m.state.SetStatus(fmt.Sprintf("ℹ This group is already committed; the diff of %s may be empty or stale", f.Path))
	}
}

func (m *Model) generateMessage() {
	if !m.aiEnabled {
		m.state.SetStatus("✗ AI mode not enabled. Set GITHUB_TOKEN or OPENAI_API_KEY, or install the Copilot CLI.")
		return
	}
	g := m.state.SelectedGroup()
	if g == nil {
		m.state.SetStatus(noGroupSelected)
		return
	}
	if g.Committed {
		m.state.SetStatus("✗ Cannot regenerate a committed group")
		return
	}

	snapshot := g.Clone()
	var diffs []string
	for _, path := range snapshot.Paths() {
		d, err := m.repo.FileDiff(path)
		if err != nil {
			zap.L().Debug("skipping diff for AI context", zap.String("path", path), zap.Error(err))
			continue
		}
		if strings.TrimSpace(d) != "" {
			diffs = append(diffs, d)
		}
	}

	description, body, err := m.generator.GenerateCommitMessage(context.Background(), snapshot, snapshot.Files, strings.Join(diffs, "\n"))
	if err != nil {
		logging.LogError("ai generate", err)
		m.state.SetStatus(fmt.Sprintf("✗ AI generation failed: %v", err))
		return
	}
	g.Description = description
	g.SetBody(body)
	m.state.SetStatus("✓ AI generated commit message successfully")
}

func (m *Model) commitSelected() {
	g := m.state.SelectedGroup()
	if g == nil {
		m.state.SetStatus(noGroupSelected)
		return
	}
	if g.Committed {
		m.state.SetStatus("✗ Group already committed")
		return
	}
	out, err := m.repo.CommitGroup(g)
	if err != nil {
		logging.LogError("commit", err)
		m.state.SetStatus(fmt.Sprintf("✗ Commit failed: %v", err))
		return
	}
	g.Committed = true
	zap.L().Info("committed group", zap.String("header", g.Header()), zap.Int("files", len(g.Files)))

	message := "✓ Committed selected group successfully"
	if out = strings.TrimSpace(out); out != "" {
		message += "\n\n" + out
	}
	m.state.SetStatus(message)
}

// commitAll commits the pending groups in order and stops at the first
// failure. Groups committed before the failure stay committed.
func (m *Model) commitAll() {
	committed := 0
	pending := 0
	for i, g := range m.state.Groups {
		if g.Committed {
			continue
		}
		pending++
		if _, err := m.repo.CommitGroup(g); err != nil {
			logging.LogError("commit all", err)
			m.state.SetStatus(fmt.Sprintf(
				"✗ Failed to commit all: group %d (%s): %v\n%d group(s) committed before the failure",
				i+1, g.Header(), err, committed))
			return
		}
		g.Committed = true
		committed++
	}
	if pending == 0 {
		m.state.SetStatus("✓ All groups already committed")
		return
	}
	zap.L().Info("committed all groups", zap.Int("count", committed))
	m.state.SetStatus(fmt.Sprintf("✓ Successfully committed all groups (%d)", committed))
}

func (m *Model) copyMessage() {
	g := m.state.SelectedGroup()
	if g == nil {
		m.state.SetStatus(noGroupSelected)
		return
	}
	if err := m.clipboard(g.FullMessage()); err != nil {
		m.state.SetStatus(fmt.Sprintf("✗ Failed to copy to clipboard: %v", err))
		return
	}
	m.state.SetStatus("✓ Copied commit message to clipboard")
}
