package ai

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/commitwiz/commit-wizard/internal/changes"
	"github.com/commitwiz/commit-wizard/internal/config"
	"github.com/commitwiz/commit-wizard/internal/logging"
)

const copilotName = "Copilot CLI"

// Available reports whether command runs and answers --version.
func Available(command string) bool {
	if command == "" {
		return false
	}
	if err := exec.Command(command, "--version").Run(); err != nil {
		zap.L().Debug("copilot CLI not available", zap.String("command", command), zap.Error(err))
		return false
	}
	return true
}

// CopilotProvider runs the GitHub Copilot CLI in prompt mode.
type CopilotProvider struct {
	command string
	maxDiff int
}

func NewCopilotProvider(cfg config.AIConfig) *CopilotProvider {
	return &CopilotProvider{command: cfg.CopilotCommand, maxDiff: cfg.MaxDiffChars}
}

func (p *CopilotProvider) Name() string  { return copilotName }
func (p *CopilotProvider) Model() string { return p.command }

func (p *CopilotProvider) GenerateCommitMessage(ctx context.Context, group *changes.ChangeGroup, files []changes.ChangedFile, diff string) (string, string, error) {
	reply, err := p.Complete(ctx, BuildCopilotPrompt(group, files, diff, p.maxDiff))
	if err != nil {
		return "", "", err
	}
	d, b := ParseCommitMessage(reply)
	return d, b, nil
}

// Complete runs `copilot -p prompt` and returns the text between the
// markers of its output.
func (p *CopilotProvider) Complete(ctx context.Context, prompt string) (string, error) {
	logging.LogAPIRequest(copilotName, p.command, len(prompt))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.command, "-p", prompt)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		logging.LogAPIResponse(copilotName, false, 0)
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		if ctx.Err() != nil {
			return "", errors.Wrap(ctx.Err(), "GitHub Copilot CLI timed out")
		}
		return "", errors.Wrapf(err, "GitHub Copilot CLI failed: %s", msg)
	}

	reply, err := ExtractBetweenMarkers(stdout.String())
	if err != nil {
		logging.LogAPIResponse(copilotName, false, 0)
		return "", errors.Wrap(err, "reading GitHub Copilot CLI output")
	}
	logging.LogAPIResponse(copilotName, true, len(reply))
	return reply, nil
}
