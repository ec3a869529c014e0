package vcs

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	ErrNotRepository      = errors.New("not a git repository")
	ErrGitOperationFailed = errors.New("git operation failed")
	ErrDetachedHead       = errors.New("HEAD is detached")
	ErrInvalidPath        = errors.New("invalid file path")
)

// CommandExecutor runs prepared commands. Tests swap it for a recorder.
type CommandExecutor interface {
	ExecuteWithOutput(cmd *exec.Cmd) (string, error)
}

type ExecExecutor struct{}

func (ExecExecutor) ExecuteWithOutput(cmd *exec.Cmd) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		var args []string
		if len(cmd.Args) > 1 {
			args = cmd.Args[1:]
		}
		return stdout.String(), &GitError{
			Args:   args,
			Err:    errors.Wrap(ErrGitOperationFailed, err.Error()),
			Stderr: strings.TrimSpace(stderr.String()),
		}
	}
	return stdout.String(), nil
}

// GitError describes a failed git invocation.
type GitError struct {
	Args   []string
	Err    error
	Stderr string
}

func (e *GitError) Error() string {
	op := "git"
	if sub := e.Subcommand(); sub != "" {
		op += " " + sub
	}
	if e.Stderr != "" {
		return fmt.Sprintf("%s failed: %s", op, e.Stderr)
	}
	return fmt.Sprintf("%s failed: %v", op, e.Err)
}

// Subcommand returns the git subcommand, skipping a leading "-C <dir>".
func (e *GitError) Subcommand() string {
	args := e.Args
	if len(args) >= 2 && args[0] == "-C" {
		args = args[2:]
	}
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func (e *GitError) Unwrap() error {
	return e.Err
}
