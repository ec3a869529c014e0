// Package vcs reads repository state with go-git and stages, diffs and
// commits through the git binary.
package vcs

import (
	"context"
	"os/exec"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-git/go-git/v5"
	"go.uber.org/zap"

	"github.com/commitwiz/commit-wizard/internal/config"
)

const diffTimeout = 10 * time.Second

type Repository struct {
	root          string
	repo          *git.Repository
	executor      CommandExecutor
	stageTimeout  time.Duration
	commitTimeout time.Duration
}

type Option func(*Repository)

func WithExecutor(e CommandExecutor) Option {
	return func(r *Repository) {
		r.executor = e
	}
}

// Open finds the repository containing path.
func Open(path string, opts ...Option) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(ErrNotRepository, "%s: %v", path, err),
			"run commit-wizard from inside a git repository or pass --repo <path>",
		)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, errors.Wrap(err, "repository has no working tree")
	}
	r := &Repository{
		root:          wt.Filesystem.Root(),
		repo:          repo,
		executor:      ExecExecutor{},
		stageTimeout:  config.Current.Git.StageTimeout(),
		commitTimeout: config.Current.Git.CommitTimeout(),
	}
	for _, opt := range opts {
		opt(r)
	}
	zap.L().Info("opened repository", zap.String("root", r.root))
	return r, nil
}

func (r *Repository) Root() string {
	return r.root
}

func (r *Repository) git(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", r.root}, args...)...)
	zap.L().Debug("running git", zap.Strings("args", cmd.Args[1:]))
	out, err := r.executor.ExecuteWithOutput(cmd)
	if ctx.Err() == context.DeadlineExceeded {
		return out, errors.Wrapf(ctx.Err(), "git %s timed out", args[0])
	}
	return out, err
}
