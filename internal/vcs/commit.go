package vcs

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/commitwiz/commit-wizard/internal/changes"
)

// CommitGroup stages exactly the group's files and commits them with the
// group's full message. It returns git's output.
func (r *Repository) CommitGroup(group *changes.ChangeGroup) (string, error) {
	paths := group.Paths()
	if len(paths) == 0 {
		return "", errors.New("group has no files")
	}
	for _, p := range paths {
		if !IsValidPath(p) {
			return "", errors.Wrapf(ErrInvalidPath, "%q", p)
		}
	}

	stageCtx, cancelStage := context.WithTimeout(context.Background(), r.stageTimeout)
	defer cancelStage()
	zap.L().Debug("staging files", zap.Int("count", len(paths)))
	if _, err := r.git(stageCtx, append([]string{"add", "--"}, paths...)...); err != nil {
		zap.L().Error("git add failed", zap.Error(err))
		return "", errors.Wrap(err, "failed to stage files")
	}

	msgFile, err := writeMessageFile(group.FullMessage())
	if err != nil {
		return "", err
	}
	defer os.Remove(msgFile)

	commitCtx, cancelCommit := context.WithTimeout(context.Background(), r.commitTimeout)
	defer cancelCommit()
	args := append([]string{"commit", "-F", msgFile, "--"}, paths...)
	out, err := r.git(commitCtx, args...)
	if err != nil {
		zap.L().Error("git commit failed", zap.Error(err))
		return "", err
	}
	zap.L().Info("committed group", zap.String("header", group.Header()), zap.Strings("files", paths))
	return out, nil
}

func writeMessageFile(msg string) (string, error) {
	f, err := os.CreateTemp("", "commit-wizard-*.txt")
	if err != nil {
		return "", errors.Wrap(err, "failed to create temporary file")
	}
	if _, err := f.WriteString(msg); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", errors.Wrap(err, "failed to write commit message")
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", errors.Wrap(err, "failed to write commit message")
	}
	return f.Name(), nil
}
