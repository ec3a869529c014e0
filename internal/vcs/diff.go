package vcs

import (
	"context"

	"github.com/cockroachdb/errors"
)

// FileDiff returns the staged diff of path. A file without staged changes
// yields an empty string.
func (r *Repository) FileDiff(path string) (string, error) {
	if !IsValidPath(path) {
		return "", errors.Wrapf(ErrInvalidPath, "%q", path)
	}
	ctx, cancel := context.WithTimeout(context.Background(), diffTimeout)
	defer cancel()
	out, err := r.git(ctx, "diff", "--cached", "--", path)
	if err != nil {
		return "", err
	}
	return out, nil
}

// FileDiffs collects the staged diffs of paths, skipping files that fail or
// have no staged change.
func (r *Repository) FileDiffs(paths []string) map[string]string {
	diffs := make(map[string]string, len(paths))
	for _, p := range paths {
		d, err := r.FileDiff(p)
		if err != nil || d == "" {
			continue
		}
		diffs[p] = d
	}
	return diffs
}
