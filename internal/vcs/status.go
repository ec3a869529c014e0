package vcs

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-git/go-git/v5"

	"github.com/commitwiz/commit-wizard/internal/changes"
)

// IsValidPath rejects absolute paths, parent references and NUL bytes.
func IsValidPath(path string) bool {
	if path == "" {
		return false
	}
	if strings.HasPrefix(path, "/") || strings.HasPrefix(path, `\`) {
		return false
	}
	if len(path) >= 2 && path[1] == ':' {
		return false
	}
	return !strings.Contains(path, "..") && !strings.Contains(path, "\x00")
}

// ChangedFiles returns tracked files with staged or unstaged changes, sorted
// by path. Untracked files are included when includeUntracked is set.
func (r *Repository) ChangedFiles(includeUntracked bool) ([]changes.ChangedFile, error) {
	status, err := r.status()
	if err != nil {
		return nil, err
	}
	return collect(status, func(s *git.FileStatus) bool {
		if isUntracked(s) {
			return includeUntracked
		}
		return s.Staging != git.Unmodified || s.Worktree != git.Unmodified
	}), nil
}

// UntrackedFiles returns files that are neither tracked nor ignored.
func (r *Repository) UntrackedFiles() ([]changes.ChangedFile, error) {
	status, err := r.status()
	if err != nil {
		return nil, err
	}
	return collect(status, isUntracked), nil
}

func (r *Repository) status() (git.Status, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return nil, errors.Wrap(err, "opening worktree")
	}
	status, err := wt.Status()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get git status")
	}
	return status, nil
}

func isUntracked(s *git.FileStatus) bool {
	return s.Staging == git.Untracked && s.Worktree == git.Untracked
}

func collect(status git.Status, keep func(*git.FileStatus) bool) []changes.ChangedFile {
	var files []changes.ChangedFile
	for path, s := range status {
		if !keep(s) || !IsValidPath(path) {
			continue
		}
		files = append(files, changes.NewChangedFile(path, toFileStatus(s)))
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files
}

func toFileStatus(s *git.FileStatus) changes.FileStatus {
	if isUntracked(s) {
		return changes.WorktreeNew
	}
	var st changes.FileStatus
	switch s.Staging {
	case git.Added, git.Copied:
		st |= changes.IndexNew
	case git.Modified:
		st |= changes.IndexModified
	case git.Deleted:
		st |= changes.IndexDeleted
	case git.Renamed:
		st |= changes.IndexRenamed
	}
	switch s.Worktree {
	case git.Modified:
		st |= changes.WorktreeModified
	case git.Deleted:
		st |= changes.WorktreeDeleted
	case git.Renamed:
		st |= changes.WorktreeRenamed
	case git.Added:
		st |= changes.WorktreeNew
	}
	return st
}
