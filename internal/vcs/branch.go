package vcs

import (
	"regexp"

	"github.com/cockroachdb/errors"
	"github.com/go-git/go-git/v5/plumbing"
)

var ticketPattern = regexp.MustCompile(`[A-Z]+-\d+`)

// CurrentBranch returns the short name of the checked out branch. A branch
// without commits yet is still reported.
func (r *Repository) CurrentBranch() (string, error) {
	head, err := r.repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", errors.Wrap(err, "failed to read HEAD")
	}
	if head.Type() != plumbing.SymbolicReference {
		return "", ErrDetachedHead
	}
	return head.Target().Short(), nil
}

// ExtractTicket returns the first issue key such as "LU-1234" in branch.
func ExtractTicket(branch string) string {
	return ticketPattern.FindString(branch)
}
