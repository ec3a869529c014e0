package test

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/commitwiz/commit-wizard/internal/changes"
)

// FakeRepository records commits instead of running git.
type FakeRepository struct {
	Diffs   map[string]string
	DiffErr error
	// CommitErrors fails the commit of the group with the given description.
	CommitErrors map[string]error
	Output       string

	Committed   []string
	CommitCalls int
	DiffCalls   []string
}

func (r *FakeRepository) FileDiff(path string) (string, error) {
	r.DiffCalls = append(r.DiffCalls, path)
	if r.DiffErr != nil {
		return "", r.DiffErr
	}
	return r.Diffs[path], nil
}

func (r *FakeRepository) CommitGroup(group *changes.ChangeGroup) (string, error) {
	r.CommitCalls++
	if err, ok := r.CommitErrors[group.Description]; ok {
		return "", err
	}
	r.Committed = append(r.Committed, group.FullMessage())
	return r.Output, nil
}

// FakeGenerator returns a canned commit message.
type FakeGenerator struct {
	Description string
	Body        string
	Err         error

	Calls []GeneratorCall
}

type GeneratorCall struct {
	Group *changes.ChangeGroup
	Files []changes.ChangedFile
	Diff  string
}

func (g *FakeGenerator) GenerateCommitMessage(_ context.Context, group *changes.ChangeGroup, files []changes.ChangedFile, diff string) (string, string, error) {
	g.Calls = append(g.Calls, GeneratorCall{Group: group, Files: files, Diff: diff})
	if g.Err != nil {
		return "", "", g.Err
	}
	if g.Description == "" {
		return "", "", errors.New("empty description")
	}
	return g.Description, g.Body, nil
}

// FakeClipboard keeps the last copied text.
type FakeClipboard struct {
	Text string
	Err  error
}

func (c *FakeClipboard) Write(text string) error {
	if c.Err != nil {
		return c.Err
	}
	c.Text = text
	return nil
}
