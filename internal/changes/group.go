// Package changes holds the commit model: changed files, the groups they are
// committed in and the conventional commit message rendered for each group.
package changes

import (
	"strings"

	"github.com/rivo/uniseg"
)

// MaxHeaderLength is the byte budget of a rendered commit header.
const MaxHeaderLength = 72

const ellipsis = "..."

type ChangeGroup struct {
	Type        CommitType
	Scope       string
	Files       []ChangedFile
	Ticket      string
	Description string
	BodyLines   []string
	Committed   bool
}

func NewChangeGroup(commitType CommitType, scope string, files []ChangedFile, ticket string, description string, bodyLines []string) *ChangeGroup {
	return &ChangeGroup{
		Type:        commitType,
		Scope:       scope,
		Files:       files,
		Ticket:      ticket,
		Description: description,
		BodyLines:   bodyLines,
	}
}

// Clone returns a deep copy of the group.
func (g *ChangeGroup) Clone() *ChangeGroup {
	c := *g
	c.Files = append([]ChangedFile(nil), g.Files...)
	c.BodyLines = append([]string(nil), g.BodyLines...)
	return &c
}

// Paths returns the repository relative paths of the group's files.
func (g *ChangeGroup) Paths() []string {
	paths := make([]string, 0, len(g.Files))
	for _, f := range g.Files {
		paths = append(paths, f.Path)
	}
	return paths
}

func (g *ChangeGroup) prefix() string {
	var b strings.Builder
	b.WriteString(g.Type.String())
	if g.Scope != "" {
		b.WriteString("(")
		b.WriteString(g.Scope)
		b.WriteString(")")
	}
	b.WriteString(": ")
	if g.Ticket != "" {
		b.WriteString(g.Ticket)
		b.WriteString(": ")
	}
	return b.String()
}

// Header renders "<type>[(<scope>)]: [<ticket>: ]<description>". A description
// that does not fit in MaxHeaderLength is cut and ends with "...".
func (g *ChangeGroup) Header() string {
	prefix := g.prefix()
	available := max(MaxHeaderLength-len(prefix), 0)
	description := g.Description
	if len(description) > available {
		description = truncateBytes(description, max(available-len(ellipsis), 0)) + ellipsis
	}
	return prefix + description
}

// FullMessage renders the header followed by a blank line and one "- " bullet
// per body line. Groups without body lines render the header only.
func (g *ChangeGroup) FullMessage() string {
	var b strings.Builder
	b.WriteString(g.Header())
	if len(g.BodyLines) == 0 {
		return b.String()
	}
	b.WriteString("\n\n")
	for _, line := range g.BodyLines {
		b.WriteString("- ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// SetFromCommitText re-reads Description and BodyLines from an edited
// message. The description is whatever follows the last ": " on the first
// line; every following non-empty line becomes a body line without its
// leading "- ". Bare bullets are dropped.
func (g *ChangeGroup) SetFromCommitText(text string) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	header := strings.TrimSpace(lines[0])
	if idx := strings.LastIndex(header, ": "); idx >= 0 {
		g.Description = strings.TrimSpace(header[idx+2:])
	} else {
		g.Description = header
	}

	body := make([]string, 0, len(lines))
	for _, line := range lines[1:] {
		trimmed := strings.TrimSpace(line)
		if stripped, ok := strings.CutPrefix(trimmed, "- "); ok {
			trimmed = strings.TrimSpace(stripped)
		}
		if trimmed == "" || trimmed == "-" {
			continue
		}
		body = append(body, trimmed)
	}
	g.BodyLines = body
}

// SetBody replaces BodyLines with the non-empty lines of body, dropping any
// bullet prefix.
func (g *ChangeGroup) SetBody(body string) {
	lines := make([]string, 0)
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimPrefix(line, "- "))
		if line == "" || line == "-" {
			continue
		}
		lines = append(lines, line)
	}
	g.BodyLines = lines
}

// truncateBytes returns the longest prefix of s that is at most n bytes and
// ends on a grapheme cluster boundary.
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	end := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		cluster, remaining, _, newState := uniseg.FirstGraphemeClusterInString(rest, state)
		if end+len(cluster) > n {
			break
		}
		end += len(cluster)
		rest, state = remaining, newState
	}
	return s[:end]
}
