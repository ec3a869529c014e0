package ai

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/commitwiz/commit-wizard/internal/changes"
	"github.com/commitwiz/commit-wizard/internal/inference"
)

// Completer sends a raw prompt. Client satisfies it.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type proposedGroup struct {
	Type        string   `json:"type"`
	Scope       string   `json:"scope"`
	Description string   `json:"description"`
	Files       []string `json:"files"`
	BodyLines   []string `json:"body_lines"`
}

// GroupFiles asks the AI to partition files into commit groups. Paths the
// reply does not know are ignored and files it leaves out are gathered in
// one extra group. An unparsable reply yields a single group holding every
// file. A reply that puts one file in two groups is an error.
func GroupFiles(ctx context.Context, c Completer, files []changes.ChangedFile, ticket string, diffs map[string]string, maxDiff int) ([]*changes.ChangeGroup, error) {
	reply, err := c.Complete(ctx, BuildGroupingPrompt(files, ticket, diffs, maxDiff))
	if err != nil {
		return nil, errors.Wrap(err, "AI grouping failed")
	}
	groups := parseGroups(reply, files, ticket)
	if err := changes.ValidateNoDuplicateFiles(groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func parseGroups(reply string, files []changes.ChangedFile, ticket string) []*changes.ChangeGroup {
	if strings.Contains(reply, StartMarker) {
		if inner, err := ExtractBetweenMarkers(reply); err == nil {
			reply = inner
		}
	}

	var proposed []proposedGroup
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &proposed); err != nil {
		zap.L().Warn("AI grouping reply is not valid JSON, using a single group", zap.Error(err))
		return fallbackGroup(files, ticket)
	}

	byPath := make(map[string]changes.ChangedFile, len(files))
	for _, f := range files {
		byPath[f.Path] = f
	}
	assigned := make(map[string]bool, len(files))

	var groups []*changes.ChangeGroup
	for _, pg := range proposed {
		var groupFiles []changes.ChangedFile
		for _, p := range pg.Files {
			f, ok := byPath[p]
			if !ok {
				zap.L().Debug("AI grouping named an unknown file", zap.String("path", p))
				continue
			}
			groupFiles = append(groupFiles, f)
			assigned[p] = true
		}
		if len(groupFiles) == 0 {
			continue
		}
		description := strings.TrimSpace(pg.Description)
		if description == "" {
			description = "update files"
		}
		g := changes.NewChangeGroup(changes.ParseCommitType(pg.Type), strings.TrimSpace(pg.Scope), groupFiles, ticket, description, nil)
		g.SetBody(strings.Join(pg.BodyLines, "\n"))
		groups = append(groups, g)
	}
	if len(groups) == 0 {
		return fallbackGroup(files, ticket)
	}

	var rest []changes.ChangedFile
	for _, f := range files {
		if !assigned[f.Path] {
			rest = append(rest, f)
		}
	}
	if len(rest) > 0 {
		groups = append(groups, fallbackGroup(rest, ticket)...)
	}
	return groups
}

// fallbackGroup puts every file in one group typed and scoped after the
// first file.
func fallbackGroup(files []changes.ChangedFile, ticket string) []*changes.ChangeGroup {
	if len(files) == 0 {
		return nil
	}
	t := inference.InferCommitType(files[0].Path)
	scope := inference.InferScope(files[0].Path)
	return []*changes.ChangeGroup{changes.NewChangeGroup(
		t,
		scope,
		files,
		ticket,
		inference.InferDescription(files, t, scope),
		inference.InferBodyLines(files),
	)}
}
