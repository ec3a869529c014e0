// Package inference derives commit types, scopes, descriptions and initial
// groups from changed file paths.
package inference

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/commitwiz/commit-wizard/internal/changes"
)

// MaxBodyLines caps the generated bullet list of a group.
const MaxBodyLines = 20

var (
	docSuffixes   = []string{".md", ".rst", ".txt", ".adoc"}
	docNames      = []string{"readme", "changelog", "contributing"}
	ciMarkers     = []string{".github", ".gitlab", "jenkins", "pipeline", "circleci", "azure-pipelines"}
	ciSuffixes    = []string{"ci.yml", "ci.yaml", ".travis.yml"}
	buildMarkers  = []string{"dockerfile", "cmake", "makefile"}
	buildSuffixes = []string{
		"package.json", "package-lock.json", "yarn.lock", "pnpm-lock.yaml",
		"composer.json", "composer.lock", "cargo.toml", "cargo.lock",
		"build.gradle", "pom.xml", "go.mod", "go.sum",
	}
	styleSuffixes = []string{".css", ".scss", ".sass", ".less", ".styl"}
	styleMarkers  = []string{"/styles/", "/css/"}
)

// InferCommitType picks a commit type from path alone. Checks run in order
// test, docs, ci, build, style; anything else is a feature.
func InferCommitType(p string) changes.CommitType {
	lower := strings.ToLower(p)
	switch {
	case strings.Contains(lower, "test") || strings.Contains(lower, "spec"):
		return changes.Test
	case isDocumentation(lower):
		return changes.Docs
	case containsAny(lower, ciMarkers) || hasAnySuffix(lower, ciSuffixes):
		return changes.CI
	case containsAny(lower, buildMarkers) || hasAnySuffix(lower, buildSuffixes):
		return changes.Build
	case hasAnySuffix(lower, styleSuffixes) || containsAny(lower, styleMarkers):
		return changes.Style
	default:
		return changes.Feat
	}
}

func isDocumentation(lower string) bool {
	if hasAnySuffix(lower, docSuffixes) {
		return true
	}
	if strings.Contains(lower, "/docs/") || strings.HasPrefix(lower, "docs/") {
		return true
	}
	for _, name := range docNames {
		if lower == name {
			return true
		}
	}
	return false
}

// InferScope returns the first path segment, or "" when it is empty, hidden
// or a markdown file.
func InferScope(p string) string {
	first, _, _ := strings.Cut(p, "/")
	if first == "" || strings.HasPrefix(first, ".") || strings.HasSuffix(strings.ToLower(first), ".md") {
		return ""
	}
	return first
}

func action(t changes.CommitType) string {
	switch t {
	case changes.Fix:
		return "fix"
	case changes.Docs:
		return "update"
	case changes.Style:
		return "format"
	case changes.Refactor:
		return "refactor"
	case changes.Perf:
		return "optimize"
	case changes.Test:
		return "update tests for"
	case changes.Chore:
		return "maintain"
	case changes.CI:
		return "update CI for"
	case changes.Build:
		return "update build for"
	default:
		return "add"
	}
}

// InferDescription builds "<verb> <scope>", falling back to the file name
// for a single file or a file count.
func InferDescription(files []changes.ChangedFile, t changes.CommitType, scope string) string {
	verb := action(t)
	switch {
	case scope != "":
		return verb + " " + scope
	case len(files) == 1:
		return verb + " " + path.Base(files[0].Path)
	default:
		return fmt.Sprintf("%s %d files", verb, len(files))
	}
}

// InferBodyLines lists one line per file, at most MaxBodyLines of them.
func InferBodyLines(files []changes.ChangedFile) []string {
	lines := make([]string, 0, min(len(files), MaxBodyLines)+1)
	for i, f := range files {
		if i == MaxBodyLines {
			lines = append(lines, fmt.Sprintf("... and %d more files", len(files)-MaxBodyLines))
			break
		}
		lines = append(lines, fileVerb(f)+" "+f.Path)
	}
	return lines
}

func fileVerb(f changes.ChangedFile) string {
	switch {
	case f.IsNew():
		return "add"
	case f.IsDeleted():
		return "remove"
	case f.IsModified():
		return "modify"
	case f.IsRenamed():
		return "rename"
	default:
		return "update"
	}
}

type groupKey struct {
	commitType changes.CommitType
	scope      string
}

// BuildGroups partitions files by inferred type and scope. Groups are ordered
// by type, then scope; files keep their input order.
func BuildGroups(files []changes.ChangedFile, ticket string) ([]*changes.ChangeGroup, error) {
	byKey := make(map[groupKey][]changes.ChangedFile)
	var keys []groupKey
	for _, f := range files {
		k := groupKey{commitType: InferCommitType(f.Path), scope: InferScope(f.Path)}
		if _, ok := byKey[k]; !ok {
			keys = append(keys, k)
		}
		byKey[k] = append(byKey[k], f)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].commitType != keys[j].commitType {
			return keys[i].commitType < keys[j].commitType
		}
		return keys[i].scope < keys[j].scope
	})

	groups := make([]*changes.ChangeGroup, 0, len(keys))
	for _, k := range keys {
		groupFiles := byKey[k]
		groups = append(groups, changes.NewChangeGroup(
			k.commitType,
			k.scope,
			groupFiles,
			ticket,
			InferDescription(groupFiles, k.commitType, k.scope),
			InferBodyLines(groupFiles),
		))
	}
	if err := changes.ValidateNoDuplicateFiles(groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}
