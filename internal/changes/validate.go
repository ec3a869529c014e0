package changes

import (
	"fmt"
	"strings"
)

// Duplicate records a path that was seen again while walking the groups.
// GroupIndex is the group in which the repeat was found.
type Duplicate struct {
	Path       string
	GroupIndex int
}

type DuplicateFilesError struct {
	Duplicates []Duplicate
}

func (e *DuplicateFilesError) Error() string {
	var b strings.Builder
	b.WriteString("duplicate files detected in commit groups:")
	for _, d := range e.Duplicates {
		fmt.Fprintf(&b, "\n  - file '%s' appears in multiple groups (at least in group %d)", d.Path, d.GroupIndex)
	}
	return b.String()
}

// ValidateNoDuplicateFiles checks that no path appears more than once across
// the groups, including twice in the same group. It returns a
// *DuplicateFilesError listing every repeat.
func ValidateNoDuplicateFiles(groups []*ChangeGroup) error {
	seen := make(map[string]struct{})
	var duplicates []Duplicate
	for i, group := range groups {
		if group == nil {
			continue
		}
		for _, file := range group.Files {
			if _, ok := seen[file.Path]; ok {
				duplicates = append(duplicates, Duplicate{Path: file.Path, GroupIndex: i})
				continue
			}
			seen[file.Path] = struct{}{}
		}
	}
	if len(duplicates) > 0 {
		return &DuplicateFilesError{Duplicates: duplicates}
	}
	return nil
}
