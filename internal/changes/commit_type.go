package changes

import "strings"

// CommitType is a conventional commit type. The declaration order is the
// sort order used when groups are listed.
type CommitType int

const (
	Feat CommitType = iota
	Fix
	Docs
	Style
	Refactor
	Perf
	Test
	Chore
	CI
	Build
)

var commitTypeTags = [...]string{
	Feat:     "feat",
	Fix:      "fix",
	Docs:     "docs",
	Style:    "style",
	Refactor: "refactor",
	Perf:     "perf",
	Test:     "test",
	Chore:    "chore",
	CI:       "ci",
	Build:    "build",
}

func (t CommitType) String() string {
	if t < 0 || int(t) >= len(commitTypeTags) {
		return commitTypeTags[Feat]
	}
	return commitTypeTags[t]
}

// AllCommitTypes returns every commit type in order.
func AllCommitTypes() []CommitType {
	return []CommitType{Feat, Fix, Docs, Style, Refactor, Perf, Test, Chore, CI, Build}
}

// ParseCommitType maps a tag such as "fix" to its CommitType. Unknown tags
// are treated as Feat.
func ParseCommitType(tag string) CommitType {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for i, t := range commitTypeTags {
		if t == tag {
			return CommitType(i)
		}
	}
	return Feat
}
