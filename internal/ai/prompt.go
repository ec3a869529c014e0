package ai

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"

	"github.com/commitwiz/commit-wizard/internal/changes"
)

const (
	StartMarker = "**START COMMIT MESSAGE**"
	EndMarker   = "**END COMMIT MESSAGE**"

	maxPreviewDiffs = 5
	truncatedNote   = "... (truncated)"
)

const systemPrompt = "You are a commit message generator. Follow these rules: " +
	"- Use imperative mood: 'add feature' NOT 'added feature' " +
	"- Keep description concise and factual " +
	"- Do NOT include type/scope prefix (feat:, fix:, etc.) " +
	"- Start with a lowercase verb " +
	"- No period at the end of description " +
	"- If providing a body, separate it with a blank line " +
	"- Body should use bullet points starting with '-' " +
	"- Mention breaking changes if applicable"

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) (string, bool) {
	if n <= 0 || len(s) <= n {
		return s, false
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n], true
}

// BuildPrompt is the user prompt sent to the chat completion providers.
func BuildPrompt(group *changes.ChangeGroup, files []changes.ChangedFile, diff string, maxDiff int) string {
	var b strings.Builder
	b.WriteString("Generate a conventional commit message for these changes:\n\n")
	fmt.Fprintf(&b, "Type: %s\n", group.Type)
	if group.Scope != "" {
		fmt.Fprintf(&b, "Scope: %s\n", group.Scope)
	}
	if group.Ticket != "" {
		fmt.Fprintf(&b, "Ticket: %s\n", group.Ticket)
	}
	b.WriteString("\nChanged files:\n")
	for _, f := range files {
		fmt.Fprintf(&b, "  - %s\n", f.Path)
	}
	if diff != "" {
		fmt.Fprintf(&b, "\nDiff (first %d chars):\n", maxDiff)
		d, cut := truncate(diff, maxDiff)
		b.WriteString(d)
		if cut {
			b.WriteString("\n" + truncatedNote)
		}
	}
	b.WriteString("\n\nProvide ONLY the commit description (imperative mood, no type/scope prefix). " +
		"If needed, add a body after a blank line.")
	return b.String()
}

// BuildCopilotPrompt asks for the message between StartMarker and EndMarker
// so it can be cut out of the CLI's chatter.
func BuildCopilotPrompt(group *changes.ChangeGroup, files []changes.ChangedFile, diff string, maxDiff int) string {
	var b strings.Builder
	b.WriteString("Generate a conventional commit message for these changes.\n\n")
	if group.Ticket != "" {
		fmt.Fprintf(&b, "Ticket number: %s\n\n", group.Ticket)
	}
	b.WriteString("REQUIREMENTS:\n")
	b.WriteString("- Use imperative mood: 'add feature' NOT 'added feature'\n")
	b.WriteString("- Keep description concise and factual\n")
	b.WriteString("- Do NOT include type/scope prefix (feat:, fix:, etc.)\n")
	b.WriteString("- Start with a lowercase verb\n")
	b.WriteString("- No period at the end of description\n")
	fmt.Fprintf(&b, "- Keep subject line under %d characters\n", changes.MaxHeaderLength)
	b.WriteString("- If providing a body, provide plain text lines WITHOUT bullet point prefix\n")
	b.WriteString("- The tool will automatically add '- ' prefix to each body line\n")
	b.WriteString("- Mention breaking changes if applicable\n\n")

	fmt.Fprintf(&b, "Type: %s\n", group.Type)
	if group.Scope != "" {
		fmt.Fprintf(&b, "Scope: %s\n", group.Scope)
	}
	b.WriteString("\nCHANGED FILES:\n")
	for _, f := range files {
		fmt.Fprintf(&b, "  - %s\n", f.Path)
	}
	if diff != "" {
		b.WriteString("\nDIFF:\n")
		d, cut := truncate(diff, maxDiff)
		b.WriteString(d)
		if cut {
			b.WriteString("\n" + truncatedNote)
		}
	}
	fmt.Fprintf(&b, "\n\nGenerate ONLY the commit message between these markers:\n%s\n", StartMarker)
	b.WriteString("<description>\n\n<optional body with bullet points>\n")
	b.WriteString(EndMarker + "\n")
	return b.String()
}

// BuildGroupingPrompt asks for a JSON array of groups between the markers.
// At most five diffs are previewed, in path order.
func BuildGroupingPrompt(files []changes.ChangedFile, ticket string, diffs map[string]string, maxDiff int) string {
	var b strings.Builder
	b.WriteString("Analyze these changed files and group them into logical commits.\n\n")
	b.WriteString("REQUIREMENTS:\n")
	b.WriteString("- Group files that belong to the same logical change\n")
	b.WriteString("- Also analyze the dependencies between the changed files and ensure that these are completely fulfilled per commit group.\n")
	b.WriteString("- Be sure to include all related files in the same group\n")
	b.WriteString("- Be sure that a file is only in one group\n")
	b.WriteString("- Assign appropriate conventional commit type (")
	for i, t := range changes.AllCommitTypes() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.String())
	}
	b.WriteString(")\n")
	b.WriteString("- Determine scope from file paths (e.g., 'api', 'ui', 'auth')\n")
	b.WriteString("- Generate concise, imperative descriptions\n")
	fmt.Fprintf(&b, "- Keep descriptions under %d characters\n\n", changes.MaxHeaderLength)

	if ticket != "" {
		fmt.Fprintf(&b, "Ticket/Issue: %s\n\n", ticket)
	}

	b.WriteString("CHANGED FILES:\n")
	for _, f := range files {
		fmt.Fprintf(&b, "  %s - %s\n", f.Kind(), f.Path)
	}

	if len(diffs) > 0 {
		paths := make([]string, 0, len(diffs))
		for p := range diffs {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		b.WriteString("\nDIFF PREVIEW:\n")
		for _, p := range paths[:min(len(paths), maxPreviewDiffs)] {
			fmt.Fprintf(&b, "\n%s:\n", p)
			d, cut := truncate(diffs[p], maxDiff)
			b.WriteString(d)
			if cut {
				b.WriteString(truncatedNote)
			}
		}
	}

	fmt.Fprintf(&b, "\n\nProvide the grouping in JSON format between these markers:\n%s\n", StartMarker)
	b.WriteString(`[
  {
    "type": "feat",
    "scope": "api",
    "description": "add user endpoint",
    "files": ["src/api/users.go"],
    "body_lines": ["implement GET /users", "add user model"]
    # NOTE: body_lines should NOT start with '- ', it will be added automatically
  }
]
`)
	b.WriteString(EndMarker + "\n")
	return b.String()
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "```"); ok {
		// Drop a language tag such as ```json.
		if first, after, found := strings.Cut(rest, "\n"); found && !strings.ContainsAny(strings.TrimSpace(first), " \t") {
			rest = after
		}
		s = rest
	}
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}

// ParseCommitMessage splits a reply into its description and body. The
// description is the first line; everything after it is the body, with
// doubled dashes collapsed.
func ParseCommitMessage(response string) (string, string) {
	cleaned := stripCodeFence(response)
	first, rest, _ := strings.Cut(cleaned, "\n")

	description := strings.TrimSpace(first)
	description = strings.TrimLeft(description, `"`)
	description = strings.TrimRight(description, `"`)
	description = strings.TrimLeft(description, "`")
	description = strings.TrimRight(description, "`")

	body := strings.TrimSpace(rest)
	body = strings.ReplaceAll(body, "--", "-")
	return description, body
}

// ExtractBetweenMarkers returns the lines between StartMarker and EndMarker.
// Blank lines inside the block are kept so a description stays separated
// from its body; leading and trailing ones are dropped.
func ExtractBetweenMarkers(output string) (string, error) {
	var (
		lines   []string
		inBlock bool
	)
	for _, line := range strings.Split(strings.ReplaceAll(output, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == StartMarker {
			inBlock = true
			continue
		}
		if trimmed == EndMarker {
			break
		}
		if inBlock {
			lines = append(lines, strings.TrimRight(line, " \t"))
		}
	}
	result := strings.Trim(strings.Join(lines, "\n"), "\n")
	if strings.TrimSpace(result) == "" {
		return "", errors.Newf("could not find text between markers '%s' and '%s'", StartMarker, EndMarker)
	}
	return result, nil
}
