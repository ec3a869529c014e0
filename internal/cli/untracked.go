package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/commitwiz/commit-wizard/internal/changes"
)

// SelectUntracked asks which untracked files to include. An empty answer or
// anything unrecognised includes all of them. With "s" the user lists
// 1-based file numbers; a selection without a valid number also includes
// everything.
func SelectUntracked(in io.Reader, out io.Writer, files []changes.ChangedFile) ([]changes.ChangedFile, error) {
	if len(files) == 0 {
		return nil, nil
	}

	fmt.Fprintf(out, "\nFound %d untracked file(s) not in .gitignore:\n", len(files))
	for i, f := range files {
		fmt.Fprintf(out, "  %d. %s\n", i+1, f.Path)
	}
	fmt.Fprint(out, "\nOptions:\n")
	fmt.Fprint(out, "  [a] Include all untracked files (default)\n")
	fmt.Fprint(out, "  [n] Include none\n")
	fmt.Fprint(out, "  [s] Select specific files\n")
	fmt.Fprint(out, "\nYour choice [a/n/s]: ")

	reader := bufio.NewReader(in)
	choice, err := readLine(reader)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(choice) {
	case "", "a", "all":
		fmt.Fprintf(out, "✓ Including all %d untracked files\n", len(files))
		return files, nil
	case "n", "none":
		fmt.Fprintln(out, "✓ Excluding all untracked files")
		return nil, nil
	case "s", "select":
		fmt.Fprint(out, "\nEnter file numbers to include (comma-separated, e.g. 1,3,5):\n> ")
		line, err := readLine(reader)
		if err != nil {
			return nil, err
		}
		selected := pickFiles(files, line)
		if len(selected) == 0 {
			fmt.Fprintln(out, "⚠ No valid selections, including all files")
			return files, nil
		}
		fmt.Fprintf(out, "✓ Including %d selected file(s)\n", len(selected))
		for _, f := range selected {
			fmt.Fprintf(out, "  • %s\n", f.Path)
		}
		return selected, nil
	default:
		fmt.Fprintln(out, "⚠ Invalid choice, including all files")
		return files, nil
	}
}

// pickFiles resolves a comma separated list of 1-based indexes. Invalid and
// repeated numbers are skipped.
func pickFiles(files []changes.ChangedFile, line string) []changes.ChangedFile {
	seen := make(map[int]bool)
	var selected []changes.ChangedFile
	for _, field := range strings.Split(line, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || n < 1 || n > len(files) || seen[n] {
			continue
		}
		seen[n] = true
		selected = append(selected, files[n-1])
	}
	return selected
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", errors.Wrap(err, "reading answer")
	}
	return strings.TrimSpace(line), nil
}
