package diff

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/cockroachdb/errors"
)

// Highlight colours a unified diff for a 256 colour terminal. Every line is
// formatted on its own so no colour runs over a line break.
func Highlight(content string, styleName string) (string, error) {
	lexer := lexers.Get("diff")
	if lexer == nil {
		return "", errors.New("diff lexer is not available")
	}
	lexer = chroma.Coalesce(lexer)
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.TTY256

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		iterator, err := lexer.Tokenise(nil, line+"\n")
		if err != nil {
			return "", errors.Wrap(err, "tokenising diff")
		}
		var b strings.Builder
		if err := formatter.Format(&b, style, iterator); err != nil {
			return "", errors.Wrap(err, "formatting diff")
		}
		lines[i] = strings.ReplaceAll(b.String(), "\n", "")
	}
	return strings.Join(lines, "\n"), nil
}
