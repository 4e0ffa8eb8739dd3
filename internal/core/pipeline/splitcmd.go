// Package pipeline turns a flat, shell-style command line into an ordered
// list of configured plugin instances: tokenize, segment by known plugin
// names, instantiate each segment with its own option set.
package pipeline

import (
	"fmt"
	"strings"
	"unicode"
)

// SplitCommandLine splits a command line into tokens the way a POSIX shell
// would: whitespace separates tokens, single quotes preserve everything
// literally, double quotes preserve whitespace while backslash still escapes
// `"` and `\`, and an unquoted backslash makes the next character literal.
func SplitCommandLine(cmdline string) ([]string, error) {
	var (
		tokens  []string
		current strings.Builder
		inToken bool
		quote   rune // 0, '\'' or '"'
		escaped bool
	)

	for _, r := range cmdline {
		switch {
		case escaped:
			// Inside double quotes the backslash only escapes the quote and
			// itself; anything else keeps the backslash.
			if quote == '"' && r != '"' && r != '\\' {
				current.WriteRune('\\')
			}
			current.WriteRune(r)
			inToken = true
			escaped = false

		case r == '\\' && quote != '\'':
			escaped = true

		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}

		case r == '\'' || r == '"':
			quote = r
			inToken = true

		case unicode.IsSpace(r):
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()
				inToken = false
			}

		default:
			current.WriteRune(r)
			inToken = true
		}
	}

	if escaped {
		return nil, fmt.Errorf("split command line: trailing backslash")
	}
	if quote != 0 {
		return nil, fmt.Errorf("split command line: unterminated %c quote", quote)
	}
	if inToken {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}
