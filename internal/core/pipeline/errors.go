package pipeline

import (
	"fmt"
	"strings"
)

// UnknownArgumentError reports tokens a plugin's option schema could not
// consume under the Raise policy.
type UnknownArgumentError struct {
	// Plugin is the canonical name of the offending stage.
	Plugin string

	// Tokens are the unconsumed tokens, in command-line order.
	Tokens []string
}

func (e *UnknownArgumentError) Error() string {
	return fmt.Sprintf("plugin %q: unknown arguments: %s",
		e.Plugin, strings.Join(e.Tokens, " "))
}

// GlobalOptionsError reports tokens found before the first plugin name when
// the caller disallowed global options.
type GlobalOptionsError struct {
	Tokens []string
}

func (e *GlobalOptionsError) Error() string {
	return fmt.Sprintf("no global options allowed (found: %s)",
		strings.Join(e.Tokens, " "))
}

// EmptyPipelineError reports that non-empty input produced zero stages while
// the caller required at least one.
type EmptyPipelineError struct {
	Tokens []string
}

func (e *EmptyPipelineError) Error() string {
	return fmt.Sprintf("no pipeline stages found in: %s",
		strings.Join(e.Tokens, " "))
}
