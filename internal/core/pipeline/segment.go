package pipeline

import (
	"errors"

	"pipekit.dev/cli/internal/core/registry"
)

// Segment is a contiguous run of command-line tokens identified with one
// plugin: the name token as typed (possibly an alias or unique prefix) and
// the argument tokens that follow it. The zero-name segment holds global
// options appearing before the first plugin name.
type Segment struct {
	// PluginNameToken is the plugin identity as typed; empty for the global
	// options segment.
	PluginNameToken string

	// ArgumentTokens are the tokens belonging to this segment, in order.
	ArgumentTokens []string
}

// IsGlobal reports whether the segment collects global options.
func (s Segment) IsGlobal() bool {
	return s.PluginNameToken == ""
}

// SplitOptions controls segmentation and instantiation.
type SplitOptions struct {
	// Partial enables unique-prefix name resolution. Off by default: plugin
	// option values are free-form strings and can collide with plugin-name
	// prefixes, so only callers that know their input enable it.
	Partial bool

	// AllowGlobalOptions permits tokens before the first plugin name,
	// collected into a global segment. When unset such tokens are a hard
	// error.
	AllowGlobalOptions bool

	// UnknownArgs selects what happens to tokens a plugin's schema cannot
	// consume. Defaults to Raise.
	UnknownArgs UnknownArgPolicy

	// RequireStage turns zero segments from non-empty input into an
	// EmptyPipelineError.
	RequireStage bool
}

// SplitArgs segments tokens against the registry's known names. A token that
// resolves starts a new segment and becomes its plugin identity; everything
// until the next recognized name belongs to that segment. An ambiguous
// partial match aborts with the registry's *AmbiguousError rather than being
// demoted to an argument token.
func SplitArgs(tokens []string, reg *registry.Registry, opts SplitOptions) ([]Segment, error) {
	var (
		segments []Segment
		current  *Segment
		global   []string
	)

	for _, token := range tokens {
		_, err := reg.Resolve(token, opts.Partial)
		switch {
		case err == nil:
			if current != nil {
				segments = append(segments, *current)
			}
			current = &Segment{PluginNameToken: token}

		case isAmbiguous(err):
			return nil, err

		case current != nil:
			current.ArgumentTokens = append(current.ArgumentTokens, token)

		default:
			if !opts.AllowGlobalOptions {
				return nil, &GlobalOptionsError{Tokens: append(global, token)}
			}
			global = append(global, token)
		}
	}

	if current != nil {
		segments = append(segments, *current)
	}
	if len(global) > 0 {
		segments = append([]Segment{{ArgumentTokens: global}}, segments...)
	}
	return segments, nil
}

func isAmbiguous(err error) bool {
	var ambiguous *registry.AmbiguousError
	return errors.As(err, &ambiguous)
}
