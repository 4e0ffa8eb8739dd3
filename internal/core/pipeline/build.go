package pipeline

import (
	"fmt"

	"github.com/google/uuid"

	"pipekit.dev/cli/internal/core/plugin"
	"pipekit.dev/cli/internal/core/registry"
)

// UnknownArgPolicy selects what happens to tokens a plugin's option schema
// cannot consume.
type UnknownArgPolicy int

const (
	// Raise makes any leftover token a hard error naming the plugin.
	Raise UnknownArgPolicy = iota

	// Collect attaches leftovers to the stage and returns them as data.
	Collect

	// Ignore drops leftovers silently.
	Ignore
)

// Stage is one configured plugin instance in a resolved pipeline, together
// with the tokens its schema did not consume under the Collect policy.
type Stage struct {
	Plugin   plugin.Plugin
	Leftover []string
}

// ResolvedPipeline is the ordered result of instantiating every segment.
type ResolvedPipeline struct {
	// ID correlates log lines and diagnostics for one construction.
	ID string

	// GlobalOptions holds the tokens of the global segment, if any.
	GlobalOptions []string

	Stages []Stage
}

// ArgsToObjects resolves each segment to a descriptor, creates a fresh
// instance, and parses the segment's tokens into it. A help token anywhere in
// a segment suppresses unknown-argument errors for that segment so help can
// be rendered from otherwise-invalid input.
func ArgsToObjects(segments []Segment, reg *registry.Registry, opts SplitOptions) (*ResolvedPipeline, error) {
	result := &ResolvedPipeline{ID: uuid.NewString()}

	for _, seg := range segments {
		if seg.IsGlobal() {
			result.GlobalOptions = seg.ArgumentTokens
			continue
		}

		desc, err := reg.Resolve(seg.PluginNameToken, opts.Partial)
		if err != nil {
			return nil, err
		}

		inst := desc.New()
		schema := inst.Options()
		leftover, err := schema.Parse(seg.ArgumentTokens)
		helpRequested, _, _ := IsHelpRequested(seg.ArgumentTokens)
		if err != nil && !helpRequested {
			return nil, fmt.Errorf("plugin %q: %w", desc.Name, err)
		}

		stage := Stage{Plugin: inst}
		if len(leftover) > 0 && !helpRequested {
			switch opts.UnknownArgs {
			case Raise:
				return nil, &UnknownArgumentError{Plugin: desc.Name, Tokens: leftover}
			case Collect:
				stage.Leftover = leftover
			case Ignore:
			}
		}
		result.Stages = append(result.Stages, stage)
	}

	if opts.RequireStage && len(result.Stages) == 0 {
		var tokens []string
		for _, seg := range segments {
			tokens = append(tokens, seg.ArgumentTokens...)
		}
		if len(tokens) > 0 || len(segments) > 0 {
			return nil, &EmptyPipelineError{Tokens: tokens}
		}
	}
	return result, nil
}

// Build is the whole chain: tokenize the command line, segment it against the
// registry, and instantiate every stage.
func Build(cmdline string, reg *registry.Registry, opts SplitOptions) (*ResolvedPipeline, error) {
	tokens, err := SplitCommandLine(cmdline)
	if err != nil {
		return nil, err
	}
	segments, err := SplitArgs(tokens, reg, opts)
	if err != nil {
		return nil, err
	}
	return ArgsToObjects(segments, reg, opts)
}
