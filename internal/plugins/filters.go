package plugins

import (
	"fmt"
	"regexp"

	"pipekit.dev/cli/internal/core/capability"
	"pipekit.dev/cli/internal/core/plugin"
)

// Filter actions.
const (
	ActionKeep    = "keep"
	ActionDiscard = "discard"
)

// LineFilter keeps or discards lines matching a pattern.
type LineFilter struct {
	Pattern string
	Action  string
	Skip    bool
}

func (f *LineFilter) Name() string { return "line-filter" }

func (f *LineFilter) Description() string {
	return "Keeps or discards lines matching a regular expression."
}

func (f *LineFilter) Accepts() []capability.Tag  { return []capability.Tag{TagLine} }
func (f *LineFilter) Produces() []capability.Tag { return []capability.Tag{TagLine} }

func (f *LineFilter) Options() *plugin.Options {
	o := plugin.NewOptions(f.Name())
	fs := o.Flags()
	fs.StringVarP(&f.Pattern, "pattern", "p", "", "regular expression the line is matched against")
	fs.StringVar(&f.Action, "action", ActionKeep, "what to do with matching lines (keep|discard)")
	fs.BoolVar(&f.Skip, "skip", false, "pass lines through unchanged")
	return o
}

// Compile validates the configured pattern and action.
func (f *LineFilter) Compile() (*regexp.Regexp, error) {
	if f.Action != ActionKeep && f.Action != ActionDiscard {
		return nil, fmt.Errorf("line-filter: unknown action %q", f.Action)
	}
	re, err := regexp.Compile(f.Pattern)
	if err != nil {
		return nil, fmt.Errorf("line-filter: %w", err)
	}
	return re, nil
}

// PassThrough forwards anything to anything; useful as a neutral junction
// between stages with unrelated type tags.
type PassThrough struct {
	Skip bool
}

func (p *PassThrough) Name() string { return "pass-through" }

func (p *PassThrough) Description() string {
	return "Forwards records unchanged."
}

func (p *PassThrough) Aliases() []string { return []string{"noop"} }

func (p *PassThrough) Accepts() []capability.Tag  { return []capability.Tag{capability.Any} }
func (p *PassThrough) Produces() []capability.Tag { return []capability.Tag{capability.Any} }

func (p *PassThrough) Options() *plugin.Options {
	o := plugin.NewOptions(p.Name())
	o.Flags().BoolVar(&p.Skip, "skip", false, "pass records through unchanged")
	return o
}
