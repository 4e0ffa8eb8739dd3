package plugins

import (
	"pipekit.dev/cli/internal/core/capability"
	"pipekit.dev/cli/internal/core/plugin"
)

// TextReader produces lines from text files. Input paths may contain
// placeholder syntax; expansion happens downstream of parsing.
type TextReader struct {
	Inputs    []string
	InputList string
}

func (r *TextReader) Name() string { return "text-reader" }

func (r *TextReader) Description() string {
	return "Reads plain text files line by line."
}

func (r *TextReader) Aliases() []string { return []string{"read-text"} }

func (r *TextReader) Produces() []capability.Tag { return []capability.Tag{TagLine} }

func (r *TextReader) SupportsPlaceholders() bool { return true }

func (r *TextReader) Options() *plugin.Options {
	o := plugin.NewOptions(r.Name())
	fs := o.Flags()
	fs.StringSliceVarP(&r.Inputs, "input", "i", nil, "path(s) to the text file(s) to read; supports placeholders")
	fs.StringVar(&r.InputList, "input-list", "", "text file listing the actual input files to use")
	return o
}
