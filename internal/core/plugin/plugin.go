// Package plugin defines the contract every pipeline stage implements and the
// pflag-backed option schema used to configure one stage from its slice of
// command-line tokens.
package plugin

import (
	"io"
	"strings"

	"github.com/spf13/pflag"
)

// Plugin is a self-describing, independently configurable pipeline stage.
// Implementations additionally declare capabilities through the optional
// capability.Producer and capability.Consumer interfaces, and shorthand names
// through Aliaser.
type Plugin interface {
	// Name returns the canonical identifier, used on the command line.
	Name() string

	// Description returns a one-line summary for listings and help output.
	Description() string

	// Options returns a fresh option schema bound to this instance's fields.
	// Parsing the schema configures the instance.
	Options() *Options
}

// Aliaser is implemented by plugins that answer to shorthand names in
// addition to their canonical one.
type Aliaser interface {
	Aliases() []string
}

// AliasesOf returns the declared aliases of p, or nil.
func AliasesOf(p Plugin) []string {
	if a, ok := p.(Aliaser); ok {
		return a.Aliases()
	}
	return nil
}

// Options is the option schema for a single plugin instance. It wraps a
// pflag.FlagSet so that parsing never terminates the process and unknown
// tokens are handed back to the caller instead of being swallowed.
type Options struct {
	fs   *pflag.FlagSet
	help bool
}

// NewOptions creates an option schema for the named plugin. The conventional
// -h/--help flag is always present and short-circuits validation when set.
func NewOptions(name string) *Options {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	o := &Options{fs: fs}
	fs.BoolVarP(&o.help, "help", "h", false, "show help for "+name)
	return o
}

// Flags exposes the underlying flag set so plugins can bind their fields.
func (o *Options) Flags() *pflag.FlagSet {
	return o.fs
}

// HelpRequested reports whether the help flag was seen during Parse.
func (o *Options) HelpRequested() bool {
	return o.help
}

// Usage returns the rendered flag usage block.
func (o *Options) Usage() string {
	return o.fs.FlagUsages()
}

// Parse consumes args into the bound fields and returns the tokens it could
// not claim: flags the schema does not define (together with their detached
// values) and stray positionals. Parse itself only fails on malformed input,
// such as a bad value for a typed flag; unknown tokens are data, the caller
// decides whether they are an error.
func (o *Options) Parse(args []string) (leftover []string, err error) {
	leftover = o.unknownTokens(args)
	if err := o.fs.Parse(args); err != nil {
		return leftover, err
	}
	leftover = append(leftover, o.fs.Args()...)
	return leftover, nil
}

// unknownTokens mirrors pflag's whitelist skipping: an undefined --flag (and
// its detached value, when the value does not itself look like a flag) or an
// undefined shorthand is a leftover.
func (o *Options) unknownTokens(args []string) []string {
	var unknown []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return unknown
		case strings.HasPrefix(arg, "--"):
			name, _, hasValue := strings.Cut(arg[2:], "=")
			if o.fs.Lookup(name) != nil {
				continue
			}
			unknown = append(unknown, arg)
			if !hasValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
				unknown = append(unknown, args[i])
			}
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			shorthand := arg[1:2]
			if o.fs.ShorthandLookup(shorthand) != nil {
				continue
			}
			unknown = append(unknown, arg)
			if !strings.Contains(arg, "=") && len(arg) == 2 &&
				i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
				unknown = append(unknown, args[i])
			}
		}
	}
	return unknown
}
