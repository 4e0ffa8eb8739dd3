// Package placeholder carries the narrow contract to the placeholder
// expansion subsystem. The pipeline core never expands anything itself:
// option values may contain placeholder syntax that downstream code resolves
// after parsing, using whatever Expander the embedding application supplies.
package placeholder

// Expander resolves placeholder syntax in a template. currentInput is the
// input the pipeline is currently processing and may be empty when no input
// is in flight.
type Expander interface {
	Expand(template string, currentInput string) string
}

// Supporter marks a plugin whose option values may contain placeholder
// syntax. Listings use it to tell users which options are expandable.
type Supporter interface {
	SupportsPlaceholders() bool
}

// Supports reports whether v declares placeholder support.
func Supports(v any) bool {
	s, ok := v.(Supporter)
	return ok && s.SupportsPlaceholders()
}

// Noop is the identity Expander used when no expansion subsystem is wired.
type Noop struct{}

// Expand returns the template unchanged.
func (Noop) Expand(template string, _ string) string {
	return template
}
