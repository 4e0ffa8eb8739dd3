// Package plugins ships the builtin pipeline stages and the catalog that
// makes them discoverable: a text reader, line filters, and writers that can
// fan records out into ratio-scheduled splits.
package plugins

import (
	"pipekit.dev/cli/internal/core/capability"
	"pipekit.dev/cli/internal/core/discovery"
	"pipekit.dev/cli/internal/core/plugin"
)

// Tags used by the builtin stages. Lines are a narrower form of text, so a
// consumer accepting TagText admits TagLine producers through the hierarchy.
const (
	TagText capability.Tag = "text"
	TagLine capability.Tag = "text/line"
)

// Hierarchy returns the tag hierarchy for the builtin tags.
func Hierarchy() *capability.Hierarchy {
	h := capability.NewHierarchy()
	h.Link(TagLine, TagText)
	return h
}

// A stage's kind follows from the capabilities it declares: readers only
// produce, writers only consume, filters do both.
var (
	KindReader = discovery.Kind{Name: "reader", Is: func(p plugin.Plugin) bool {
		return isProducer(p) && !isConsumer(p)
	}}
	KindFilter = discovery.Kind{Name: "filter", Is: func(p plugin.Plugin) bool {
		return isProducer(p) && isConsumer(p)
	}}
	KindWriter = discovery.Kind{Name: "writer", Is: func(p plugin.Plugin) bool {
		return isConsumer(p) && !isProducer(p)
	}}
)

// Kinds returns all builtin kinds keyed by name.
func Kinds() map[string]discovery.Kind {
	return map[string]discovery.Kind{
		KindReader.Name: KindReader,
		KindFilter.Name: KindFilter,
		KindWriter.Name: KindWriter,
	}
}

func isProducer(p plugin.Plugin) bool {
	_, ok := p.(capability.Producer)
	return ok
}

func isConsumer(p plugin.Plugin) bool {
	_, ok := p.(capability.Consumer)
	return ok
}

// CatalogName is the name of the builtin catalog.
const CatalogName = "builtin"

// Catalog returns the builtin plugin catalog.
func Catalog() *discovery.Catalog {
	return discovery.NewCatalog(CatalogName).
		Add("TextReader", func() plugin.Plugin { return &TextReader{} }).
		Add("LineFilter", func() plugin.Plugin { return &LineFilter{} }).
		Add("PassThrough", func() plugin.Plugin { return &PassThrough{} }).
		Add("TextWriter", func() plugin.Plugin { return &TextWriter{} }).
		Add("CountWriter", func() plugin.Plugin { return &CountWriter{} })
}

// ListClasses is the builtin class lister: every kind scans the builtin
// catalog.
func ListClasses() map[string][]string {
	return map[string][]string{
		KindReader.Name: {CatalogName},
		KindFilter.Name: {CatalogName},
		KindWriter.Name: {CatalogName},
	}
}

// RegisterInto makes the builtin catalog and lister visible to discovery.
func RegisterInto(ix *discovery.Index) {
	ix.AddCatalog(Catalog())
	ix.AddLister(CatalogName, ListClasses)
}
