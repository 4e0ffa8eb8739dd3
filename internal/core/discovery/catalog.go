// Package discovery populates a plugin registry from one of several
// interchangeable strategies: an explicit name-to-type table, a kind-driven
// scan over catalogs, or class-lister functions mapping kinds to catalogs.
//
// A Catalog is an explicit table of plugin factories registered at build
// time: the reflection-free stand-in for "module scanning". The Index is the
// universe of catalogs and listers a discovery pass can see.
package discovery

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"pipekit.dev/cli/internal/core/plugin"
)

// Kind names a family of plugins ("reader", "filter", ...) together with the
// predicate an instance must satisfy to belong to it. It replaces the
// superclass check of a reflective scan.
type Kind struct {
	Name string
	Is   func(plugin.Plugin) bool
}

// Catalog is a named, ordered table of plugin factories.
type Catalog struct {
	name  string
	order []string
	byID  map[string]plugin.Factory
}

// NewCatalog returns an empty catalog with the given name.
func NewCatalog(name string) *Catalog {
	return &Catalog{name: name, byID: make(map[string]plugin.Factory)}
}

// Add registers a factory under a type name and returns the catalog for
// chaining. Adding a taken type name panics: catalogs are assembled in
// init-time code where a duplicate is a programming error.
func (c *Catalog) Add(typeName string, factory plugin.Factory) *Catalog {
	if _, dup := c.byID[typeName]; dup {
		panic(fmt.Sprintf("catalog %s: type %q already added", c.name, typeName))
	}
	c.byID[typeName] = factory
	c.order = append(c.order, typeName)
	return c
}

// Name returns the catalog name.
func (c *Catalog) Name() string {
	return c.name
}

// TypeIDs returns the fully-qualified type IDs in registration order.
func (c *Catalog) TypeIDs() []string {
	ids := make([]string, len(c.order))
	for i, typeName := range c.order {
		ids[i] = c.name + "." + typeName
	}
	return ids
}

// Lister maps kind names to the catalogs that should be scanned for them.
// Listers let a plugin package advertise its catalogs without the embedding
// application enumerating them.
type Lister func() map[string][]string

// Index is the set of catalogs and listers visible to a discovery pass.
// Reads are concurrent-safe; additions happen during program wiring.
type Index struct {
	mu       sync.RWMutex
	catalogs map[string]*Catalog
	listers  map[string]Lister
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		catalogs: make(map[string]*Catalog),
		listers:  make(map[string]Lister),
	}
}

// AddCatalog makes a catalog visible to discovery. Re-adding a name replaces
// the previous catalog.
func (ix *Index) AddCatalog(c *Catalog) *Index {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.catalogs[c.Name()] = c
	return ix
}

// AddLister makes a named lister visible to discovery.
func (ix *Index) AddLister(name string, fn Lister) *Index {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.listers[name] = fn
	return ix
}

// Catalog returns the named catalog.
func (ix *Index) Catalog(name string) (*Catalog, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	c, ok := ix.catalogs[name]
	return c, ok
}

// Lister returns the named lister.
func (ix *Index) Lister(name string) (Lister, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	fn, ok := ix.listers[name]
	return fn, ok
}

// CatalogNames returns the visible catalog names in sorted order.
func (ix *Index) CatalogNames() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	names := make([]string, 0, len(ix.catalogs))
	for name := range ix.catalogs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveType looks up a fully-qualified type ID ("catalog.TypeName") and
// returns its factory. Unresolvable IDs fail with a descriptive error so the
// explicit strategy can fail fast.
func (ix *Index) ResolveType(typeID string) (plugin.Factory, error) {
	catalogName, typeName, ok := strings.Cut(typeID, ".")
	if !ok {
		return nil, fmt.Errorf("type ID %q: want format catalog.TypeName", typeID)
	}
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	c, found := ix.catalogs[catalogName]
	if !found {
		return nil, fmt.Errorf("type ID %q: no catalog named %q", typeID, catalogName)
	}
	factory, found := c.byID[typeName]
	if !found {
		return nil, fmt.Errorf("type ID %q: catalog %q has no type %q", typeID, catalogName, typeName)
	}
	return factory, nil
}
