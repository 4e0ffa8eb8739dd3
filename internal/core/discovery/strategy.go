package discovery

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"pipekit.dev/cli/internal/core/plugin"
	"pipekit.dev/cli/internal/core/registry"
)

// Strategy is one way of finding plugin descriptors in an index. All
// strategies funnel into the same registry via Populate.
type Strategy interface {
	// Discover returns the descriptors found in the index. An unresolvable
	// source is fatal to the pass; the caller keeps its previous registry.
	Discover(ix *Index) ([]plugin.Descriptor, error)
}

// Populate runs each strategy against the index and registers everything it
// finds. On error the registry may hold a partial pass; callers wanting
// atomicity populate a fresh registry and swap it in only on success.
func Populate(reg *registry.Registry, ix *Index, strategies ...Strategy) error {
	for _, s := range strategies {
		descs, err := s.Discover(ix)
		if err != nil {
			return fmt.Errorf("discovery: %w", err)
		}
		for _, desc := range descs {
			if err := reg.Register(desc); err != nil {
				return fmt.Errorf("discovery: %w", err)
			}
		}
	}
	return nil
}

// Explicit is the table-driven strategy: a caller-supplied mapping from
// plugin name to fully-qualified type ID. No scanning; unresolvable type IDs
// fail fast.
type Explicit struct {
	// Plugins maps canonical plugin names to type IDs. The table's name wins
	// over the name the plugin itself reports.
	Plugins map[string]string
}

// Discover implements Strategy.
func (e Explicit) Discover(ix *Index) ([]plugin.Descriptor, error) {
	names := make([]string, 0, len(e.Plugins))
	for name := range e.Plugins {
		names = append(names, name)
	}
	sort.Strings(names)

	descs := make([]plugin.Descriptor, 0, len(names))
	for _, name := range names {
		typeID := e.Plugins[name]
		factory, err := ix.ResolveType(typeID)
		if err != nil {
			return nil, fmt.Errorf("explicit plugin %q: %w", name, err)
		}
		desc := plugin.Describe(typeID, factory)
		desc.Name = name
		descs = append(descs, desc)
	}
	return descs, nil
}

// Dynamic is the scanning strategy: walk every factory of every selected
// catalog and keep the instances belonging to a kind. Slower than an explicit
// table, but only needs the kind and the catalog list.
type Dynamic struct {
	Kind            Kind
	Catalogs        Sources
	ExcludedClasses []string

	// Cache, when set, memoizes scan results per kind and source
	// fingerprint.
	Cache  *Cache
	Logger zerolog.Logger
}

// Discover implements Strategy.
func (d Dynamic) Discover(ix *Index) ([]plugin.Descriptor, error) {
	catalogs := d.Catalogs.Resolve()
	cacheKey := "dynamic|" + d.Kind.Name + "|" + d.Catalogs.Fingerprint()

	if ids, hit := d.Cache.Get(cacheKey); hit {
		d.Logger.Debug().Str("kind", d.Kind.Name).Int("types", len(ids)).Msg("discovery scan cache hit")
		return describeAll(ix, ids, d.ExcludedClasses)
	}

	ids, err := scanCatalogs(ix, d.Kind, catalogs, d.Logger)
	if err != nil {
		return nil, err
	}
	d.Cache.Put(cacheKey, ids)
	return describeAll(ix, ids, d.ExcludedClasses)
}

// ClassLister is the indirection strategy: selected lister functions report
// which catalogs to scan per kind. Excluded listers are never invoked;
// excluded classes are dropped after discovery regardless of which lister
// found them.
type ClassLister struct {
	Kind            Kind
	Listers         Sources
	ExcludedListers []string
	ExcludedClasses []string

	Cache  *Cache
	Logger zerolog.Logger
}

// Discover implements Strategy.
func (cl ClassLister) Discover(ix *Index) ([]plugin.Descriptor, error) {
	listerNames := cl.Listers.Resolve()
	excluded := make(map[string]struct{}, len(cl.ExcludedListers))
	for _, name := range cl.ExcludedListers {
		excluded[name] = struct{}{}
	}

	cacheKey := "lister|" + cl.Kind.Name + "|" + cl.Listers.Fingerprint() +
		"|-" + strings.Join(cl.ExcludedListers, ",")
	if ids, hit := cl.Cache.Get(cacheKey); hit {
		cl.Logger.Debug().Str("kind", cl.Kind.Name).Int("types", len(ids)).Msg("discovery scan cache hit")
		return describeAll(ix, ids, cl.ExcludedClasses)
	}

	var all []string
	seen := make(map[string]struct{})
	for _, name := range listerNames {
		if _, skip := excluded[name]; skip {
			cl.Logger.Debug().Str("lister", name).Msg("lister excluded, not invoking")
			continue
		}
		fn, ok := ix.Lister(name)
		if !ok {
			return nil, fmt.Errorf("class lister %q not found", name)
		}
		catalogs := fn()[cl.Kind.Name]
		ids, err := scanCatalogs(ix, cl.Kind, catalogs, cl.Logger)
		if err != nil {
			return nil, fmt.Errorf("class lister %q: %w", name, err)
		}
		for _, id := range ids {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			all = append(all, id)
		}
	}

	cl.Cache.Put(cacheKey, all)
	return describeAll(ix, all, cl.ExcludedClasses)
}

// scanCatalogs walks each named catalog in order and returns the type IDs
// whose instances satisfy the kind.
func scanCatalogs(ix *Index, kind Kind, catalogs []string, logger zerolog.Logger) ([]string, error) {
	var ids []string
	for _, name := range catalogs {
		c, ok := ix.Catalog(name)
		if !ok {
			return nil, fmt.Errorf("catalog %q not found", name)
		}
		for _, typeName := range c.order {
			inst := c.byID[typeName]()
			if kind.Is != nil && !kind.Is(inst) {
				continue
			}
			ids = append(ids, name+"."+typeName)
		}
		logger.Debug().Str("kind", kind.Name).Str("catalog", name).Msg("catalog scanned")
	}
	return ids, nil
}

// describeAll materializes descriptors for the given type IDs, dropping
// excluded classes.
func describeAll(ix *Index, typeIDs, excludedClasses []string) ([]plugin.Descriptor, error) {
	excluded := make(map[string]struct{}, len(excludedClasses))
	for _, id := range excludedClasses {
		excluded[id] = struct{}{}
	}

	descs := make([]plugin.Descriptor, 0, len(typeIDs))
	for _, id := range typeIDs {
		if _, skip := excluded[id]; skip {
			continue
		}
		factory, err := ix.ResolveType(id)
		if err != nil {
			return nil, err
		}
		descs = append(descs, plugin.Describe(id, factory))
	}
	return descs, nil
}
