// Package registry is the name resolution authority for discovered plugins.
// It enforces uniqueness of names and aliases, honors an exclusion list, and
// resolves user-typed tokens exactly or by unique prefix.
package registry

import (
	"sort"
	"strings"
	"sync"

	"pipekit.dev/cli/internal/core/plugin"
)

// Registry maps canonical names and aliases to plugin descriptors. Resolve
// and the read accessors are safe for concurrent use; registration during
// discovery is serialized behind the same lock.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]plugin.Descriptor
	byAlias map[string]string // alias -> canonical name

	// Excluded holds fully-qualified type IDs that are never registered,
	// even when a discovery strategy finds them.
	excluded map[string]struct{}
}

// New returns an empty registry. Type IDs in exclude are silently dropped at
// registration time.
func New(exclude ...string) *Registry {
	excluded := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}
	return &Registry{
		byName:   make(map[string]plugin.Descriptor),
		byAlias:  make(map[string]string),
		excluded: excluded,
	}
}

// Register adds a descriptor. Registering the same underlying type again is a
// no-op; binding a taken name or alias to a different type is a
// *ConflictError. Excluded types are skipped without error.
func (r *Registry) Register(desc plugin.Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, skip := r.excluded[desc.TypeID]; skip {
		return nil
	}

	for _, name := range append([]string{desc.Name}, desc.Aliases...) {
		if existing, err := r.ownerOf(name); err == nil {
			if existing.TypeID == desc.TypeID {
				continue
			}
			return &ConflictError{
				Name:           name,
				ExistingTypeID: existing.TypeID,
				NewTypeID:      desc.TypeID,
			}
		}
	}

	if _, dup := r.byName[desc.Name]; dup {
		// Same type re-registered; alias index is already in place.
		return nil
	}
	r.byName[desc.Name] = desc
	for _, alias := range desc.Aliases {
		r.byAlias[alias] = desc.Name
	}
	return nil
}

// ownerOf returns the descriptor owning name, which may be a canonical name
// or an alias. Callers hold the lock.
func (r *Registry) ownerOf(name string) (plugin.Descriptor, error) {
	if desc, ok := r.byName[name]; ok {
		return desc, nil
	}
	if canonical, ok := r.byAlias[name]; ok {
		return r.byName[canonical], nil
	}
	return plugin.Descriptor{}, &NotFoundError{Token: name}
}

// Resolve maps a user-typed token to a descriptor. Exact matches against
// names and aliases win; when partial is set and no exact match exists, a
// token that is a prefix of exactly one name or alias resolves to it. Zero
// matches yield *NotFoundError, several yield *AmbiguousError.
//
// Partial resolution is off by default at call sites because plugin option
// values are free-form and can collide with name prefixes.
func (r *Registry) Resolve(token string, partial bool) (plugin.Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if desc, err := r.ownerOf(token); err == nil {
		return desc, nil
	}

	if partial {
		matches := map[string]struct{}{}
		var hits []string
		for name := range r.byName {
			if strings.HasPrefix(name, token) {
				matches[name] = struct{}{}
				hits = append(hits, name)
			}
		}
		for alias, canonical := range r.byAlias {
			if strings.HasPrefix(alias, token) {
				if _, seen := matches[canonical]; !seen {
					matches[canonical] = struct{}{}
					hits = append(hits, alias)
				}
			}
		}
		switch len(matches) {
		case 1:
			desc, _ := r.ownerOf(hits[0])
			return desc, nil
		default:
			if len(matches) > 1 {
				sort.Strings(hits)
				return plugin.Descriptor{}, &AmbiguousError{Token: token, Matches: hits}
			}
		}
	}

	return plugin.Descriptor{}, &NotFoundError{Token: token, Known: r.allNamesLocked(true)}
}

// AllNames returns the registered canonical names, plus aliases when
// includeAliases is set, in sorted order.
func (r *Registry) AllNames(includeAliases bool) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.allNamesLocked(includeAliases)
}

func (r *Registry) allNamesLocked(includeAliases bool) []string {
	names := make([]string, 0, len(r.byName)+len(r.byAlias))
	for name := range r.byName {
		names = append(names, name)
	}
	if includeAliases {
		for alias := range r.byAlias {
			names = append(names, alias)
		}
	}
	sort.Strings(names)
	return names
}

// IsAlias reports whether name is registered as an alias rather than a
// canonical name.
func (r *Registry) IsAlias(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byAlias[name]
	return ok
}

// Len returns the number of registered plugin types (aliases not counted).
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}

// Descriptors returns all registered descriptors sorted by canonical name.
func (r *Registry) Descriptors() []plugin.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descs := make([]plugin.Descriptor, 0, len(r.byName))
	for _, desc := range r.byName {
		descs = append(descs, desc)
	}
	sort.Slice(descs, func(i, j int) bool { return descs[i].Name < descs[j].Name })
	return descs
}
