// Package capability models the typed producer/consumer contract between
// pipeline stages. Stages declare the data types they emit and accept as
// tags; the compatibility checker intersects those declarations before a
// pipeline is allowed to run.
package capability

import (
	"sort"
	"strings"
)

// Tag identifies a data type flowing between pipeline stages.
type Tag string

// Any is the reserved wildcard tag. A stage producing or accepting Any is
// compatible with every counterpart.
const Any Tag = "any"

// Producer is implemented by plugins that emit data into the pipeline.
type Producer interface {
	// Produces returns the tags of the data types this plugin emits.
	Produces() []Tag
}

// Consumer is implemented by plugins that receive data from the pipeline.
type Consumer interface {
	// Accepts returns the tags of the data types this plugin can receive.
	Accepts() []Tag
}

// Set is an unordered collection of tags.
type Set map[Tag]struct{}

// NewSet builds a Set from the given tags.
func NewSet(tags ...Tag) Set {
	s := make(Set, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

// Contains reports whether the set holds the given tag.
func (s Set) Contains(t Tag) bool {
	_, ok := s[t]
	return ok
}

// ContainsAny reports whether the set holds the wildcard tag.
func (s Set) ContainsAny() bool {
	return s.Contains(Any)
}

// Sorted returns the tags in lexical order for stable diagnostics.
func (s Set) Sorted() []Tag {
	tags := make([]Tag, 0, len(s))
	for t := range s {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// String renders the set as a comma-separated sorted list.
func (s Set) String() string {
	tags := s.Sorted()
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

// Hierarchy records optional parent links between tags, allowing a consumer
// that accepts a broad tag (e.g. "text") to also accept data produced under a
// narrower one (e.g. "text/line"). Links are registered once at startup and
// read concurrently afterwards.
type Hierarchy struct {
	parents map[Tag]Tag
}

// NewHierarchy returns an empty hierarchy.
func NewHierarchy() *Hierarchy {
	return &Hierarchy{parents: make(map[Tag]Tag)}
}

// Link declares parent as the direct supertype of child. Re-linking a child
// to a different parent replaces the previous link.
func (h *Hierarchy) Link(child, parent Tag) {
	h.parents[child] = parent
}

// IsA reports whether child equals ancestor or descends from it through
// parent links. A nil hierarchy only matches equal tags.
func (h *Hierarchy) IsA(child, ancestor Tag) bool {
	if child == ancestor {
		return true
	}
	if h == nil {
		return false
	}
	seen := make(map[Tag]struct{})
	for cur := child; ; {
		parent, ok := h.parents[cur]
		if !ok {
			return false
		}
		if parent == ancestor {
			return true
		}
		if _, cycle := seen[parent]; cycle {
			return false
		}
		seen[parent] = struct{}{}
		cur = parent
	}
}

// ProducedBy returns the declared producer tags of v, or nil if v does not
// declare producer capability.
func ProducedBy(v any) []Tag {
	if p, ok := v.(Producer); ok {
		return p.Produces()
	}
	return nil
}

// AcceptedBy returns the declared consumer tags of v, or nil if v does not
// declare consumer capability.
func AcceptedBy(v any) []Tag {
	if c, ok := v.(Consumer); ok {
		return c.Accepts()
	}
	return nil
}
