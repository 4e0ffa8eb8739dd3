package plugin

import (
	"pipekit.dev/cli/internal/core/capability"
)

// Factory creates a fresh, unconfigured instance of a plugin type. Every
// pipeline stage gets its own instance so per-stage options never bleed
// between stages.
type Factory func() Plugin

// Descriptor is the registry's metadata record for one plugin type: its
// canonical name, declared aliases, capability snapshot, and the factory that
// materializes configured instances.
type Descriptor struct {
	// Name is the canonical identifier, unique within a registry.
	Name string

	// Aliases are optional shorthand identifiers, unique alongside names.
	Aliases []string

	// TypeID is the fully-qualified type identifier ("catalog.TypeName").
	// Registering the same TypeID twice is a no-op; registering a different
	// TypeID under a taken name is a conflict.
	TypeID string

	// Description is the plugin's one-line summary.
	Description string

	// Produced and Accepted are the capability declarations sampled from a
	// prototype instance. Empty means the capability is not declared.
	Produced capability.Set
	Accepted capability.Set

	factory Factory
}

// Describe builds a descriptor by instantiating a prototype from the factory
// and sampling its name, aliases, and capability declarations.
func Describe(typeID string, factory Factory) Descriptor {
	proto := factory()
	return Descriptor{
		Name:        proto.Name(),
		Aliases:     AliasesOf(proto),
		TypeID:      typeID,
		Description: proto.Description(),
		Produced:    capability.NewSet(capability.ProducedBy(proto)...),
		Accepted:    capability.NewSet(capability.AcceptedBy(proto)...),
		factory:     factory,
	}
}

// New returns a fresh unconfigured instance of the described plugin type.
func (d Descriptor) New() Plugin {
	return d.factory()
}
