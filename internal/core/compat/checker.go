// Package compat statically verifies that an ordered sequence of plugin
// instances forms a type-consistent producer/consumer chain before anything
// runs.
package compat

import (
	"fmt"

	"pipekit.dev/cli/internal/core/capability"
	"pipekit.dev/cli/internal/core/plugin"
)

// Role names the side of an adjacency a stage failed to fill.
type Role string

const (
	RoleProducer Role = "producer"
	RoleConsumer Role = "consumer"
)

// CapabilityMissingError reports a stage that lacks the capability its
// position requires: every non-terminal stage must produce, every non-initial
// stage must accept.
type CapabilityMissingError struct {
	Stage int
	Name  string
	Role  Role
}

func (e *CapabilityMissingError) Error() string {
	return fmt.Sprintf("stage %d (%s) does not declare %s capability",
		e.Stage, e.Name, e.Role)
}

// TypeMismatchError reports an adjacent pair whose produced and accepted type
// sets do not intersect.
type TypeMismatchError struct {
	ProducerStage int
	ProducerName  string
	Produced      capability.Set
	ConsumerStage int
	ConsumerName  string
	Accepted      capability.Set
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("stage %d (%s) produces [%s] but stage %d (%s) only accepts [%s]",
		e.ProducerStage, e.ProducerName, e.Produced,
		e.ConsumerStage, e.ConsumerName, e.Accepted)
}

// Check verifies every adjacent pair of stages. A pair is compatible when the
// produced and accepted sets intersect; the wildcard tag on either side makes
// the pair trivially compatible, and a produced tag descending (via the
// hierarchy) from an accepted tag counts as intersection, so general-purpose
// consumers accepting a broad tag admit narrower producers. A nil hierarchy
// restricts the check to exact tags. A pipeline with fewer than two stages is
// trivially compatible.
func Check(stages []plugin.Plugin, hierarchy *capability.Hierarchy) error {
	for i := 0; i+1 < len(stages); i++ {
		left, right := stages[i], stages[i+1]

		produced := capability.NewSet(capability.ProducedBy(left)...)
		if len(produced) == 0 {
			return &CapabilityMissingError{Stage: i, Name: left.Name(), Role: RoleProducer}
		}
		accepted := capability.NewSet(capability.AcceptedBy(right)...)
		if len(accepted) == 0 {
			return &CapabilityMissingError{Stage: i + 1, Name: right.Name(), Role: RoleConsumer}
		}

		if !compatible(produced, accepted, hierarchy) {
			return &TypeMismatchError{
				ProducerStage: i,
				ProducerName:  left.Name(),
				Produced:      produced,
				ConsumerStage: i + 1,
				ConsumerName:  right.Name(),
				Accepted:      accepted,
			}
		}
	}
	return nil
}

func compatible(produced, accepted capability.Set, hierarchy *capability.Hierarchy) bool {
	if produced.ContainsAny() || accepted.ContainsAny() {
		return true
	}
	for p := range produced {
		for a := range accepted {
			if hierarchy.IsA(p, a) {
				return true
			}
		}
	}
	return false
}
