package compat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pipekit.dev/cli/internal/core/capability"
	"pipekit.dev/cli/internal/core/plugin"
)

// stage declares capabilities through non-nil produces/accepts slices.
type stage struct {
	name     string
	produces []capability.Tag
	accepts  []capability.Tag
}

func (s *stage) Name() string             { return s.name }
func (s *stage) Description() string      { return "test stage " + s.name }
func (s *stage) Options() *plugin.Options { return plugin.NewOptions(s.name) }

func (s *stage) Produces() []capability.Tag { return s.produces }
func (s *stage) Accepts() []capability.Tag  { return s.accepts }

func TestCheck(t *testing.T) {
	t.Run("MatchingChainPasses", func(t *testing.T) {
		err := Check([]plugin.Plugin{
			&stage{name: "reader", produces: []capability.Tag{"record"}},
			&stage{name: "filter", produces: []capability.Tag{capability.Any},
				accepts: []capability.Tag{"record"}},
			&stage{name: "writer", accepts: []capability.Tag{"record"}},
		}, nil)
		assert.NoError(t, err)
	})

	t.Run("WildcardOnEitherSidePasses", func(t *testing.T) {
		err := Check([]plugin.Plugin{
			&stage{name: "reader", produces: []capability.Tag{"record"}},
			&stage{name: "sink", accepts: []capability.Tag{capability.Any}},
		}, nil)
		assert.NoError(t, err)
	})

	t.Run("DisjointSetsFailNamingBothStages", func(t *testing.T) {
		err := Check([]plugin.Plugin{
			&stage{name: "reader", produces: []capability.Tag{"record"}},
			&stage{name: "filter", produces: []capability.Tag{"image"},
				accepts: []capability.Tag{"record"}},
			&stage{name: "writer", accepts: []capability.Tag{"record"}},
		}, nil)

		var mismatch *TypeMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, 1, mismatch.ProducerStage)
		assert.Equal(t, "filter", mismatch.ProducerName)
		assert.Equal(t, 2, mismatch.ConsumerStage)
		assert.Equal(t, "writer", mismatch.ConsumerName)
		assert.Contains(t, err.Error(), "filter")
		assert.Contains(t, err.Error(), "writer")
	})

	t.Run("NonTerminalStageMustProduce", func(t *testing.T) {
		err := Check([]plugin.Plugin{
			&stage{name: "sink", accepts: []capability.Tag{"record"}},
			&stage{name: "writer", accepts: []capability.Tag{"record"}},
		}, nil)

		var missing *CapabilityMissingError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, 0, missing.Stage)
		assert.Equal(t, RoleProducer, missing.Role)
	})

	t.Run("NonInitialStageMustAccept", func(t *testing.T) {
		err := Check([]plugin.Plugin{
			&stage{name: "reader", produces: []capability.Tag{"record"}},
			&stage{name: "source", produces: []capability.Tag{"record"}},
		}, nil)

		var missing *CapabilityMissingError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, 1, missing.Stage)
		assert.Equal(t, RoleConsumer, missing.Role)
	})

	t.Run("HierarchyAdmitsNarrowerProducer", func(t *testing.T) {
		h := capability.NewHierarchy()
		h.Link("text/line", "text")

		stages := []plugin.Plugin{
			&stage{name: "reader", produces: []capability.Tag{"text/line"}},
			&stage{name: "writer", accepts: []capability.Tag{"text"}},
		}

		assert.NoError(t, Check(stages, h))

		// Without the hierarchy only exact tags intersect.
		var mismatch *TypeMismatchError
		require.ErrorAs(t, Check(stages, nil), &mismatch)
	})

	t.Run("BroadeningIsNotSymmetric", func(t *testing.T) {
		h := capability.NewHierarchy()
		h.Link("text/line", "text")

		err := Check([]plugin.Plugin{
			&stage{name: "reader", produces: []capability.Tag{"text"}},
			&stage{name: "writer", accepts: []capability.Tag{"text/line"}},
		}, h)

		var mismatch *TypeMismatchError
		require.ErrorAs(t, err, &mismatch)
	})

	t.Run("ShortPipelinesAreTriviallyCompatible", func(t *testing.T) {
		assert.NoError(t, Check(nil, nil))
		assert.NoError(t, Check([]plugin.Plugin{
			&stage{name: "lonely", accepts: []capability.Tag{"record"}},
		}, nil))
	})
}
