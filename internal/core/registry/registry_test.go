package registry

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pipekit.dev/cli/internal/core/plugin"
)

// fakePlugin is a minimal plugin for registry testing.
type fakePlugin struct {
	name    string
	aliases []string
}

func (f *fakePlugin) Name() string             { return f.name }
func (f *fakePlugin) Description() string      { return "fake " + f.name }
func (f *fakePlugin) Aliases() []string        { return f.aliases }
func (f *fakePlugin) Options() *plugin.Options { return plugin.NewOptions(f.name) }

func describe(typeID, name string, aliases ...string) plugin.Descriptor {
	return plugin.Describe(typeID, func() plugin.Plugin {
		return &fakePlugin{name: name, aliases: aliases}
	})
}

func TestRegistry_RegisterAndResolve_Exact(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(describe("test.Other", "other")))
	require.NoError(t, reg.Register(describe("test.SomePlugin", "some-plugin")))

	desc, err := reg.Resolve("some-plugin", false)
	require.NoError(t, err)
	assert.Equal(t, "some-plugin", desc.Name)
	assert.Equal(t, 2, reg.Len())
}

func TestRegistry_Resolve_NotFound(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(describe("test.Other", "other")))

	_, err := reg.Resolve("missing", false)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.Token)
	assert.Contains(t, notFound.Known, "other")
}

func TestRegistry_Register_SameTypeIsNoOp(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(describe("test.Other", "other")))
	require.NoError(t, reg.Register(describe("test.Other", "other")))

	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_Register_ConflictOnDifferentType(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(describe("test.Other", "other")))

	err := reg.Register(describe("test.Impostor", "other"))

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "other", conflict.Name)
	assert.Equal(t, "test.Other", conflict.ExistingTypeID)
	assert.Equal(t, "test.Impostor", conflict.NewTypeID)
}

func TestRegistry_Register_AliasConflicts(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(describe("test.Reader", "reader", "rd")))

	t.Run("AliasVsAlias", func(t *testing.T) {
		err := reg.Register(describe("test.Rewriter", "rewriter", "rd"))
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "rd", conflict.Name)
	})

	t.Run("NameVsAlias", func(t *testing.T) {
		err := reg.Register(describe("test.Rd", "rd"))
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
	})
}

func TestRegistry_Resolve_Alias(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(describe("test.Reader", "text-reader", "read-text")))

	desc, err := reg.Resolve("read-text", false)
	require.NoError(t, err)
	assert.Equal(t, "text-reader", desc.Name)

	assert.True(t, reg.IsAlias("read-text"))
	assert.False(t, reg.IsAlias("text-reader"))
}

func TestRegistry_Resolve_Partial(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(describe("test.Reader", "text-reader")))
	require.NoError(t, reg.Register(describe("test.Writer", "text-writer")))
	require.NoError(t, reg.Register(describe("test.Counter", "count-writer")))

	t.Run("UniquePrefixResolves", func(t *testing.T) {
		desc, err := reg.Resolve("count", true)
		require.NoError(t, err)
		assert.Equal(t, "count-writer", desc.Name)
	})

	t.Run("AmbiguousPrefix", func(t *testing.T) {
		_, err := reg.Resolve("text-", true)
		var ambiguous *AmbiguousError
		require.ErrorAs(t, err, &ambiguous)
		assert.Equal(t, "text-", ambiguous.Token)
		assert.Len(t, ambiguous.Matches, 2)
	})

	t.Run("ExactMatchBeatsPrefix", func(t *testing.T) {
		require.NoError(t, reg.Register(describe("test.Text", "text")))
		_, err := reg.Resolve("text", true)
		require.NoError(t, err)
	})

	t.Run("DisabledPartialIsNotFound", func(t *testing.T) {
		_, err := reg.Resolve("count", false)
		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("PrefixOfNameAndAliasOfSamePluginIsUnique", func(t *testing.T) {
		fresh := New()
		require.NoError(t, fresh.Register(describe("test.Dup", "dup-stage", "dup-alias")))
		desc, err := fresh.Resolve("dup", true)
		require.NoError(t, err)
		assert.Equal(t, "dup-stage", desc.Name)
	})
}

func TestRegistry_Excluded(t *testing.T) {
	reg := New("test.Hidden")
	require.NoError(t, reg.Register(describe("test.Hidden", "hidden")))
	require.NoError(t, reg.Register(describe("test.Shown", "shown")))

	assert.Equal(t, 1, reg.Len())
	_, err := reg.Resolve("hidden", false)
	assert.Error(t, err)
}

func TestRegistry_AllNames(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(describe("test.Reader", "reader", "rd")))
	require.NoError(t, reg.Register(describe("test.Writer", "writer")))

	assert.Equal(t, []string{"reader", "writer"}, reg.AllNames(false))
	assert.Equal(t, []string{"rd", "reader", "writer"}, reg.AllNames(true))
}

func TestRegistry_ConcurrentResolve(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(describe("test.Reader", "reader")))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := reg.Resolve("reader", false)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestEnumerateNames_WrapsAtWidth(t *testing.T) {
	names := []string{"delta", "alpha", "charlie", "bravo"}

	out := EnumerateNames(names, "", 20)

	assert.Equal(t, "alpha, bravo, \ncharlie, delta", out)
}

func TestEnumerateNames_Empty(t *testing.T) {
	assert.Equal(t, "", EnumerateNames(nil, "  ", 72))
}

func TestErrors_Messages(t *testing.T) {
	assert.Contains(t, (&NotFoundError{Token: "x"}).Error(), `"x"`)
	assert.Contains(t, (&AmbiguousError{Token: "te", Matches: []string{"b", "a"}}).Error(), "a, b")
	assert.Contains(t, (&ConflictError{Name: "n", ExistingTypeID: "t1", NewTypeID: "t2"}).Error(), "t1")
}

func TestErrors_AsChain(t *testing.T) {
	var err error = &NotFoundError{Token: "x"}
	var target *NotFoundError
	assert.True(t, errors.As(err, &target))
}
