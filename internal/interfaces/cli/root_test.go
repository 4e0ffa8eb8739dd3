package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pipekit.dev/cli/internal/core/registry"
)

func TestCheckCommand(t *testing.T) {
	t.Run("CompatiblePipelinePasses", func(t *testing.T) {
		container := NewContainer(zerolog.Nop())
		t.Cleanup(container.Close)

		cmd := NewRootCommand(container)
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"check", "text-reader -i in.txt line-filter -p warn text-writer -o out.txt"})

		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "OK")
		assert.Contains(t, out.String(), "text-reader -> line-filter -> text-writer")
	})

	t.Run("IncompatiblePipelineFails", func(t *testing.T) {
		container := NewContainer(zerolog.Nop())
		t.Cleanup(container.Close)

		cmd := NewRootCommand(container)
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"check", "text-writer -o out.txt text-reader -i in.txt"})

		require.Error(t, cmd.Execute())
		assert.Contains(t, out.String(), "FAIL")
	})

	t.Run("UnknownArgumentsCollected", func(t *testing.T) {
		container := NewContainer(zerolog.Nop())
		t.Cleanup(container.Close)

		cmd := NewRootCommand(container)
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"check", "--unknown-args", "collect",
			"text-reader -i in.txt --mystery text-writer -o out.txt"})

		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "unconsumed arguments: --mystery")
	})

	t.Run("BadPolicyRejected", func(t *testing.T) {
		container := NewContainer(zerolog.Nop())
		t.Cleanup(container.Close)

		cmd := NewRootCommand(container)
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"check", "--unknown-args", "explode", "text-reader"})

		err := cmd.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown-args must be")
	})
}

func TestPluginsCommands(t *testing.T) {
	t.Run("ListShowsAllBuiltins", func(t *testing.T) {
		container := NewContainer(zerolog.Nop())
		t.Cleanup(container.Close)

		cmd := NewRootCommand(container)
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"plugins", "list"})

		require.NoError(t, cmd.Execute())
		for _, name := range []string{"text-reader", "line-filter", "pass-through", "text-writer", "count-writer"} {
			assert.Contains(t, out.String(), name)
		}
		assert.Contains(t, out.String(), "5 plugin(s)")
	})

	t.Run("InfoShowsCapabilitiesAndOptions", func(t *testing.T) {
		container := NewContainer(zerolog.Nop())
		t.Cleanup(container.Close)

		cmd := NewRootCommand(container)
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"plugins", "info", "text-reader"})

		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "read-text")
		assert.Contains(t, out.String(), "text/line")
		assert.Contains(t, out.String(), "--input")
	})

	t.Run("InfoUnknownNameFails", func(t *testing.T) {
		container := NewContainer(zerolog.Nop())
		t.Cleanup(container.Close)

		cmd := NewRootCommand(container)
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"plugins", "info", "no-such-plugin"})

		err := cmd.Execute()
		var notFound *registry.NotFoundError
		require.ErrorAs(t, err, &notFound)
	})
}

func TestSplitCommand(t *testing.T) {
	container := NewContainer(zerolog.Nop())
	t.Cleanup(container.Close)

	cmd := NewRootCommand(container)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("a\nb\nc\nd\n"))
	cmd.SetArgs([]string{"split", "--ratios", "50,50", "--names", "train,test"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "train (2)")
	assert.Contains(t, out.String(), "test (2)")
	assert.Contains(t, out.String(), "a\nb")
	assert.Contains(t, out.String(), "c\nd")
}

func TestContainer_ManifestRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	manifestYAML := "kinds:\n  reader:\n    - builtin\n  filter:\n    - builtin\n  writer:\n    - builtin\nexcluded_classes:\n  - builtin.CountWriter\n"
	require.NoError(t, os.WriteFile(path, []byte(manifestYAML), 0o644))

	container := NewContainer(zerolog.Nop())
	t.Cleanup(container.Close)
	require.NoError(t, container.UseManifest(path, false))

	reg, err := container.Registry()
	require.NoError(t, err)

	_, err = reg.Resolve("text-reader", false)
	assert.NoError(t, err)

	_, err = reg.Resolve("count-writer", false)
	var notFound *registry.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
