// Package cli wires the pk command tree: plugin listing and inspection,
// pipeline compatibility checking, ratio splitting, and the interactive
// plugin browser.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pipekit.dev/cli/internal/core/capability"
	"pipekit.dev/cli/internal/core/discovery"
	"pipekit.dev/cli/internal/core/registry"
	"pipekit.dev/cli/internal/infrastructure/logging"
	"pipekit.dev/cli/internal/infrastructure/manifest"
	"pipekit.dev/cli/internal/plugins"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// EnvClassListers names the environment variable holding extra class lister
// names, comma-separated; the DEFAULT token expands to the builtin lister.
const EnvClassListers = "PK_CLASS_LISTERS"

// Container holds the dependencies shared by all commands.
type Container struct {
	Logger    zerolog.Logger
	Index     *discovery.Index
	Cache     *discovery.Cache
	Hierarchy *capability.Hierarchy

	holder   *manifest.Holder
	registry *registry.Registry
}

// NewContainer wires the default dependency set: the builtin catalog and
// lister, a scan cache, and the builtin tag hierarchy.
func NewContainer(logger zerolog.Logger) *Container {
	ix := discovery.NewIndex()
	plugins.RegisterInto(ix)
	return &Container{
		Logger:    logger,
		Index:     ix,
		Cache:     discovery.NewCache(32, 5*time.Minute),
		Hierarchy: plugins.Hierarchy(),
	}
}

// Registry returns the current registry snapshot, building one on first use.
func (c *Container) Registry() (*registry.Registry, error) {
	if c.holder != nil {
		return c.holder.Registry(), nil
	}
	if c.registry != nil {
		return c.registry, nil
	}
	reg, err := c.buildRegistry(nil)
	if err != nil {
		return nil, err
	}
	c.registry = reg
	return reg, nil
}

// UseManifest attaches a manifest file as an additional discovery source and
// switches registry access to the watched holder.
func (c *Container) UseManifest(path string, watch bool) error {
	holder, err := manifest.NewHolder(path, func(m *manifest.Manifest) (*registry.Registry, error) {
		c.Index.AddLister("manifest", m.Lister())
		// A manifest is a new discovery source; drop memoized scans so it
		// cannot be shadowed by an earlier pass.
		c.Cache.Purge()
		return c.buildRegistry(m)
	}, c.Logger)
	if err != nil {
		return err
	}
	if watch {
		if err := holder.WatchFile(); err != nil {
			return err
		}
	}
	c.holder = holder
	return nil
}

// Close releases background resources.
func (c *Container) Close() {
	if c.holder != nil {
		c.holder.Stop()
	}
}

// buildRegistry populates a fresh registry from the class lister strategy,
// one pass per builtin kind. The manifest, when present, contributes its own
// lister and exclusion lists.
func (c *Container) buildRegistry(m *manifest.Manifest) (*registry.Registry, error) {
	listers := discovery.Sources{
		Defaults: []string{plugins.CatalogName},
		EnvVar:   EnvClassListers,
	}
	var excludedClasses, excludedListers []string
	if m != nil {
		listers.Custom = []string{discovery.DefaultToken, "manifest"}
		excludedClasses = m.ExcludedClasses
		excludedListers = m.ExcludedListers
	}

	var strategies []discovery.Strategy
	for _, kind := range plugins.Kinds() {
		strategies = append(strategies, discovery.ClassLister{
			Kind:            kind,
			Listers:         listers,
			ExcludedListers: excludedListers,
			ExcludedClasses: excludedClasses,
			Cache:           c.Cache,
			Logger:          c.Logger,
		})
	}

	reg := registry.New(excludedClasses...)
	if err := discovery.Populate(reg, c.Index, strategies...); err != nil {
		return nil, err
	}
	return reg, nil
}

// NewRootCommand builds the pk command tree.
func NewRootCommand(container *Container) *cobra.Command {
	var (
		logLevel     string
		manifestPath string
		watch        bool
	)

	rootCmd := &cobra.Command{
		Use:   "pk",
		Short: "pipekit - plugin pipeline construction and checking",
		Long: `pipekit discovers pipeline plugins, splits a flat command line into
per-plugin argument groups, configures each stage, and verifies that the
resulting producer/consumer chain is type-consistent before it runs.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			container.Logger = logging.New(os.Stderr, logLevel)
			if manifestPath != "" {
				if err := container.UseManifest(manifestPath, watch); err != nil {
					return fmt.Errorf("failed to load manifest: %w", err)
				}
			}
			return nil
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\n", BuildTime))

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "", "Pipeline manifest file with extra discovery sources")
	rootCmd.PersistentFlags().BoolVar(&watch, "watch", false, "Watch the manifest file and rebuild the registry on change")

	rootCmd.AddCommand(NewPluginsCommand(container))
	rootCmd.AddCommand(NewCheckCommand(container))
	rootCmd.AddCommand(NewSplitCommand(container))
	rootCmd.AddCommand(NewBrowseCommand(container))

	return rootCmd
}

// Execute runs the pk command tree and returns the process exit code.
func Execute() int {
	container := NewContainer(logging.Default())
	defer container.Close()

	if err := NewRootCommand(container).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
