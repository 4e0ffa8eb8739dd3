package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"pipekit.dev/cli/internal/core/placeholder"
	"pipekit.dev/cli/internal/core/plugin"
	"pipekit.dev/cli/internal/core/registry"
)

var (
	nameStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	aliasStyle   = lipgloss.NewStyle().Faint(true)
	labelStyle   = lipgloss.NewStyle().Bold(true)
	tagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	missingStyle = lipgloss.NewStyle().Faint(true)
)

// NewPluginsCommand groups plugin inspection subcommands.
func NewPluginsCommand(container *Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "Inspect discovered plugins",
	}
	cmd.AddCommand(newPluginsListCommand(container))
	cmd.AddCommand(newPluginsInfoCommand(container))
	return cmd
}

func newPluginsListCommand(container *Container) *cobra.Command {
	var includeAliases bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all discovered plugins",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := container.Registry()
			if err != nil {
				return err
			}
			for _, desc := range reg.Descriptors() {
				line := nameStyle.Render(desc.Name)
				if includeAliases && len(desc.Aliases) > 0 {
					line += " " + aliasStyle.Render("("+strings.Join(desc.Aliases, ", ")+")")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n    %s\n", line, desc.Description)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d plugin(s)\n", reg.Len())
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeAliases, "aliases", false, "Show aliases next to canonical names")
	return cmd
}

func newPluginsInfoCommand(container *Container) *cobra.Command {
	var partial bool

	cmd := &cobra.Command{
		Use:   "info <name>",
		Short: "Show details and options for one plugin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := container.Registry()
			if err != nil {
				return err
			}
			desc, err := reg.Resolve(args[0], partial)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderDescriptor(desc, reg))
			return nil
		},
	}

	cmd.Flags().BoolVar(&partial, "partial", false, "Resolve the name by unique prefix")
	return cmd
}

func renderDescriptor(desc plugin.Descriptor, reg *registry.Registry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", nameStyle.Render(desc.Name), aliasStyle.Render(desc.TypeID))
	fmt.Fprintf(&b, "%s\n\n", desc.Description)

	if len(desc.Aliases) > 0 {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Aliases:"), strings.Join(desc.Aliases, ", "))
	}
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Produces:"), renderTags(desc.Produced.Sorted()))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Accepts:"), renderTags(desc.Accepted.Sorted()))

	inst := desc.New()
	if placeholder.Supports(inst) {
		fmt.Fprintf(&b, "%s yes\n", labelStyle.Render("Placeholders:"))
	}
	fmt.Fprintf(&b, "\n%s\n%s", labelStyle.Render("Options:"), inst.Options().Usage())
	return b.String()
}

func renderTags[T ~string](tags []T) string {
	if len(tags) == 0 {
		return missingStyle.Render("(none)")
	}
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = tagStyle.Render(string(t))
	}
	return strings.Join(parts, ", ")
}
