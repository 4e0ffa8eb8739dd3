package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"pipekit.dev/cli/internal/core/compat"
	"pipekit.dev/cli/internal/core/pipeline"
	"pipekit.dev/cli/internal/core/plugin"
)

var (
	okStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// NewCheckCommand builds the pipeline check command: tokenize, segment,
// instantiate, then verify the producer/consumer chain.
func NewCheckCommand(container *Container) *cobra.Command {
	var (
		partial     bool
		allowGlobal bool
		unknownArgs string
	)

	cmd := &cobra.Command{
		Use:   "check <pipeline>",
		Short: "Parse a pipeline command line and verify stage compatibility",
		Long: `Parse a flat pipeline command line into per-plugin argument groups,
configure each stage, and verify that adjacent stages form a type-consistent
producer/consumer chain.

Examples:
  pk check 'text-reader -i in.txt line-filter -p warn text-writer -o out.txt'
  pk check --partial 'text-r -i in.txt count-w'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := parseUnknownArgPolicy(unknownArgs)
			if err != nil {
				return err
			}
			reg, err := container.Registry()
			if err != nil {
				return err
			}

			opts := pipeline.SplitOptions{
				Partial:            partial,
				AllowGlobalOptions: allowGlobal,
				UnknownArgs:        policy,
				RequireStage:       true,
			}
			resolved, err := pipeline.Build(strings.Join(args, " "), reg, opts)
			if err != nil {
				return err
			}

			container.Logger.Debug().
				Str("pipeline_id", resolved.ID).
				Int("stages", len(resolved.Stages)).
				Msg("pipeline resolved")

			stages := make([]plugin.Plugin, len(resolved.Stages))
			for i, stage := range resolved.Stages {
				stages[i] = stage.Plugin
				if len(stage.Leftover) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s: unconsumed arguments: %s\n",
						failStyle.Render("note"), stage.Plugin.Name(), strings.Join(stage.Leftover, " "))
				}
			}

			if err := compat.Check(stages, container.Hierarchy); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %v\n", failStyle.Render("FAIL"), err)
				return err
			}

			names := make([]string, len(stages))
			for i, s := range stages {
				names[i] = s.Name()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okStyle.Render("OK"), strings.Join(names, " -> "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&partial, "partial", false, "Resolve plugin names by unique prefix")
	cmd.Flags().BoolVar(&allowGlobal, "allow-global", false, "Collect tokens before the first plugin name as global options")
	cmd.Flags().StringVar(&unknownArgs, "unknown-args", "raise", "Unknown-argument policy (raise, collect, ignore)")
	return cmd
}

func parseUnknownArgPolicy(value string) (pipeline.UnknownArgPolicy, error) {
	switch value {
	case "raise":
		return pipeline.Raise, nil
	case "collect":
		return pipeline.Collect, nil
	case "ignore":
		return pipeline.Ignore, nil
	default:
		return pipeline.Raise, fmt.Errorf("unknown-args must be raise, collect or ignore, got %q", value)
	}
}
