package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pipekit.dev/cli/internal/core/ratio"
)

// NewSplitCommand builds the standalone ratio split utility: read lines from
// stdin, partition them deterministically by integer ratios, print each
// group under its name.
func NewSplitCommand(container *Container) *cobra.Command {
	var (
		ratios []int
		names  []string
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Partition stdin lines into groups matching integer ratios",
		Long: `Partition the lines read from stdin into contiguous groups whose sizes
match the given integer ratios exactly. The same input and ratios always
produce the same groups.

Examples:
  cat samples.txt | pk split --ratios 2,3,5
  cat samples.txt | pk split --ratios 70,30 --names train,test`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(ratios) == 0 {
				return fmt.Errorf("at least one ratio is required")
			}
			if len(names) == 0 {
				names = make([]string, len(ratios))
				for i := range names {
					names[i] = fmt.Sprintf("split-%d", i+1)
				}
			}
			if len(names) != len(ratios) {
				return fmt.Errorf("%d names for %d ratios", len(names), len(ratios))
			}

			var lines []string
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				lines = append(lines, scanner.Text())
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}

			groups, err := ratio.Split(lines, ratios)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, group := range groups {
				fmt.Fprintf(out, "%s (%d):\n", nameStyle.Render(names[i]), len(group))
				if len(group) > 0 {
					fmt.Fprintf(out, "%s\n", strings.Join(group, "\n"))
				}
			}
			return nil
		},
	}

	cmd.Flags().IntSliceVar(&ratios, "ratios", nil, "Integer ratios for the groups, e.g. 2,3,5")
	cmd.Flags().StringSliceVar(&names, "names", nil, "Names for the groups (defaults to split-N)")
	return cmd
}
