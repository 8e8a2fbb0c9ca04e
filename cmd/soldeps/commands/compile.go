package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/soldeps/internal/app"
)

func (c *CLI) newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Resolve the project and run the compiler once per group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")
			outcome, err := c.app.Compile(cmd.Context(), app.CompileOptions{
				Options: options(cmd),
				Force:   force,
			})
			if outcome != nil {
				for _, res := range outcome.Results {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-10s %s\n", res.GroupID, res.Status, res.Duration.Round(time.Millisecond))
				}
			}
			if err != nil {
				return err
			}
			return resolutionError(outcome.Report)
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Recompile every group, ignoring reusable output")
	return cmd
}
