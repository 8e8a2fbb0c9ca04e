package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newFlattenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flatten <module>",
		Short: "Inline a module and everything it imports into one source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unit, err := c.app.Flatten(cmd.Context(), options(cmd), args[0])
			if err != nil {
				return err
			}

			out, _ := cmd.Flags().GetString("output")
			if out == "" {
				_, err := io.WriteString(cmd.OutOrStdout(), unit.Render())
				return err
			}
			if err := os.WriteFile(out, []byte(unit.Render()), 0o600); err != nil {
				return zerr.With(zerr.Wrap(err, "failed to write flattened source"), "path", out)
			}
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "Write the flattened source to this file instead of stdout")
	return cmd
}
