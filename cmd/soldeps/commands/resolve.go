package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.trai.ch/soldeps/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Select a compiler version for every module and print the compilation groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := c.app.Resolve(cmd.Context(), options(cmd))
			if err != nil {
				return err
			}
			if err := writeReport(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			return resolutionError(report)
		},
	}
}

func resolutionError(report *domain.Report) error {
	if !report.HasErrors() {
		return nil
	}
	return zerr.With(domain.ErrResolutionFailed, "errors", len(report.Errors()))
}

func writeReport(w io.Writer, report *domain.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "MODULE\tCONSTRAINT\tVERSION\tGROUP")
	for _, key := range report.Keys() {
		m := report.Modules[key]
		constraint := m.Effective.String()
		if constraint == "" {
			constraint = "*"
		}
		group := m.Group
		if group == "" {
			group = "-"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", key, constraint, m.Version, group)
	}
	if err := tw.Flush(); err != nil {
		return zerr.Wrap(err, "failed to write report")
	}

	for _, g := range report.Groups {
		_, _ = fmt.Fprintf(w, "\ngroup %s: %d members, %d sources\n", g.ID, len(g.Members), len(g.Sources))
		for _, r := range g.RemappingStrings() {
			_, _ = fmt.Fprintf(w, "  remapping %s\n", r)
		}
		for _, l := range g.Libraries {
			_, _ = fmt.Fprintf(w, "  library %s\n", l)
		}
	}
	return nil
}
