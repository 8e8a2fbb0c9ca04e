// Package commands implements the CLI commands for soldeps.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/soldeps/internal/app"
	"go.trai.ch/soldeps/internal/build"
	"go.trai.ch/soldeps/internal/core/ports"
)

// MetricsExporter writes collected metrics to a file.
type MetricsExporter interface {
	WriteTextfile(path string) error
}

// CLI represents the command line interface for soldeps.
type CLI struct {
	app     *app.App
	metrics ports.Metrics
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App, metrics ports.Metrics) *CLI {
	rootCmd := &cobra.Command{
		Use:           "soldeps",
		Short:         "Resolve compiler versions and compilation groups for Solidity projects",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("project", "p", ".", "Project root directory")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default: soldeps.yaml in the project root)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only log warnings and errors")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write run metrics to this file in Prometheus text format")

	c := &CLI{
		app:     a,
		metrics: metrics,
		rootCmd: rootCmd,
	}
	rootCmd.PersistentPostRunE = c.writeMetrics

	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newFlattenCmd())
	rootCmd.AddCommand(c.newCompileCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects command output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}

func options(cmd *cobra.Command) app.Options {
	project, _ := cmd.Flags().GetString("project")
	config, _ := cmd.Flags().GetString("config")
	quiet, _ := cmd.Flags().GetBool("quiet")
	return app.Options{ProjectRoot: project, ConfigFile: config, Quiet: quiet}
}

func (c *CLI) writeMetrics(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("metrics-file")
	if path == "" {
		return nil
	}
	if exp, ok := c.metrics.(MetricsExporter); ok {
		return exp.WriteTextfile(path)
	}
	return nil
}
