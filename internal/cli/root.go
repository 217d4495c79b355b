// Package cli implements the domainconv command tree.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/odoo-tools/domainconv"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the domainconv CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "domainconv",
		Short:   "Convert Odoo domain expressions to readable form",
		Long:    "Parse Odoo prefix-notation domain expressions and render them as human-readable pseudocode or Python-style infix conditions.",
		Version: domainconv.Version,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewDatabasesCommand(opts))

	return cmd
}

// newLogger builds the logger for one command invocation. Debug output is
// only emitted with --verbose and always goes to stderr so it cannot
// corrupt the converted output on stdout.
func newLogger(cmd *cobra.Command, opts *RootOptions) *slog.Logger {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
