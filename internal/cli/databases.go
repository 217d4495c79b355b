package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odoo-tools/domainconv/internal/odoorpc"
)

// DatabasesOptions holds flags for the databases command.
type DatabasesOptions struct {
	*RootOptions
	ConnectionFlags
}

// NewDatabasesCommand creates the databases command.
func NewDatabasesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DatabasesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "databases",
		Short:         "List the databases available on an Odoo server",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDatabases(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "YAML config file with connection settings")
	cmd.Flags().StringVar(&opts.URL, "url", "", "Odoo server URL")

	return cmd
}

func runDatabases(opts *DatabasesOptions, cmd *cobra.Command) error {
	logger := newLogger(cmd, opts.RootOptions)

	cfg, err := loadConnection(opts.ConnectionFlags)
	if err != nil {
		return err
	}

	dbs, err := odoorpc.Databases(cmd.Context(), cfg.URL, odoorpc.WithLogger(logger))
	if err != nil {
		return err
	}

	if len(dbs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no databases found")
		return nil
	}
	for _, db := range dbs {
		fmt.Fprintln(cmd.OutOrStdout(), db)
	}
	return nil
}
