package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/01moynul/storefront-golang/internal/database"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "migrate",
		Short:         "Create missing tables and add missing columns",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(rootOpts, cmd)
		},
	}
}

func runMigrate(rootOpts *RootOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	db, release, err := rootOpts.database(ctx)
	if err != nil {
		return err
	}
	defer release()

	res, err := database.Migrate(ctx, db)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "applied %d schema statements\n", res.Statements)
	if len(res.AddedColumns) == 0 {
		fmt.Fprintln(out, "no columns added")
	}
	for _, col := range res.AddedColumns {
		fmt.Fprintf(out, "added column %s\n", col)
	}
	return nil
}
