package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/01moynul/storefront-golang/internal/maintenance"
)

// DumpOptions holds flags for the dump command.
type DumpOptions struct {
	*RootOptions
	Limit int
}

// NewDumpCommand creates the dump command.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DumpOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "dump <table>",
		Short:         "Print the rows of a table",
		Long:          "Print the rows of one of: " + strings.Join(maintenance.DumpTables(), ", "),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(opts, args, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 50, "maximum rows to print (0 for all)")
	return cmd
}

func runDump(opts *DumpOptions, args []string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	db, release, err := opts.database(ctx)
	if err != nil {
		return err
	}
	defer release()

	rows, err := maintenance.Dump(ctx, db, args[0], opts.Limit)
	if err != nil {
		return err
	}
	return maintenance.Write(cmd.OutOrStdout(), opts.Format, rows)
}
