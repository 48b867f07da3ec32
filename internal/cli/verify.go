package cli

import (
	"github.com/spf13/cobra"

	"github.com/01moynul/storefront-golang/internal/maintenance"
	"github.com/01moynul/storefront-golang/internal/store"
)

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "verify",
		Short:         "Print table counts and admin accounts",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(rootOpts, cmd)
		},
	}
}

func runVerify(rootOpts *RootOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	db, release, err := rootOpts.database(ctx)
	if err != nil {
		return err
	}
	defer release()

	report, err := maintenance.Verify(ctx, store.New(db))
	if err != nil {
		return err
	}
	return maintenance.Write(cmd.OutOrStdout(), rootOpts.Format, report)
}
