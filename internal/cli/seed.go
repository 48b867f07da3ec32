package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/01moynul/storefront-golang/internal/catalog"
	"github.com/01moynul/storefront-golang/internal/maintenance"
	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/store"
)

// SeedAdminOptions holds flags for `seed admin`.
type SeedAdminOptions struct {
	*RootOptions
	Name     string
	Email    string
	Password string
	Role     string
}

// NewSeedCommand creates the seed command group.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert reference data",
	}
	cmd.AddCommand(NewSeedAdminCommand(rootOpts))
	cmd.AddCommand(NewSeedCatalogCommand(rootOpts))
	return cmd
}

// NewSeedAdminCommand creates `seed admin`.
func NewSeedAdminCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedAdminOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "admin",
		Short:         "Create an admin account",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeedAdmin(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "Administrator", "display name")
	cmd.Flags().StringVar(&opts.Email, "email", "", "login email")
	cmd.Flags().StringVar(&opts.Password, "password", "", "plaintext password, stored bcrypt-hashed")
	cmd.Flags().StringVar(&opts.Role, "role", models.RoleAdmin, "role")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func runSeedAdmin(opts *SeedAdminOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	db, release, err := opts.database(ctx)
	if err != nil {
		return err
	}
	defer release()

	created, err := maintenance.SeedAdmin(ctx, store.New(db), opts.Name, opts.Email, opts.Password, opts.Role)
	if err != nil {
		return err
	}
	if !created {
		fmt.Fprintf(cmd.OutOrStdout(), "admin %s already exists\n", opts.Email)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created admin %s\n", opts.Email)
	return nil
}

// NewSeedCatalogCommand creates `seed catalog`.
func NewSeedCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "catalog",
		Short:         "Insert the bundled categories, brands and products",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeedCatalog(rootOpts, cmd)
		},
	}
}

func runSeedCatalog(rootOpts *RootOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	data, err := catalog.LoadDataset()
	if err != nil {
		return err
	}
	db, release, err := rootOpts.database(ctx)
	if err != nil {
		return err
	}
	defer release()

	report, err := catalog.NewSeeder(store.New(db), data, rootOpts.logger()).Seed(ctx)
	if err != nil {
		return err
	}
	rootOpts.logger().Debug("catalog seeded", zap.Int("products_created", report.Products.Created))
	return maintenance.Write(cmd.OutOrStdout(), rootOpts.Format, report)
}
