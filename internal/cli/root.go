// Package cli wires the storectl maintenance commands.
package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/01moynul/storefront-golang/internal/config"
	"github.com/01moynul/storefront-golang/internal/database"
	"github.com/01moynul/storefront-golang/internal/logger"
	"github.com/01moynul/storefront-golang/internal/maintenance"
)

// RootOptions holds global flags and shared dependencies for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "yaml" | "json"

	// DB and HTTPClient are used when set; otherwise commands connect with
	// the environment configuration.
	DB         *sqlx.DB
	HTTPClient *http.Client
	Log        *zap.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{maintenance.FormatYAML, maintenance.FormatJSON}

// NewRootCommand creates the root command for storectl.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storectl",
		Short: "Storefront maintenance tool",
		Long:  "Schema migration, seeding and inspection for the storefront database.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.Log == nil {
				level := "warn"
				if opts.Verbose {
					level = "debug"
				}
				log, err := logger.New(true, level)
				if err != nil {
					return err
				}
				opts.Log = log
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", maintenance.FormatYAML, "output format (yaml|json)")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewDumpCommand(opts))
	cmd.AddCommand(NewVerifyCommand(opts))
	cmd.AddCommand(NewScrapeCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// database returns the injected DB or opens one from the environment. The
// returned func releases it.
func (o *RootOptions) database(ctx context.Context) (*sqlx.DB, func(), error) {
	if o.DB != nil {
		return o.DB, func() {}, nil
	}
	cfg := config.Load()
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { _ = db.Close() }, nil
}

func (o *RootOptions) logger() *zap.Logger {
	if o.Log == nil {
		return zap.NewNop()
	}
	return o.Log
}
