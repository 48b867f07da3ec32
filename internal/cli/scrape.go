package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/01moynul/storefront-golang/internal/maintenance"
)

// ScrapeOptions holds flags for the scrape command.
type ScrapeOptions struct {
	*RootOptions
	Pattern string
}

// NewScrapeCommand creates the scrape command.
func NewScrapeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScrapeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "scrape <url>",
		Short:         "Extract brand names from a page as a dataset fragment",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Pattern, "pattern", "", "regular expression; capture group 1 is the brand name")
	_ = cmd.MarkFlagRequired("pattern")
	return cmd
}

func runScrape(opts *ScrapeOptions, args []string, cmd *cobra.Command) error {
	client := opts.HTTPClient
	if client == nil {
		client = maintenance.NewScrapeClient()
	}

	names, err := maintenance.Scrape(cmd.Context(), client, args[0], opts.Pattern)
	if err != nil {
		return err
	}
	opts.logger().Debug("scraped brands", zap.String("url", args[0]), zap.Int("count", len(names)))
	return maintenance.Write(cmd.OutOrStdout(), opts.Format, maintenance.NewBrandList(names))
}
