package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"otomoto_scrooper/export"
	"otomoto_scrooper/prompt"
)

var (
	scrapeBrand   string
	scrapePages   int
	scrapeFormats []string
)

func init() {
	scrapeCmd.Flags().StringVar(&scrapeBrand, "brand", "", "Brand name as shown in the catalog")
	scrapeCmd.Flags().IntVar(&scrapePages, "pages", 1, "Number of result pages to read")
	scrapeCmd.Flags().StringSliceVar(&scrapeFormats, "format", []string{"csv"}, "Export formats: csv, pdf, sqlite")
	_ = scrapeCmd.MarkFlagRequired("brand")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape --brand <name> [--pages N] [--format csv,pdf,sqlite]",
	Short: "Scrapes one brand without prompting and writes the chosen reports.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		formats, err := export.ParseFormats(scrapeFormats)
		if err != nil {
			return err
		}
		if len(formats) == 0 {
			return fmt.Errorf("no export format given")
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		sel := prompt.Fixed{Brand: scrapeBrand, Pages: scrapePages}
		return a.run(cmd.Context(), sel, func(context.Context) ([]export.Format, error) {
			return formats, nil
		})
	},
}
