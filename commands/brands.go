package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"otomoto_scrooper/prompt"
)

func init() {
	rootCmd.AddCommand(brandsCmd)
}

var brandsCmd = &cobra.Command{
	Use:   "brands",
	Short: "Lists the brands on offer with their listing counts and readable pages.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		catalog, err := a.discoverer().Discover(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), prompt.RenderCatalogDetails(catalog))
		return nil
	},
}
