package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"otomoto_scrooper/export"
	"otomoto_scrooper/prompt"
	"otomoto_scrooper/scraper"
)

var (
	useTUI bool
	flags  overrides
)

var rootCmd = &cobra.Command{
	Use:           "otomoto_scrooper",
	Short:         "otomoto_scrooper scrapes car listings for one brand and exports them as CSV, PDF or SQLite.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		console := prompt.NewConsole(os.Stdin, os.Stdout)
		var sel scraper.Selector = console
		if useTUI {
			sel = prompt.NewTUI(os.Stdin, os.Stdout)
		}

		return a.run(cmd.Context(), sel, console.ChooseFormats)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.outputDir, "output-dir", "", "Directory for report files (overrides OUTPUT_DIR)")
	pf.BoolVar(&flags.headless, "headless", true, "Run the discovery browser headless (overrides HEADLESS)")
	pf.BoolVar(&flags.partial, "partial", false, "Export the pages fetched before a failing page (overrides PARTIAL_ON_ERROR)")
	pf.StringVar(&flags.metricsAddr, "metrics-addr", "", "Serve prometheus metrics on this address (overrides METRICS_ADDR)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")

	rootCmd.Flags().BoolVar(&useTUI, "tui", false, "Pick the brand in a full-screen terminal UI")
}

// quiet reports whether err means the user chose to stop.
func quiet(err error) bool {
	return errors.Is(err, prompt.ErrExit) ||
		errors.Is(err, prompt.ErrCancelled) ||
		errors.Is(err, context.Canceled)
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil && !quiet(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// formatChooser asks for export formats once records are in hand.
type formatChooser func(ctx context.Context) ([]export.Format, error)
