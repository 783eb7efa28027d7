package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"otomoto_scrooper/scraper"
)

func printSummary(w io.Writer, run *scraper.Run, files []string) {
	fmt.Fprintln(w, renderSummary(run, files))
}

func renderSummary(run *scraper.Run, files []string) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle("Run summary")

	pages, records, skipped := 0, 0, 0
	if run.Result != nil {
		pages, records, skipped = run.Result.Pages, len(run.Result.Records), run.Result.Skipped
	}

	t.AppendRows([]table.Row{
		{"Brand", run.Selection.Brand.Name},
		{"Pages", fmt.Sprintf("%d / %d", pages, run.Selection.Pages)},
		{"Records", records},
		{"Skipped", skipped},
		{"Duration", run.Duration.Round(time.Millisecond)},
	})
	if len(files) > 0 {
		t.AppendRow(table.Row{"Files", strings.Join(files, "\n")})
	}
	return t.Render()
}
