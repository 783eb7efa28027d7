package prompt

import (
	"fmt"
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/jedib0t/go-pretty/v6/table"

	"otomoto_scrooper/models"
	"otomoto_scrooper/scraper"
)

const (
	brandsPerRow   = 6
	suggestMinimum = 0.85
)

// RenderCatalog lays brand names out six per row.
func RenderCatalog(catalog models.Catalog) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.Style().Options.SeparateRows = false

	var row table.Row
	for _, b := range catalog {
		row = append(row, b.Name)
		if len(row) == brandsPerRow {
			t.AppendRow(row)
			row = nil
		}
	}
	if len(row) > 0 {
		t.AppendRow(row)
	}
	return t.Render()
}

// RenderCatalogDetails lists every brand with its count and fetchable pages.
func RenderCatalogDetails(catalog models.Catalog) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Brand", "Listings", "Pages"})
	total := 0
	for _, b := range catalog {
		t.AppendRow(table.Row{b.Name, b.Count, scraper.MaxPages(b.Count)})
		total += b.Count
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d brands", len(catalog)), total, ""})
	return t.Render()
}

// Suggest returns the closest brand name for a failed lookup, or "".
// It is only a hint; selection still requires an exact name.
func Suggest(catalog models.Catalog, input string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}

	best, bestScore := "", 0.0
	for _, b := range catalog {
		score := matchr.JaroWinkler(input, b.Name, false)
		if score > bestScore {
			best, bestScore = b.Name, score
		}
	}
	if bestScore < suggestMinimum {
		return ""
	}
	return best
}
