package prompt

import (
	"context"
	"fmt"

	"otomoto_scrooper/models"
	"otomoto_scrooper/scraper"
)

// Fixed answers with a preset brand and page count. It cannot re-prompt, so
// an invalid choice is an error.
type Fixed struct {
	Brand string
	Pages int
}

func (f Fixed) Select(ctx context.Context, catalog models.Catalog) (models.Selection, error) {
	brand, ok := catalog.Lookup(f.Brand)
	if !ok {
		if hint := Suggest(catalog, f.Brand); hint != "" {
			return models.Selection{}, fmt.Errorf("unknown brand %q, did you mean %q?", f.Brand, hint)
		}
		return models.Selection{}, fmt.Errorf("unknown brand %q", f.Brand)
	}

	if err := scraper.CheckPages(f.Pages, scraper.MaxPages(brand.Count)); err != nil {
		return models.Selection{}, err
	}

	return models.Selection{Brand: brand, Pages: f.Pages}, nil
}
