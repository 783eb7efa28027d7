package scraper

import (
	"context"

	"otomoto_scrooper/models"
)

// CatalogSource enumerates the brands available on the site.
type CatalogSource interface {
	Discover(ctx context.Context) (models.Catalog, error)
}

// ListingSource turns a brand and page count into ordered records.
type ListingSource interface {
	Fetch(ctx context.Context, brand string, pages int) (*FetchResult, error)
}

// Selector picks a brand and page count from a catalog. Implementations show
// the catalog and keep asking until the choice passes CheckPages.
type Selector interface {
	Select(ctx context.Context, catalog models.Catalog) (models.Selection, error)
}
