package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"otomoto_scrooper/logging"
	"otomoto_scrooper/models"
)

// Run is the outcome of one discovery, selection and fetch cycle.
type Run struct {
	Catalog   models.Catalog
	Selection models.Selection
	Result    *FetchResult
	StartedAt time.Time
	Duration  time.Duration
}

type Orchestrator struct {
	catalog  CatalogSource
	listings ListingSource
	log      zerolog.Logger
}

func NewOrchestrator(catalog CatalogSource, listings ListingSource) *Orchestrator {
	return &Orchestrator{
		catalog:  catalog,
		listings: listings,
		log:      logging.For("orchestrator"),
	}
}

// Run discovers brands, asks sel for a choice and fetches the listings.
// With partial results enabled a failed fetch returns both the run and the
// error.
func (o *Orchestrator) Run(ctx context.Context, sel Selector) (*Run, error) {
	run := &Run{StartedAt: time.Now()}

	o.log.Info().Msg("Discovering brands...")
	catalog, err := o.catalog.Discover(ctx)
	if err != nil {
		return nil, err
	}
	run.Catalog = catalog

	selection, err := sel.Select(ctx, catalog)
	if err != nil {
		return nil, fmt.Errorf("select brand: %w", err)
	}

	brand, ok := catalog.Lookup(selection.Brand.Name)
	if !ok {
		return nil, fmt.Errorf("unknown brand: %q", selection.Brand.Name)
	}
	if err := CheckPages(selection.Pages, MaxPages(brand.Count)); err != nil {
		return nil, err
	}
	run.Selection = models.Selection{Brand: brand, Pages: selection.Pages}

	o.log.Info().Msgf("Fetching %d pages of %s (%d listings)", selection.Pages, brand.Name, brand.Count)
	result, err := o.listings.Fetch(ctx, brand.Name, selection.Pages)
	run.Result = result
	run.Duration = time.Since(run.StartedAt)
	if err != nil {
		if result != nil {
			o.log.Warn().Msgf("Keeping %d records from %d pages", len(result.Records), result.Pages)
			return run, err
		}
		return nil, err
	}

	o.log.Info().Msgf("Fetched %d records in %s", len(result.Records), run.Duration.Round(time.Millisecond))
	return run, nil
}
