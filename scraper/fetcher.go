package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"github.com/rs/zerolog"

	"otomoto_scrooper/config"
	"otomoto_scrooper/logging"
	"otomoto_scrooper/models"
)

var listingIDRegex = regexp.MustCompile(`^\d+$`)

type FetcherOptions struct {
	// PageDelay is a colly limit rule: each request holds the collector for
	// this long after it completes.
	PageDelay time.Duration
	Timeout   time.Duration
	// PartialOnError returns the records of pages fetched before a failing
	// page together with the FetchError. Off by default.
	PartialOnError bool
	Transport      http.RoundTripper
}

// FetchResult holds records in fetch order: page order, then document order.
type FetchResult struct {
	Records []models.Record
	Pages   int
	Skipped int
}

type Fetcher struct {
	site      *config.SiteConfig
	opts      FetcherOptions
	extractor *Extractor
	metrics   *Metrics
	log       zerolog.Logger
}

func NewFetcher(site *config.SiteConfig, opts FetcherOptions) *Fetcher {
	return &Fetcher{
		site:      site,
		opts:      opts,
		extractor: NewExtractor(site.Listing),
		log:       logging.For("fetcher"),
	}
}

func (f *Fetcher) SetMetrics(m *Metrics) {
	f.metrics = m
}

func (f *Fetcher) SetLogger(l zerolog.Logger) {
	f.log = l
}

// PageURL builds {listing_url}/{brand-slug}?page={n}.
func (f *Fetcher) PageURL(brand string, page int) string {
	base := strings.TrimRight(f.site.ListingURL, "/")
	return fmt.Sprintf("%s/%s?page=%d", base, url.PathEscape(BrandSlug(brand)), page)
}

// BrandSlug lowercases a catalog name and joins its words with hyphens.
func BrandSlug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// Fetch requests pages 1..pages one at a time. The first failing page ends
// the fetch with a *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, brand string, pages int) (*FetchResult, error) {
	result := &FetchResult{}

	var (
		status      int
		parseErr    error
		pageRecords []models.Record
		pageSkipped int
	)

	c := f.newCollector()
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		if !success(status) {
			return
		}
		// colly runs OnHTML only for html content types; every 2xx body is a page.
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(r.Body))
		if err != nil {
			parseErr = err
			return
		}
		pageRecords, pageSkipped = f.extractPage(doc)
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
	})

	for page := 1; page <= pages; page++ {
		if err := ctx.Err(); err != nil {
			return f.fail(result, &FetchError{Page: page, Err: err})
		}

		pageURL := f.PageURL(brand, page)
		status, parseErr, pageRecords, pageSkipped = 0, nil, nil, 0

		start := time.Now()
		err := c.Visit(pageURL)
		f.metrics.ObservePage(time.Since(start))

		if err != nil {
			return f.fail(result, &FetchError{Page: page, URL: pageURL, Status: status, Err: err})
		}
		if !success(status) {
			return f.fail(result, &FetchError{
				Page:   page,
				URL:    pageURL,
				Status: status,
				Err:    fmt.Errorf("unexpected status %d", status),
			})
		}
		if parseErr != nil {
			return f.fail(result, &FetchError{Page: page, URL: pageURL, Status: status, Err: parseErr})
		}

		result.Records = append(result.Records, pageRecords...)
		result.Pages++
		result.Skipped += pageSkipped
		f.metrics.IncPage()
		f.metrics.AddListings(len(pageRecords))

		f.log.Info().Msgf("Page %d: %d listings (total: %d)", page, len(pageRecords), len(result.Records))
		if pageSkipped > 0 {
			f.log.Warn().Msgf("Page %d: skipped %d listings without an image", page, pageSkipped)
		}
	}

	return result, nil
}

// extractPage returns the listings of one results page in document order.
// Nodes without a numeric id are not listings and are ignored.
func (f *Fetcher) extractPage(doc *goquery.Document) ([]models.Record, int) {
	var (
		records []models.Record
		skipped int
	)

	doc.Find(f.site.Listing.Node).Each(func(_ int, node *goquery.Selection) {
		id := strings.TrimSpace(node.AttrOr(f.site.Listing.IDAttr, ""))
		if !listingIDRegex.MatchString(id) {
			return
		}
		record, err := f.extractor.Extract(node)
		if err != nil {
			skipped++
			f.metrics.IncSkipped()
			f.metrics.IncError(ErrorKind(err))
			f.log.Warn().Err(err).Str("listing_id", id).Msg("Skipping listing")
			return
		}
		records = append(records, record)
	})

	return records, skipped
}

func (f *Fetcher) newCollector() *colly.Collector {
	c := colly.NewCollector(
		colly.UserAgent(f.site.UserAgent),
		colly.AllowURLRevisit(),
	)
	// Status is checked per page so that any 2xx counts as success.
	c.ParseHTTPErrorResponse = true
	if f.opts.Timeout > 0 {
		c.SetRequestTimeout(f.opts.Timeout)
	}
	if f.opts.Transport != nil {
		c.WithTransport(f.opts.Transport)
	}
	if f.opts.PageDelay > 0 {
		if err := c.Limit(&colly.LimitRule{DomainGlob: "*", Delay: f.opts.PageDelay}); err != nil {
			f.log.Warn().Err(err).Msg("Page delay not applied")
		}
	}
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "*/*")
	})
	return c
}

func (f *Fetcher) fail(result *FetchResult, err *FetchError) (*FetchResult, error) {
	f.metrics.IncError(KindFetch)
	f.log.Error().Err(err).Int("page", err.Page).Msg("Fetch failed")

	if f.opts.PartialOnError {
		return result, err
	}
	return nil, err
}

func success(status int) bool {
	return status >= 200 && status < 300
}
