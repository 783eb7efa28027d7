package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"otomoto_scrooper/config"
	"otomoto_scrooper/models"
)

// Extractor maps one listing node to a Record. All positional knowledge of
// the listing markup lives in its layout.
type Extractor struct {
	layout config.ListingLayout
}

func NewExtractor(layout config.ListingLayout) *Extractor {
	return &Extractor{layout: layout}
}

var defaultExtractor = NewExtractor(config.DefaultSite().Listing)

// Extract uses the default site layout.
func Extract(node *goquery.Selection) (models.Record, error) {
	return defaultExtractor.Extract(node)
}

// Extract fails only when the node has no image element. Every other field
// falls back to an empty string on its own.
func (e *Extractor) Extract(node *goquery.Selection) (models.Record, error) {
	if node == nil || node.Length() == 0 {
		return models.Record{}, &ExtractionError{Element: "listing"}
	}

	img := node.Find(e.layout.Image).First()
	if img.Length() == 0 {
		return models.Record{}, &ExtractionError{Element: "image"}
	}

	tank, power, equipment := SplitSummary(textOf(node, e.layout.Summary))

	return models.Record{
		Image:          imageSource(img),
		Title:          textOf(node, e.layout.Title),
		Price:          textOf(node, e.layout.Price),
		Currency:       textOf(node, e.layout.Currency),
		Tank:           tank,
		Power:          power,
		Equipment:      equipment,
		Mileage:        textOf(node, e.layout.Mileage),
		FuelType:       textOf(node, e.layout.FuelType),
		Gearbox:        textOf(node, e.layout.Gearbox),
		ProductionDate: textOf(node, e.layout.ProductionDate),
		Location:       textOf(node, e.layout.Location),
	}, nil
}

// SplitSummary splits the "tank • power • equipment" line. Text without a
// bullet is split on slashes instead. Extra segments are ignored.
func SplitSummary(summary string) (tank, power, equipment string) {
	sep := "•"
	if !strings.Contains(summary, sep) {
		sep = "/"
	}
	parts := strings.Split(summary, sep)

	segment := func(i int) string {
		if i < len(parts) {
			return strings.TrimSpace(parts[i])
		}
		return ""
	}
	return segment(0), segment(1), segment(2)
}

func textOf(node *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	return strings.TrimSpace(node.Find(selector).First().Text())
}

// Lazy-loaded images carry the URL in data-src until scrolled into view.
func imageSource(img *goquery.Selection) string {
	for _, attr := range []string{"src", "data-src"} {
		if val, ok := img.Attr(attr); ok && strings.TrimSpace(val) != "" {
			return strings.TrimSpace(val)
		}
	}
	return ""
}
