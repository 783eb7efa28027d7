package scraper

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otomoto_scrooper/config"
	"otomoto_scrooper/models"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	path := filepath.Join("testdata", name)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", name, err)
	}
	return data
}

func listingNodes(t *testing.T) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(loadFixture(t, "listings.html")))
	require.NoError(t, err)
	return doc.Find("article[data-id]")
}

func TestExtract_FullListing(t *testing.T) {
	record, err := Extract(listingNodes(t).Eq(0))
	require.NoError(t, err)

	assert.Equal(t, models.Record{
		Image:          "https://ireland.apollo.olxcdn.com/v1/files/golf/image;s=320x240",
		Title:          "Volkswagen Golf 2.0 TDI Highline",
		Price:          "59 900",
		Currency:       "PLN",
		Tank:           "1 968 cm3",
		Power:          "150 KM",
		Equipment:      "Highline",
		Mileage:        "125 000 km",
		FuelType:       "Diesel",
		Gearbox:        "Manualna",
		ProductionDate: "2018",
		Location:       "Warszawa (Mazowieckie)",
	}, record)
}

func TestExtract_MissingDetailsDegrades(t *testing.T) {
	record, err := Extract(listingNodes(t).Eq(1))
	require.NoError(t, err)

	assert.Equal(t, "https://ireland.apollo.olxcdn.com/v1/files/passat/image;s=320x240", record.Image)
	assert.Equal(t, "Volkswagen Passat", record.Title)
	assert.Equal(t, "42 500", record.Price)
	assert.Equal(t, "PLN", record.Currency)
	assert.Equal(t, "2.0", record.Tank)
	assert.Empty(t, record.Power)
	assert.Empty(t, record.Equipment)
	assert.Empty(t, record.Mileage)
	assert.Empty(t, record.FuelType)
	assert.Empty(t, record.Gearbox)
	assert.Empty(t, record.ProductionDate)
	assert.Empty(t, record.Location)
}

func TestExtract_MissingImageIsExtractionError(t *testing.T) {
	_, err := Extract(listingNodes(t).Eq(2))

	var extractionErr *ExtractionError
	require.True(t, errors.As(err, &extractionErr))
	assert.Equal(t, "image", extractionErr.Element)
	assert.Equal(t, KindExtraction, ErrorKind(err))
}

func TestExtract_EmptySelection(t *testing.T) {
	_, err := Extract(&goquery.Selection{})
	assert.Error(t, err)

	_, err = Extract(nil)
	assert.Error(t, err)
}

func TestExtract_Idempotent(t *testing.T) {
	nodes := listingNodes(t)
	for i := 0; i < 2; i++ {
		first, err := Extract(nodes.Eq(i))
		require.NoError(t, err)
		second, err := Extract(nodes.Eq(i))
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestExtractor_CustomLayout(t *testing.T) {
	html := `<div class="car"><img src="/a.jpg"><h2>Fiat 126p</h2><span class="price">4 000</span></div>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	extractor := NewExtractor(config.ListingLayout{
		Image: "img",
		Title: "h2",
		Price: ".price",
	})
	record, err := extractor.Extract(doc.Find("div.car"))
	require.NoError(t, err)

	assert.Equal(t, "/a.jpg", record.Image)
	assert.Equal(t, "Fiat 126p", record.Title)
	assert.Equal(t, "4 000", record.Price)
	assert.Empty(t, record.Location)
}

func TestSplitSummary(t *testing.T) {
	tests := []struct {
		summary                string
		tank, power, equipment string
	}{
		{"2.0 / 150 KM / Full", "2.0", "150 KM", "Full"},
		{"2.0", "2.0", "", ""},
		{"1 968 cm3 • 150 KM • Highline", "1 968 cm3", "150 KM", "Highline"},
		{"999 cm3 • 65 KM", "999 cm3", "65 KM", ""},
		{"a • b • c • d", "a", "b", "c"},
		{"", "", "", ""},
	}

	for _, tt := range tests {
		tank, power, equipment := SplitSummary(tt.summary)
		assert.Equal(t, tt.tank, tank, tt.summary)
		assert.Equal(t, tt.power, power, tt.summary)
		assert.Equal(t, tt.equipment, equipment, tt.summary)
	}
}
