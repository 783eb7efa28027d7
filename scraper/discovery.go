package scraper

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"otomoto_scrooper/config"
	"otomoto_scrooper/logging"
	"otomoto_scrooper/models"
)

// RawOption is one rendered brand option before filtering.
type RawOption struct {
	ID   string
	Text string
}

// Session is the slice of browser automation discovery needs.
type Session interface {
	Goto(url string) error
	WaitVisible(selector string, timeout time.Duration) error
	WaitPresent(selector string, timeout time.Duration) error
	Click(selector string) error
	Options(selector string) ([]RawOption, error)
	Close() error
}

// Launcher opens a fresh browser session.
type Launcher func() (Session, error)

var (
	brandLabelRegex = regexp.MustCompile(`(.+?)[\s\x{00a0}]+\(([\d\s\x{00a0}]+)\)`)
	nonDigitRegex   = regexp.MustCompile(`\D`)
)

type Discoverer struct {
	site    *config.SiteConfig
	launch  Launcher
	timeout time.Duration
	metrics *Metrics
	log     zerolog.Logger
}

func NewDiscoverer(site *config.SiteConfig, launch Launcher, timeout time.Duration) *Discoverer {
	return &Discoverer{
		site:    site,
		launch:  launch,
		timeout: timeout,
		log:     logging.For("discovery"),
	}
}

func (d *Discoverer) SetMetrics(m *Metrics) {
	d.metrics = m
}

func (d *Discoverer) SetLogger(l zerolog.Logger) {
	d.log = l
}

// Discover walks the landing page once and returns the brands that have
// listings. The browser session is closed on every path.
func (d *Discoverer) Discover(ctx context.Context) (catalog models.Catalog, err error) {
	start := time.Now()
	defer func() {
		d.metrics.ObserveDiscovery(time.Since(start))
		if err != nil {
			d.metrics.IncError(KindDiscovery)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, &DiscoveryError{Step: "start", Err: err}
	}

	session, err := d.launch()
	if err != nil {
		return nil, &DiscoveryError{Step: "launch browser", Err: err}
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			d.log.Warn().Err(cerr).Msg("browser did not close cleanly")
		}
	}()

	layout := d.site.Discovery
	steps := []struct {
		name string
		run  func() error
	}{
		{"load landing page", func() error { return session.Goto(d.site.LandingURL) }},
		{"wait for consent", func() error { return session.WaitVisible(layout.ConsentButton, d.timeout) }},
		{"accept consent", func() error { return session.Click(layout.ConsentButton) }},
		{"open brand list", func() error { return session.Click(layout.BrandInput) }},
		{"wait for brand options", func() error { return session.WaitPresent(layout.BrandOption, d.timeout) }},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, &DiscoveryError{Step: step.name, Err: err}
		}
		d.log.Debug().Msg(step.name)
		if err := step.run(); err != nil {
			return nil, &DiscoveryError{Step: step.name, Err: err}
		}
	}

	options, err := session.Options(layout.BrandOption)
	if err != nil {
		return nil, &DiscoveryError{Step: "read brand options", Err: err}
	}

	filter, err := newBrandFilter(layout)
	if err != nil {
		return nil, &DiscoveryError{Step: "filter brand options", Err: err}
	}

	catalog = filter.apply(options)
	if len(catalog) == 0 {
		return nil, &DiscoveryError{
			Step: "filter brand options",
			Err:  fmt.Errorf("no brand with listings among %d options", len(options)),
		}
	}

	d.log.Info().Msgf("Discovered %d brands (%d options)", len(catalog), len(options))
	return catalog, nil
}

// FilterBrands applies the default site's exclusion rules.
func FilterBrands(options []RawOption) models.Catalog {
	filter, _ := newBrandFilter(config.DefaultSite().Discovery)
	return filter.apply(options)
}

type brandFilter struct {
	idPrefixes []string
	captions   *regexp.Regexp
}

func newBrandFilter(layout config.DiscoveryLayout) (*brandFilter, error) {
	f := &brandFilter{idPrefixes: layout.ExcludedIDPrefixes}
	if layout.ExcludedCaptions != "" {
		re, err := regexp.Compile(layout.ExcludedCaptions)
		if err != nil {
			return nil, err
		}
		f.captions = re
	}
	return f, nil
}

func (f *brandFilter) apply(options []RawOption) models.Catalog {
	catalog := models.Catalog{}
	seen := make(map[string]bool)

	for _, opt := range options {
		if f.excluded(opt) {
			continue
		}
		brand, ok := parseBrandLabel(opt.Text)
		if !ok || brand.Count <= 0 || seen[brand.Name] {
			continue
		}
		seen[brand.Name] = true
		catalog = append(catalog, brand)
	}

	return catalog
}

func (f *brandFilter) excluded(opt RawOption) bool {
	id := strings.TrimSpace(opt.ID)
	if id == "" {
		return true
	}
	for _, prefix := range f.idPrefixes {
		if strings.HasPrefix(id, prefix) {
			return true
		}
	}
	return f.captions != nil && f.captions.MatchString(opt.Text)
}

// parseBrandLabel reads "Name (count)". Counts may use space or no-break
// space as a thousands separator.
func parseBrandLabel(label string) (models.Brand, bool) {
	m := brandLabelRegex.FindStringSubmatch(strings.TrimSpace(label))
	if m == nil {
		return models.Brand{}, false
	}
	count, err := strconv.Atoi(nonDigitRegex.ReplaceAllString(m[2], ""))
	if err != nil {
		return models.Brand{}, false
	}
	return models.Brand{
		Name:  strings.ToLower(strings.TrimSpace(m[1])),
		Count: count,
	}, true
}
