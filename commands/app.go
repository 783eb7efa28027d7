package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"otomoto_scrooper/config"
	"otomoto_scrooper/export"
	"otomoto_scrooper/httputil"
	"otomoto_scrooper/logging"
	"otomoto_scrooper/media"
	"otomoto_scrooper/models"
	"otomoto_scrooper/scraper"
)

// overrides are persistent flags that win over the environment when set.
type overrides struct {
	outputDir   string
	headless    bool
	partial     bool
	metricsAddr string
	logLevel    string
}

func (o overrides) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("output-dir") {
		cfg.Export.OutputDir = o.outputDir
	}
	if changed("headless") {
		cfg.Discovery.Headless = o.headless
	}
	if changed("partial") {
		cfg.Scraper.PartialOnError = o.partial
	}
	if changed("metrics-addr") {
		cfg.MetricsAddr = o.metricsAddr
	}
	if changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
}

// app holds what every command shares for one invocation.
type app struct {
	cfg     *config.Config
	clients *httputil.Clients
	metrics *scraper.Metrics
	logFile *logging.RotatingWriter
	server  *http.Server
	log     zerolog.Logger
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	flags.apply(cmd, cfg)

	a := &app{cfg: cfg}

	a.logFile, err = logging.Setup(cfg.LogFile, cfg.LogLevel)
	a.log = logging.For("main")
	if err != nil {
		a.log.Warn().Err(err).Msg("Could not set up file logging")
	}

	a.log.Info().Msgf("Site: %s (%s)", cfg.Site.Name, cfg.Site.ID)
	if cfg.Proxy.URL != "" {
		a.log.Info().Msg("Using proxy from PROXY_URL")
	}

	a.clients = httputil.NewClients(&cfg.Proxy, cfg.Site.UserAgent)
	a.metrics = scraper.NewMetrics()

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(a.metrics.Registry, promhttp.HandlerOpts{}))
		a.server = &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		go func() {
			if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.log.Error().Err(err).Msg("Metrics server stopped")
			}
		}()
		a.log.Info().Msgf("Serving metrics on %s/metrics", cfg.MetricsAddr)
	}

	return a, nil
}

func (a *app) close() {
	if a.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = a.server.Shutdown(ctx)
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

func (a *app) discoverer() *scraper.Discoverer {
	launch := scraper.PlaywrightLauncher(scraper.BrowserOptions{
		Headless:          a.cfg.Discovery.Headless,
		NavigationTimeout: a.cfg.Discovery.NavigationTimeout(),
		UserAgent:         a.cfg.Site.UserAgent,
	})
	d := scraper.NewDiscoverer(a.cfg.Site, launch, a.cfg.Discovery.Timeout())
	d.SetMetrics(a.metrics)
	return d
}

func (a *app) fetcher() *scraper.Fetcher {
	f := scraper.NewFetcher(a.cfg.Site, scraper.FetcherOptions{
		PageDelay:      a.cfg.Scraper.PageDelay(),
		Timeout:        a.cfg.Scraper.FetchTimeout(),
		PartialOnError: a.cfg.Scraper.PartialOnError,
		Transport:      a.clients.Scraping,
	})
	f.SetMetrics(a.metrics)
	return f
}

// run discovers, selects, fetches and exports. A fetch failure with partial
// results still exports what was read, then returns the failure.
func (a *app) run(ctx context.Context, sel scraper.Selector, choose formatChooser) error {
	orchestrator := scraper.NewOrchestrator(a.discoverer(), a.fetcher())

	run, fetchErr := orchestrator.Run(ctx, sel)
	if run == nil {
		return fetchErr
	}
	if fetchErr != nil {
		a.log.Warn().Err(fetchErr).Msg("Fetch stopped early")
	}

	if len(run.Result.Records) == 0 {
		a.log.Warn().Msg("No listings found, nothing to export")
		printSummary(os.Stdout, run, nil)
		return fetchErr
	}

	formats, err := choose(ctx)
	if err != nil {
		return err
	}

	exporters, err := a.exporters(formats, run.Selection)
	if err != nil {
		return err
	}

	var files []string
	for _, e := range exporters {
		path, err := e.Export(ctx, run.Result.Records)
		if err != nil {
			return fmt.Errorf("export %s: %w", e.Format(), err)
		}
		a.log.Info().Msgf("Wrote %s", path)
		files = append(files, path)
	}

	printSummary(os.Stdout, run, files)
	return fetchErr
}

func (a *app) exporters(formats []export.Format, selection models.Selection) ([]export.Exporter, error) {
	dir := a.cfg.Export.OutputDir

	var out []export.Exporter
	for _, f := range formats {
		switch f {
		case export.FormatCSV:
			out = append(out, export.NewCSVExporter(dir))
		case export.FormatPDF:
			images, err := media.NewImageFetcher(a.clients.Images, a.cfg.Export.ImageCacheSize)
			if err != nil {
				return nil, err
			}
			out = append(out, export.NewPDFExporter(dir, a.cfg.Export.FontPath, images))
		case export.FormatSQLite:
			out = append(out, export.NewSQLiteExporter(dir, selection))
		default:
			return nil, fmt.Errorf("unsupported export format %q", f)
		}
	}
	return out, nil
}
