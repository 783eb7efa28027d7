package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultSitePath = "config/site.yaml"

type Config struct {
	Scraper     ScraperConfig
	Discovery   DiscoveryConfig
	Export      ExportConfig
	Proxy       ProxyConfig
	LogFile     string
	LogLevel    string
	MetricsAddr string
	Site        *SiteConfig
}

type ScraperConfig struct {
	PageDelayMS    int
	FetchTimeoutMS int
	PartialOnError bool
}

type DiscoveryConfig struct {
	Headless            bool
	TimeoutMS           int
	NavigationTimeoutMS int
}

type ExportConfig struct {
	OutputDir      string
	FontPath       string
	ImageCacheSize int
}

type ProxyConfig struct {
	URL string
}

// SiteConfig holds everything that depends on the target site's markup.
type SiteConfig struct {
	ID         string          `yaml:"id"`
	Name       string          `yaml:"name"`
	LandingURL string          `yaml:"landing_url"`
	ListingURL string          `yaml:"listing_url"`
	UserAgent  string          `yaml:"user_agent"`
	Discovery  DiscoveryLayout `yaml:"discovery"`
	Listing    ListingLayout   `yaml:"listing"`
}

type DiscoveryLayout struct {
	ConsentButton      string   `yaml:"consent_button"`
	BrandInput         string   `yaml:"brand_input"`
	BrandOption        string   `yaml:"brand_option"`
	ExcludedIDPrefixes []string `yaml:"excluded_id_prefixes"`
	ExcludedCaptions   string   `yaml:"excluded_captions"`
}

// ListingLayout is the positional markup of one listing node. Selectors are
// relative to the node.
type ListingLayout struct {
	Node           string `yaml:"node"`
	IDAttr         string `yaml:"id_attr"`
	Image          string `yaml:"image"`
	Title          string `yaml:"title"`
	Price          string `yaml:"price"`
	Currency       string `yaml:"currency"`
	Summary        string `yaml:"summary"`
	Mileage        string `yaml:"mileage"`
	FuelType       string `yaml:"fuel_type"`
	Gearbox        string `yaml:"gearbox"`
	ProductionDate string `yaml:"production_date"`
	Location       string `yaml:"location"`
}

func DefaultSite() *SiteConfig {
	return &SiteConfig{
		ID:         "otomoto",
		Name:       "Otomoto",
		LandingURL: "https://www.otomoto.pl/",
		ListingURL: "https://www.otomoto.pl/osobowe",
		UserAgent:  "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/122.0.0.0 Safari/537.36",
		Discovery: DiscoveryLayout{
			ConsentButton:      "#onetrust-accept-btn-handler",
			BrandInput:         `xpath=//*[@id="__next"]/div[1]/div/div/main/div[1]/article/article/fieldset/form/section[1]/div[1]/div[1]/div/input`,
			BrandOption:        `xpath=//div[@role="radio" and @type="selectable"]`,
			ExcludedIDPrefixes: []string{"top-make-", "-1"},
			ExcludedCaptions:   `(?i)Popularne|Alfabetycznie|Wybierz|Wszystko`,
		},
		Listing: ListingLayout{
			Node:           "article[data-id]",
			IDAttr:         "data-id",
			Image:          "img",
			Title:          "a[target*='_self']",
			Price:          "section > div:nth-of-type(4) > div:nth-of-type(2) > div > h3",
			Currency:       "section > div:nth-of-type(4) > div:nth-of-type(2) > div > p",
			Summary:        "section > div:nth-of-type(2) > p",
			Mileage:        "section > div:nth-of-type(3) > dl:nth-of-type(1) > dd:nth-of-type(1)",
			FuelType:       "section > div:nth-of-type(3) > dl:nth-of-type(1) > dd:nth-of-type(2)",
			Gearbox:        "section > div:nth-of-type(3) > dl:nth-of-type(1) > dd:nth-of-type(3)",
			ProductionDate: "section > div:nth-of-type(3) > dl:nth-of-type(1) > dd:nth-of-type(4)",
			Location:       "section > div:nth-of-type(3) > dl:nth-of-type(2) > dd:nth-of-type(1) > p",
		},
	}
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Scraper: ScraperConfig{
			PageDelayMS:    getEnvInt("PAGE_DELAY_MS", 0),
			FetchTimeoutMS: getEnvInt("FETCH_TIMEOUT_MS", 15000),
			PartialOnError: getEnvBool("PARTIAL_ON_ERROR", false),
		},
		Discovery: DiscoveryConfig{
			Headless:            getEnvBool("HEADLESS", true),
			TimeoutMS:           getEnvInt("DISCOVERY_TIMEOUT_MS", 1000),
			NavigationTimeoutMS: getEnvInt("NAVIGATION_TIMEOUT_MS", 30000),
		},
		Export: ExportConfig{
			OutputDir:      getEnv("OUTPUT_DIR", "."),
			FontPath:       os.Getenv("FONT_PATH"),
			ImageCacheSize: getEnvInt("IMAGE_CACHE_SIZE", 128),
		},
		Proxy: ProxyConfig{
			URL: os.Getenv("PROXY_URL"),
		},
		LogFile:     getEnv("LOG_FILE", "scraper.log"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		MetricsAddr: os.Getenv("METRICS_ADDR"),
	}

	site, err := LoadSite(getEnv("SITE_CONFIG", defaultSitePath))
	if err != nil {
		return nil, err
	}
	cfg.Site = site

	return cfg, nil
}

// LoadSite reads a site layout on top of DefaultSite. A missing file is not
// an error.
func LoadSite(path string) (*SiteConfig, error) {
	site := DefaultSite()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return site, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, site); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return site, nil
}

func (c ScraperConfig) PageDelay() time.Duration {
	return time.Duration(c.PageDelayMS) * time.Millisecond
}

func (c ScraperConfig) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}

func (c DiscoveryConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

func (c DiscoveryConfig) NavigationTimeout() time.Duration {
	return time.Duration(c.NavigationTimeoutMS) * time.Millisecond
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}
