package scraper

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

const (
	viewportWidth  = 1920
	viewportHeight = 1080
)

var browserArgs = []string{
	"--disable-notifications",
	"--disable-gpu",
	"--disable-infobars",
	fmt.Sprintf("--window-size=%d,%d", viewportWidth, viewportHeight),
}

type BrowserOptions struct {
	Headless          bool
	NavigationTimeout time.Duration
	UserAgent         string
}

// PlaywrightSession drives one Chromium page for brand discovery.
type PlaywrightSession struct {
	mu         sync.Mutex
	pw         *playwright.Playwright
	browser    playwright.Browser
	context    playwright.BrowserContext
	page       playwright.Page
	navTimeout time.Duration
}

// PlaywrightLauncher starts a new Chromium for every call.
func PlaywrightLauncher(opts BrowserOptions) Launcher {
	return func() (Session, error) {
		return NewPlaywrightSession(opts)
	}
}

func NewPlaywrightSession(opts BrowserOptions) (*PlaywrightSession, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}
	s := &PlaywrightSession{pw: pw, navTimeout: opts.NavigationTimeout}

	s.browser, err = pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args:     browserArgs,
	})
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	contextOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: viewportWidth, Height: viewportHeight},
	}
	if opts.UserAgent != "" {
		contextOpts.UserAgent = playwright.String(opts.UserAgent)
	}
	s.context, err = s.browser.NewContext(contextOpts)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	s.page, err = s.context.NewPage()
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	return s, nil
}

func (s *PlaywrightSession) Goto(url string) error {
	opts := playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}
	if s.navTimeout > 0 {
		opts.Timeout = playwright.Float(float64(s.navTimeout.Milliseconds()))
	}
	if _, err := s.page.Goto(url, opts); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

func (s *PlaywrightSession) WaitVisible(selector string, timeout time.Duration) error {
	return s.waitFor(selector, playwright.WaitForSelectorStateVisible, timeout)
}

func (s *PlaywrightSession) WaitPresent(selector string, timeout time.Duration) error {
	return s.waitFor(selector, playwright.WaitForSelectorStateAttached, timeout)
}

func (s *PlaywrightSession) waitFor(selector string, state *playwright.WaitForSelectorState, timeout time.Duration) error {
	err := s.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   state,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("wait for %s: %w", selector, err)
	}
	return nil
}

func (s *PlaywrightSession) Click(selector string) error {
	if err := s.page.Locator(selector).First().Click(); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	return nil
}

func (s *PlaywrightSession) Options(selector string) ([]RawOption, error) {
	locators, err := s.page.Locator(selector).All()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", selector, err)
	}

	options := make([]RawOption, 0, len(locators))
	for _, loc := range locators {
		id, err := loc.GetAttribute("id")
		if err != nil {
			return nil, fmt.Errorf("read option id: %w", err)
		}
		text, err := loc.InnerText()
		if err != nil {
			return nil, fmt.Errorf("read option label: %w", err)
		}
		options = append(options, RawOption{ID: id, Text: text})
	}
	return options, nil
}

// Close tears down page, context, browser and driver. Safe to call twice.
func (s *PlaywrightSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	if s.page != nil {
		errs = append(errs, s.page.Close())
		s.page = nil
	}
	if s.context != nil {
		errs = append(errs, s.context.Close())
		s.context = nil
	}
	if s.browser != nil {
		errs = append(errs, s.browser.Close())
		s.browser = nil
	}
	if s.pw != nil {
		errs = append(errs, s.pw.Stop())
		s.pw = nil
	}
	return errors.Join(errs...)
}
