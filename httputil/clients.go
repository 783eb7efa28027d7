package httputil

import (
	"crypto/tls"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"otomoto_scrooper/config"
)

// Clients carries the transports shared by page fetches and image downloads.
type Clients struct {
	Scraping http.RoundTripper // proxied when PROXY_URL is set
	Images   *resty.Client
}

func NewClients(proxyCfg *config.ProxyConfig, userAgent string) *Clients {
	transport := NewTransport(proxyCfg.URL)

	images := resty.New().
		SetTransport(transport).
		SetTimeout(30*time.Second).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "image/*,*/*")

	return &Clients{
		Scraping: transport,
		Images:   images,
	}
}

// NewTransport returns an HTTP/1.1 transport, proxied when proxyURL parses.
func NewTransport(proxyURL string) *http.Transport {
	transport := &http.Transport{
		ForceAttemptHTTP2: false,
		TLSNextProto:      make(map[string]func(string, *tls.Conn) http.RoundTripper),
		IdleConnTimeout:   90 * time.Second,
	}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil && u.Host != "" {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return transport
}
