package httputil

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otomoto_scrooper/config"
)

func TestNewTransport_UsesProxy(t *testing.T) {
	transport := NewTransport("http://proxy.local:3128")

	req, err := http.NewRequest("GET", "https://www.otomoto.pl/osobowe/bmw?page=1", nil)
	require.NoError(t, err)

	proxy, err := transport.Proxy(req)
	require.NoError(t, err)
	require.NotNil(t, proxy)
	assert.Equal(t, "proxy.local:3128", proxy.Host)
}

func TestNewTransport_IgnoresInvalidProxy(t *testing.T) {
	assert.Nil(t, NewTransport("not a url").Proxy)
	assert.Nil(t, NewTransport("").Proxy)
}

func TestNewClients_ImageHeaders(t *testing.T) {
	clients := NewClients(&config.ProxyConfig{}, "test-agent")

	assert.Equal(t, "test-agent", clients.Images.Header.Get("User-Agent"))
	assert.Equal(t, "image/*,*/*", clients.Images.Header.Get("Accept"))
	assert.NotNil(t, clients.Scraping)
}
