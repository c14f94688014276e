package hyperliquid

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// InfoTimeout bounds the vault listing and vaultDetails calls.
	InfoTimeout = 10 * time.Second
	// FillsTimeout bounds the userFillsByTime call.
	FillsTimeout = 30 * time.Second
)

// baseTransportConfig returns the shared HTTP transport configuration used by Hyperliquid clients.
func baseTransportConfig() *http.Transport {
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		ResponseHeaderTimeout: FillsTimeout,
		TLSHandshakeTimeout:   10 * time.Second,
		MaxIdleConns:          2,
		MaxIdleConnsPerHost:   1,
		IdleConnTimeout:       90 * time.Second,
	}
}

// newRestyClient creates a resty client with no retries; timeouts are applied per call.
func newRestyClient(userAgent string) *resty.Client {
	c := resty.NewWithClient(&http.Client{Transport: baseTransportConfig()})
	c.SetRetryCount(0)
	c.SetHeader("Content-Type", "application/json")
	if userAgent != "" {
		c.SetHeader("User-Agent", userAgent)
	}
	return c
}
