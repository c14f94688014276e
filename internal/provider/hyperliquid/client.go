package hyperliquid

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultVaultsURL = "https://stats-data.hyperliquid.xyz/Mainnet/vaults"
	DefaultInfoURL   = "https://api-ui.hyperliquid.xyz/info"
	DefaultUserAgent = "Mozilla/5.0 (Linux; Android 6.0; Nexus 5 Build/MRA58N) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/141.0.0.0 Mobile Safari/537.36"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("API status %d: %s", e.Code, body)
}

// Options configures a Client. Zero timeouts use InfoTimeout and FillsTimeout.
type Options struct {
	VaultsURL    string
	InfoURL      string
	UserAgent    string
	InfoTimeout  time.Duration // listing and vaultDetails calls
	FillsTimeout time.Duration // userFillsByTime call
}

// Client issues single-attempt requests against the Hyperliquid stats and info endpoints.
type Client struct {
	http         *resty.Client
	vaultsURL    string
	infoURL      string
	infoTimeout  time.Duration
	fillsTimeout time.Duration
}

// NewClient constructs a Client. Empty URLs fall back to the public endpoints.
func NewClient(opts Options) *Client {
	if opts.VaultsURL == "" {
		opts.VaultsURL = DefaultVaultsURL
	}
	if opts.InfoURL == "" {
		opts.InfoURL = DefaultInfoURL
	}
	if opts.InfoTimeout <= 0 {
		opts.InfoTimeout = InfoTimeout
	}
	if opts.FillsTimeout <= 0 {
		opts.FillsTimeout = FillsTimeout
	}
	return &Client{
		http:         newRestyClient(opts.UserAgent),
		vaultsURL:    opts.VaultsURL,
		infoURL:      opts.InfoURL,
		infoTimeout:  opts.InfoTimeout,
		fillsTimeout: opts.FillsTimeout,
	}
}

// Close closes connections
func (c *Client) Close() error {
	c.http.GetClient().CloseIdleConnections()
	return nil
}

type vaultDetailsRequest struct {
	Type         string `json:"type"`
	VaultAddress string `json:"vaultAddress"`
}

type userFillsRequest struct {
	AggregateByTime bool   `json:"aggregateByTime"`
	StartTime       int64  `json:"startTime"`
	Type            string `json:"type"`
	User            string `json:"user"`
}

// ListVaults fetches every vault with its summary and pnl series.
func (c *Client) ListVaults(ctx context.Context) ([]VaultEntry, error) {
	body, err := c.do(ctx, c.infoTimeout, resty.MethodGet, c.vaultsURL, nil)
	if err != nil {
		return nil, err
	}
	var vaults []VaultEntry
	if err := json.Unmarshal(body, &vaults); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	return vaults, nil
}

// VaultDetails fetches the detail object of one vault.
func (c *Client) VaultDetails(ctx context.Context, vaultAddress string) (*VaultDetails, error) {
	body, err := c.do(ctx, c.infoTimeout, resty.MethodPost, c.infoURL, vaultDetailsRequest{
		Type:         "vaultDetails",
		VaultAddress: vaultAddress,
	})
	if err != nil {
		return nil, err
	}
	var d VaultDetails
	if err := json.Unmarshal(body, &d); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	return &d, nil
}

// UserFillsByTime fetches every fill of user since epoch, aggregated by time.
func (c *Client) UserFillsByTime(ctx context.Context, user string) ([]Fill, error) {
	body, err := c.do(ctx, c.fillsTimeout, resty.MethodPost, c.infoURL, userFillsRequest{
		AggregateByTime: true,
		StartTime:       0,
		Type:            "userFillsByTime",
		User:            user,
	})
	if err != nil {
		return nil, err
	}
	var fills []Fill
	if err := json.Unmarshal(body, &fills); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	return fills, nil
}

// do runs one request bounded by timeout and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, timeout time.Duration, method, url string, payload any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req := c.http.R().SetContext(ctx)
	if payload != nil {
		req.SetBody(payload)
	}
	resp, err := req.Execute(method, url)
	if err != nil {
		return nil, fmt.Errorf("API call failed: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, &StatusError{Code: resp.StatusCode(), Body: string(resp.Body())}
	}
	return resp.Body(), nil
}
