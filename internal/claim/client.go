package claim

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/warpdl/autoclaim/common"
)

// maxPageSize bounds the claim page body read into memory.
const maxPageSize = 8 << 20

var claimBody = []byte(`{"type":"daily"}`)

// Config configures a Client. Zero fields take the defaults from common.
type Config struct {
	PageURL   string
	APIURL    string
	Cookie    string
	UserAgent string
	Timeout   time.Duration
	// Headers replace the default header with the same key, or are added.
	Headers Headers
}

func (c Config) withDefaults() Config {
	if c.PageURL == "" {
		c.PageURL = common.DefaultPageURL
	}
	if c.APIURL == "" {
		c.APIURL = common.DefaultAPIURL
	}
	if c.UserAgent == "" {
		c.UserAgent = common.DefaultUserAgent
	}
	if c.Timeout <= 0 {
		c.Timeout = common.DefaultTimeout
	}
	return c
}

// Client talks to the claim page and the claim API.
type Client struct {
	hc      *http.Client
	pageURL string
	apiURL  string
	headers Headers
}

// NewClient builds a Client. The cookie is sent as given, callers normalize it.
func NewClient(cfg Config) *Client {
	cfg = cfg.withDefaults()
	headers := DefaultHeaders(cfg.UserAgent, cfg.PageURL, cfg.Cookie)
	for _, h := range cfg.Headers {
		headers.Update(h.Key, h.Value)
	}
	return &Client{
		hc:      &http.Client{Timeout: cfg.Timeout},
		pageURL: cfg.PageURL,
		apiURL:  cfg.APIURL,
		headers: headers,
	}
}

// FetchPage GETs the claim page and returns its body.
// A non-200 response is reported as *StatusError.
func (c *Client) FetchPage(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, c.pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("get page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", statusError("get page", resp)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return "", fmt.Errorf("read page: %w", err)
	}
	return string(body), nil
}

// Submit POSTs the daily claim. A non-200 response is reported as *StatusError.
func (c *Client) Submit(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodPost, c.apiURL, claimBody)
	if err != nil {
		return fmt.Errorf("claim request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError("claim request", resp)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	return nil
}

func (c *Client) do(ctx context.Context, method, url string, body []byte) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return nil, err
	}
	c.headers.Set(req.Header)
	return c.hc.Do(req)
}

func statusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: string(body)}
}

// AsStatusError unwraps err into a *StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
