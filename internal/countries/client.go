package countries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/JonMunkholm/countrydash/internal/metrics"
)

// Operation names used for metrics and logs.
const (
	OpSync          = "sync"
	OpListRegions   = "list_regions"
	OpListCountries = "list_countries"
)

// Default backend paths, relative to the base URL.
const (
	DefaultSyncPath      = "/countries/sync"
	DefaultRegionsPath   = "/countries/regions"
	DefaultCountriesPath = "/countries/"
)

// Client talks to the country API. It never retries, and transport failures
// reach the caller exactly as net/http reported them.
//
// Concurrent identical reads (same regions call, same country query) issued by
// different page sessions share one backend round-trip. Nothing is cached:
// a call that starts after the shared one finished goes to the backend again.
type Client struct {
	baseURL       string
	syncPath      string
	regionsPath   string
	countriesPath string
	defaultLimit  int

	http    *http.Client
	timeout time.Duration
	metrics *metrics.Metrics
	group   singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every backend call. Zero leaves the http.Client's own
// timeout in place. The client passed to WithHTTPClient is never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithPaths overrides the backend endpoint paths. Empty values keep the default.
func WithPaths(syncPath, regionsPath, countriesPath string) Option {
	return func(c *Client) {
		if syncPath != "" {
			c.syncPath = syncPath
		}
		if regionsPath != "" {
			c.regionsPath = regionsPath
		}
		if countriesPath != "" {
			c.countriesPath = countriesPath
		}
	}
}

// WithDefaultLimit changes the limit used when a Filter leaves it unset.
func WithDefaultLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.defaultLimit = n
		}
	}
}

// WithMetrics records every backend call on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		syncPath:      DefaultSyncPath,
		regionsPath:   DefaultRegionsPath,
		countriesPath: DefaultCountriesPath,
		defaultLimit:  DefaultLimit,
		http:          &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

// TriggerSync asks the backend to refresh its dataset. The request has no body.
func (c *Client) TriggerSync(ctx context.Context) (SyncResult, error) {
	var result SyncResult
	if err := c.do(ctx, OpSync, http.MethodPost, c.syncPath, nil, &result); err != nil {
		return SyncResult{}, err
	}
	return result, nil
}

// ListRegions returns the distinct regions known to the backend.
func (c *Client) ListRegions(ctx context.Context) ([]string, error) {
	v, err := c.shared(ctx, OpListRegions, func(ctx context.Context) (any, error) {
		var regions []string
		if err := c.do(ctx, OpListRegions, http.MethodGet, c.regionsPath, nil, &regions); err != nil {
			return nil, err
		}
		return regions, nil
	})
	if err != nil {
		return nil, err
	}
	return append([]string(nil), v.([]string)...), nil
}

// ListCountries returns the countries matching f, in backend order.
func (c *Client) ListCountries(ctx context.Context, f Filter) ([]Country, error) {
	query := c.countryQuery(f)
	v, err := c.shared(ctx, OpListCountries+"?"+query.Encode(), func(ctx context.Context) (any, error) {
		var list []Country
		if err := c.do(ctx, OpListCountries, http.MethodGet, c.countriesPath, query, &list); err != nil {
			return nil, err
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return append([]Country(nil), v.([]Country)...), nil
}

// countryQuery builds the query string for f. The limit is always present;
// search and region only when non-empty.
func (c *Client) countryQuery(f Filter) url.Values {
	limit := f.Limit
	if limit <= 0 {
		limit = c.defaultLimit
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Region != "" {
		q.Set("region", f.Region)
	}
	return q
}

// shared runs fn once for all concurrent callers using the same key. The
// backend call is detached from any single caller's cancellation; each caller
// still stops waiting when its own context ends.
func (c *Client) shared(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		return fn(detached)
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// do performs one request and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, out any) error {
	start := time.Now()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.RecordBackend(op, metrics.OutcomeNetwork, time.Since(start))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		c.metrics.RecordBackend(op, metrics.OutcomeHTTPError, time.Since(start))
		return &HTTPError{Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		c.metrics.RecordBackend(op, metrics.OutcomeDecode, time.Since(start))
		return fmt.Errorf("%s: decode response: %w", op, err)
	}

	c.metrics.RecordBackend(op, metrics.OutcomeOK, time.Since(start))
	return nil
}
