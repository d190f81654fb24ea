// Copyright 2026 The PlateMap Authors
// SPDX-License-Identifier: Apache-2.0

// Package places collects restaurant listings from the Places API (New)
// and flattens them into restaurant records.
package places

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/platemap/platemap/utils/httputils"
)

// Common errors returned by the client.
var (
	// ErrBudgetExhausted signals that the daily call ceiling was reached.
	// Remaining areas are skipped; already collected data is kept.
	ErrBudgetExhausted = errors.New("daily API call budget exhausted")

	// ErrMissingAPIKey is returned when no credential could be resolved.
	ErrMissingAPIKey = errors.New("missing Places API key")
)

const (
	// DefaultBaseURL is the production searchText endpoint.
	DefaultBaseURL = "https://places.googleapis.com/v1/places:searchText"

	// The response attributes the collector maps. Requesting more wastes quota.
	fieldMask = "places.displayName," +
		"places.rating," +
		"places.userRatingCount," +
		"places.priceLevel," +
		"places.location," +
		"places.primaryTypeDisplayName," +
		"places.formattedAddress," +
		"places.types"
)

// ClientOptions configuration for the collector client.
type ClientOptions struct {
	// APIKey is the caller-held Places API credential.
	APIKey string

	// BaseURL overrides the searchText endpoint, used by tests.
	BaseURL string

	// DataPath is the root directory for raw backups and tables.
	DataPath string

	// MaxResults caps the hits requested per area.
	MaxResults int

	// DailyCallLimit is the process-wide call ceiling, enforced client-side.
	DailyCallLimit int

	// CallDelay is the flat pause between API calls. Policy constant,
	// not adaptive backoff.
	CallDelay time.Duration

	// UserAgent is the User-Agent header to use in HTTP requests.
	UserAgent string

	// Enables light tracing of HTTP requests and responses.
	EnableHTTPTrace bool

	// Enables full HTTP body tracing.
	EnableHTTPBodyTrace bool

	// Dry run, don't persist any change.
	DryRun bool
}

func (o *ClientOptions) withDefaults() *ClientOptions {
	out := *o

	if out.BaseURL == "" {
		out.BaseURL = DefaultBaseURL
	}

	if out.MaxResults <= 0 {
		out.MaxResults = 20
	}

	if out.DailyCallLimit <= 0 {
		out.DailyCallLimit = 5000
	}

	if out.CallDelay <= 0 {
		out.CallDelay = 500 * time.Millisecond
	}

	if out.UserAgent == "" {
		out.UserAgent = "platemap/unknown"
	}

	return &out
}

// Client talks to the search API on behalf of the collector.
type Client struct {
	options   *ClientOptions
	client    *http.Client
	store     *FileStore
	areas     []Area
	callCount int
	Metrics   CollectMetrics
}

// NewClient creates a collector client for the given areas.
func NewClient(options *ClientOptions, areas []Area) (*Client, error) {
	if options == nil {
		options = &ClientOptions{}
	}

	options = options.withDefaults()

	if options.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	var httpLogWriter io.Writer
	if options.EnableHTTPTrace {
		httpLogWriter = os.Stderr
	}

	transport := &http.Transport{
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   4,
		MaxConnsPerHost:       4,
		IdleConnTimeout:       30 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		DisableKeepAlives:     false,
		DisableCompression:    false,
	}

	loggingTransport := &httputils.LoggingRoundTripper{
		Writer:    httpLogWriter,
		DumpBody:  options.EnableHTTPBodyTrace,
		Transport: transport,
	}

	headerTransport := &httputils.AppendRequestHeadersRoundTripper{
		Headers: map[string]string{
			"User-Agent":       options.UserAgent,
			"Content-Type":     "application/json",
			"X-Goog-Api-Key":   options.APIKey,
			"X-Goog-FieldMask": fieldMask,
		},
		Transport: loggingTransport,
	}

	return &Client{
		options: options,
		client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: headerTransport,
		},
		store: NewFileStore(options.DataPath),
		areas: areas,
	}, nil
}

// CallsUsed returns how many API calls this run has issued.
func (c *Client) CallsUsed() int {
	return c.callCount
}

// SearchText issues one text query against the search API and returns
// the raw hits. Returns ErrBudgetExhausted once the daily ceiling is hit.
func (c *Client) SearchText(ctx context.Context, query string) ([]Place, error) {
	if c.callCount >= c.options.DailyCallLimit {
		return nil, fmt.Errorf("%w (%d calls)", ErrBudgetExhausted, c.options.DailyCallLimit)
	}

	body, err := json.Marshal(searchTextRequest{
		TextQuery:      query,
		MaxResultCount: c.options.MaxResults,
		IncludedType:   "restaurant",
	})
	if err != nil {
		return nil, fmt.Errorf("encoding search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.options.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}

	resp, err := c.client.Do(req)

	c.callCount++

	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing resp.Body: %w", cerr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		// keep the first KB of the body, API errors explain themselves there
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

		return nil, fmt.Errorf("search API status %d: %s", resp.StatusCode, string(msg))
	}

	var parsed searchTextResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	return parsed.Places, err
}
