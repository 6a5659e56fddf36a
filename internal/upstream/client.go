// Package upstream implements the synchronous request wrapper around the
// gRust REST API. It attaches the stored credential as the jwt cookie,
// normalizes the {success, data, error} envelope, and classifies failures
// into the domain error taxonomy. It never retries and never caches.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/grust-community/admin-panel/internal/api/metrics"
	"github.com/grust-community/admin-panel/internal/core/domain"
)

const defaultTimeout = 30 * time.Second

// Config captures the settings for reaching the upstream API.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is the concrete UpstreamClient. The credential is an explicit
// argument on every call rather than ambient state, so tests can exercise the
// wrapper deterministically.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// New creates a Client. A default timeout is applied when none is provided.
func New(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Do performs a single upstream call and decodes the response envelope.
// endpoint is the route template used for metric labels; path carries the
// concrete values and is only used for the request itself and logging.
//
// Non-2xx responses map to *domain.UpstreamError so handlers can forward the
// original status with a generic body. Transport and decode failures map to
// domain.ErrUpstreamUnreachable; the original cause is logged server-side
// only and never surfaced to clients.
func (c *Client) Do(ctx context.Context, cred domain.Credential, method, endpoint, path string, query url.Values, body any) (*domain.UpstreamEnvelope, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "gRust-Panel/2.0")
	req.AddCookie(&http.Cookie{Name: "jwt", Value: cred.Token})

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("upstream transport failure")
		return nil, fmt.Errorf("%w: %s %s", domain.ErrUpstreamUnreachable, method, path)
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.UpstreamError{Status: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error().Err(err).Str("path", path).Msg("upstream body read failure")
		return nil, fmt.Errorf("%w: read body", domain.ErrUpstreamUnreachable)
	}

	var env domain.UpstreamEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.log.Error().Err(err).Str("path", path).Msg("upstream returned invalid JSON")
		return nil, fmt.Errorf("%w: invalid JSON", domain.ErrUpstreamUnreachable)
	}
	env.Raw = raw

	return &env, nil
}
