// Package apollo is a client for the Apollo.io people API, covering the
// match and enrich endpoints and the verified-value extraction rules the
// contact extractor is built on.
package apollo

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL        = "https://api.apollo.io/v1"
	defaultTimeout        = 30 * time.Second
	defaultRateLimitDelay = 400 * time.Millisecond
)

// Client performs people lookups against the Apollo API. A nil person
// with a nil error means the provider had no data for the query; callers
// treat that as an empty result, not a failure.
type Client interface {
	MatchPerson(ctx context.Context, linkedinURL string) (*Person, error)
	EnrichPerson(ctx context.Context, req EnrichRequest) (*Person, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout overrides the default per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.http.Timeout = d
	}
}

// WithRateLimitDelay sets the minimum spacing between outbound requests,
// shared across both endpoints. Zero disables rate limiting.
func WithRateLimitDelay(d time.Duration) Option {
	return func(c *httpClient) {
		if d <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates an Apollo API client. The key is sent on every
// request and never logged.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		limiter: rate.NewLimiter(rate.Every(defaultRateLimitDelay), 1),
		http: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// MatchPerson looks a person up by LinkedIn profile URL via people/match.
func (c *httpClient) MatchPerson(ctx context.Context, linkedinURL string) (*Person, error) {
	req := matchRequest{Person: matchParams{LinkedInURL: strings.TrimSpace(linkedinURL)}}
	return c.postPerson(ctx, "/people/match", req)
}

// EnrichPerson requests full enrichment via people/enrich, always asking
// the provider to reveal phone numbers.
func (c *httpClient) EnrichPerson(ctx context.Context, req EnrichRequest) (*Person, error) {
	req.RevealPhoneNumber = true
	return c.postPerson(ctx, "/people/enrich", req)
}

// wait blocks until the rate limiter allows one request, or ctx is cancelled.
func (c *httpClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

func (c *httpClient) postPerson(ctx context.Context, path string, payload any) (*Person, error) {
	if err := c.wait(ctx); err != nil {
		return nil, eris.Wrap(err, "apollo: rate limit")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, eris.Wrap(err, "apollo: marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "apollo: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "apollo: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "apollo: read response")
	}

	// Not found is a normal outcome for a people lookup, not an error.
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, eris.Errorf("apollo: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result personResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		zap.L().Warn("apollo: undecodable response body, treating as no data",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, nil
	}

	return result.Person, nil
}
