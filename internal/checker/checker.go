// Package checker probes a single URL over HTTP and classifies its health.
//
// A check never returns an error: invalid input, network failures and HTTP
// error statuses are all expressed in the returned domain.CheckResult.
package checker

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jonesrussell/north-cloud/link-checker/internal/domain"
)

const (
	acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

	maxIdleConns        = 100
	maxIdleConnsPerHost = 10
	idleConnTimeout     = 90 * time.Second
	tlsHandshakeTimeout = 10 * time.Second
)

// Recorder receives one observation per completed check.
type Recorder interface {
	RecordCheck(outcome string, duration time.Duration)
}

// Option customizes a Checker.
type Option func(*Checker)

// WithHTTPClient replaces the default client. The client must not follow
// redirects on its own.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Checker) {
		c.client = client
	}
}

// WithRecorder reports every verdict to r.
func WithRecorder(r Recorder) Option {
	return func(c *Checker) {
		c.recorder = r
	}
}

// Checker is safe for concurrent use; it keeps no per-check state.
type Checker struct {
	cfg      Config
	client   *http.Client
	recorder Recorder
}

// New creates a Checker.
func New(cfg Config, opts ...Option) *Checker {
	cfg.SetDefaults()

	c := &Checker{
		cfg:    cfg,
		client: newHTTPClient(cfg),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newHTTPClient(cfg Config) *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        maxIdleConns,
		MaxIdleConnsPerHost: maxIdleConnsPerHost,
		IdleConnTimeout:     idleConnTimeout,
		TLSHandshakeTimeout: tlsHandshakeTimeout,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec // operator opt-in
			MinVersion:         tls.VersionTLS12,
		},
	}

	return &http.Client{
		Transport: transport,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// probeResponse is what a check keeps from an HTTP response. Bodies are
// never read.
type probeResponse struct {
	statusCode int
	statusText string
	location   string
}

// Check probes rawURL and returns its verdict.
func (c *Checker) Check(ctx context.Context, rawURL string) domain.CheckResult {
	result := domain.CheckResult{URL: rawURL}

	if !IsValidURL(rawURL) {
		result.IsBroken = true
		result.StatusText = StatusInvalidURL
		result.ErrorMessage = invalidURLMessage
		c.record(result, 0)
		return result
	}

	start := time.Now()
	resp, err := c.probe(ctx, rawURL)
	elapsed := time.Since(start)
	result.ResponseTime = elapsed.Seconds()

	if err != nil {
		markTransportFailure(&result, err)
		c.record(result, elapsed)
		return result
	}

	result.StatusCode = resp.statusCode
	result.StatusText = resp.statusText

	if resp.location != "" && IsRedirect(resp.statusCode) {
		c.followRedirects(ctx, rawURL, resp.location, &result)
	}

	evaluate(&result, c.cfg.SlowThreshold)
	c.record(result, elapsed)
	return result
}

// CheckAll checks urls one after another. It stops early when ctx is done;
// URLs not reached are absent from the map.
func (c *Checker) CheckAll(ctx context.Context, urls []string) map[string]domain.CheckResult {
	results := make(map[string]domain.CheckResult, len(urls))
	for _, u := range urls {
		if ctx.Err() != nil {
			break
		}
		results[u] = c.Check(ctx, u)
	}
	return results
}

// probe sends HEAD, falling back to a single GET on transport failure or 405.
func (c *Checker) probe(ctx context.Context, rawURL string) (probeResponse, error) {
	resp, err := c.do(ctx, http.MethodHead, rawURL, c.cfg.Timeout)
	if err == nil && resp.statusCode != http.StatusMethodNotAllowed {
		return resp, nil
	}
	return c.do(ctx, http.MethodGet, rawURL, c.cfg.getTimeout())
}

// followRedirects walks at most MaxRedirects hops with HEAD requests.
func (c *Checker) followRedirects(ctx context.Context, original, location string, result *domain.CheckResult) {
	for range c.cfg.MaxRedirects {
		target := ResolveRedirect(original, location)
		result.RedirectURL = target

		resp, err := c.do(ctx, http.MethodHead, target, c.cfg.Timeout)
		if err != nil {
			markTransportFailure(result, err)
			return
		}

		result.RedirectCount++
		result.StatusCode = resp.statusCode
		result.StatusText = resp.statusText

		if resp.location == "" || !IsRedirect(resp.statusCode) {
			return
		}
		location = resp.location
	}
}

func (c *Checker) do(ctx context.Context, method, target string, timeout time.Duration) (probeResponse, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, target, http.NoBody)
	if err != nil {
		return probeResponse{}, fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := c.client.Do(req)
	if err != nil {
		return probeResponse{}, err
	}
	_ = resp.Body.Close()

	return probeResponse{
		statusCode: resp.StatusCode,
		statusText: reasonPhrase(resp),
		location:   resp.Header.Get("Location"),
	}, nil
}

func (c *Checker) record(result domain.CheckResult, elapsed time.Duration) {
	if c.recorder != nil {
		c.recorder.RecordCheck(result.Outcome(), elapsed)
	}
}

// evaluate applies the final classification once redirects are resolved.
// Broken always wins over warning. Any successfully traversed redirect
// leaves the link flagged as a warning even when the target answers 2xx.
func evaluate(r *domain.CheckResult, slowThreshold time.Duration) {
	if r.IsBroken {
		r.IsWarning = false
		return
	}

	switch {
	case r.StatusCode >= http.StatusBadRequest:
		r.IsBroken = true
		r.IsWarning = false
		return
	case IsRedirect(r.StatusCode):
		r.IsWarning = true
	case r.ResponseTime > slowThreshold.Seconds():
		r.IsWarning = true
		if r.StatusText == "" || r.StatusText == "OK" {
			r.StatusText = StatusSlow
		}
	}

	if r.RedirectCount > 0 {
		r.IsWarning = true
	}
}

func markTransportFailure(r *domain.CheckResult, err error) {
	r.IsBroken = true
	r.IsWarning = false
	r.StatusText = ClassifyError(err)
	r.ErrorMessage = err.Error()
}

// reasonPhrase extracts "Not Found" from "404 Not Found".
func reasonPhrase(resp *http.Response) string {
	phrase := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if phrase == "" {
		phrase = http.StatusText(resp.StatusCode)
	}
	return phrase
}

// IsValidURL accepts absolute http and https URLs with a host.
func IsValidURL(raw string) bool {
	if raw == "" || strings.TrimSpace(raw) != raw {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Hostname() != ""
}
