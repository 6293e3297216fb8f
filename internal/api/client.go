// ABOUTME: HTTP client for the NutriChef nutrition analysis API
// ABOUTME: Injects bearer tokens, intercepts 401s, normalizes all errors

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Default timeouts. The analyze endpoint runs a multi-second model
// inference, so it gets a longer budget than ordinary calls.
const (
	DefaultTimeout        = 30 * time.Second
	DefaultAnalyzeTimeout = 60 * time.Second
)

// TokenSource returns the current bearer token, or "" when logged out.
// The client consults it per request so a mid-session login or logout
// takes effect immediately.
type TokenSource func() string

// ForceLogoutPredicate decides whether a 401 response means the session is
// truly dead (force logout) versus an endpoint-specific failure that should
// not nuke the session. It receives the request path and the raw error body.
type ForceLogoutPredicate func(path string, body []byte) bool

// DefaultForceLogoutPredicate reproduces the source heuristic: only treat a
// 401 as session death when it came from an /auth/ endpoint or the error
// message mentions the token. Fragile but deliberate; replace it via
// Options if the backend grows a reliable error code.
func DefaultForceLogoutPredicate(path string, body []byte) bool {
	if strings.Contains(path, "/auth/") {
		return true
	}
	return strings.Contains(strings.ToLower(decodeErrorBody(body)), "token")
}

// Options configures optional client behavior.
type Options struct {
	Timeout        time.Duration
	AnalyzeTimeout time.Duration

	// TokenSource supplies the bearer token; nil means unauthenticated.
	TokenSource TokenSource

	// ForceLogout decides 401 handling; nil uses DefaultForceLogoutPredicate.
	ForceLogout ForceLogoutPredicate

	// OnSessionExpired runs when a 401 passes the ForceLogout predicate.
	// The TUI uses it to drop the session and redirect to the login prompt.
	OnSessionExpired func()
}

// Client is the API client for the NutriChef backend.
type Client struct {
	baseURL          string
	httpClient       *http.Client
	analyzeClient    *http.Client
	tokenSource      TokenSource
	forceLogout      ForceLogoutPredicate
	onSessionExpired func()
}

// New creates a client with default options.
func New(baseURL string) *Client {
	return NewWithOptions(baseURL, Options{})
}

// NewWithOptions creates a client with the given base URL and options.
func NewWithOptions(baseURL string, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.AnalyzeTimeout <= 0 {
		opts.AnalyzeTimeout = DefaultAnalyzeTimeout
	}
	if opts.ForceLogout == nil {
		opts.ForceLogout = DefaultForceLogoutPredicate
	}
	return &Client{
		baseURL:          strings.TrimRight(baseURL, "/"),
		httpClient:       &http.Client{Timeout: opts.Timeout},
		analyzeClient:    &http.Client{Timeout: opts.AnalyzeTimeout},
		tokenSource:      opts.TokenSource,
		forceLogout:      opts.ForceLogout,
		onSessionExpired: opts.OnSessionExpired,
	}
}

// BaseURL returns the configured backend URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetTokenSource replaces the token source. Used by cobra commands that
// construct the client before restoring the session.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokenSource = ts
}

// SetOnSessionExpired replaces the expiry callback. The TUI sets this after
// the program is constructed so the callback can post into its message loop.
func (c *Client) SetOnSessionExpired(fn func()) {
	c.onSessionExpired = fn
}

// newRequest builds a request with auth and tracing headers attached.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.tokenSource != nil {
		if token := c.tokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

// do executes a request and decodes a 2xx JSON body into out (out may be
// nil for endpoints whose body is irrelevant). Non-2xx responses become
// APIErrors, with 401s routed through the force-logout predicate first.
func (c *Client) do(hc *http.Client, req *http.Request, out interface{}) error {
	resp, err := hc.Do(req)
	if err != nil {
		return transportError(req.Context(), c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if resp.StatusCode == http.StatusUnauthorized {
			c.handleUnauthorized(req.URL.Path, body)
		}
		return statusError(resp.StatusCode, body, "")
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return decodeError(err)
	}
	return nil
}

// doRaw is do for callers that normalize the body themselves.
func (c *Client) doRaw(hc *http.Client, req *http.Request) ([]byte, error) {
	resp, err := hc.Do(req)
	if err != nil {
		return nil, transportError(req.Context(), c.baseURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, decodeError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusUnauthorized {
			c.handleUnauthorized(req.URL.Path, body)
		}
		return nil, statusError(resp.StatusCode, body, "")
	}
	return body, nil
}

func (c *Client) handleUnauthorized(path string, body []byte) {
	if c.forceLogout != nil && c.forceLogout(path, body) && c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}

// getJSON issues a GET and decodes into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.do(c.httpClient, req, out)
}

// getRaw issues a GET and returns the raw body for shape normalization.
func (c *Client) getRaw(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return c.doRaw(c.httpClient, req)
}

// sendJSON issues a method with a JSON body and decodes into out.
func (c *Client) sendJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal input: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(c.httpClient, req, out)
}
