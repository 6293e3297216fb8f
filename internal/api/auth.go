// ABOUTME: Auth endpoint wrappers: login, register, logout, verify
// ABOUTME: Thin typed calls; session persistence lives in internal/session

package api

import (
	"context"
	"net/http"
)

// Login calls POST /auth/login and returns the token and user record.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/auth/login", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register calls POST /auth/register and returns the token and user record.
func (c *Client) Register(ctx context.Context, reg Registration) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/auth/register", reg, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout calls POST /auth/logout. Callers clear local state regardless of
// the outcome; a dead backend must not trap the user in a session.
func (c *Client) Logout(ctx context.Context) error {
	return c.sendJSON(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// Verify calls GET /auth/verify with the current token. It returns
// (true, nil) for a valid session, (false, nil) when the server rejected
// the token, and (false, err) when validity could not be determined
// (network failure). The caller decides what "cannot confirm" means.
func (c *Client) Verify(ctx context.Context) (bool, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/auth/verify", nil)
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, transportError(ctx, c.baseURL, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return true, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return false, nil
	default:
		return false, statusError(resp.StatusCode, nil, "")
	}
}
