// ABOUTME: User endpoint wrappers: profile, preferences, password change

package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// GetProfile calls GET /users/profile and normalizes the envelope: some
// backend versions wrap the record under "user", others inline it.
func (c *Client) GetProfile(ctx context.Context) (*UserSummary, error) {
	body, err := c.getRaw(ctx, "/users/profile", nil)
	if err != nil {
		return nil, err
	}
	return NormalizeProfile(body)
}

// UpdateProfile calls PUT /users/profile.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) error {
	return c.sendJSON(ctx, http.MethodPut, "/users/profile", update, nil)
}

// GetPreferences calls GET /users/preferences.
func (c *Client) GetPreferences(ctx context.Context) (map[string]json.RawMessage, error) {
	out := map[string]json.RawMessage{}
	if err := c.getJSON(ctx, "/users/preferences", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdatePreferences calls PUT /users/preferences.
func (c *Client) UpdatePreferences(ctx context.Context, prefs map[string]json.RawMessage) error {
	return c.sendJSON(ctx, http.MethodPut, "/users/preferences", prefs, nil)
}

// ChangePassword calls POST /users/change-password.
func (c *Client) ChangePassword(ctx context.Context, change PasswordChange) error {
	return c.sendJSON(ctx, http.MethodPost, "/users/change-password", change, nil)
}
