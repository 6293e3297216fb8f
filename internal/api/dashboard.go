// ABOUTME: Dashboard endpoint wrappers: overview and stats aggregates

package api

import "context"

// DashboardOverview calls GET /dashboard/overview.
func (c *Client) DashboardOverview(ctx context.Context) (*DashboardOverview, error) {
	var out DashboardOverview
	if err := c.getJSON(ctx, "/dashboard/overview", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DashboardStats calls GET /dashboard/stats.
func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var out DashboardStats
	if err := c.getJSON(ctx, "/dashboard/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
