// ABOUTME: Nutrition endpoint wrappers: history, daily summary, goals
// ABOUTME: History responses keep their raw bytes for shape reconciliation

package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// HistoryResponse carries the decoded history fields plus the raw body so
// the loader can run the recent-analyses precedence shim against it.
type HistoryResponse struct {
	NutritionHistory []DailyNutrition `json:"nutrition_history"`
	FoodAnalyses     []AnalysisEntry  `json:"food_analyses"`
	Summary          NutritionSummary `json:"summary"`
	UserGoals        UserGoals        `json:"user_goals"`

	Raw []byte `json:"-"`
}

// NutritionHistory calls GET /nutrition/history?days=N.
func (c *Client) NutritionHistory(ctx context.Context, days int) (*HistoryResponse, error) {
	q := url.Values{}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}
	body, err := c.getRaw(ctx, "/nutrition/history", q)
	if err != nil {
		return nil, err
	}
	out, err := decodeHistory(body)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetDailySummary calls GET /nutrition/daily-summary?date= (date optional,
// empty means today).
func (c *Client) GetDailySummary(ctx context.Context, date string) (*DailySummary, []byte, error) {
	q := url.Values{}
	if date != "" {
		q.Set("date", date)
	}
	body, err := c.getRaw(ctx, "/nutrition/daily-summary", q)
	if err != nil {
		return nil, nil, err
	}
	var out DailySummary
	if err := unmarshalLenient(body, &out); err != nil {
		return nil, nil, err
	}
	return &out, body, nil
}

// NutritionGoals calls GET /nutrition/goals.
func (c *Client) NutritionGoals(ctx context.Context) (*UserGoals, error) {
	var out UserGoals
	if err := c.getJSON(ctx, "/nutrition/goals", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateNutritionGoals calls PUT /nutrition/goals.
func (c *Client) UpdateNutritionGoals(ctx context.Context, goals UserGoals) error {
	return c.sendJSON(ctx, http.MethodPut, "/nutrition/goals", goals, nil)
}
