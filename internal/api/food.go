// ABOUTME: Food analysis endpoint wrappers: analyze upload, session CRUD
// ABOUTME: Multipart image submission plus detected-food edit operations

package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// AnalyzeRequest describes a food photo submission.
type AnalyzeRequest struct {
	ImagePath string
	MealType  string // breakfast, lunch, dinner, snack
	Notes     string
}

// AnalyzeFood uploads an image to POST /food/analyze and returns the
// normalized analysis result. This call uses the long analyze timeout.
func (c *Client) AnalyzeFood(ctx context.Context, in AnalyzeRequest) (*AnalysisResult, error) {
	f, err := os.Open(in.ImagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("image", filepath.Base(in.ImagePath))
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if in.MealType != "" {
		mw.WriteField("meal_type", in.MealType)
	}
	if in.Notes != "" {
		mw.WriteField("notes", in.Notes)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/food/analyze", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	body, err := c.doRaw(c.analyzeClient, req)
	if err != nil {
		return nil, err
	}
	return NormalizeAnalysis(body)
}

// GetAnalysisSession fetches the authoritative result for a session from
// GET /food/session/:id. Edit and remove operations re-fetch through here
// instead of applying local deltas.
func (c *Client) GetAnalysisSession(ctx context.Context, sessionID string) (*AnalysisResult, error) {
	body, err := c.getRaw(ctx, "/food/session/"+sessionID, nil)
	if err != nil {
		return nil, err
	}
	return NormalizeAnalysis(body)
}

// UpdateDetectedFood calls PUT /food/session/:id/food/:foodId.
func (c *Client) UpdateDetectedFood(ctx context.Context, sessionID, foodID string, update FoodUpdate) error {
	path := fmt.Sprintf("/food/session/%s/food/%s", sessionID, foodID)
	return c.sendJSON(ctx, http.MethodPut, path, update, nil)
}

// RemoveDetectedFood calls DELETE /food/session/:id/food/:foodId.
func (c *Client) RemoveDetectedFood(ctx context.Context, sessionID, foodID string) error {
	path := fmt.Sprintf("/food/session/%s/food/%s", sessionID, foodID)
	return c.sendJSON(ctx, http.MethodDelete, path, nil, nil)
}

// ConfirmAnalysis calls POST /food/session/:id/confirm, persisting the
// analysis to the user's diary and ending the result's lifecycle.
func (c *Client) ConfirmAnalysis(ctx context.Context, sessionID string) error {
	return c.sendJSON(ctx, http.MethodPost, "/food/session/"+sessionID+"/confirm", nil, nil)
}
