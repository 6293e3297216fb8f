// ABOUTME: Tests for the response-shape normalizers
// ABOUTME: Covers every precedence order and its fallbacks

package api

import (
	"encoding/json"
	"testing"
)

func TestNormalizeAnalysisNestedShape(t *testing.T) {
	raw := []byte(`{
		"session_id": "outer-123",
		"analysis_result": {
			"detected_foods": [
				{"id": "f1", "name": "Nasi Goreng", "estimated_portion": 250, "portion_unit": "g",
				 "confidence": 0.92, "nutrition": {"calories": 520, "protein": 18, "carbs": 68, "fat": 19}}
			],
			"total_nutrition": {"calories": 520, "protein": 18, "carbs": 68, "fat": 19},
			"confidence_overall": 0.92
		}
	}`)

	result, err := NormalizeAnalysis(raw)
	if err != nil {
		t.Fatalf("NormalizeAnalysis failed: %v", err)
	}

	if result.SessionID != "outer-123" {
		t.Errorf("expected session_id from envelope, got %q", result.SessionID)
	}
	if len(result.DetectedFoods) != 1 || result.DetectedFoods[0].Name != "Nasi Goreng" {
		t.Errorf("unexpected detected foods: %+v", result.DetectedFoods)
	}
	if result.ConfidenceOverall != 0.92 {
		t.Errorf("expected confidence 0.92, got %f", result.ConfidenceOverall)
	}
	if result.Status != "completed" {
		t.Errorf("expected default status completed, got %q", result.Status)
	}
}

func TestNormalizeAnalysisNestedWinsOverInline(t *testing.T) {
	// Both shapes present: the nested result must win.
	raw := []byte(`{
		"detected_foods": [{"id": "wrong", "name": "Wrong"}],
		"analysis_result": {
			"session_id": "nested-1",
			"detected_foods": [{"id": "right", "name": "Right"}]
		}
	}`)

	result, err := NormalizeAnalysis(raw)
	if err != nil {
		t.Fatalf("NormalizeAnalysis failed: %v", err)
	}
	if len(result.DetectedFoods) != 1 || result.DetectedFoods[0].ID != "right" {
		t.Errorf("nested shape should win, got %+v", result.DetectedFoods)
	}
	if result.SessionID != "nested-1" {
		t.Errorf("expected nested session_id, got %q", result.SessionID)
	}
}

func TestNormalizeAnalysisInlineShape(t *testing.T) {
	raw := []byte(`{
		"session_id": "inline-9",
		"status": "completed",
		"detected_foods": [{"id": "f1", "name": "Salad", "confidence": 0.8}],
		"confidence": 0.8
	}`)

	result, err := NormalizeAnalysis(raw)
	if err != nil {
		t.Fatalf("NormalizeAnalysis failed: %v", err)
	}
	if result.SessionID != "inline-9" {
		t.Errorf("expected inline session_id, got %q", result.SessionID)
	}
	// confidence_overall absent: falls back to "confidence"
	if result.ConfidenceOverall != 0.8 {
		t.Errorf("expected confidence fallback 0.8, got %f", result.ConfidenceOverall)
	}
}

func TestNormalizeAnalysisLegacyShape(t *testing.T) {
	raw := []byte(`{
		"session_id": "legacy-7",
		"foods": [{"id": "f1", "name": "Rendang", "estimated_portion": 150, "portion_unit": "g"}],
		"nutrition": {"calories": 430, "protein": 28, "carbs": 8, "fat": 32},
		"confidence": 0.77
	}`)

	result, err := NormalizeAnalysis(raw)
	if err != nil {
		t.Fatalf("NormalizeAnalysis failed: %v", err)
	}
	if len(result.DetectedFoods) != 1 || result.DetectedFoods[0].Name != "Rendang" {
		t.Errorf("expected legacy foods decoded, got %+v", result.DetectedFoods)
	}
	if result.TotalNutrition.Calories != 430 {
		t.Errorf("expected legacy nutrition decoded, got %+v", result.TotalNutrition)
	}
	if result.ConfidenceOverall != 0.77 {
		t.Errorf("expected legacy confidence, got %f", result.ConfidenceOverall)
	}
	if result.SessionID != "legacy-7" {
		t.Errorf("expected legacy session_id, got %q", result.SessionID)
	}
}

func TestNormalizeAnalysisEmptyObject(t *testing.T) {
	result, err := NormalizeAnalysis([]byte(`{}`))
	if err != nil {
		t.Fatalf("NormalizeAnalysis failed: %v", err)
	}
	if result.DetectedFoods == nil {
		t.Error("detected foods must never be nil")
	}
	if len(result.DetectedFoods) != 0 {
		t.Errorf("expected empty foods, got %+v", result.DetectedFoods)
	}
	if result.Status != "completed" {
		t.Errorf("expected default status, got %q", result.Status)
	}
}

func TestNormalizeAnalysisNotAnObject(t *testing.T) {
	for _, raw := range []string{`[]`, `"hello"`, `42`, `null`} {
		if _, err := NormalizeAnalysis([]byte(raw)); err == nil {
			t.Errorf("expected error for %s", raw)
		}
	}
}

func TestNormalizeAnalysisIdempotent(t *testing.T) {
	raw := []byte(`{
		"session_id": "canon-1",
		"status": "completed",
		"detected_foods": [{"id": "f1", "name": "Soto"}],
		"total_nutrition": {"calories": 310},
		"confidence_overall": 0.85
	}`)

	first, err := NormalizeAnalysis(raw)
	if err != nil {
		t.Fatalf("first pass failed: %v", err)
	}

	reencoded, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("re-encode failed: %v", err)
	}
	second, err := NormalizeAnalysis(reencoded)
	if err != nil {
		t.Fatalf("second pass failed: %v", err)
	}

	if second.SessionID != first.SessionID ||
		second.ConfidenceOverall != first.ConfidenceOverall ||
		len(second.DetectedFoods) != len(first.DetectedFoods) {
		t.Errorf("normalization not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestReconcileRecentAnalysesPrecedence(t *testing.T) {
	entry := func(name string) []AnalysisEntry {
		return []AnalysisEntry{{FoodName: name}}
	}

	tests := []struct {
		name     string
		overview *DashboardOverview
		daily    *DailySummary
		history  *HistoryResponse
		want     string
	}{
		{
			name:     "overview wins",
			overview: &DashboardOverview{RecentAnalyses: entry("from-overview")},
			daily:    &DailySummary{FoodAnalyses: entry("from-daily")},
			history:  &HistoryResponse{FoodAnalyses: entry("from-history")},
			want:     "from-overview",
		},
		{
			name:    "daily when overview absent",
			daily:   &DailySummary{FoodAnalyses: entry("from-daily")},
			history: &HistoryResponse{FoodAnalyses: entry("from-history")},
			want:    "from-daily",
		},
		{
			name:    "history last",
			history: &HistoryResponse{FoodAnalyses: entry("from-history")},
			want:    "from-history",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReconcileRecentAnalyses(tt.overview, tt.daily, tt.history)
			if len(got) != 1 || got[0].FoodName != tt.want {
				t.Errorf("expected %q, got %+v", tt.want, got)
			}
		})
	}
}

func TestReconcileRecentAnalysesEmptyListWins(t *testing.T) {
	// A present-but-empty list beats a populated later source. That is the
	// documented precedence: presence wins, not length.
	overview := &DashboardOverview{RecentAnalyses: []AnalysisEntry{}}
	history := &HistoryResponse{FoodAnalyses: []AnalysisEntry{{FoodName: "later"}}}

	got := ReconcileRecentAnalyses(overview, nil, history)
	if len(got) != 0 {
		t.Errorf("empty overview list should win over history, got %+v", got)
	}
}

func TestReconcileRecentAnalysesAllAbsent(t *testing.T) {
	got := ReconcileRecentAnalyses(nil, nil, nil)
	if got == nil {
		t.Fatal("result must never be nil")
	}
	if len(got) != 0 {
		t.Errorf("expected empty slice, got %+v", got)
	}
}

func TestBuildNutritionHistory(t *testing.T) {
	history := &HistoryResponse{
		NutritionHistory: []DailyNutrition{{Date: "2026-08-27", Calories: 1900}},
		Summary:          NutritionSummary{AvgCalories: 1850, TotalAnalyses: 12},
		UserGoals:        UserGoals{DailyCalorieGoal: 2000},
		FoodAnalyses:     []AnalysisEntry{{FoodName: "gado gado"}},
	}

	data := BuildNutritionHistory(nil, nil, history)
	if len(data.NutritionHistory) != 1 {
		t.Errorf("expected history series, got %+v", data.NutritionHistory)
	}
	if data.Summary.AvgCalories != 1850 {
		t.Errorf("expected summary carried, got %+v", data.Summary)
	}
	if data.UserGoals.DailyCalorieGoal != 2000 {
		t.Errorf("expected goals carried, got %+v", data.UserGoals)
	}
	if len(data.RecentAnalyses) != 1 || data.RecentAnalyses[0].FoodName != "gado gado" {
		t.Errorf("expected history food_analyses as recent list, got %+v", data.RecentAnalyses)
	}
}

func TestBuildNutritionHistoryNilHistory(t *testing.T) {
	data := BuildNutritionHistory(nil, nil, nil)
	if data.NutritionHistory == nil || data.RecentAnalyses == nil {
		t.Error("slices must never be nil")
	}
}

func TestNormalizeProfileEnvelope(t *testing.T) {
	raw := []byte(`{
		"user": {"id": 3, "username": "azl", "email": "azl@example.com"},
		"stats": {"total_analyses": 42},
		"preferences": {"units": "metric"}
	}`)

	user, err := NormalizeProfile(raw)
	if err != nil {
		t.Fatalf("NormalizeProfile failed: %v", err)
	}
	if user.Username != "azl" {
		t.Errorf("expected nested user decoded, got %+v", user)
	}
	if _, ok := user.Stats["total_analyses"]; !ok {
		t.Error("expected envelope stats attached to user")
	}
	if _, ok := user.Preferences["units"]; !ok {
		t.Error("expected envelope preferences attached to user")
	}
}

func TestNormalizeProfileInline(t *testing.T) {
	raw := []byte(`{"id": 5, "username": "dina", "email": "dina@example.com"}`)

	user, err := NormalizeProfile(raw)
	if err != nil {
		t.Fatalf("NormalizeProfile failed: %v", err)
	}
	if user.Username != "dina" {
		t.Errorf("expected inline user decoded, got %+v", user)
	}
	if user.Stats == nil || user.Preferences == nil {
		t.Error("stats and preferences must default to empty maps")
	}
}
