// ABOUTME: Ordered-precedence normalizers for shape-shifting API responses
// ABOUTME: Pure functions from raw JSON variants to canonical client types

package api

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// The backend has returned the same logical data under different field
// names across versions. Each normalizer here encodes one precedence order
// as a pure function so the compatibility rules stay testable away from
// any network code. The precedence orders are load-bearing: multiple
// backend versions are live, and reordering them changes which one wins.

// NormalizeAnalysis converts any known analyze-response shape into a
// canonical AnalysisResult. Precedence:
//  1. nested under "analysis_result"
//  2. inlined (object already has "detected_foods")
//  3. legacy field names ("foods", "nutrition", "confidence")
//
// session_id falls back to the outer object, confidence_overall falls back
// to "confidence", and status defaults to "completed". The function is
// idempotent: a canonical result passes through unchanged.
func NormalizeAnalysis(raw []byte) (*AnalysisResult, error) {
	outer := gjson.ParseBytes(raw)
	if !outer.IsObject() {
		return nil, decodeError(errNotAnObject)
	}

	var result AnalysisResult

	switch {
	case outer.Get("analysis_result").IsObject():
		nested := outer.Get("analysis_result")
		if err := json.Unmarshal([]byte(nested.Raw), &result); err != nil {
			return nil, decodeError(err)
		}
		fillAnalysisFallbacks(&result, nested, outer)

	case outer.Get("detected_foods").Exists():
		if err := json.Unmarshal(raw, &result); err != nil {
			return nil, decodeError(err)
		}
		fillAnalysisFallbacks(&result, outer, outer)

	default:
		// Legacy shape: foods / nutrition / confidence at the top level.
		if foods := outer.Get("foods"); foods.IsArray() {
			if err := json.Unmarshal([]byte(foods.Raw), &result.DetectedFoods); err != nil {
				return nil, decodeError(err)
			}
		}
		if nutrition := outer.Get("nutrition"); nutrition.IsObject() {
			if err := json.Unmarshal([]byte(nutrition.Raw), &result.TotalNutrition); err != nil {
				return nil, decodeError(err)
			}
		}
		result.ConfidenceOverall = outer.Get("confidence").Float()
		result.SessionID = outer.Get("session_id").String()
	}

	if result.Status == "" {
		result.Status = "completed"
	}
	if result.DetectedFoods == nil {
		result.DetectedFoods = []DetectedFood{}
	}
	return &result, nil
}

// fillAnalysisFallbacks applies the cross-version field fallbacks after the
// primary decode: session ids may live on the envelope and older payloads
// spell confidence_overall as confidence.
func fillAnalysisFallbacks(result *AnalysisResult, chosen, outer gjson.Result) {
	if result.SessionID == "" {
		result.SessionID = outer.Get("session_id").String()
	}
	if result.ConfidenceOverall == 0 {
		result.ConfidenceOverall = chosen.Get("confidence").Float()
	}
}

// ReconcileRecentAnalyses picks the recent-analyses list from whichever
// endpoint returned one: overview.recent_analyses, else
// dailySummary.food_analyses, else history.food_analyses, else empty.
// Presence (a non-nil list, even empty) wins over later sources; that
// mirrors the source's `a || b || c || []` where an empty array is truthy.
func ReconcileRecentAnalyses(overview *DashboardOverview, daily *DailySummary, history *HistoryResponse) []AnalysisEntry {
	if overview != nil && overview.RecentAnalyses != nil {
		return overview.RecentAnalyses
	}
	if daily != nil && daily.FoodAnalyses != nil {
		return daily.FoodAnalyses
	}
	if history != nil && history.FoodAnalyses != nil {
		return history.FoodAnalyses
	}
	return []AnalysisEntry{}
}

// BuildNutritionHistory assembles the history view's canonical shape from
// the three possibly-partial sources.
func BuildNutritionHistory(overview *DashboardOverview, daily *DailySummary, history *HistoryResponse) *NutritionHistoryData {
	data := &NutritionHistoryData{
		RecentAnalyses:   ReconcileRecentAnalyses(overview, daily, history),
		NutritionHistory: []DailyNutrition{},
	}
	if history != nil {
		if history.NutritionHistory != nil {
			data.NutritionHistory = history.NutritionHistory
		}
		data.Summary = history.Summary
		data.UserGoals = history.UserGoals
	}
	return data
}

// NormalizeProfile tolerates both profile envelopes: the record nested
// under "user" (with sibling "stats"/"preferences") or inlined.
func NormalizeProfile(raw []byte) (*UserSummary, error) {
	outer := gjson.ParseBytes(raw)
	if !outer.IsObject() {
		return nil, decodeError(errNotAnObject)
	}

	var user UserSummary
	if nested := outer.Get("user"); nested.IsObject() {
		if err := json.Unmarshal([]byte(nested.Raw), &user); err != nil {
			return nil, decodeError(err)
		}
		// stats and preferences ride on the envelope in this variant
		if stats := outer.Get("stats"); stats.IsObject() {
			json.Unmarshal([]byte(stats.Raw), &user.Stats)
		}
		if prefs := outer.Get("preferences"); prefs.IsObject() {
			json.Unmarshal([]byte(prefs.Raw), &user.Preferences)
		}
	} else {
		if err := json.Unmarshal(raw, &user); err != nil {
			return nil, decodeError(err)
		}
	}

	if user.Stats == nil {
		user.Stats = map[string]json.RawMessage{}
	}
	if user.Preferences == nil {
		user.Preferences = map[string]json.RawMessage{}
	}
	return &user, nil
}

// decodeHistory parses the history endpoint response, keeping the raw body
// for the reconciliation shim.
func decodeHistory(body []byte) (*HistoryResponse, error) {
	var out HistoryResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, decodeError(err)
	}
	out.Raw = body
	return &out, nil
}

// unmarshalLenient decodes a response body, normalizing parse failures.
func unmarshalLenient(body []byte, out interface{}) error {
	if err := json.Unmarshal(body, out); err != nil {
		return decodeError(err)
	}
	return nil
}
