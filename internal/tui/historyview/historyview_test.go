// ABOUTME: Tests for the history screen model
// ABOUTME: Window cycling, entry field fallbacks, cache clearing

package historyview

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AzlNach/NutriChef/internal/api"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestWindowCycles(t *testing.T) {
	h := New()
	if h.Days() != 7 {
		t.Fatalf("default window should be 7, got %d", h.Days())
	}

	for _, want := range []int{30, 90, 7} {
		_, cmd := h.Update(keyMsg("w"))
		if h.Days() != want {
			t.Errorf("expected window %d, got %d", want, h.Days())
		}
		if cmd == nil {
			t.Fatal("window change must request a reload")
		}
		msg, ok := cmd().(ReloadMsg)
		if !ok || msg.Days != want {
			t.Errorf("expected ReloadMsg{%d}, got %#v", want, msg)
		}
		// Loading blocks input until data lands; simulate the load finishing
		h.SetData(&api.NutritionHistoryData{}, nil)
	}
}

func TestEnterOpensSession(t *testing.T) {
	h := New()
	h.SetData(&api.NutritionHistoryData{
		RecentAnalyses: []api.AnalysisEntry{
			{SessionID: "sess-1", FoodName: "Pecel"},
			{FoodName: "no id"},
		},
	}, nil)

	_, cmd := h.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected open command")
	}
	msg, ok := cmd().(OpenSessionMsg)
	if !ok || msg.SessionID != "sess-1" {
		t.Errorf("expected OpenSessionMsg{sess-1}, got %#v", msg)
	}

	// Entries without a session id cannot be opened
	h.Update(keyMsg("j"))
	if _, cmd := h.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("entry without session id must not emit an open command")
	}
}

func TestEntryFieldFallbacks(t *testing.T) {
	h := New()
	h.SetData(&api.NutritionHistoryData{
		RecentAnalyses: []api.AnalysisEntry{
			// No food_name, calories under total_nutrition, date as analyzed_at
			{MealType: "lunch", TotalNutrition: api.NutritionTotals{Calories: 640}, AnalyzedAt: "2026-08-27"},
		},
	}, map[string]int{})

	view := h.View()
	if !strings.Contains(view, "Lunch") {
		t.Errorf("meal type fallback missing from view:\n%s", view)
	}
	if !strings.Contains(view, "640") {
		t.Errorf("total_nutrition calories fallback missing:\n%s", view)
	}
	if !strings.Contains(view, "2026-08-27") {
		t.Errorf("analyzed_at date fallback missing:\n%s", view)
	}
}

func TestIngredientCountsInView(t *testing.T) {
	h := New()
	h.SetData(&api.NutritionHistoryData{
		RecentAnalyses: []api.AnalysisEntry{
			{SessionID: "s1", FoodName: "Gado Gado", Calories: 450},
		},
	}, nil)
	h.SetCounts(map[string]int{"s1": 3})

	if view := h.View(); !strings.Contains(view, "3 ingredients") {
		t.Errorf("ingredient count missing from view:\n%s", view)
	}

	h.SetCounts(map[string]int{"s1": 1})
	if view := h.View(); !strings.Contains(view, "1 ingredient") {
		t.Errorf("singular label missing from view:\n%s", view)
	}
}

func TestUnresolvedEntryCountsAsOneIngredient(t *testing.T) {
	h := New()
	h.SetData(&api.NutritionHistoryData{
		RecentAnalyses: []api.AnalysisEntry{
			{FoodName: "Soto", Calories: 320}, // no session id, nothing to look up
		},
	}, nil)

	// Before the batch finishes no counts are shown at all
	if view := h.View(); strings.Contains(view, "ingredient") {
		t.Errorf("counts must not render before the lookup finishes:\n%s", view)
	}

	h.SetCounts(map[string]int{})
	if view := h.View(); !strings.Contains(view, "1 ingredient") {
		t.Errorf("unresolved entry must fall back to one ingredient:\n%s", view)
	}
}

func TestClearDropsEverything(t *testing.T) {
	h := New()
	h.SetData(&api.NutritionHistoryData{
		RecentAnalyses: []api.AnalysisEntry{{SessionID: "s1"}},
	}, map[string]int{"s1": 2})
	h.SetDailySummary(&api.DailySummary{Date: "2026-08-28"})
	h.Update(keyMsg("w"))

	h.Clear()

	if h.HasData() {
		t.Error("data must be cleared")
	}
	if h.Days() != 7 {
		t.Errorf("window must reset to default, got %d", h.Days())
	}
}
