// ABOUTME: Nutrition history screen: intake trend, recent analyses, goals
// ABOUTME: Window is selectable; ingredient counts are enriched per entry

package historyview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AzlNach/NutriChef/internal/api"
	"github.com/AzlNach/NutriChef/internal/tui/icons"
	"github.com/AzlNach/NutriChef/internal/tui/styles"
	"github.com/AzlNach/NutriChef/internal/tui/widgets"
)

// Windows are the selectable history spans in days
var Windows = []int{7, 30, 90}

// ReloadMsg asks the app to reload history for a new window
type ReloadMsg struct {
	Days int
}

// OpenSessionMsg asks the app to open a past analysis session
type OpenSessionMsg struct {
	SessionID string
}

// BackMsg returns to the home screen
type BackMsg struct{}

// History is the nutrition history screen model
type History struct {
	data    *api.NutritionHistoryData
	counts  map[string]int
	daily   *api.DailySummary
	days    int
	cursor  int
	loading bool
}

// New creates an empty history screen with the default window
func New() *History {
	return &History{days: Windows[0]}
}

// Days returns the currently selected window
func (h *History) Days() int {
	return h.days
}

// HasData reports whether the screen has loaded content to show
func (h *History) HasData() bool {
	return h.data != nil
}

// SetLoading marks a reload in flight
func (h *History) SetLoading(loading bool) {
	h.loading = loading
}

// SetData replaces the history content. counts maps session ID to the
// number of ingredients detected in that analysis.
func (h *History) SetData(data *api.NutritionHistoryData, counts map[string]int) {
	h.data = data
	h.counts = counts
	h.loading = false
	if data == nil || h.cursor >= len(data.RecentAnalyses) {
		h.cursor = 0
	}
}

// SetCounts attaches ingredient counts once the batch lookup finishes.
// Counts arrive after the main payload so the list renders immediately.
func (h *History) SetCounts(counts map[string]int) {
	h.counts = counts
}

// SetDailySummary attaches today's summary panel
func (h *History) SetDailySummary(daily *api.DailySummary) {
	h.daily = daily
}

// Clear drops all loaded content, used on logout
func (h *History) Clear() {
	h.data = nil
	h.counts = nil
	h.daily = nil
	h.cursor = 0
	h.loading = false
	h.days = Windows[0]
}

// Update handles key input for the history screen
func (h *History) Update(msg tea.Msg) (*History, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || h.loading {
		return h, nil
	}

	switch key.String() {
	case "up", "k":
		if h.cursor > 0 {
			h.cursor--
		}
	case "down", "j":
		if h.data != nil && h.cursor < len(h.data.RecentAnalyses)-1 {
			h.cursor++
		}
	case "w":
		h.days = nextWindow(h.days)
		h.loading = true
		days := h.days
		return h, func() tea.Msg { return ReloadMsg{Days: days} }
	case "enter":
		if h.data == nil || h.cursor >= len(h.data.RecentAnalyses) {
			return h, nil
		}
		entry := h.data.RecentAnalyses[h.cursor]
		if entry.SessionID == "" {
			return h, nil
		}
		sessionID := entry.SessionID
		return h, func() tea.Msg { return OpenSessionMsg{SessionID: sessionID} }
	case "esc", "q":
		return h, func() tea.Msg { return BackMsg{} }
	}

	return h, nil
}

func nextWindow(days int) int {
	for i, w := range Windows {
		if w == days {
			return Windows[(i+1)%len(Windows)]
		}
	}
	return Windows[0]
}

// View renders the history screen
func (h *History) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s Nutrition history (last %d days)", icons.History.String(), h.days)))
	sb.WriteString("\n\n")

	if h.loading {
		sb.WriteString(styles.StatusInfo.Render(icons.Refresh.String() + " Loading..."))
		return sb.String()
	}
	if h.data == nil {
		sb.WriteString(styles.Subtitle.Render("No history loaded."))
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render("r Refresh  ·  esc Back"))
		return sb.String()
	}

	sb.WriteString(h.renderTrend())
	sb.WriteString(h.renderSummary())
	if h.daily != nil {
		sb.WriteString(h.renderDaily())
	}
	sb.WriteString(h.renderEntries())

	sb.WriteString(styles.Help.Render("↑/↓ Select  ·  enter Open  ·  w Window  ·  r Refresh  ·  esc Back"))
	return sb.String()
}

func (h *History) renderTrend() string {
	series := h.data.NutritionHistory
	if len(series) == 0 {
		return ""
	}

	calories := make([]float64, len(series))
	for i, day := range series {
		calories[i] = day.Calories
	}

	goal := h.data.UserGoals.DailyCalorieGoal
	spark := widgets.SparklineWithGoal(calories, 30, goal, styles.Primary, styles.Warning)

	var sb strings.Builder
	sb.WriteString(styles.Subtitle.Render(icons.Chart.String() + " Daily calories"))
	sb.WriteString("\n")
	sb.WriteString(spark)
	if goal > 0 {
		sb.WriteString(styles.Help.Render(fmt.Sprintf("  goal %.0f kcal", goal)))
	}
	sb.WriteString("\n\n")
	return sb.String()
}

func (h *History) renderSummary() string {
	s := h.data.Summary
	if s.TotalAnalyses == 0 && s.AvgCalories == 0 {
		return ""
	}

	parts := []string{}
	if s.AvgCalories > 0 {
		parts = append(parts, fmt.Sprintf("avg %.0f kcal/day", s.AvgCalories))
	}
	if s.TotalAnalyses > 0 {
		parts = append(parts, fmt.Sprintf("%d analyses", s.TotalAnalyses))
	}
	if s.DaysTracked > 0 {
		parts = append(parts, fmt.Sprintf("%d days tracked", s.DaysTracked))
	}
	if s.GoalAdherence > 0 {
		parts = append(parts, fmt.Sprintf("%.0f%% goal adherence", s.GoalAdherence))
	}

	return styles.Subtitle.Render(strings.Join(parts, "  ·  ")) + "\n\n"
}

func (h *History) renderDaily() string {
	t := h.daily.Totals
	line := fmt.Sprintf("Today: %.0f kcal  %.1fg protein  %.1fg carbs  %.1fg fat",
		t.Calories, t.Protein, t.Carbs, t.Fat)
	if goal := h.data.UserGoals.DailyCalorieGoal; goal > 0 {
		line += "  " + widgets.GoalBadge(t.Calories, goal)
	}
	return line + "\n\n"
}

func (h *History) renderEntries() string {
	entries := h.data.RecentAnalyses
	if len(entries) == 0 {
		return styles.Subtitle.Render("No analyses in this window.") + "\n\n"
	}

	var sb strings.Builder
	sb.WriteString(styles.Subtitle.Render(icons.Meal.String() + " Recent analyses"))
	sb.WriteString("\n")

	for i, e := range entries {
		sb.WriteString(h.renderEntry(i, e))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (h *History) renderEntry(i int, e api.AnalysisEntry) string {
	name := e.FoodName
	if name == "" {
		name = capitalize(e.MealType)
	}
	if name == "" {
		name = "Meal"
	}

	calories := e.Calories
	if calories == 0 {
		calories = e.TotalNutrition.Calories
	}

	date := e.Date
	if date == "" {
		date = e.AnalyzedAt
	}

	row := fmt.Sprintf("%-24s %7.0f kcal", name, calories)
	if h.counts != nil {
		// Entries the batch lookup could not resolve count as one
		// ingredient; a logged meal never shows zero.
		count, ok := h.counts[e.SessionID]
		if !ok {
			count = 1
		}
		label := "ingredients"
		if count == 1 {
			label = "ingredient"
		}
		row += fmt.Sprintf("  %2d %s", count, label)
	}
	if date != "" {
		row += "  " + styles.Help.Render(date)
	}

	if i == h.cursor {
		return styles.SelectedStyle.Render("> ") + row + "\n"
	}
	return "  " + row + "\n"
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
