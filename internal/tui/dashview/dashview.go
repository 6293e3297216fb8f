// ABOUTME: Dashboard screen: today's intake vs goal plus long-window stats
// ABOUTME: Metric blocks and sparklines over both dashboard aggregates

package dashview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AzlNach/NutriChef/internal/api"
	"github.com/AzlNach/NutriChef/internal/tui/icons"
	"github.com/AzlNach/NutriChef/internal/tui/styles"
	"github.com/AzlNach/NutriChef/internal/tui/widgets"
)

// BackMsg returns to the home screen
type BackMsg struct{}

// Dashboard is the dashboard screen model
type Dashboard struct {
	data    *api.DashboardData
	loading bool
}

// New creates an empty dashboard; content arrives via SetData
func New() *Dashboard {
	return &Dashboard{}
}

// HasData reports whether the dashboard has loaded content
func (d *Dashboard) HasData() bool {
	return d.data != nil
}

// SetLoading marks a reload in flight
func (d *Dashboard) SetLoading(loading bool) {
	d.loading = loading
}

// SetData replaces both dashboard aggregates at once
func (d *Dashboard) SetData(data *api.DashboardData) {
	d.data = data
	d.loading = false
}

// Clear drops loaded content, used on logout
func (d *Dashboard) Clear() {
	d.data = nil
	d.loading = false
}

// Update handles key input for the dashboard
func (d *Dashboard) Update(msg tea.Msg) (*Dashboard, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}
	switch key.String() {
	case "esc", "q":
		return d, func() tea.Msg { return BackMsg{} }
	}
	return d, nil
}

// View renders the dashboard
func (d *Dashboard) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Dashboard.String() + " Dashboard"))
	sb.WriteString("\n\n")

	if d.loading {
		sb.WriteString(styles.StatusInfo.Render(icons.Refresh.String() + " Loading..."))
		return sb.String()
	}
	if d.data == nil {
		sb.WriteString(styles.Subtitle.Render("No dashboard data loaded."))
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render("r Refresh  ·  esc Back"))
		return sb.String()
	}

	if ov := d.data.Overview; ov != nil {
		sb.WriteString(d.renderToday(ov))
	}
	if st := d.data.Stats; st != nil {
		sb.WriteString(d.renderStats(st))
	}
	if ov := d.data.Overview; ov != nil && len(ov.RecentAnalyses) > 0 {
		sb.WriteString(d.renderRecent(ov.RecentAnalyses))
	}

	sb.WriteString(styles.Help.Render("r Refresh  ·  esc Back"))
	return sb.String()
}

func (d *Dashboard) renderToday(ov *api.DashboardOverview) string {
	cfg := widgets.DefaultMetricBlockConfig()

	blocks := []string{}

	if ov.DailyCalorieGoal > 0 {
		pct := ov.TodayCalories / ov.DailyCalorieGoal * 100
		details := fmt.Sprintf("%.0f / %.0f kcal", ov.TodayCalories, ov.DailyCalorieGoal)
		blocks = append(blocks, widgets.MetricBlockWithBar(icons.Target, "Goal", pct, details, cfg))
	} else {
		blocks = append(blocks, widgets.MetricBlock(icons.Calories, "Today",
			fmt.Sprintf("%.0f kcal", ov.TodayCalories), "no goal set", cfg))
	}

	if ov.StreakDays > 0 {
		blocks = append(blocks, widgets.CountBlock(icons.CheckOK, "Streak", ov.StreakDays, "days in a row", cfg))
	}

	var sb strings.Builder
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, interleave(blocks)...))
	sb.WriteString("\n\n")

	t := ov.TodayNutrition
	sb.WriteString(renderMacro(icons.Protein, "Protein", t.Protein, styles.ProteinColor))
	sb.WriteString("   ")
	sb.WriteString(renderMacro(icons.Carbs, "Carbs", t.Carbs, styles.CarbsColor))
	sb.WriteString("   ")
	sb.WriteString(renderMacro(icons.Fat, "Fat", t.Fat, styles.FatColor))
	sb.WriteString("\n\n")

	return sb.String()
}

func (d *Dashboard) renderStats(st *api.DashboardStats) string {
	cfg := widgets.DefaultMetricBlockConfig()

	weekly := make([]float64, len(st.WeeklyCalories))
	for i, day := range st.WeeklyCalories {
		weekly[i] = day.Calories
	}

	blocks := []string{
		widgets.CountBlock(icons.Chart, "Analyses", st.TotalAnalyses, "all time", cfg),
	}
	if st.AvgDailyCals > 0 {
		if len(weekly) > 0 {
			blocks = append(blocks, widgets.MetricBlockWithSparkline(icons.Calories, "Avg/day",
				fmt.Sprintf("%.0f", st.AvgDailyCals), weekly, "kcal, last 7 days", cfg))
		} else {
			blocks = append(blocks, widgets.MetricBlock(icons.Calories, "Avg/day",
				fmt.Sprintf("%.0f kcal", st.AvgDailyCals), "", cfg))
		}
	}
	if st.GoalAchievement > 0 {
		blocks = append(blocks, widgets.MetricBlock(icons.Target, "Adherence",
			fmt.Sprintf("%.0f%%", st.GoalAchievement), "days within goal", cfg))
	}

	var sb strings.Builder
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, interleave(blocks)...))
	sb.WriteString("\n\n")

	if len(st.TopFoods) > 0 {
		sb.WriteString(styles.Subtitle.Render(icons.Food.String() + " Most logged: " + strings.Join(st.TopFoods, ", ")))
		sb.WriteString("\n\n")
	}

	return sb.String()
}

func (d *Dashboard) renderRecent(entries []api.AnalysisEntry) string {
	var sb strings.Builder
	sb.WriteString(styles.Subtitle.Render(icons.History.String() + " Recent analyses"))
	sb.WriteString("\n")

	limit := len(entries)
	if limit > 5 {
		limit = 5
	}
	for _, e := range entries[:limit] {
		name := e.FoodName
		if name == "" {
			name = e.MealType
		}
		calories := e.Calories
		if calories == 0 {
			calories = e.TotalNutrition.Calories
		}
		sb.WriteString(fmt.Sprintf("  %-24s %7.0f kcal\n", name, calories))
	}
	sb.WriteString("\n")
	return sb.String()
}

func renderMacro(icon icons.Icon, label string, grams float64, color lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(color).Render(
		fmt.Sprintf("%s %s %.1fg", icon.String(), label, grams))
}

// interleave inserts a spacer between horizontally joined blocks
func interleave(blocks []string) []string {
	out := make([]string, 0, len(blocks)*2)
	for i, b := range blocks {
		if i > 0 {
			out = append(out, "  ")
		}
		out = append(out, b)
	}
	return out
}
