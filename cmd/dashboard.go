// ABOUTME: Dashboard command: print today's intake and long-window stats
// ABOUTME: Fetches both dashboard aggregates like the TUI dashboard screen

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AzlNach/NutriChef/internal/api"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the nutrition dashboard",
	Long:  `Show today's intake against the calorie goal plus long-window statistics.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runDashboard(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

// runDashboard fetches and prints both aggregates. Returns exit code.
func runDashboard(ctx context.Context, w io.Writer) int {
	_, client, store, err := buildEnv()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if !store.IsAuthenticated() {
		fmt.Fprintln(w, "Error: not logged in (run \"nutrichef login\" first)")
		return 1
	}

	overview, err := client.DashboardOverview(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	stats, err := client.DashboardStats(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	data := &api.DashboardData{Overview: overview, Stats: stats}

	if IsJSONOutput() {
		out, _ := json.MarshalIndent(data, "", "  ")
		fmt.Fprintln(w, string(out))
	} else {
		fmt.Fprintln(w, formatDashboardHuman(data))
	}
	return 0
}

// formatDashboardHuman renders the dashboard for terminal reading
func formatDashboardHuman(data *api.DashboardData) string {
	var sb strings.Builder

	if ov := data.Overview; ov != nil {
		sb.WriteString(fmt.Sprintf("Today:       %.0f kcal", ov.TodayCalories))
		if ov.DailyCalorieGoal > 0 {
			sb.WriteString(fmt.Sprintf(" of %.0f goal (%.0f%%)",
				ov.DailyCalorieGoal, ov.TodayCalories/ov.DailyCalorieGoal*100))
		}
		sb.WriteString("\n")
		t := ov.TodayNutrition
		sb.WriteString(fmt.Sprintf("Macros:      %.1fg protein  %.1fg carbs  %.1fg fat\n",
			t.Protein, t.Carbs, t.Fat))
		if ov.StreakDays > 0 {
			sb.WriteString(fmt.Sprintf("Streak:      %d days\n", ov.StreakDays))
		}
	}

	if st := data.Stats; st != nil {
		sb.WriteString(fmt.Sprintf("Analyses:    %d total\n", st.TotalAnalyses))
		if st.AvgDailyCals > 0 {
			sb.WriteString(fmt.Sprintf("Average:     %.0f kcal/day\n", st.AvgDailyCals))
		}
		if st.GoalAchievement > 0 {
			sb.WriteString(fmt.Sprintf("Adherence:   %.0f%% of days within goal\n", st.GoalAchievement))
		}
		if len(st.TopFoods) > 0 {
			sb.WriteString(fmt.Sprintf("Top foods:   %s\n", strings.Join(st.TopFoods, ", ")))
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}
