// ABOUTME: History command: print the nutrition history window
// ABOUTME: Assembles the same reconciled shape the TUI history screen uses

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

var historyDays int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show nutrition history",
	Long:  `Show the daily intake series, summary, and recent analyses for the requested window.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runHistory(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyDays, "days", "d", 7, "Window size in days")
	rootCmd.AddCommand(historyCmd)
}

// runHistory fetches and prints the history window. Returns exit code.
func runHistory(ctx context.Context, w io.Writer) int {
	_, client, store, err := buildEnv()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if !store.IsAuthenticated() {
		fmt.Fprintln(w, "Error: not logged in (run \"nutrichef login\" first)")
		return 1
	}

	history, err := client.NutritionHistory(ctx, historyDays)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	// Daily summary only enriches the recent list; its failure is tolerated
	daily, _, err := client.GetDailySummary(ctx, "")
	if err != nil {
		daily = nil
	}

	data := api.BuildNutritionHistory(nil, daily, history)

	if IsJSONOutput() {
		out, _ := json.MarshalIndent(data, "", "  ")
		fmt.Fprintln(w, string(out))
	} else {
		fmt.Fprintln(w, formatHistoryHuman(historyDays, data))
	}
	return 0
}

// formatHistoryHuman renders the history window for terminal reading
func formatHistoryHuman(days int, data *api.NutritionHistoryData) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Nutrition history, last %d days\n\n", days))

	if len(data.NutritionHistory) > 0 {
		sb.WriteString(fmt.Sprintf("%-12s %8s %8s %8s %8s\n", "Date", "kcal", "Protein", "Carbs", "Fat"))
		for _, day := range data.NutritionHistory {
			sb.WriteString(fmt.Sprintf("%-12s %8.0f %8.1f %8.1f %8.1f\n",
				day.Date, day.Calories, day.Protein, day.Carbs, day.Fat))
		}
		sb.WriteString("\n")
	}

	s := data.Summary
	if s.AvgCalories > 0 || s.TotalAnalyses > 0 {
		sb.WriteString(fmt.Sprintf("Average:  %.0f kcal/day over %d tracked days (%d analyses)\n",
			s.AvgCalories, s.DaysTracked, s.TotalAnalyses))
	}
	if goal := data.UserGoals.DailyCalorieGoal; goal > 0 {
		sb.WriteString(fmt.Sprintf("Goal:     %.0f kcal/day\n", goal))
	}

	if len(data.RecentAnalyses) > 0 {
		sb.WriteString("\nRecent analyses:\n")
		for _, e := range data.RecentAnalyses {
			name := e.FoodName
			if name == "" {
				name = e.MealType
			}
			calories := e.Calories
			if calories == 0 {
				calories = e.TotalNutrition.Calories
			}
			sb.WriteString(fmt.Sprintf("  %-24s %7.0f kcal  %s\n", name, calories, e.Date))
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}
