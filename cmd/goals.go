// ABOUTME: Goals command: show or update the daily nutrition goals
// ABOUTME: Setting any goal merges into the current server-side values

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

var (
	goalsCalories float64
	goalsProtein  float64
	goalsCarbs    float64
	goalsFat      float64
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Show or set nutrition goals",
	Long: `Show the daily nutrition goals used by the dashboard and history views.

Passing --calories, --protein, --carbs, or --fat updates those goals;
omitted values keep their current setting.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runGoals(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	goalsCmd.Flags().Float64Var(&goalsCalories, "calories", 0, "Daily calorie goal (kcal)")
	goalsCmd.Flags().Float64Var(&goalsProtein, "protein", 0, "Daily protein goal (g)")
	goalsCmd.Flags().Float64Var(&goalsCarbs, "carbs", 0, "Daily carbohydrate goal (g)")
	goalsCmd.Flags().Float64Var(&goalsFat, "fat", 0, "Daily fat goal (g)")
	rootCmd.AddCommand(goalsCmd)
}

// runGoals shows the goals, applying any requested changes first. Returns
// exit code.
func runGoals(ctx context.Context, w io.Writer) int {
	_, client, store, err := buildEnv()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if !store.IsAuthenticated() {
		fmt.Fprintln(w, "Error: not logged in (run \"nutrichef login\" first)")
		return 1
	}

	goals, err := client.NutritionGoals(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if goalsCalories > 0 || goalsProtein > 0 || goalsCarbs > 0 || goalsFat > 0 {
		if goalsCalories > 0 {
			goals.DailyCalorieGoal = goalsCalories
		}
		if goalsProtein > 0 {
			goals.ProteinGoal = goalsProtein
		}
		if goalsCarbs > 0 {
			goals.CarbsGoal = goalsCarbs
		}
		if goalsFat > 0 {
			goals.FatGoal = goalsFat
		}
		if err := client.UpdateNutritionGoals(ctx, *goals); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(goals, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatGoalsHuman(*goals))
	}
	return 0
}

// formatGoalsHuman renders the goals for terminal reading
func formatGoalsHuman(g api.UserGoals) string {
	var sb strings.Builder

	sb.WriteString("Daily nutrition goals\n")
	if g.DailyCalorieGoal > 0 {
		sb.WriteString(fmt.Sprintf("  Calories:  %.0f kcal\n", g.DailyCalorieGoal))
	}
	if g.ProteinGoal > 0 {
		sb.WriteString(fmt.Sprintf("  Protein:   %.0f g\n", g.ProteinGoal))
	}
	if g.CarbsGoal > 0 {
		sb.WriteString(fmt.Sprintf("  Carbs:     %.0f g\n", g.CarbsGoal))
	}
	if g.FatGoal > 0 {
		sb.WriteString(fmt.Sprintf("  Fat:       %.0f g\n", g.FatGoal))
	}
	if g == (api.UserGoals{}) {
		sb.WriteString("  (none set)\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}
