// ABOUTME: Analyze command: one-shot food photo analysis from the shell
// ABOUTME: Uploads an image and prints the normalized result

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
	analyzeMealType string
	analyzeNotes    string
	analyzeConfirm  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>",
	Short: "Analyze a food photo",
	Long: `Upload a food photo for analysis and print the detected foods with
their nutrition estimates. Requires a logged-in session (see "login").`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAnalyze(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeMealType, "meal-type", "m", "", "Meal type: breakfast, lunch, dinner, snack")
	analyzeCmd.Flags().StringVarP(&analyzeNotes, "notes", "n", "", "Notes to attach to the analysis")
	analyzeCmd.Flags().BoolVar(&analyzeConfirm, "confirm", false, "Confirm the analysis and log the meal")
	rootCmd.AddCommand(analyzeCmd)
}

// runAnalyze uploads the image and prints the result. Returns exit code.
func runAnalyze(ctx context.Context, w io.Writer, imagePath string) int {
	_, client, store, err := buildEnv()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if !store.IsAuthenticated() {
		fmt.Fprintln(w, "Error: not logged in (run \"nutrichef login\" first)")
		return 1
	}

	result, err := client.AnalyzeFood(ctx, api.AnalyzeRequest{
		ImagePath: imagePath,
		MealType:  analyzeMealType,
		Notes:     analyzeNotes,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if analyzeConfirm && result.SessionID != "" {
		if err := client.ConfirmAnalysis(ctx, result.SessionID); err != nil {
			fmt.Fprintf(w, "Error: analysis succeeded but confirm failed: %v\n", err)
			return 2
		}
		result.Status = "confirmed"
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatAnalysisHuman(result))
	}
	return 0
}

// formatAnalysisHuman renders an analysis result for terminal reading
func formatAnalysisHuman(result *api.AnalysisResult) string {
	var sb strings.Builder

	if result.MainFood != nil && result.MainFood.Name != "" {
		sb.WriteString(fmt.Sprintf("Main food:   %s\n", result.MainFood.Name))
	}
	sb.WriteString(fmt.Sprintf("Session:     %s\n", result.SessionID))
	sb.WriteString(fmt.Sprintf("Status:      %s\n", result.Status))
	sb.WriteString(fmt.Sprintf("Confidence:  %.0f%%\n", result.ConfidenceOverall*100))
	sb.WriteString("\nDetected foods:\n")

	if len(result.DetectedFoods) == 0 {
		sb.WriteString("  (none)\n")
	}
	for _, f := range result.DetectedFoods {
		sb.WriteString(fmt.Sprintf("  %-24s %6.0f %-8s %6.0f kcal\n",
			f.Name, f.EstimatedPortion, f.PortionUnit, f.Nutrition.Calories))
	}

	t := result.TotalNutrition
	sb.WriteString(fmt.Sprintf("\nTotal: %.0f kcal  %.1fg protein  %.1fg carbs  %.1fg fat",
		t.Calories, t.Protein, t.Carbs, t.Fat))

	return sb.String()
}
