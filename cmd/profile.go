// ABOUTME: Profile command: show the account profile and preferences
// ABOUTME: Preferences are editable from the shell via --set key=value

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AzlNach/NutriChef/internal/api"
)

var profileSet []string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the user profile",
	Long: `Show the account profile and stored preferences.

Preferences are free-form key/value pairs interpreted by the clients.
--set accepts key=value and may be repeated; values that parse as JSON
(true, 42, "text") are stored typed, anything else as a string.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProfile(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	profileCmd.Flags().StringArrayVar(&profileSet, "set", nil, "Set a preference as key=value (repeatable)")
	rootCmd.AddCommand(profileCmd)
}

// runProfile prints the profile, applying preference changes first.
// Returns exit code.
func runProfile(ctx context.Context, w io.Writer) int {
	_, client, store, err := buildEnv()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if !store.IsAuthenticated() {
		fmt.Fprintln(w, "Error: not logged in (run \"nutrichef login\" first)")
		return 1
	}

	if len(profileSet) > 0 {
		prefs, err := client.GetPreferences(ctx)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		for _, kv := range profileSet {
			key, value, ok := strings.Cut(kv, "=")
			if !ok || key == "" {
				fmt.Fprintf(w, "Error: --set wants key=value, got %q\n", kv)
				return 2
			}
			prefs[key] = rawPreference(value)
		}
		if err := client.UpdatePreferences(ctx, prefs); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	user, err := client.GetProfile(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	// The profile envelope may already carry preferences; the dedicated
	// endpoint is authoritative when it answers.
	prefs := user.Preferences
	if fresh, err := client.GetPreferences(ctx); err == nil {
		prefs = fresh
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]interface{}{
			"user":        user,
			"preferences": prefs,
		}, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatProfileHuman(user, prefs))
	}
	return 0
}

// rawPreference stores JSON-shaped values typed and everything else as a
// plain string.
func rawPreference(value string) json.RawMessage {
	if json.Valid([]byte(value)) {
		return json.RawMessage(value)
	}
	data, _ := json.Marshal(value)
	return data
}

// formatProfileHuman renders the profile for terminal reading
func formatProfileHuman(user *api.UserSummary, prefs map[string]json.RawMessage) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Username:     %s\n", user.Username))
	sb.WriteString(fmt.Sprintf("Email:        %s\n", user.Email))
	if user.FullName != "" {
		sb.WriteString(fmt.Sprintf("Full name:    %s\n", user.FullName))
	}
	if user.Height > 0 {
		sb.WriteString(fmt.Sprintf("Height:       %.0f cm\n", user.Height))
	}
	if user.Weight > 0 {
		sb.WriteString(fmt.Sprintf("Weight:       %.1f kg\n", user.Weight))
	}
	if user.ActivityLevel != "" {
		sb.WriteString(fmt.Sprintf("Activity:     %s\n", user.ActivityLevel))
	}
	if user.DailyCalorieGoal > 0 {
		sb.WriteString(fmt.Sprintf("Calorie goal: %.0f kcal/day\n", user.DailyCalorieGoal))
	}

	if len(prefs) > 0 {
		sb.WriteString("\nPreferences:\n")
		keys := make([]string, 0, len(prefs))
		for k := range prefs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", k, string(prefs[k])))
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}
