// ABOUTME: Whoami command: show the persisted session and verify it
// ABOUTME: Exit codes signal session state for scripted auth checks

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var whoamiVerify bool

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Long: `Show the user attached to the persisted session.

With --verify the token is checked against the backend. Exit codes:
  0  logged in (and valid, when verified)
  1  not logged in, or the backend rejected the token
  2  validity could not be determined (network failure)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWhoami(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	whoamiCmd.Flags().BoolVar(&whoamiVerify, "verify", false, "Check the token against the backend")
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami prints the session identity and returns exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	_, client, store, err := buildEnv()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	user := store.User()
	if user == nil {
		fmt.Fprintln(w, "Not logged in")
		return 1
	}

	verified := "skipped"
	if whoamiVerify {
		valid, err := store.Verify(ctx, client)
		switch {
		case err != nil:
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		case !valid:
			fmt.Fprintln(w, "Session rejected by backend")
			return 1
		}
		verified = "valid"
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]interface{}{
			"username":  user.Username,
			"email":     user.Email,
			"full_name": user.FullName,
			"verified":  verified,
		}, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Logged in as %s (%s)\n", user.Username, user.Email)
		if whoamiVerify {
			fmt.Fprintln(w, "Session verified against backend")
		}
	}
	return 0
}
