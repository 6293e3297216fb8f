// ABOUTME: Logout command: clear the persisted session
// ABOUTME: Server notification is best effort; local state always clears

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	Long:  `Clear the persisted session. The backend is notified when reachable, but local state is cleared regardless.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogout(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears the session and returns exit code
func runLogout(ctx context.Context, w io.Writer) int {
	_, client, store, err := buildEnv()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if !store.IsAuthenticated() {
		fmt.Fprintln(w, "Not logged in")
		return 0
	}

	// Best effort; a dead backend must not trap the user in a session
	if err := client.Logout(ctx); err != nil {
		fmt.Fprintf(w, "warning: server logout failed: %v\n", err)
	}

	if err := store.Logout(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintln(w, "Logged out")
	return 0
}
