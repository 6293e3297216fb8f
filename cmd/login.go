// ABOUTME: Login command: authenticate and persist the session
// ABOUTME: Prompts for missing credentials, supports scripted use via flags

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/AzlNach/NutriChef/internal/api"
)

var loginUsername string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the backend",
	Long:  `Authenticate against the NutriChef backend and persist the session for later commands and the TUI.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username or email")
	rootCmd.AddCommand(loginCmd)
}

// runLogin prompts for credentials, authenticates, and persists the
// session. Returns exit code.
func runLogin(ctx context.Context, w io.Writer) int {
	_, client, store, err := buildEnv()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	creds := api.Credentials{Username: loginUsername}
	password := ""

	fields := []huh.Field{}
	if creds.Username == "" {
		fields = append(fields, huh.NewInput().
			Title("Username or email").
			Value(&creds.Username))
	}
	fields = append(fields, huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&password))

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	creds.Password = password

	resp, err := client.Login(ctx, creds)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if err := store.Login(resp.AccessToken, resp.User); err != nil {
		fmt.Fprintf(w, "Error: failed to persist session: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]interface{}{
			"username": resp.User.Username,
			"email":    resp.User.Email,
		}, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Logged in as %s\n", resp.User.Username)
	}
	return 0
}
