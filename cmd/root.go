// ABOUTME: Root command for the NutriChef CLI
// ABOUTME: Global flags, shared client wiring, and the default TUI launch

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AzlNach/NutriChef/internal/api"
	"github.com/AzlNach/NutriChef/internal/config"
	"github.com/AzlNach/NutriChef/internal/session"
	"github.com/AzlNach/NutriChef/internal/tui"
	"github.com/AzlNach/NutriChef/internal/tui/debuglog"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command. Running it without a subcommand opens the
// interactive TUI.
var rootCmd = &cobra.Command{
	Use:   "nutrichef",
	Short: "Food photo nutrition analysis client",
	Long: `nutrichef is a client for the NutriChef nutrition analysis backend.

Run without arguments to open the interactive TUI. Subcommands cover
one-shot use from scripts and CI.

Environment Variables:
  NUTRICHEF_API_URL     Backend API URL (default: http://localhost:5000)
  NUTRICHEF_CONFIG_DIR  Client state directory (session, recent images)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, store, err := buildEnv()
		if err != nil {
			return err
		}

		if err := debuglog.Init(cfg.ConfigDir); err != nil {
			fmt.Fprintf(os.Stderr, "warning: debug log disabled: %v\n", err)
		}
		defer debuglog.Close()

		return tui.Run(cfg, client, store)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides NUTRICHEF_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// buildEnv loads configuration, restores any persisted session, and wires
// a client whose bearer token follows the session store. Flag beats env
// beats default for the API URL.
func buildEnv() (*config.Config, *api.Client, *session.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	if apiURL != "" {
		cfg.APIBaseURL = apiURL
	}

	store := session.NewStore(cfg.ConfigDir)
	store.Restore()

	client := api.NewWithOptions(cfg.APIBaseURL, api.Options{
		Timeout:        cfg.RequestTimeout,
		AnalyzeTimeout: cfg.AnalyzeTimeout,
		TokenSource:    store.Token,
	})

	return cfg, client, store, nil
}
