// ABOUTME: Shared test helpers for the command surface
// ABOUTME: Commands run against an httptest backend and a temp config dir

package cmd

import (
	"testing"

	"github.com/AzlNach/NutriChef/internal/api"
	"github.com/AzlNach/NutriChef/internal/session"
)

// setupEnv points the commands at the given backend URL and a fresh config
// directory, and resets all flag variables between tests.
func setupEnv(t *testing.T, serverURL string) *session.Store {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("NUTRICHEF_CONFIG_DIR", dir)
	t.Setenv("NUTRICHEF_API_URL", serverURL)

	apiURL = ""
	jsonOutput = false
	whoamiVerify = false
	analyzeMealType = ""
	analyzeNotes = ""
	analyzeConfirm = false
	historyDays = 7
	goalsCalories, goalsProtein, goalsCarbs, goalsFat = 0, 0, 0, 0
	profileSet = nil

	return session.NewStore(dir)
}

func loginTestUser(t *testing.T, store *session.Store) {
	t.Helper()
	if err := store.Login("tok-1", api.UserSummary{Username: "azl", Email: "azl@example.com"}); err != nil {
		t.Fatal(err)
	}
}

func TestBuildEnvFlagBeatsEnv(t *testing.T) {
	setupEnv(t, "http://env.example")
	apiURL = "http://flag.example"

	cfg, _, _, err := buildEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIBaseURL != "http://flag.example" {
		t.Errorf("--api-url must beat the environment, got %q", cfg.APIBaseURL)
	}
}

func TestBuildEnvRestoresSession(t *testing.T) {
	store := setupEnv(t, "http://localhost:0")
	loginTestUser(t, store)

	_, _, restored, err := buildEnv()
	if err != nil {
		t.Fatal(err)
	}
	user := restored.User()
	if user == nil || user.Username != "azl" {
		t.Errorf("persisted session must be restored, got %#v", user)
	}
}
