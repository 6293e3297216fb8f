// ABOUTME: Tests for configuration loading
// ABOUTME: Defaults, environment overrides, and validation failures

package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"NUTRICHEF_API_URL",
		"NUTRICHEF_REQUEST_TIMEOUT",
		"NUTRICHEF_ANALYZE_TIMEOUT",
		"NUTRICHEF_VERIFY_INTERVAL",
		"NUTRICHEF_KEEP_SESSION_ON_NETWORK_ERROR",
		"NUTRICHEF_CONFIG_DIR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.APIBaseURL != DefaultAPIBaseURL {
		t.Errorf("expected default API URL, got %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("expected 30s request timeout, got %v", cfg.RequestTimeout)
	}
	if cfg.AnalyzeTimeout != 60*time.Second {
		t.Errorf("expected 60s analyze timeout, got %v", cfg.AnalyzeTimeout)
	}
	if cfg.VerifyInterval != 30*time.Second {
		t.Errorf("expected 30s verify interval, got %v", cfg.VerifyInterval)
	}
	if !cfg.KeepSessionOnNetworkError {
		t.Error("keep-session policy must default to true")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("NUTRICHEF_API_URL", "http://nutrition.internal:8080")
	t.Setenv("NUTRICHEF_REQUEST_TIMEOUT", "10")
	t.Setenv("NUTRICHEF_ANALYZE_TIMEOUT", "120")
	t.Setenv("NUTRICHEF_VERIFY_INTERVAL", "60")
	t.Setenv("NUTRICHEF_KEEP_SESSION_ON_NETWORK_ERROR", "false")
	t.Setenv("NUTRICHEF_CONFIG_DIR", "/tmp/nutrichef-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.APIBaseURL != "http://nutrition.internal:8080" {
		t.Errorf("API URL override ignored: %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("request timeout override ignored: %v", cfg.RequestTimeout)
	}
	if cfg.AnalyzeTimeout != 120*time.Second {
		t.Errorf("analyze timeout override ignored: %v", cfg.AnalyzeTimeout)
	}
	if cfg.VerifyInterval != 60*time.Second {
		t.Errorf("verify interval override ignored: %v", cfg.VerifyInterval)
	}
	if cfg.KeepSessionOnNetworkError {
		t.Error("keep-session override ignored")
	}
	if cfg.ConfigDir != "/tmp/nutrichef-test" {
		t.Errorf("config dir override ignored: %q", cfg.ConfigDir)
	}
}

func TestLoadRejectsBadTimeouts(t *testing.T) {
	for _, bad := range []string{"abc", "-5", "0"} {
		clearEnv(t)
		t.Setenv("NUTRICHEF_REQUEST_TIMEOUT", bad)
		if _, err := Load(); err == nil {
			t.Errorf("expected error for timeout %q", bad)
		}
	}
}

func TestLoadInvalidBoolFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("NUTRICHEF_KEEP_SESSION_ON_NETWORK_ERROR", "maybe")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !cfg.KeepSessionOnNetworkError {
		t.Error("invalid bool must fall back to the default")
	}
}
