// ABOUTME: Configuration loader for the NutriChef client
// ABOUTME: Loads settings from .env and environment variables with defaults

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults. The analyze endpoint gets a longer timeout because a single
// request covers the whole model inference.
const (
	DefaultAPIBaseURL     = "http://localhost:5000"
	DefaultRequestTimeout = 30 * time.Second
	DefaultAnalyzeTimeout = 60 * time.Second
	DefaultVerifyInterval = 30 * time.Second
	DefaultNoticeTTL      = 5 * time.Second
)

// Config holds all client settings.
type Config struct {
	// APIBaseURL is the backend root, e.g. http://localhost:5000.
	APIBaseURL string

	// RequestTimeout bounds ordinary API calls.
	RequestTimeout time.Duration

	// AnalyzeTimeout bounds the /food/analyze upload.
	AnalyzeTimeout time.Duration

	// VerifyInterval is the cadence of the background session liveness
	// check while authenticated.
	VerifyInterval time.Duration

	// NoticeTTL is how long transient notices stay on screen.
	NoticeTTL time.Duration

	// KeepSessionOnNetworkError controls the verify policy when the server
	// is unreachable: true (default) treats "cannot confirm" as keep,
	// false logs out on any failed check.
	KeepSessionOnNetworkError bool

	// ConfigDir holds persisted client state (session, recent images,
	// debug log).
	ConfigDir string
}

// Load builds a Config from a .env file (if present) and environment
// variables, falling back to defaults.
func Load() (*Config, error) {
	// .env is optional; absence is not an error
	godotenv.Load()

	cfg := &Config{
		APIBaseURL:                getEnvString("NUTRICHEF_API_URL", DefaultAPIBaseURL),
		RequestTimeout:            DefaultRequestTimeout,
		AnalyzeTimeout:            DefaultAnalyzeTimeout,
		VerifyInterval:            DefaultVerifyInterval,
		NoticeTTL:                 DefaultNoticeTTL,
		KeepSessionOnNetworkError: getEnvBool("NUTRICHEF_KEEP_SESSION_ON_NETWORK_ERROR", true),
		ConfigDir:                 getEnvString("NUTRICHEF_CONFIG_DIR", DefaultConfigDir()),
	}

	var err error
	if cfg.RequestTimeout, err = getEnvSeconds("NUTRICHEF_REQUEST_TIMEOUT", cfg.RequestTimeout); err != nil {
		return nil, err
	}
	if cfg.AnalyzeTimeout, err = getEnvSeconds("NUTRICHEF_ANALYZE_TIMEOUT", cfg.AnalyzeTimeout); err != nil {
		return nil, err
	}
	if cfg.VerifyInterval, err = getEnvSeconds("NUTRICHEF_VERIFY_INTERVAL", cfg.VerifyInterval); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DefaultConfigDir returns the client state directory following XDG spec.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "nutrichef")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "nutrichef")
}

func getEnvString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvSeconds(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return 0, fmt.Errorf("%s must be a positive number of seconds, got %q", key, v)
	}
	return time.Duration(secs) * time.Second, nil
}
