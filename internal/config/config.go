// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Store backends.
const (
	BackendSupabase = "supabase"
	BackendSQLite   = "sqlite"
)

// Config holds everything the server needs to start.
type Config struct {
	// Address is the listen address for the HTTP server.
	Address string

	// Backend selects the storage layer: "supabase" or "sqlite".
	Backend string

	// Supabase connection. Required when Backend is "supabase".
	SupabaseURL string
	SupabaseKey string

	// SQLitePath is the database file when Backend is "sqlite".
	SQLitePath string

	// GuestMode maps unauthenticated requests to the shared guest
	// account instead of rejecting them.
	GuestMode bool

	// AuthTimeout bounds token verification against the auth provider.
	AuthTimeout time.Duration

	// LogLevel maps to the leveled logger, 0 disables logging.
	LogLevel int
}

// Load reads configuration from the environment. envFile, when non-empty,
// is loaded first without overriding variables already set.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "loading %s", envFile)
		}
	}

	cfg := &Config{
		Address:     getenv("PROMPTVAULT_ADDRESS", ":8080"),
		Backend:     getenv("PROMPTVAULT_BACKEND", BackendSQLite),
		SupabaseURL: os.Getenv("SUPABASE_URL"),
		SupabaseKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		SQLitePath:  getenv("PROMPTVAULT_SQLITE_PATH", "promptvault.db"),
		GuestMode:   boolenv("PROMPTVAULT_GUEST_MODE"),
		AuthTimeout: durationenv("PROMPTVAULT_AUTH_TIMEOUT", 15*time.Second),
		LogLevel:    intenv("PROMPTVAULT_LOG_LEVEL", 1),
	}
	if cfg.SupabaseKey == "" {
		cfg.SupabaseKey = os.Getenv("SUPABASE_ANON_KEY")
	}

	switch cfg.Backend {
	case BackendSQLite:
	case BackendSupabase:
		if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
			return nil, errors.New("supabase backend requires SUPABASE_URL and an API key")
		}
	default:
		return nil, errors.Errorf("unknown backend %q", cfg.Backend)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func boolenv(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

func intenv(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func durationenv(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
