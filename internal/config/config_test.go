package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.False(t, cfg.GuestMode)
	assert.Equal(t, 15*time.Second, cfg.AuthTimeout)
}

func TestLoadSupabaseRequiresCredentials(t *testing.T) {
	t.Setenv("PROMPTVAULT_BACKEND", BackendSupabase)
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "")
	t.Setenv("SUPABASE_ANON_KEY", "")

	_, err := Load("")
	require.Error(t, err)

	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "anon", cfg.SupabaseKey)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("PROMPTVAULT_BACKEND", "postgres")
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PROMPTVAULT_ADDRESS", "127.0.0.1:9999")
	t.Setenv("PROMPTVAULT_GUEST_MODE", "true")
	t.Setenv("PROMPTVAULT_AUTH_TIMEOUT", "3s")
	t.Setenv("PROMPTVAULT_LOG_LEVEL", "4")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", cfg.Address)
	assert.True(t, cfg.GuestMode)
	assert.Equal(t, 3*time.Second, cfg.AuthTimeout)
	assert.Equal(t, 4, cfg.LogLevel)
}
