package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Tests in this file mutate the environment and cannot run in parallel.

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("INVENTORY_CONFIG_FILE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "inventory", cfg.Issuer)
	require.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	require.Equal(t, AlgorithmHS256, cfg.Algorithm)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, time.Hour, cfg.HousekeepingInterval)
	require.Positive(t, cfg.AccessTTL)
	require.Greater(t, cfg.RefreshTTL, cfg.AccessTTL)
	require.Empty(t, cfg.CORSOrigins)
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("INVENTORY_CONFIG_FILE", "")
	t.Setenv("INVENTORY_ISSUER", "inv-prod")
	t.Setenv("INVENTORY_DATABASE_DRIVER", "Postgres")
	t.Setenv("INVENTORY_DATABASE_DSN", "postgres://inv@db/inv")
	t.Setenv("INVENTORY_ACCESS_TTL", "5m")
	t.Setenv("INVENTORY_REFRESH_TTL", "90") // minutes
	t.Setenv("PORT", "9090")
	t.Setenv("INVENTORY_CORS_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "inv-prod", cfg.Issuer)
	require.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	require.Equal(t, "postgres://inv@db/inv", cfg.DatabaseDSN)
	require.Equal(t, 5*time.Minute, cfg.AccessTTL)
	require.Equal(t, 90*time.Minute, cfg.RefreshTTL)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadConfigFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
issuer: from-file
database:
  driver: sqlite
  file: /var/lib/inventory.db
signing:
  algorithm: EdDSA
  keyFile: /etc/inventory/key.pem
accessTTL: 2m
housekeepingInterval: 30
log:
  level: debug
corsOrigins:
  - https://app.example
`), 0o600))

	t.Setenv("INVENTORY_CONFIG_FILE", path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "from-file", cfg.Issuer)
	require.Equal(t, "/var/lib/inventory.db", cfg.DatabaseFile)
	require.Equal(t, AlgorithmEdDSA, cfg.Algorithm)
	require.Equal(t, "/etc/inventory/key.pem", cfg.KeyFile)
	require.Equal(t, 2*time.Minute, cfg.AccessTTL)
	require.Equal(t, 30*time.Minute, cfg.HousekeepingInterval)
	require.Equal(t, []string{"https://app.example"}, cfg.CORSOrigins)

	// Environment wins over the file.
	require.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfigFileErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		t.Setenv("INVENTORY_CONFIG_FILE", filepath.Join(dir, "nope.yaml"))
		_, err := LoadConfig()
		require.Error(t, err)
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("issuer: [unterminated"), 0o600))
		t.Setenv("INVENTORY_CONFIG_FILE", path)
		_, err := LoadConfig()
		require.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		path := filepath.Join(dir, "dur.yaml")
		require.NoError(t, os.WriteFile(path, []byte("refreshTTL: soon"), 0o600))
		t.Setenv("INVENTORY_CONFIG_FILE", path)
		_, err := LoadConfig()
		require.ErrorContains(t, err, "refreshTTL")
	})
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown driver", func(c *Config) { c.DatabaseDriver = "mysql" }, "unknown database driver"},
		{"postgres without dsn", func(c *Config) { c.DatabaseDriver = DriverPostgres }, "INVENTORY_DATABASE_DSN"},
		{"zero access ttl", func(c *Config) { c.AccessTTL = 0 }, "access token TTL"},
		{"negative refresh ttl", func(c *Config) { c.RefreshTTL = -time.Second }, "refresh token TTL"},
		{"bad algorithm", func(c *Config) { c.Algorithm = "none" }, "signing algorithm"},
		{"bad port", func(c *Config) { c.Port = 70000 }, "invalid port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultConfig()
			tt.mutate(&cfg)
			require.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}

	require.NoError(t, defaultConfig().Validate())
}
