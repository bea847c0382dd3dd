package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// unsetAfter removes variables godotenv set on the process.
func unsetAfter(t *testing.T, keys ...string) {
	t.Cleanup(func() {
		for _, k := range keys {
			_ = os.Unsetenv(k)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	path := writeEnvFile(t, "")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "catalog", cfg.Postgres.DB)
	assert.Equal(t, "disable", cfg.Postgres.SSLMode)
	assert.Equal(t, 30*time.Minute, cfg.Postgres.ConnMaxLifetime)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "warn", cfg.Log.SQLLevel)
	assert.True(t, cfg.Migrate.OnStart)
}

func TestLoad_EnvFileAndOverrides(t *testing.T) {
	path := writeEnvFile(t, "POSTGRES_USER=filer\nPOSTGRES_DB=fromfile\nPOSTGRES_PORT=6543\n")
	unsetAfter(t, "POSTGRES_USER", "POSTGRES_DB", "POSTGRES_PORT")

	t.Setenv("POSTGRES_DB", "fromenv")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("HTTP_READ_TIMEOUT", "2s")
	t.Setenv("MIGRATE_ON_START", "false")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "filer", cfg.Postgres.User)
	assert.Equal(t, "fromenv", cfg.Postgres.DB, "environment wins over .env")
	assert.Equal(t, 6543, cfg.Postgres.Port)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, 2*time.Second, cfg.HTTP.ReadTimeout)
	assert.False(t, cfg.Migrate.OnStart)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_MissingEnvFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoad_DefaultEnvFile(t *testing.T) {
	t.Run("missing .env is ignored", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "catalog", cfg.Postgres.DB)
	})

	t.Run("malformed .env is reported", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BAD-KEY=1\n"), 0o600))
		t.Chdir(dir)

		_, err := Load()
		assert.ErrorContains(t, err, "error loading .env")
	})
}

func TestLoad_InvalidPort(t *testing.T) {
	path := writeEnvFile(t, "")
	t.Setenv("POSTGRES_PORT", "70000")

	_, err := Load(path)
	assert.ErrorContains(t, err, "postgres.port")
}

func TestPostgresConfig_DSN(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "db",
		Port:     5433,
		User:     "catalog",
		Password: "p@ss",
		DB:       "catalog",
		SSLMode:  "require",
	}

	assert.Equal(t, "postgres://catalog:p%40ss@db:5433/catalog?sslmode=require", cfg.DSN())
}
