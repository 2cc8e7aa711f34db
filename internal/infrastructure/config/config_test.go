package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedConfig "github.com/orris-inc/fitment/internal/shared/config"
)

func clearStoreEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ORA_USER", "ORA_PASS", "ORA_DB",
		"FITMENT_DATABASE_USERNAME", "FITMENT_DATABASE_PASSWORD", "FITMENT_DATABASE_ADDRESS",
		"FITMENT_DATABASE_DRIVER",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_LegacyEnvironment(t *testing.T) {
	clearStoreEnv(t)
	t.Setenv("ORA_USER", "fitment")
	t.Setenv("ORA_PASS", "secret")
	t.Setenv("ORA_DB", "db.internal:3307/parts")

	cfg, err := Load("production", "")
	require.NoError(t, err)

	assert.Equal(t, "fitment", cfg.Database.Username)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "production", cfg.Server.Mode)
	assert.Equal(t, 2, cfg.Database.MinIdleConns)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Contains(t, cfg.Database.GetDSN(), "fitment:secret@tcp(db.internal:3307)/parts?")
}

func TestLoad_PrefixedEnvironmentWins(t *testing.T) {
	clearStoreEnv(t)
	t.Setenv("ORA_USER", "legacy")
	t.Setenv("FITMENT_DATABASE_USERNAME", "modern")
	t.Setenv("ORA_PASS", "secret")
	t.Setenv("ORA_DB", "localhost/parts")

	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, "modern", cfg.Database.Username)
	assert.Contains(t, cfg.Database.GetDSN(), "tcp(localhost:3306)/parts")
}

func TestLoad_MissingCredentialsIsFatal(t *testing.T) {
	clearStoreEnv(t)
	t.Setenv("ORA_USER", "fitment")

	_, err := Load("", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.password")
	assert.Contains(t, err.Error(), "database.address")
	assert.NotContains(t, err.Error(), "database.username,")
}

func TestLoad_ConfigFile(t *testing.T) {
	clearStoreEnv(t)
	path := writeConfig(t, `
server:
  port: 9090
database:
  driver: sqlite
  address: /tmp/fitment.db
  max_open_conns: 4
  min_idle_conns: 1
diagnostics:
  enabled: false
redis:
  enabled: true
  port: 6380
`)

	cfg, err := Load("", path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 4, cfg.Database.MaxOpenConns)
	assert.False(t, cfg.Diagnostics.Enabled)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6380", cfg.Redis.GetAddr())
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_ExplicitConfigFileMustExist(t *testing.T) {
	clearStoreEnv(t)
	_, err := Load("", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate_Credentials(t *testing.T) {
	tests := []struct {
		name    string
		db      sharedConfig.DatabaseConfig
		wantErr string
	}{
		{"sqlite needs no credentials", sharedConfig.DatabaseConfig{Driver: "sqlite", Address: "/tmp/fitment.db"}, ""},
		{"sqlite3 needs no credentials", sharedConfig.DatabaseConfig{Driver: "sqlite3", Address: "/tmp/fitment.db"}, ""},
		{"mysql needs credentials", sharedConfig.DatabaseConfig{Driver: "mysql", Address: "db.internal/parts"}, "database.username, database.password"},
		{"default driver needs credentials", sharedConfig.DatabaseConfig{Address: "db.internal/parts"}, "database.username"},
		{"complete dsn carries credentials", sharedConfig.DatabaseConfig{Address: "ro:pw@tcp(replica:3308)/parts"}, ""},
		{"unknown driver", sharedConfig.DatabaseConfig{Driver: "mssql", Address: "db.internal/parts"}, "unsupported database.driver"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Database: tt.db}
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoad_CompleteDSNAddress(t *testing.T) {
	clearStoreEnv(t)
	t.Setenv("FITMENT_DATABASE_ADDRESS", "ro:p@ss@tcp(replica:3308)/parts?timeout=5s")

	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, "ro:p@ss@tcp(replica:3308)/parts?timeout=5s", cfg.Database.GetDSN())
}

func TestValidate_PoolBounds(t *testing.T) {
	cfg := &Config{}
	cfg.Database.Driver = "sqlite"
	cfg.Database.Address = "file::memory:"
	cfg.Database.MinIdleConns = 5
	cfg.Database.MaxOpenConns = 2

	assert.Error(t, cfg.Validate())

	cfg.Database.MaxOpenConns = 5
	assert.NoError(t, cfg.Validate())
}
