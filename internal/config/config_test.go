package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ADMINDASH_SESSION_KEY", "secret")

	cfg, err := Load(writeConfig(t, "listen: 127.0.0.1:8080/\n"))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Listen)
	assert.Equal(t, "secret", cfg.SessionKey)
	assert.Equal(t, 2592000, cfg.SessionMaxAge)
	assert.Equal(t, "example_token_", cfg.TokenPrefix)
	assert.True(t, cfg.Gzip)
	assert.Equal(t, StoreTypeCookie, cfg.Store.Type)
	assert.Equal(t, "admindash_device", cfg.Store.DeviceCookie)
	assert.Equal(t, CacheTypeMemory, cfg.Cache.Type)
	assert.False(t, cfg.UsesDatabase())
}

func TestLoad_DatabaseStore(t *testing.T) {
	path := writeConfig(t, `
session_key: from-file
store:
  type: Database
database:
  path: /tmp/admindash.db
cache:
  type: redis
  redis_url: localhost:6379
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.SessionKey)
	assert.Equal(t, StoreTypeDatabase, cfg.Store.Type)
	assert.True(t, cfg.UsesDatabase())
	assert.Equal(t, "/tmp/admindash.db", cfg.Database.Path)
	assert.Equal(t, CacheTypeRedis, cfg.Cache.Type)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("ADMINDASH_SESSION_KEY", "from-env")
	t.Setenv("ADMINDASH_TOKEN_PREFIX", "dev_")

	cfg, err := Load(writeConfig(t, "session_key: from-file\n"))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.SessionKey)
	assert.Equal(t, "dev_", cfg.TokenPrefix)
}

func TestLoad_InvalidFile(t *testing.T) {
	_, err := Load(writeConfig(t, "listen: [unterminated\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Listen:              "0.0.0.0:3002",
			SessionKey:          "secret",
			SessionMaxAge:       60,
			TokenPrefix:         "example_token_",
			MaintenanceSchedule: "0 3 * * *",
			Store:               &StoreConfig{Type: StoreTypeCookie, DeviceCookie: "device"},
			Database:            &DatabaseConfig{Path: "./data/admindash.db"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing session key", mutate: func(c *Config) { c.SessionKey = "" }, wantErr: "session key is required"},
		{name: "zero max age", mutate: func(c *Config) { c.SessionMaxAge = 0 }, wantErr: "session max age"},
		{name: "empty token prefix", mutate: func(c *Config) { c.TokenPrefix = "" }, wantErr: "token prefix is required"},
		{name: "missing store", mutate: func(c *Config) { c.Store = nil }, wantErr: "missing store config"},
		{name: "unknown store", mutate: func(c *Config) { c.Store.Type = "local" }, wantErr: "unknown store type"},
		{
			name: "database without path",
			mutate: func(c *Config) {
				c.Store.Type = StoreTypeDatabase
				c.Database.Path = ""
			},
			wantErr: "database path is required",
		},
		{
			name: "database with bad schedule",
			mutate: func(c *Config) {
				c.Store.Type = StoreTypeDatabase
				c.MaintenanceSchedule = "@daily"
			},
			wantErr: "maintenance schedule",
		},
		{
			name:    "redis without url",
			mutate:  func(c *Config) { c.Cache = &CacheConfig{Type: CacheTypeRedis} },
			wantErr: "Redis URL is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := validateConfig(c)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				assert.NotNil(t, c.Cache)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
