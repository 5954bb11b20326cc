package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochairo/regguard/internal/domain/entities"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, []string{"officer", "citizen"}, cfg.Roles.Default)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "bp-grouping", cfg.LayoutFor()[entities.TypeProcessGroups])
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regguard.yaml")
	content := `
log:
  level: debug
roles:
  default: [officer]
layout:
  forms: ui/forms
store:
  backend: redis
  redis:
    addr: redis:6379
    db: 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("REGGUARD_STORE_REDIS_KEY", "ci:baselines")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"officer"}, cfg.Roles.Default)
	assert.Equal(t, "ui/forms", cfg.LayoutFor()[entities.TypeForm])
	assert.Equal(t, "bpmn", cfg.LayoutFor()[entities.TypeProcessDefinition])
	assert.Equal(t, RedisConfig{Addr: "redis:6379", DB: 2, Key: "ci:baselines"}, cfg.Store.Redis)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_WorkingDirectoryFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(".regguard.yaml", []byte("settings:\n  retention_min_days: 90\n"), 0o600))

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, 90, cfg.Settings.RetentionMinDays)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"unknown backend", func(c *Config) { c.Store.Backend = "s3" }, `unknown store.backend "s3"`},
		{"redis without addr", func(c *Config) { c.Store.Backend = BackendRedis; c.Store.Redis.Addr = "" }, "store.redis.addr is required"},
		{"sqlite without path", func(c *Config) { c.Store.SQLite.Path = "" }, "store.sqlite.path is required"},
		{"unknown layout", func(c *Config) { c.Layout = map[string]string{"reports": "r"} }, `unknown artifact type "reports"`},
		{"negative retention", func(c *Config) { c.Settings.RetentionMinDays = -1 }, "must not be negative"},
		{"passphrase without key", func(c *Config) { c.Baseline.SigningPassphrase = "x" }, "without baseline.signing_key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}
