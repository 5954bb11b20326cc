// Package config loads regguard settings from flags, files and environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ochairo/regguard/internal/domain/entities"
)

// EnvPrefix prefixes every environment override, e.g. REGGUARD_STORE_BACKEND
const EnvPrefix = "REGGUARD"

// Store backends
const (
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// LogConfig controls log output
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" (default) or "json"
}

// RolesConfig lists roles that exist without being declared
type RolesConfig struct {
	Default []string `mapstructure:"default"`
}

// SettingsConfig tunes the registry settings rules
type SettingsConfig struct {
	RetentionMinDays int `mapstructure:"retention_min_days"`
}

// RedisConfig addresses the Redis baseline store
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Key      string `mapstructure:"key"`
}

// SQLiteConfig locates the SQLite baseline store
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// StoreConfig selects and configures the baseline store
type StoreConfig struct {
	Backend string       `mapstructure:"backend"`
	Redis   RedisConfig  `mapstructure:"redis"`
	SQLite  SQLiteConfig `mapstructure:"sqlite"`
}

// BaselineConfig enables OpenPGP signing of baselines
type BaselineConfig struct {
	SigningKey        string `mapstructure:"signing_key"`
	SigningPassphrase string `mapstructure:"signing_passphrase"`
	Keyring           string `mapstructure:"keyring"`
}

// Config holds every regguard setting
type Config struct {
	Log      LogConfig         `mapstructure:"log"`
	Roles    RolesConfig       `mapstructure:"roles"`
	Layout   map[string]string `mapstructure:"layout"`
	Settings SettingsConfig    `mapstructure:"settings"`
	Store    StoreConfig       `mapstructure:"store"`
	Baseline BaselineConfig    `mapstructure:"baseline"`
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Log:      LogConfig{Level: "info", Format: "console"},
		Roles:    RolesConfig{Default: []string{"officer", "citizen"}},
		Settings: SettingsConfig{RetentionMinDays: 30},
		Store: StoreConfig{
			Backend: BackendSQLite,
			Redis:   RedisConfig{Addr: "localhost:6379", Key: "regguard:baselines"},
			SQLite:  SQLiteConfig{Path: ".regguard/baselines.db"},
		},
	}
}

// SetDefaults registers the defaults on v
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("roles.default", d.Roles.Default)
	v.SetDefault("settings.retention_min_days", d.Settings.RetentionMinDays)
	v.SetDefault("store.backend", d.Store.Backend)
	v.SetDefault("store.redis.addr", d.Store.Redis.Addr)
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", d.Store.Redis.DB)
	v.SetDefault("store.redis.key", d.Store.Redis.Key)
	v.SetDefault("store.sqlite.path", d.Store.SQLite.Path)
	v.SetDefault("baseline.signing_key", "")
	v.SetDefault("baseline.signing_passphrase", "")
	v.SetDefault("baseline.keyring", "")
	for _, t := range entities.ArtifactTypes() {
		spec, _ := t.Spec()
		v.SetDefault("layout."+t.String(), spec.DefaultDir)
	}
}

// Load reads configuration into v and decodes it. An explicit cfgFile must
// exist; otherwise .regguard.yaml in the working directory and then
// ~/.config/regguard/config.yaml are tried, and a missing file is not an error.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if _, err := os.Stat(".regguard.yaml"); err == nil {
		v.SetConfigFile(".regguard.yaml")
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "regguard"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail late
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendRedis:
		if c.Store.Redis.Addr == "" {
			return fmt.Errorf("store.redis.addr is required for the redis backend")
		}
	case BackendSQLite:
		if c.Store.SQLite.Path == "" {
			return fmt.Errorf("store.sqlite.path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("unknown store.backend %q, expected %s or %s", c.Store.Backend, BackendRedis, BackendSQLite)
	}

	for name := range c.Layout {
		if _, ok := entities.ParseArtifactType(name); !ok {
			return fmt.Errorf("layout names unknown artifact type %q", name)
		}
	}
	if c.Settings.RetentionMinDays < 0 {
		return fmt.Errorf("settings.retention_min_days must not be negative")
	}
	if c.Baseline.SigningPassphrase != "" && c.Baseline.SigningKey == "" {
		return fmt.Errorf("baseline.signing_passphrase is set without baseline.signing_key")
	}
	return nil
}

// LayoutFor returns the configured directory of each artifact type
func (c *Config) LayoutFor() map[entities.ArtifactType]string {
	layout := make(map[entities.ArtifactType]string, len(c.Layout))
	for name, dir := range c.Layout {
		if t, ok := entities.ParseArtifactType(name); ok {
			layout[t] = dir
		}
	}
	return layout
}
