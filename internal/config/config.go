package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

type StoreType string

const (
	// StoreTypeCookie keeps preferences in the signed session cookie of each client.
	StoreTypeCookie StoreType = "cookie"
	// StoreTypeDatabase keeps preferences in sqlite, keyed by a device id cookie.
	StoreTypeDatabase StoreType = "database"
)

type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeRedis  CacheType = "redis"
)

// Config holds the configuration for the admindash server.
type Config struct {
	// Listen is the address the server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// ServerURL is the public base URL of the server.
	ServerURL string `yaml:"server_url" mapstructure:"server_url"`
	// SessionKey is the key used to sign session cookies.
	SessionKey string `yaml:"session_key" mapstructure:"session_key"`
	// SessionMaxAge is the maximum age of the session and device cookies in seconds.
	SessionMaxAge int `yaml:"session_max_age" mapstructure:"session_max_age"`
	// SecureCookies marks all cookies as Secure. Enable this behind TLS.
	SecureCookies bool `yaml:"secure_cookies" mapstructure:"secure_cookies"`
	// Gzip enables gzip compression of responses.
	Gzip bool `yaml:"gzip" mapstructure:"gzip"`
	// TokenPrefix is prepended to the placeholder tokens issued on login.
	TokenPrefix string `yaml:"token_prefix" mapstructure:"token_prefix"`
	// MaintenanceSchedule is the cron schedule for database maintenance.
	MaintenanceSchedule string `yaml:"maintenance_schedule" mapstructure:"maintenance_schedule"`
	// Store selects where client preferences are kept.
	Store *StoreConfig `yaml:"store" mapstructure:"store"`
	// Database holds the database configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	// Cache holds the cache engine configuration.
	Cache *CacheConfig `yaml:"cache" mapstructure:"cache"`
}

// StoreConfig holds the preference store configuration.
type StoreConfig struct {
	// Type is the store backend ("cookie" or "database").
	Type StoreType `yaml:"type" mapstructure:"type"`
	// DeviceCookie is the name of the cookie carrying the device id for the database store.
	DeviceCookie string `yaml:"device_cookie" mapstructure:"device_cookie"`
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	// Path is the path to the database file.
	Path string `yaml:"path" mapstructure:"path"`
}

// CacheConfig holds the configuration for the cache engine.
type CacheConfig struct {
	// Type is the type of cache engine to use (e.g., "memory", "redis").
	Type CacheType `yaml:"type" mapstructure:"type"`
	// RedisURL is the URL for the Redis cache if using Redis.
	RedisURL string `yaml:"redis_url" mapstructure:"redis_url"`
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
// A missing config file is not an error, defaults and environment variables are used instead.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("ADMINDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var configFileFound bool
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.admindash")
		v.AddConfigPath("/etc/admindash")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileFound = true
	}

	if configFileFound {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
		log.Debug("All values can be overridden with ADMINDASH_ prefixed environment variables")
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	sanitizeConfig(&c)

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:3002")
	v.SetDefault("server_url", "http://localhost:3002")
	v.SetDefault("session_key", "")
	v.SetDefault("session_max_age", 2592000) // 30 days
	v.SetDefault("secure_cookies", false)
	v.SetDefault("gzip", true)
	v.SetDefault("token_prefix", "example_token_")
	v.SetDefault("maintenance_schedule", "0 3 * * *")

	// Store defaults
	v.SetDefault("store.type", StoreTypeCookie)
	v.SetDefault("store.device_cookie", "admindash_device")

	// Database defaults
	v.SetDefault("database.path", "./data/admindash.db")

	// Cache defaults
	v.SetDefault("cache.type", CacheTypeMemory)
	v.SetDefault("cache.redis_url", "")
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("missing admindash config")
	}

	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}

	if c.SessionKey == "" {
		return fmt.Errorf("session key is required")
	}

	if c.SessionMaxAge <= 0 {
		return fmt.Errorf("session max age must be greater than 0")
	}

	if c.TokenPrefix == "" {
		return fmt.Errorf("token prefix is required")
	}

	if c.Store == nil {
		return fmt.Errorf("missing store config")
	}

	switch c.Store.Type {
	case StoreTypeCookie:
	case StoreTypeDatabase:
		if c.Store.DeviceCookie == "" {
			return fmt.Errorf("device cookie name is required when the database store is used")
		}
		if c.Database == nil || c.Database.Path == "" {
			return fmt.Errorf("database path is required when the database store is used")
		}
		cronFields := strings.Fields(c.MaintenanceSchedule)
		if len(cronFields) != 5 {
			return fmt.Errorf("maintenance schedule must be a valid cron expression with 5 fields (minute hour day month weekday)")
		}
	default:
		return fmt.Errorf("unknown store type %q", c.Store.Type)
	}

	if c.Cache != nil {
		if c.Cache.Type == "" {
			return fmt.Errorf("cache type is required when cache is enabled")
		}
		if c.Cache.Type == CacheTypeRedis && c.Cache.RedisURL == "" {
			return fmt.Errorf("Redis URL is required when Redis cache is enabled") //nolint:staticcheck
		}
	} else {
		c.Cache = &CacheConfig{
			Type: CacheTypeMemory,
		}
	}

	return nil
}

// sanitizeConfig sanitizes the configuration values.
func sanitizeConfig(c *Config) {
	if c == nil {
		return
	}

	c.Listen = urlSanitize(c.Listen)

	if c.ServerURL != "" {
		c.ServerURL = urlSanitize(c.ServerURL)
	}

	if c.Store != nil {
		c.Store.Type = StoreType(strings.ToLower(strings.TrimSpace(string(c.Store.Type))))
	}

	if c.Cache != nil {
		c.Cache.Type = CacheType(strings.ToLower(strings.TrimSpace(string(c.Cache.Type))))
	}
}

func urlSanitize(url string) string {
	return strings.TrimSuffix(strings.TrimSpace(url), "/")
}

// UsesDatabase reports whether preferences are kept in the database.
func (c *Config) UsesDatabase() bool {
	return c != nil && c.Store != nil && c.Store.Type == StoreTypeDatabase
}
