// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/course-progress/internal/store"
)

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Defaults used when neither the config file nor the environment sets a value.
const (
	DefaultBackend      = BackendFile
	DefaultKeyPrefix    = "course-progress:"
	DefaultFetchTimeout = "30s"
	DefaultPageCacheTTL = "6h"
	DefaultLogLevel     = "info"
	DefaultCodePrefix   = "NET"
	defaultStoreFile    = "progress.json"
	defaultStoreDir     = "course-progress"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, the environment, or CLI flags.
type Config struct {
	// Storage
	StoreBackend string            `json:"store_backend,omitempty" validate:"omitempty,oneof=memory file redis postgres"`
	StorePath    string            `json:"store_path,omitempty"`   // File backend location
	KeyPrefix    string            `json:"key_prefix,omitempty"`   // Namespace for every persisted key
	Redis        store.RedisConfig `json:"redis,omitempty"`        // Redis backend connection
	DatabaseURL  string            `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Course data
	CatalogPath string `json:"catalog_path,omitempty"` // JSON or YAML catalog replacing the built-in one
	Deadline    string `json:"deadline,omitempty"`     // RFC3339 end of class

	// Fetching
	FetchTimeout string `json:"fetch_timeout,omitempty"`                          // Per-request timeout, e.g. "30s"
	UserAgent    string `json:"user_agent,omitempty"`                             // HTTP User-Agent header
	UseBrowser   bool   `json:"use_browser,omitempty"`                            // Render link-less pages in headless Chrome
	PageCacheTTL string `json:"page_cache_ttl,omitempty"`                         // Cache course pages for this long, "0" disables
	CodePrefix   string `json:"code_prefix,omitempty" validate:"omitempty,alpha"` // Assignment code prefix on IT pages

	// Logging
	LogLevel string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	Verbose  bool   `json:"verbose,omitempty"` // Human-readable debug logging
}

var validate = validator.New()

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		StoreBackend: DefaultBackend,
		StorePath:    DefaultStorePath(),
		KeyPrefix:    DefaultKeyPrefix,
		FetchTimeout: DefaultFetchTimeout,
		PageCacheTTL: DefaultPageCacheTTL,
		LogLevel:     DefaultLogLevel,
		CodePrefix:   DefaultCodePrefix,
	}
}

// DefaultStorePath is progress.json under the user config directory, or in
// the working directory when that cannot be determined.
func DefaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return defaultStoreFile
	}
	return filepath.Join(dir, defaultStoreDir, defaultStoreFile)
}

// ApplyEnv overrides fields from environment variables. getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.StoreBackend, "PROGRESS_STORE")
	set(&c.StorePath, "PROGRESS_STORE_PATH")
	set(&c.DatabaseURL, "DATABASE_URL")
	set(&c.Redis.Address, "REDIS_ADDR")
	set(&c.Redis.Password, "REDIS_PASSWORD")
	set(&c.CatalogPath, "PROGRESS_CATALOG")
	set(&c.LogLevel, "LOG_LEVEL")
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for backend settings supplied later by CLI flags;
// call it after merging.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	switch c.StoreBackend {
	case BackendFile:
		if c.StorePath == "" {
			return fmt.Errorf("config error: 'store_path' is required for the file backend")
		}
	case BackendRedis:
		if c.Redis.Address == "" {
			return fmt.Errorf("config error: 'redis.address' is required for the redis backend")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for the postgres backend")
		}
	}

	if c.Deadline != "" {
		if _, err := time.Parse(time.RFC3339, c.Deadline); err != nil {
			return fmt.Errorf("config error: 'deadline' must be RFC3339: %w", err)
		}
	}
	if err := checkDuration("fetch_timeout", c.FetchTimeout); err != nil {
		return err
	}
	if err := checkDuration("page_cache_ttl", c.PageCacheTTL); err != nil {
		return err
	}

	if c.CatalogPath != "" {
		if _, err := os.Stat(c.CatalogPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: catalog file not found: %s", c.CatalogPath)
		}
	}

	return nil
}

func checkDuration(field, value string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("config error: '%s' is not a duration: %w", field, err)
	}
	if d < 0 {
		return fmt.Errorf("config error: '%s' must be non-negative", field)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&result.StoreBackend, defaults.StoreBackend)
	fill(&result.StorePath, defaults.StorePath)
	fill(&result.KeyPrefix, defaults.KeyPrefix)
	fill(&result.Redis.Address, defaults.Redis.Address)
	fill(&result.Redis.Password, defaults.Redis.Password)
	fill(&result.DatabaseURL, defaults.DatabaseURL)
	fill(&result.CatalogPath, defaults.CatalogPath)
	fill(&result.Deadline, defaults.Deadline)
	fill(&result.FetchTimeout, defaults.FetchTimeout)
	fill(&result.UserAgent, defaults.UserAgent)
	fill(&result.PageCacheTTL, defaults.PageCacheTTL)
	fill(&result.CodePrefix, defaults.CodePrefix)
	fill(&result.LogLevel, defaults.LogLevel)

	// Int fields: use default if zero
	if result.Redis.DB == 0 {
		result.Redis.DB = defaults.Redis.DB
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// DeadlineTime returns the configured deadline, or fallback when unset.
// Call Validate first.
func (c *Config) DeadlineTime(fallback time.Time) time.Time {
	if c.Deadline == "" {
		return fallback
	}
	t, err := time.Parse(time.RFC3339, c.Deadline)
	if err != nil {
		return fallback
	}
	return t
}

// Timeout returns the fetch timeout.
func (c *Config) Timeout() time.Duration {
	return parseDuration(c.FetchTimeout)
}

// CacheTTL returns how long course pages are cached. Zero disables the cache.
func (c *Config) CacheTTL() time.Duration {
	return parseDuration(c.PageCacheTTL)
}

// Prefix returns the code prefix upper-cased.
func (c *Config) Prefix() string {
	return strings.ToUpper(c.CodePrefix)
}

func parseDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}
