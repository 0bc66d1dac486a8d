package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for the work-hours tracker
type Config struct {
	Database    DatabaseConfig
	Locale      LocaleConfig
	Export      ExportConfig
	Session     SessionConfig
	Validation  ValidationConfig
	Application ApplicationConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `env:"WT_DB_DIR"`
	Filename       string        `env:"WT_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"WT_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `env:"WT_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `env:"WT_DB_DIR_PERMISSIONS"`
}

// LocaleConfig selects the label language for output and exports
type LocaleConfig struct {
	Language string `env:"WT_LANG"`
}

// ExportConfig holds export destination configuration
type ExportConfig struct {
	Dir    string `env:"WT_EXPORT_DIR"`
	Prefix string `env:"WT_EXPORT_PREFIX"`
}

// SessionConfig holds session tracking rules
type SessionConfig struct {
	FlushOpenBreak bool `env:"WT_SESSION_FLUSH_OPEN_BREAK"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TextMaxLength int `env:"WT_VALIDATION_TEXT_MAX"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout     time.Duration `env:"WT_APP_TIMEOUT"`
	Verbose     bool          `env:"WT_APP_VERBOSE"`
	Environment Environment   `env:"WT_ENV"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".worktime")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "worktime.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Locale: LocaleConfig{
			Language: "de",
		},
		Export: ExportConfig{
			Dir: ".",
		},
		Session: SessionConfig{
			FlushOpenBreak: false,
		},
		Validation: ValidationConfig{
			TextMaxLength: 500,
		},
		Application: ApplicationConfig{
			Timeout:     60 * time.Second,
			Verbose:     false,
			Environment: EnvProduction,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Database.WriteTimeout
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("WT_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("WT_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("WT_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if timeout := os.Getenv("WT_DB_WRITE_TIMEOUT"); timeout != "" {
		c.Database.WriteTimeout = ParseDurationWithFallback(timeout, c.Database.WriteTimeout)
	}
	if perms := os.Getenv("WT_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Locale and export configuration
	if lang := os.Getenv("WT_LANG"); lang != "" {
		c.Locale.Language = lang
	}
	if dir := os.Getenv("WT_EXPORT_DIR"); dir != "" {
		c.Export.Dir = dir
	}
	if prefix := os.Getenv("WT_EXPORT_PREFIX"); prefix != "" {
		c.Export.Prefix = prefix
	}

	// Session and validation configuration
	if flush := os.Getenv("WT_SESSION_FLUSH_OPEN_BREAK"); flush != "" {
		c.Session.FlushOpenBreak = ParseBoolWithFallback(flush, c.Session.FlushOpenBreak)
	}
	if maxLen := os.Getenv("WT_VALIDATION_TEXT_MAX"); maxLen != "" {
		c.Validation.TextMaxLength = ParseIntWithFallback(maxLen, c.Validation.TextMaxLength)
	}

	// Application configuration
	if timeout := os.Getenv("WT_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("WT_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}
	if env := os.Getenv("WT_ENV"); env != "" {
		c.Application.Environment = Environment(env)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	if c.Locale.Language == "" {
		return &ConfigError{Field: "locale.language", Message: "language cannot be empty"}
	}
	if c.Export.Dir == "" {
		return &ConfigError{Field: "export.dir", Message: "export directory cannot be empty"}
	}

	if c.Validation.TextMaxLength < 1 {
		return &ConfigError{Field: "validation.text_max_length", Message: "text maximum length must be at least 1"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}
	if !c.Application.Environment.Valid() {
		return &ConfigError{Field: "application.environment", Message: "environment must be one of production, development, testing"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
