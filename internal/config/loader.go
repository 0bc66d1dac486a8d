package config

import (
	"time"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the YAML config file
// 3. Override with environment variables
// 4. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	path, explicit := ResolveConfigPath(l.config)
	if err := l.config.LoadFromFile(path, explicit); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		config.ApplyOverrides(overrides)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Database overrides
	DBDir          *string
	DBFilename     *string
	DBQueryTimeout *time.Duration
	DBWriteTimeout *time.Duration

	// Locale and export overrides
	Language     *string
	ExportDir    *string
	ExportPrefix *string

	// Session overrides
	FlushOpenBreak *bool

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// ApplyOverrides applies command line overrides to the configuration
func (c *Config) ApplyOverrides(overrides *ConfigOverrides) {
	if overrides.DBDir != nil {
		c.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		c.Database.Filename = *overrides.DBFilename
	}
	if overrides.DBQueryTimeout != nil {
		c.Database.QueryTimeout = *overrides.DBQueryTimeout
	}
	if overrides.DBWriteTimeout != nil {
		c.Database.WriteTimeout = *overrides.DBWriteTimeout
	}

	if overrides.Language != nil {
		c.Locale.Language = *overrides.Language
	}
	if overrides.ExportDir != nil {
		c.Export.Dir = *overrides.ExportDir
	}
	if overrides.ExportPrefix != nil {
		c.Export.Prefix = *overrides.ExportPrefix
	}

	if overrides.FlushOpenBreak != nil {
		c.Session.FlushOpenBreak = *overrides.FlushOpenBreak
	}

	if overrides.Timeout != nil {
		c.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		c.Application.Verbose = *overrides.Verbose
	}
}
