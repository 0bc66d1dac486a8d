package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFilename is looked up inside the database directory
const DefaultConfigFilename = "config.yaml"

// fileConfig mirrors Config with optional fields so that only keys present
// in the YAML document override lower layers.
type fileConfig struct {
	Database struct {
		Dir            *string `yaml:"dir"`
		Filename       *string `yaml:"filename"`
		QueryTimeout   *string `yaml:"query_timeout"`
		WriteTimeout   *string `yaml:"write_timeout"`
		DirPermissions *string `yaml:"dir_permissions"`
	} `yaml:"database"`
	Locale struct {
		Language *string `yaml:"language"`
	} `yaml:"locale"`
	Export struct {
		Dir    *string `yaml:"dir"`
		Prefix *string `yaml:"prefix"`
	} `yaml:"export"`
	Session struct {
		FlushOpenBreak *bool `yaml:"flush_open_break"`
	} `yaml:"session"`
	Validation struct {
		TextMaxLength *int `yaml:"text_max_length"`
	} `yaml:"validation"`
	Application struct {
		Timeout     *string `yaml:"timeout"`
		Verbose     *bool   `yaml:"verbose"`
		Environment *string `yaml:"environment"`
	} `yaml:"application"`
}

// ResolveConfigPath returns the config file location and whether it was set
// explicitly through WT_CONFIG.
func ResolveConfigPath(c *Config) (string, bool) {
	if path := os.Getenv("WT_CONFIG"); path != "" {
		return path, true
	}
	dir := c.Database.Dir
	if envDir := os.Getenv("WT_DB_DIR"); envDir != "" {
		dir = envDir
	}
	return filepath.Join(dir, DefaultConfigFilename), false
}

// LoadFromFile applies the YAML document at path on top of c. A missing file
// is only an error when the path was given explicitly.
func (c *Config) LoadFromFile(path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("os.ReadFile: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return &ConfigError{Field: "file", Message: fmt.Sprintf("%s: %v", path, err)}
	}

	c.applyFile(&fc)
	return nil
}

func (c *Config) applyFile(fc *fileConfig) {
	if fc.Database.Dir != nil {
		c.Database.Dir = *fc.Database.Dir
	}
	if fc.Database.Filename != nil {
		c.Database.Filename = *fc.Database.Filename
	}
	if fc.Database.QueryTimeout != nil {
		c.Database.QueryTimeout = ParseDurationWithFallback(*fc.Database.QueryTimeout, c.Database.QueryTimeout)
	}
	if fc.Database.WriteTimeout != nil {
		c.Database.WriteTimeout = ParseDurationWithFallback(*fc.Database.WriteTimeout, c.Database.WriteTimeout)
	}
	if fc.Database.DirPermissions != nil {
		c.Database.DirPermissions = ParseUint32WithFallback(*fc.Database.DirPermissions, 8, c.Database.DirPermissions)
	}

	if fc.Locale.Language != nil {
		c.Locale.Language = *fc.Locale.Language
	}
	if fc.Export.Dir != nil {
		c.Export.Dir = *fc.Export.Dir
	}
	if fc.Export.Prefix != nil {
		c.Export.Prefix = *fc.Export.Prefix
	}
	if fc.Session.FlushOpenBreak != nil {
		c.Session.FlushOpenBreak = *fc.Session.FlushOpenBreak
	}
	if fc.Validation.TextMaxLength != nil {
		c.Validation.TextMaxLength = *fc.Validation.TextMaxLength
	}

	if fc.Application.Timeout != nil {
		c.Application.Timeout = ParseDurationWithFallback(*fc.Application.Timeout, c.Application.Timeout)
	}
	if fc.Application.Verbose != nil {
		c.Application.Verbose = *fc.Application.Verbose
	}
	if fc.Application.Environment != nil {
		c.Application.Environment = Environment(*fc.Application.Environment)
	}
}
