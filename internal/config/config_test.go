package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv isolates a test from WT_* variables set in the developer's shell.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"WT_CONFIG", "WT_DB_DIR", "WT_DB_FILENAME", "WT_DB_QUERY_TIMEOUT", "WT_DB_WRITE_TIMEOUT",
		"WT_DB_DIR_PERMISSIONS", "WT_LANG", "WT_EXPORT_DIR", "WT_EXPORT_PREFIX",
		"WT_SESSION_FLUSH_OPEN_BREAK", "WT_VALIDATION_TEXT_MAX", "WT_APP_TIMEOUT",
		"WT_APP_VERBOSE", "WT_ENV",
	} {
		t.Setenv(key, "")
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "worktime.db", cfg.Database.Filename)
	assert.Equal(t, 10*time.Second, cfg.GetQueryTimeout())
	assert.Equal(t, 5*time.Second, cfg.GetWriteTimeout())
	assert.Equal(t, "de", cfg.Locale.Language)
	assert.Equal(t, ".", cfg.Export.Dir)
	assert.Empty(t, cfg.Export.Prefix)
	assert.False(t, cfg.Session.FlushOpenBreak)
	assert.Equal(t, 500, cfg.Validation.TextMaxLength)
	assert.Equal(t, EnvProduction, cfg.Application.Environment)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("WT_DB_DIR", "/tmp/wt")
	t.Setenv("WT_DB_FILENAME", "test.db")
	t.Setenv("WT_DB_QUERY_TIMEOUT", "3s")
	t.Setenv("WT_LANG", "en-US")
	t.Setenv("WT_EXPORT_DIR", "/tmp/out")
	t.Setenv("WT_EXPORT_PREFIX", "hours")
	t.Setenv("WT_SESSION_FLUSH_OPEN_BREAK", "true")
	t.Setenv("WT_VALIDATION_TEXT_MAX", "42")
	t.Setenv("WT_APP_VERBOSE", "1")
	t.Setenv("WT_ENV", "testing")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, filepath.Join("/tmp/wt", "test.db"), cfg.GetDatabasePath())
	assert.Equal(t, 3*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, "en-US", cfg.Locale.Language)
	assert.Equal(t, "/tmp/out", cfg.Export.Dir)
	assert.Equal(t, "hours", cfg.Export.Prefix)
	assert.True(t, cfg.Session.FlushOpenBreak)
	assert.Equal(t, 42, cfg.Validation.TextMaxLength)
	assert.True(t, cfg.Application.Verbose)
	assert.Equal(t, EnvTesting, cfg.Application.Environment)
}

func TestLoadFromEnvironment_InvalidValuesKeepDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("WT_DB_QUERY_TIMEOUT", "soon")
	t.Setenv("WT_VALIDATION_TEXT_MAX", "many")
	t.Setenv("WT_SESSION_FLUSH_OPEN_BREAK", "perhaps")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, 10*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, 500, cfg.Validation.TextMaxLength)
	assert.False(t, cfg.Session.FlushOpenBreak)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty db dir", func(c *Config) { c.Database.Dir = "" }, "database.dir"},
		{"empty filename", func(c *Config) { c.Database.Filename = "" }, "database.filename"},
		{"zero query timeout", func(c *Config) { c.Database.QueryTimeout = 0 }, "database.query_timeout"},
		{"zero write timeout", func(c *Config) { c.Database.WriteTimeout = 0 }, "database.write_timeout"},
		{"empty language", func(c *Config) { c.Locale.Language = "" }, "locale.language"},
		{"empty export dir", func(c *Config) { c.Export.Dir = "" }, "export.dir"},
		{"text max", func(c *Config) { c.Validation.TextMaxLength = 0 }, "validation.text_max_length"},
		{"app timeout", func(c *Config) { c.Application.Timeout = -time.Second }, "application.timeout"},
		{"environment", func(c *Config) { c.Application.Environment = "staging" }, "application.environment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestParseWithFallback(t *testing.T) {
	assert.Equal(t, 2*time.Minute, ParseDurationWithFallback("2m", time.Second))
	assert.Equal(t, time.Second, ParseDurationWithFallback("x", time.Second))
	assert.Equal(t, 7, ParseIntWithFallback("7", 1))
	assert.Equal(t, 1, ParseIntWithFallback("seven", 1))
	assert.True(t, ParseBoolWithFallback("true", false))
	assert.True(t, ParseBoolWithFallback("maybe", true))
	assert.Equal(t, uint32(0700), ParseUint32WithFallback("700", 8, 0755))
	assert.Equal(t, uint32(0755), ParseUint32WithFallback("abc", 8, 0755))
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
database:
  filename: hours.db
  query_timeout: 2s
locale:
  language: en
export:
  dir: /tmp/reports
session:
  flush_open_break: true
validation:
  text_max_length: 120
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromFile(path, true))

	assert.Equal(t, "hours.db", cfg.Database.Filename)
	assert.Equal(t, 2*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, 5*time.Second, cfg.Database.WriteTimeout, "keys absent from the file keep their value")
	assert.Equal(t, "en", cfg.Locale.Language)
	assert.Equal(t, "/tmp/reports", cfg.Export.Dir)
	assert.True(t, cfg.Session.FlushOpenBreak)
	assert.Equal(t, 120, cfg.Validation.TextMaxLength)
}

func TestLoadFromFile_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	assert.NoError(t, NewConfig().LoadFromFile(path, false))
	assert.Error(t, NewConfig().LoadFromFile(path, true))
}

func TestLoadFromFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("locale: [unclosed"), 0o644))

	err := NewConfig().LoadFromFile(path, true)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "file", cfgErr.Field)
}

func TestLoader_Cascade(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFilename),
		[]byte("locale:\n  language: en\nexport:\n  prefix: from-file\n"), 0o644))
	t.Setenv("WT_DB_DIR", dir)
	t.Setenv("WT_EXPORT_PREFIX", "from-env")

	lang := "de-AT"
	cfg, err := NewLoader().LoadWithOverrides(&ConfigOverrides{Language: &lang})
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Database.Dir)
	assert.Equal(t, "from-env", cfg.Export.Prefix, "environment beats file")
	assert.Equal(t, "de-AT", cfg.Locale.Language, "flags beat file")
}

func TestLoader_ExplicitConfigPath(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("validation:\n  text_max_length: 9\n"), 0o644))
	t.Setenv("WT_CONFIG", path)

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Validation.TextMaxLength)
}

func TestLoader_OverridesRevalidated(t *testing.T) {
	clearEnv(t)
	t.Setenv("WT_DB_DIR", t.TempDir())

	empty := ""
	_, err := NewLoader().LoadWithOverrides(&ConfigOverrides{ExportDir: &empty})
	assert.Error(t, err)
}
