package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "post", cfg.EligibleType)
	assert.Equal(t, "en", cfg.Language)
	assert.NoError(t, cfg.Validate(), "default config should be valid")
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.credind.yml")

	original := DefaultConfig()
	original.Port = 9090
	original.BadgeLabel = "NEWSROOM STANDARDS"
	original.CatalogFile = "catalog.yml"
	original.WatchCatalog = true
	original.Language = "es"
	original.Log.Level = "debug"

	require.NoError(t, original.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, original.Port, loaded.Port)
	assert.Equal(t, original.BadgeLabel, loaded.BadgeLabel)
	assert.Equal(t, original.CatalogFile, loaded.CatalogFile)
	assert.True(t, loaded.WatchCatalog)
	assert.Equal(t, "es", loaded.Language)
	assert.Equal(t, "debug", loaded.Log.Level)
	assert.True(t, loaded.Log.Timestamp)
}

func TestLoadMissingFile(t *testing.T) {
	// A missing file yields the defaults.
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().DBPath, cfg.DBPath)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: 3000\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "post", cfg.EligibleType)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: [unclosed\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CREDIND_PORT", "7070")
	t.Setenv("CREDIND_ELIGIBLE_TYPE", "article")
	t.Setenv("CREDIND_LOG_LEVEL", "warn")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yml"))
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "article", cfg.EligibleType)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty db path", func(c *Config) { c.DBPath = "" }, "db_path"},
		{"bad port", func(c *Config) { c.Port = 70000 }, "port"},
		{"empty eligible type", func(c *Config) { c.EligibleType = " " }, "eligible_type"},
		{"bad language", func(c *Config) { c.Language = "not a language!" }, "language"},
		{"language without translations", func(c *Config) { c.Language = "fr" }, "no translations"},
		{"bad icon pattern", func(c *Config) { c.IconPattern = "[" }, "icon_pattern"},
		{"watch without file", func(c *Config) { c.WatchCatalog = true }, "catalog_file"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestValidateAcceptsRegionalVariant(t *testing.T) {
	for _, lang := range []string{"en", "es", "es-MX", "en-GB"} {
		cfg := DefaultConfig()
		cfg.Language = lang
		assert.NoError(t, cfg.Validate(), "language %q", lang)
	}
}
