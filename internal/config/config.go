package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"golang.org/x/text/language"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/credind/internal/i18n"
	"github.com/ziadkadry99/credind/internal/logging"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CREDIND_"

// DefaultPath is the config file used when --config is not given.
const DefaultPath = ".credind.yml"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (CREDIND_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: CREDIND_DB_PATH -> db_path,
	// CREDIND_LOG_LEVEL -> log.level.
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "log_"); ok {
		return "log." + rest
	}
	return key
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	if strings.TrimSpace(c.EligibleType) == "" {
		return fmt.Errorf("eligible_type is required")
	}

	if c.Language != "" {
		tag, err := language.Parse(c.Language)
		if err != nil {
			return fmt.Errorf("invalid language %q: %w", c.Language, err)
		}
		if !hasCatalog(tag) {
			return fmt.Errorf("language %q has no translations (supported: %s)", c.Language, supportedNames())
		}
	}

	if c.IconPattern != "" && !doublestar.ValidatePattern(c.IconPattern) {
		return fmt.Errorf("invalid icon_pattern %q", c.IconPattern)
	}

	if c.WatchCatalog && c.CatalogFile == "" {
		return fmt.Errorf("watch_catalog requires catalog_file")
	}

	if c.Log.Level != "" {
		if _, ok := logging.ParseLevel(c.Log.Level); !ok {
			return fmt.Errorf("invalid log.level %q", c.Log.Level)
		}
	}

	return nil
}

// hasCatalog reports whether tag's base language has registered translations.
func hasCatalog(tag language.Tag) bool {
	base, _ := tag.Base()
	for _, t := range i18n.Supported() {
		if b, _ := t.Base(); b == base {
			return true
		}
	}
	return false
}

func supportedNames() string {
	var names []string
	for _, t := range i18n.Supported() {
		names = append(names, t.String())
	}
	return strings.Join(names, ", ")
}
