package config

// Config is the top-level credind configuration, corresponding to
// .credind.yml.
type Config struct {
	DBPath          string    `yaml:"db_path" koanf:"db_path"`
	Port            int       `yaml:"port" koanf:"port"`
	BadgeLabel      string    `yaml:"badge_label" koanf:"badge_label"`
	EligibleType    string    `yaml:"eligible_type" koanf:"eligible_type"`
	CatalogFile     string    `yaml:"catalog_file" koanf:"catalog_file"`
	IconDir         string    `yaml:"icon_dir" koanf:"icon_dir"`
	IconPattern     string    `yaml:"icon_pattern" koanf:"icon_pattern"`
	WatchCatalog    bool      `yaml:"watch_catalog" koanf:"watch_catalog"`
	AllowAllOrigins bool      `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Language        string    `yaml:"language" koanf:"language"`
	Log             LogConfig `yaml:"log" koanf:"log"`
}

// LogConfig holds logger settings. CREDIND_LOG_* variables override them.
type LogConfig struct {
	Level     string `yaml:"level" koanf:"level"`
	Timestamp bool   `yaml:"timestamp" koanf:"timestamp"`
	NoColor   bool   `yaml:"no_color" koanf:"no_color"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DBPath:       ".credind/credind.db",
		Port:         8080,
		EligibleType: "post",
		IconPattern:  "**/*.svg",
		Language:     "en",
		Log: LogConfig{
			Level:     "info",
			Timestamp: true,
		},
	}
}
