package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to credind! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Database location.
	dbPrompt := promptui.Prompt{
		Label:   "SQLite database path",
		Default: cfg.DBPath,
	}
	dbPath, err := dbPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("database path: %w", err)
	}
	cfg.DBPath = dbPath

	// 2. Port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 || n > 65535 {
				return fmt.Errorf("port must be a number between 0 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 3. Document type that carries indicators.
	typePrompt := promptui.Prompt{
		Label:   "Document type that carries indicators",
		Default: cfg.EligibleType,
	}
	eligible, err := typePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("eligible type: %w", err)
	}
	cfg.EligibleType = strings.TrimSpace(eligible)

	// 4. Language for the default catalog.
	langPrompt := promptui.Select{
		Label: "Language for built-in labels",
		Items: []string{"en", "es"},
	}
	_, lang, err := langPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("language selection: %w", err)
	}
	cfg.Language = lang

	// 5. Optional catalog file.
	catalogPrompt := promptui.Prompt{
		Label:   "Catalog file (YAML, leave blank for the built-in catalog)",
		Default: "",
	}
	catalogFile, err := catalogPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("catalog file: %w", err)
	}
	cfg.CatalogFile = strings.TrimSpace(catalogFile)

	if cfg.CatalogFile != "" {
		if _, err := os.Stat(cfg.CatalogFile); os.IsNotExist(err) {
			fmt.Printf("\nNote: %s does not exist yet; the built-in catalog is used until it does.\n", cfg.CatalogFile)
		}
		watchPrompt := promptui.Select{
			Label: "Reload the catalog when the file changes?",
			Items: []string{"yes", "no"},
		}
		idx, _, err := watchPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("watch selection: %w", err)
		}
		cfg.WatchCatalog = idx == 0
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
