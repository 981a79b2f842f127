package cmd

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ziadkadry99/credind/internal/audit"
	"github.com/ziadkadry99/credind/internal/badge"
	"github.com/ziadkadry99/credind/internal/config"
	"github.com/ziadkadry99/credind/internal/db"
	"github.com/ziadkadry99/credind/internal/editor"
	"github.com/ziadkadry99/credind/internal/i18n"
	"github.com/ziadkadry99/credind/internal/indicator"
	"github.com/ziadkadry99/credind/internal/logging"
	"github.com/ziadkadry99/credind/internal/meta"
	"github.com/ziadkadry99/credind/internal/metrics"
	"github.com/ziadkadry99/credind/internal/site"
)

// app holds the wired components shared by commands.
type app struct {
	cfg      *config.Config
	db       *db.DB
	logger   zerolog.Logger
	metrics  *metrics.Metrics
	registry *indicator.Registry
	catalog  *indicator.FileSource
	store    *meta.Store
	audit    *audit.Store
	editor   *editor.Editor
	renderer *site.Renderer
}

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `credind init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newApp loads config and wires storage, catalog, editor and renderer.
func newApp(reg prometheus.Registerer) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logging.ConfigureRuntime(level, cfg.Log.Timestamp, cfg.Log.NoColor)
	logger := log.Logger

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	a := &app{
		cfg:     cfg,
		db:      database,
		logger:  logger,
		metrics: metrics.New(reg),
		store:   meta.NewStore(database),
		audit:   audit.NewStore(database),
	}

	if err := a.buildCatalog(); err != nil {
		database.Close()
		return nil, err
	}

	a.editor = editor.New(a.registry, a.store, editor.Options{
		EligibleType: cfg.EligibleType,
		Audit:        a.audit,
		Metrics:      a.metrics,
		Logger:       logger,
	})

	printer := i18n.Printer(cfg.Language)
	title := cfg.BadgeLabel
	if title == "" {
		title = printer.Sprintf(i18n.BadgeTitle)
	}
	composer := badge.NewComposer(badge.Options{Title: title, Trustmark: indicator.Trustmark()})
	a.renderer = site.NewRenderer(a.editor, composer, site.Options{
		Lang:    i18n.Match(cfg.Language).String(),
		Metrics: a.metrics,
		Logger:  logger,
	})

	return a, nil
}

// buildCatalog assembles the registry: built-in definitions, then the
// catalog file, then icon overrides from icon_dir.
func (a *app) buildCatalog() error {
	a.registry = indicator.NewRegistry(indicator.DefaultDefinitions(i18n.Printer(a.cfg.Language)))

	if a.cfg.CatalogFile != "" {
		src, err := indicator.NewFileSource(a.cfg.CatalogFile, a.logger)
		if err != nil {
			return fmt.Errorf("loading catalog file: %w", err)
		}
		src.OnReload = func(err error) {
			a.metrics.IncrementCatalogReload(err)
			if err == nil {
				a.audit.Log(context.Background(), audit.Entry{
					ActorType: audit.ActorSystem,
					ActorID:   "catalog-watcher",
					Action:    audit.ActionCatalogReloaded,
					Scope:     audit.ScopeCatalog,
					ScopeID:   a.cfg.CatalogFile,
				})
			}
		}
		a.catalog = src
		a.registry.AddFilter(src.Filter())
	}

	if a.cfg.IconDir != "" {
		icons, err := indicator.LoadIcons(a.cfg.IconDir, a.cfg.IconPattern)
		if err != nil {
			return fmt.Errorf("loading icons: %w", err)
		}
		a.logger.Debug().Int("icons", len(icons)).Str("icon_dir", a.cfg.IconDir).Msg("loaded icon overrides")
		a.registry.AddFilter(indicator.IconFilter(icons))
	}

	return nil
}

func (a *app) Close() error {
	return a.db.Close()
}
