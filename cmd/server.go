package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/credind/internal/audit"
	"github.com/ziadkadry99/credind/internal/editor"
	"github.com/ziadkadry99/credind/internal/meta"
	"github.com/ziadkadry99/credind/internal/server"
	"github.com/ziadkadry99/credind/internal/site"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the credibility indicators HTTP server",
	Long:  `Starts the credind server with the REST and websocket editor API, rendered document pages, health and metrics endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(prometheus.DefaultRegisterer)
		if err != nil {
			return err
		}
		defer a.Close()

		port := a.cfg.Port
		if cmd.Flags().Changed("port") {
			port = serverPort
		}

		srv := server.New(server.Config{
			Port:     port,
			AllowAll: a.cfg.AllowAllOrigins,
		}, a.db, a.logger)

		registerRoutes(srv, a)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if a.cfg.WatchCatalog && a.catalog != nil {
			if err := a.catalog.Watch(ctx, 200*time.Millisecond); err != nil {
				return fmt.Errorf("watching catalog: %w", err)
			}
			a.logger.Info().Str("catalog_file", a.cfg.CatalogFile).Msg("watching catalog file")
		}

		go func() {
			<-ctx.Done()
			a.logger.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		a.logger.Info().
			Str("version", Version).
			Str("db", a.db.Path()).
			Int("indicators", len(a.registry.Indicators())).
			Msg("credind server starting")

		if err := srv.Start(); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	},
}

// registerRoutes wires all feature routes onto the server router.
func registerRoutes(srv *server.Server, a *app) {
	r := srv.Router()

	audit.RegisterRoutes(r, a.audit)
	meta.RegisterRoutes(r, a.store)
	editor.RegisterRoutes(r, a.editor)
	site.RegisterRoutes(r, a.renderer)
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serverCmd)
}
