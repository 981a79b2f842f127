package cmd

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/credind/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing tools to list indicators, read and toggle a document's indicators, and render its badge.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Nothing scrapes metrics over stdio.
		a, err := newApp(prometheus.NewRegistry())
		if err != nil {
			return err
		}
		defer a.Close()

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "credind MCP server started on stdio (db=%s, indicators=%d)\n", a.db.Path(), len(a.registry.Indicators()))

		srv := mcpserver.NewServer(a.editor, a.renderer)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
