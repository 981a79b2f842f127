package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/credind/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "credind",
	Short: "Credibility indicators for published documents",
	Long: `credind lets editors assert credibility indicators (original reporting,
on-the-ground reporting, cited sources, subject expertise) on documents and
renders them as a collapsible badge after the content. It exposes a REST
and websocket editor surface, HTML rendering, and MCP tools for agents.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
