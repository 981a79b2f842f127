package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var renderPage bool

var renderCmd = &cobra.Command{
	Use:   "render <document-id>",
	Short: "Print the credibility badge for a document",
	Long:  `Prints the badge HTML for a document, or the complete page with --page. Prints nothing when no indicator is selected.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(prometheus.NewRegistry())
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := context.Background()
		if renderPage {
			page, err := a.renderer.Page(ctx, args[0])
			if err != nil {
				return fmt.Errorf("rendering %s: %w", args[0], err)
			}
			_, err = os.Stdout.Write(page)
			return err
		}

		out, err := a.renderer.Badge(ctx, args[0])
		if err != nil {
			return fmt.Errorf("rendering %s: %w", args[0], err)
		}
		if out == "" {
			if verbose {
				fmt.Fprintf(os.Stderr, "%s has no selected indicators\n", args[0])
			}
			return nil
		}
		fmt.Println(out)
		return nil
	},
}

func init() {
	renderCmd.Flags().BoolVar(&renderPage, "page", false, "render the full HTML page")
	rootCmd.AddCommand(renderCmd)
}
