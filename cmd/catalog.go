package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/ziadkadry99/credind/internal/indicator"
)

var catalogHTML bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the credibility indicators in the current catalog",
	Long:  `Prints the catalog after the catalog file and icon overrides are applied, as a markdown table or as HTML with --html.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(prometheus.NewRegistry())
		if err != nil {
			return err
		}
		defer a.Close()

		md := catalogMarkdown(a.registry.Indicators())
		if !catalogHTML {
			fmt.Print(md)
			return nil
		}

		out, err := catalogToHTML(md)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	},
}

// catalogMarkdown renders defs as a markdown table in catalog order.
func catalogMarkdown(defs []indicator.Definition) string {
	var b strings.Builder
	b.WriteString("# Credibility indicators\n\n")
	if len(defs) == 0 {
		b.WriteString("No indicators are defined.\n")
		return b.String()
	}
	b.WriteString("| Slug | Label | Description | Icon |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, d := range defs {
		icon := "no"
		if d.Icon != "" {
			icon = "yes"
		}
		fmt.Fprintf(&b, "| `%s` | %s | %s | %s |\n", d.Slug, tableCell(d.Label), tableCell(d.Description), icon)
	}
	return b.String()
}

func tableCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

func catalogToHTML(md string) ([]byte, error) {
	conv := goldmark.New(goldmark.WithExtensions(extension.Table))
	var buf bytes.Buffer
	if err := conv.Convert([]byte(md), &buf); err != nil {
		return nil, fmt.Errorf("converting catalog: %w", err)
	}
	return buf.Bytes(), nil
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogHTML, "html", false, "print HTML instead of markdown")
	rootCmd.AddCommand(catalogCmd)
}
