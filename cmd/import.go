package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ziadkadry99/credind/internal/audit"
	"github.com/ziadkadry99/credind/internal/indicator"
	"github.com/ziadkadry99/credind/internal/meta"
	"github.com/ziadkadry99/credind/internal/progress"
)

// importFile is the layout of an import file. JSON files decode through the
// same YAML parser.
type importFile struct {
	Documents []importDocument `yaml:"documents"`
}

type importDocument struct {
	ID         string         `yaml:"id"`
	Type       string         `yaml:"type"`
	Title      string         `yaml:"title"`
	Content    string         `yaml:"content"`
	// Indicators is either a map of flags or, as in some exports, the
	// stored meta value as a JSON string.
	Indicators any `yaml:"indicators"`
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import documents and their stored indicators",
	Long: `Reads documents from a YAML or JSON file and upserts them. The indicators
map of each document is stored as-is, so values written by other tools
(strings such as "1" or "yes", keys no longer in the catalog) are kept and
resolved on read. An indicators value given as a string is stored verbatim.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := readImportFile(args[0])
		if err != nil {
			return err
		}

		a, err := newApp(prometheus.NewRegistry())
		if err != nil {
			return err
		}
		defer a.Close()

		reporter := progress.NewReporter("Importing documents")
		n, err := importDocuments(context.Background(), a.store, a.audit, docs, reporter)
		if err != nil {
			return err
		}
		a.logger.Info().Int("documents", n).Str("file", args[0]).Msg("import complete")
		return nil
	},
}

func readImportFile(path string) ([]importDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}
	var f importFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing import file %s: %w", path, err)
	}
	for i, d := range f.Documents {
		if d.ID == "" {
			return nil, fmt.Errorf("document %d: id is required", i)
		}
	}
	return f.Documents, nil
}

// importDocuments upserts docs and their indicator maps, recording one audit
// entry per document.
func importDocuments(ctx context.Context, store *meta.Store, auditStore *audit.Store, docs []importDocument, reporter progress.Reporter) (int, error) {
	reporter.Start(len(docs))
	defer reporter.Finish()

	for i, d := range docs {
		err := store.PutDocument(ctx, meta.Document{
			ID:      d.ID,
			Type:    d.Type,
			Title:   d.Title,
			Content: d.Content,
		})
		if err != nil {
			return i, fmt.Errorf("importing %s: %w", d.ID, err)
		}

		newValue, err := importIndicators(ctx, store, d)
		if err != nil {
			return i, err
		}

		if auditStore != nil {
			err := auditStore.Log(ctx, audit.Entry{
				ActorType: audit.ActorSystem,
				ActorID:   "import",
				Action:    audit.ActionDocumentImported,
				Scope:     audit.ScopeDocument,
				ScopeID:   d.ID,
				Summary:   fmt.Sprintf("imported %q", d.Title),
				NewValue:  newValue,
			})
			if err != nil {
				return i, fmt.Errorf("auditing import of %s: %w", d.ID, err)
			}
		}
		reporter.Update(i+1, d.ID)
	}
	return len(docs), nil
}

// importIndicators stores d's indicators and returns the value written.
func importIndicators(ctx context.Context, store *meta.Store, d importDocument) (string, error) {
	switch v := d.Indicators.(type) {
	case nil:
		return "", nil
	case string:
		if err := store.SetRawField(ctx, d.ID, indicator.MetaKey, v); err != nil {
			return "", fmt.Errorf("importing indicators for %s: %w", d.ID, err)
		}
		return v, nil
	case map[string]any:
		if err := store.SetField(ctx, d.ID, indicator.MetaKey, v); err != nil {
			return "", fmt.Errorf("importing indicators for %s: %w", d.ID, err)
		}
		raw, _ := json.Marshal(v)
		return string(raw), nil
	default:
		return "", fmt.Errorf("document %s: indicators must be a map or a JSON string, got %T", d.ID, d.Indicators)
	}
}

func init() {
	rootCmd.AddCommand(importCmd)
}
