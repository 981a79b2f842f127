package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/credind/internal/audit"
)

var (
	pruneBefore    string
	pruneOlderThan time.Duration
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Maintain the indicator audit trail",
}

var auditPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete audit entries older than a cutoff",
	Long: `Deletes audit entries recorded before a cutoff. Give either --before with a
date (2006-01-02) or RFC 3339 timestamp, or --older-than with a duration such
as 720h.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cutoff, err := pruneCutoff(pruneBefore, pruneOlderThan, time.Now())
		if err != nil {
			return err
		}

		a, err := newApp(prometheus.NewRegistry())
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := pruneAudit(context.Background(), a.audit, cutoff)
		if err != nil {
			return err
		}
		a.logger.Info().Int64("deleted", n).Time("before", cutoff).Msg("audit trail pruned")
		fmt.Printf("Deleted %d audit entries recorded before %s\n", n, cutoff.Format(time.RFC3339))
		return nil
	},
}

// pruneCutoff resolves the prune flags to a single cutoff time. Exactly one
// of before and olderThan must be set.
func pruneCutoff(before string, olderThan time.Duration, now time.Time) (time.Time, error) {
	switch {
	case before != "" && olderThan != 0:
		return time.Time{}, fmt.Errorf("use either --before or --older-than, not both")
	case before != "":
		if t, err := time.Parse(time.RFC3339, before); err == nil {
			return t, nil
		}
		t, err := time.Parse(time.DateOnly, before)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --before %q: want YYYY-MM-DD or RFC 3339", before)
		}
		return t, nil
	case olderThan > 0:
		return now.Add(-olderThan), nil
	case olderThan < 0:
		return time.Time{}, fmt.Errorf("--older-than must be positive")
	default:
		return time.Time{}, fmt.Errorf("one of --before or --older-than is required")
	}
}

func pruneAudit(ctx context.Context, store *audit.Store, cutoff time.Time) (int64, error) {
	n, err := store.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning audit trail: %w", err)
	}
	return n, nil
}

func init() {
	auditPruneCmd.Flags().StringVar(&pruneBefore, "before", "", "delete entries recorded before this date or timestamp")
	auditPruneCmd.Flags().DurationVar(&pruneOlderThan, "older-than", 0, "delete entries older than this duration")
	auditCmd.AddCommand(auditPruneCmd)
	rootCmd.AddCommand(auditCmd)
}
