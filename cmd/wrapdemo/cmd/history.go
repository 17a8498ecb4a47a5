package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	wrappers "github.com/jdziat/simple-invocation-wrappers"
)

var (
	historyName  string
	historyLimit int
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded invocations",
	Long:  `Lists recorded invocations, newest first, followed by a count per outcome.`,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyName, "name", "", "only show invocations of this wrapper")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of records to show")
}

type historyReport struct {
	Records []*wrappers.Record              `json:"records"`
	Counts  map[wrappers.RecordStatus]int64 `json:"counts"`
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := openStore(ctx, cfg.DB)
	if err != nil {
		return err
	}

	records, err := store.ListRecords(ctx, historyName, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}
	counts, err := store.CountByStatus(ctx, historyName)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}

	return renderHistory(cmd.OutOrStdout(), historyReport{Records: records, Counts: counts}, cfg.IsJSON())
}

func renderHistory(w io.Writer, report historyReport, asJSON bool) error {
	if asJSON {
		output, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(w, string(output))
		return nil
	}

	if len(report.Records) == 0 {
		fmt.Fprintln(w, "No invocations recorded")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Status", "Args", "Started", "Elapsed", "Error")
	for _, r := range report.Records {
		table.Append([]string{
			shortID(r.ID),
			r.Name,
			string(r.Status),
			fmt.Sprintf("%d", r.ArgCount),
			r.StartedAt.Local().Format(time.DateTime),
			r.Elapsed().String(),
			truncate(r.Error, 40),
		})
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "completed: %d  failed: %d  rejected: %d\n",
		report.Counts[wrappers.RecordCompleted],
		report.Counts[wrappers.RecordFailed],
		report.Counts[wrappers.RecordRejected])
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
