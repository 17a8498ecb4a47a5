package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var pruneOlderThan time.Duration

// pruneCmd represents the prune command
var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old invocation records",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if pruneOlderThan <= 0 {
			return fmt.Errorf("--older-than must be positive, got %s", pruneOlderThan)
		}

		store, err := openStore(cmd.Context(), cfg.DB)
		if err != nil {
			return err
		}
		n, err := store.DeleteRecordsBefore(cmd.Context(), time.Now().Add(-pruneOlderThan))
		if err != nil {
			return fmt.Errorf("failed to delete records: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d records\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pruneCmd)

	pruneCmd.Flags().DurationVar(&pruneOlderThan, "older-than", 7*24*time.Hour, "delete records that started before now minus this duration")
}
