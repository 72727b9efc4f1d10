package trebuchet

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/trebuchet/trebuchet/internal/engine"
	"github.com/trebuchet/trebuchet/internal/report"
)

func init() {
	var path string
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage baselines",
	}

	update := &cobra.Command{
		Use:   "update",
		Short: "Record the current per-file sums in " + report.BaselineFile,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := engineConfig(scanOptions{path: path})
			if err != nil {
				return err
			}
			results, err := engine.Scan(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if err := report.SaveBaseline(filepath.Join(cfg.Root, report.BaselineFile), results); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Baseline updated: %d files.\n", len(results))
			return nil
		},
	}
	update.Flags().StringVarP(&path, "path", "p", ".", "directory to scan")

	rootCmd.AddCommand(cmd)
	cmd.AddCommand(update)
}
