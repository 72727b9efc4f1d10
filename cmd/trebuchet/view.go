package trebuchet

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trebuchet/trebuchet/internal/cache"
	"github.com/trebuchet/trebuchet/internal/engine"
	"github.com/trebuchet/trebuchet/internal/tui"
	"github.com/trebuchet/trebuchet/internal/types"
)

func init() {
	var (
		path   string
		cached bool
	)
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse per-file sums and line values interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := engineConfig(scanOptions{path: path, detail: true})
			if err != nil {
				return err
			}
			rescan := func() ([]types.FileResult, error) {
				files, err := engine.Scan(cmd.Context(), cfg)
				if err == nil {
					_ = cache.SaveResults(cfg.Root, files)
				}
				return files, err
			}
			if cached {
				last, err := cache.LoadResults(cfg.Root)
				if err != nil {
					return fmt.Errorf("no cached results for %s; run 'trebuchet scan' first: %w", cfg.Root, err)
				}
				return tui.RunCached(cfg.Root, last.Files, rescan, last.Timestamp)
			}
			files, err := rescan()
			if err != nil {
				return fmt.Errorf("scan error: %w", err)
			}
			return tui.Run(cfg.Root, files, rescan)
		},
	}
	cmd.Flags().StringVarP(&path, "path", "p", ".", "directory to scan")
	cmd.Flags().BoolVar(&cached, "cached", false, "show the results of the last scan without rescanning")
	rootCmd.AddCommand(cmd)
}
