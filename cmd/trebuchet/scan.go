package trebuchet

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/trebuchet/trebuchet/internal/audit"
	"github.com/trebuchet/trebuchet/internal/cache"
	"github.com/trebuchet/trebuchet/internal/engine"
	"github.com/trebuchet/trebuchet/internal/report"
	"github.com/trebuchet/trebuchet/internal/tui"
	"github.com/trebuchet/trebuchet/internal/types"
)

var (
	flagPath        string
	flagInclude     string
	flagExclude     string
	flagMaxBytes    int64
	flagTable       bool
	flagText        bool
	flagLines       bool
	flagExpect      string
	flagFailOnDrift bool
	flagView        bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Sum calibration values of every text file under a directory",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "directory to scan")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 0, "skip files larger than this (default 1MiB, negative = no limit)")
	cmd.Flags().BoolVar(&flagTable, "table", false, "output in table format with borders (default)")
	cmd.Flags().BoolVar(&flagText, "text", false, "output in plain text columnar format")
	cmd.Flags().BoolVar(&flagLines, "lines", false, "print every line's first digit, last digit and value")
	cmd.Flags().StringVar(&flagExpect, "expect", "", "exit 1 unless the total equals this value")
	cmd.Flags().BoolVar(&flagFailOnDrift, "fail-on-drift", false, "exit 1 when a file's sum differs from "+report.BaselineFile)
	cmd.Flags().BoolVar(&flagView, "view", false, "open the interactive viewer after scanning")
}

func runScan(cmd *cobra.Command, _ []string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	var expect int64
	if flagExpect != "" {
		v, err := strconv.ParseInt(flagExpect, 10, 64)
		if err != nil {
			return fmt.Errorf("--expect: %w", err)
		}
		expect = v
	}

	cfg, plain, err := engineConfig(scanOptions{
		path:     flagPath,
		include:  flagInclude,
		exclude:  flagExclude,
		maxBytes: flagMaxBytes,
		detail:   flagLines || flagView,
	})
	if err != nil {
		return err
	}

	if !flagJSON {
		if maybeUpdate(stderr) {
			return nil
		}
		fmt.Fprintf(stderr, "Scanning %s with %d digit words...\n", cfg.Root, cfg.Dictionary.Len())
	}

	// Optional progress bar: simple textual bar
	showProgress := !flagJSON && isTerminal(os.Stderr)
	total := 0
	if showProgress {
		total, _ = engine.CountTargets(cfg)
	}
	progressed := 0
	if total > 0 {
		cfg.Progress = func() {
			progressed++
			if progressed%10 == 0 || progressed == total {
				pct := float64(progressed) / float64(total) * 100
				fmt.Fprintf(stderr, "\r[%d/%d] %.0f%%", progressed, total, pct)
			}
		}
	}
	res, err := engine.ScanWithStats(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}
	if total > 0 {
		fmt.Fprintln(stderr)
	}

	if !cfg.DryRun {
		if err := cache.SaveResults(cfg.Root, res.Files); err != nil {
			log.WithError(err).Debug("saving last results")
		}
		rec := audit.NewRunRecord(cfg.Root, cfg.Dictionary.Fingerprint(), res.Files, res.CacheHits, res.Duration)
		if err := audit.NewAuditLog(cfg.Root).LogRun(rec); err != nil {
			log.WithError(err).Debug("writing audit log")
		}
	}

	opts := report.PrintOptions{NoColor: plain, Duration: res.Duration, FilesScanned: res.FilesScanned, CacheHits: res.CacheHits}
	switch {
	case flagJSON:
		if err := report.WriteJSON(stdout, res.Files); err != nil {
			return err
		}
	case flagDryRun:
		for _, f := range res.Files {
			fmt.Fprintln(stdout, f.Path)
		}
	case flagText:
		report.PrintText(stdout, res.Files, opts)
	default:
		report.PrintTable(stdout, res.Files, opts)
	}
	if flagLines && !flagJSON {
		report.PrintLines(stdout, res.Files)
	}

	if flagView {
		rescan := func() ([]types.FileResult, error) {
			cfg.Progress = nil
			return engine.Scan(cmd.Context(), cfg)
		}
		if err := tui.Run(cfg.Root, res.Files, rescan); err != nil {
			return err
		}
	}

	if flagFailOnDrift {
		base, err := report.LoadBaseline(filepath.Join(cfg.Root, report.BaselineFile))
		if err != nil {
			return fmt.Errorf("load baseline: %w", err)
		}
		drift := report.Drift(res.Files, base)
		for _, d := range drift {
			fmt.Fprintln(stderr, "drift:", d)
		}
		if report.ShouldFail(drift) {
			return &exitError{code: 1, msg: fmt.Sprintf("%d file(s) drifted from %s", len(drift), report.BaselineFile)}
		}
	}
	if flagExpect != "" && res.Total != expect {
		return &exitError{code: 1, msg: fmt.Sprintf("total %d does not match expected %d", res.Total, expect)}
	}
	return nil
}
