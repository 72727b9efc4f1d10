package trebuchet

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/trebuchet/trebuchet/internal/audit"
	"github.com/trebuchet/trebuchet/internal/digits"
)

func init() {
	var (
		path   string
		limit  int
		remove string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show previous scan runs from the audit log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			auditLog := audit.NewAuditLog(abs)
			if remove != "" {
				if err := auditLog.DeleteRun(remove); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s.\n", remove)
				return nil
			}
			records, err := auditLog.LoadHistory()
			if err != nil {
				return err
			}
			if limit > 0 && len(records) > limit {
				records = records[:limit]
			}
			if flagJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("RUN", "WHEN", "TOTAL", "FILES", "LINES", "DICTIONARY", "DURATION")
			for _, r := range records {
				_ = table.Append([]string{
					r.RunID,
					r.Timestamp.Format("2006-01-02 15:04:05"),
					strconv.FormatInt(r.Total, 10),
					strconv.Itoa(r.Files),
					strconv.Itoa(r.Lines),
					dictionaryLabel(r.Dictionary),
					r.Duration,
				})
			}
			return table.Render()
		},
	}
	cmd.Flags().StringVarP(&path, "path", "p", ".", "directory whose history to show")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "show at most this many runs (0 = all)")
	cmd.Flags().StringVar(&remove, "delete", "", "delete the run with this ID instead of listing")
	rootCmd.AddCommand(cmd)
}

// dictionaryLabel shortens a dictionary fingerprint for display.
func dictionaryLabel(fp string) string {
	switch {
	case fp == digits.Literal().Fingerprint():
		return "digits only"
	case fp == digits.Default().Fingerprint():
		return "english"
	case len(fp) > 24:
		return fp[:21] + "..."
	default:
		return fp
	}
}
