package trebuchet

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trebuchet/trebuchet/internal/engine"
	"github.com/trebuchet/trebuchet/internal/report"
)

var flagSumLines bool

func init() {
	cmd := &cobra.Command{
		Use:   "sum [file...|-]",
		Short: "Sum calibration values of the named files, or stdin",
		Long: "Sum reads each named file (or standard input when none or '-' is given)\n" +
			"and prints the sum of its calibration values. With several inputs a\n" +
			"per-file breakdown and the grand total are printed.",
		RunE: runSum,
	}
	cmd.Flags().BoolVar(&flagSumLines, "lines", false, "print every line's first digit, last digit and value")
	rootCmd.AddCommand(cmd)
}

func runSum(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = []string{engine.StdinPath}
	}
	cwd, _ := os.Getwd()
	gcfg, lcfg, err := loadConfigs(cwd)
	if err != nil {
		return err
	}
	dict, err := resolveDictionary(lcfg, gcfg)
	if err != nil {
		return err
	}
	cfg := engine.Config{
		Threads:    pickInt(flagThreads, lcfg.Threads, gcfg.Threads),
		Detail:     flagSumLines,
		Dictionary: dict,
		Logger:     log,
		Stdin:      cmd.InOrStdin(),
	}
	res, err := engine.SumFiles(cmd.Context(), cfg, paths)
	if err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	switch {
	case flagJSON:
		return report.WriteJSON(stdout, res.Files)
	case len(res.Files) == 1:
		fmt.Fprintln(stdout, res.Total)
	default:
		report.PrintText(stdout, res.Files, report.PrintOptions{NoColor: noColor(lcfg, gcfg)})
	}
	if flagSumLines {
		report.PrintLines(stdout, res.Files)
	}
	return nil
}
