package trebuchet

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trebuchet/trebuchet/internal/digits"
)

func init() {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "List the digit words recognized besides literal digits",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cwd, _ := os.Getwd()
			gcfg, lcfg, err := loadConfigs(cwd)
			if err != nil {
				return err
			}
			dict, err := resolveDictionary(lcfg, gcfg)
			if err != nil {
				return err
			}
			words := dict.Words()
			if flagJSON {
				if words == nil {
					words = []digits.Entry{}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(words)
			}
			if len(words) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "(literal digits only)")
				return nil
			}
			for _, e := range words {
				fmt.Fprintf(cmd.OutOrStdout(), "%-*s %d\n", dict.MaxWordLen(), e.Word, e.Value)
			}
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}
