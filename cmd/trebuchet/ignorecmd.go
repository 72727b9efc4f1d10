package trebuchet

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/trebuchet/trebuchet/internal/engine"
	"github.com/trebuchet/trebuchet/internal/ignore"
)

func init() {
	var path string
	cmd := &cobra.Command{
		Use:   "ignore <pattern>...",
		Short: "Add patterns to " + engine.IgnoreFile,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := filepath.Join(path, engine.IgnoreFile)
			for _, p := range args {
				changed, err := ignore.Append(file, p)
				if err != nil {
					return err
				}
				if changed {
					fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", p)
				} else {
					log.WithField("pattern", p).Debug("already ignored")
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "path", "p", ".", "directory holding "+engine.IgnoreFile)
	rootCmd.AddCommand(cmd)
}
