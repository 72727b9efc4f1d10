package trebuchet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagJSON            bool
	flagThreads         int
	flagNoColor         bool
	flagDryRun          bool
	flagNoCache         bool
	flagDefaultExcludes bool
	flagDigitsOnly      bool
	flagVerbose         bool
	flagNoUpdateCheck   bool
	flagSelfUpdate      bool

	// version is set at build time with -ldflags "-X ...trebuchet.version=v1.2.3".
	version = "0.1.0"

	// log is configured by the root command before any subcommand runs.
	log logrus.FieldLogger = logrus.New()
)

// exitError carries a non-error exit status such as drift detection.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

// rootCmd is the base Cobra command for the trebuchet CLI.
var rootCmd = &cobra.Command{
	Use:   "trebuchet",
	Short: "Sum calibration values in text files",
	Long: "Trebuchet reads each line of its inputs, recognizes literal digits and spelled-out\n" +
		"digit words (overlaps included), and sums first*10+last over every line.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		log = newLogger(cmd.ErrOrStderr(), flagVerbose)
	},
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.SetLevel(logrus.WarnLevel)
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// Execute runs the trebuchet CLI. It should be called by the main package.
func Execute() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.msg != "" {
			fmt.Fprintln(os.Stderr, ee.msg)
		}
		return ee.code
	}
	fmt.Fprintln(os.Stderr, "error:", err)
	return 2
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().IntVar(&flagThreads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "list the files that would be summed; no sums are computed")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "disable incremental scan cache")
	rootCmd.PersistentFlags().BoolVar(&flagDefaultExcludes, "default-excludes", true, "apply built-in exclude list (node_modules, dist, images, etc.)")
	rootCmd.PersistentFlags().BoolVar(&flagDigitsOnly, "digits-only", false, "recognize only literal digits, not spelled-out words")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log skipped files and cache decisions to stderr")
	rootCmd.PersistentFlags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")
	rootCmd.PersistentFlags().BoolVar(&flagSelfUpdate, "self-update", false, "update trebuchet to the latest release")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the trebuchet version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "trebuchet", version)
		},
	})
}
