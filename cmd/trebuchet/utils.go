package trebuchet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	semver3 "github.com/blang/semver"
	semver "github.com/blang/semver/v4"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"golang.org/x/term"

	"github.com/trebuchet/trebuchet/internal/config"
	"github.com/trebuchet/trebuchet/internal/digits"
	"github.com/trebuchet/trebuchet/internal/engine"
	"github.com/trebuchet/trebuchet/internal/update"
)

// currentVersion parses the build version; an unparseable one counts as 0.0.0
// so any release is newer.
func currentVersion(v string) semver.Version {
	ver, err := semver.ParseTolerant(v)
	if err != nil {
		return semver.Version{}
	}
	return ver
}

func selfUpdate() error {
	latest, err := selfupdate.UpdateSelf(semver3.MustParse(currentVersion(version).String()), update.Repo)
	if err != nil {
		return err
	}
	log.WithField("version", latest.Version.String()).Debug("self-update finished")
	return nil
}

// maybeUpdate runs --self-update or prints a notice when a newer release
// exists. It reports true when the command should stop after updating.
func maybeUpdate(stderr io.Writer) bool {
	if flagSelfUpdate {
		if err := selfUpdate(); err != nil {
			log.WithError(err).Warn("self-update failed")
			return false
		}
		fmt.Fprintln(stderr, "updated to latest; re-run command")
		return true
	}
	if !flagNoUpdateCheck && !flagJSON {
		if latest, newer, _ := update.Check(version, false); newer && latest != "" {
			fmt.Fprintf(stderr, "(new version available: v%s)  run 'trebuchet --self-update' to upgrade\n", latest)
		}
	}
	return false
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// loadConfigs returns the global and local config files. Missing files are
// empty; malformed ones are an error.
func loadConfigs(root string) (global, local config.FileConfig, err error) {
	global, err = config.LoadGlobal()
	if err != nil && !errors.Is(err, config.ErrNoConfig) {
		return global, local, err
	}
	local, err = config.LoadLocal(root)
	if err != nil && !errors.Is(err, config.ErrNoConfig) {
		return global, local, err
	}
	return global, local, nil
}

// resolveDictionary applies --digits-only over local and global config.
func resolveDictionary(local, global config.FileConfig) (*digits.Dictionary, error) {
	if flagDigitsOnly {
		return digits.Literal(), nil
	}
	if local.DigitsOnly != nil || len(local.Words) > 0 {
		return local.Dictionary()
	}
	return global.Dictionary()
}

// defaultMaxBytes caps file size when neither flags nor config set one.
// A negative --max-bytes disables the cap.
const defaultMaxBytes = 1 << 20

// scanOptions are the scan-specific flags that feed engineConfig.
type scanOptions struct {
	path     string
	include  string
	exclude  string
	maxBytes int64
	detail   bool
}

// engineConfig builds the engine configuration with CLI > local > global
// precedence. It also reports whether output should be uncolored.
func engineConfig(opts scanOptions) (engine.Config, bool, error) {
	abs, err := filepath.Abs(opts.path)
	if err != nil {
		return engine.Config{}, false, fmt.Errorf("resolve path: %w", err)
	}
	if st, err := os.Stat(abs); err != nil {
		return engine.Config{}, false, err
	} else if !st.IsDir() {
		return engine.Config{}, false, fmt.Errorf("%s is not a directory; use 'trebuchet sum' for files", opts.path)
	}
	gcfg, lcfg, err := loadConfigs(abs)
	if err != nil {
		return engine.Config{}, false, err
	}
	dict, err := resolveDictionary(lcfg, gcfg)
	if err != nil {
		return engine.Config{}, false, err
	}
	defaultExcludes := flagDefaultExcludes
	if !rootCmd.PersistentFlags().Changed("default-excludes") {
		if lcfg.DefaultExcludes != nil {
			defaultExcludes = *lcfg.DefaultExcludes
		} else if gcfg.DefaultExcludes != nil {
			defaultExcludes = *gcfg.DefaultExcludes
		}
	}
	maxBytes := pickInt64(opts.maxBytes, lcfg.MaxBytes, gcfg.MaxBytes)
	if maxBytes == 0 {
		maxBytes = defaultMaxBytes
	}
	cfg := engine.Config{
		Root:            abs,
		IncludeGlobs:    pickString(opts.include, lcfg.Include, gcfg.Include),
		ExcludeGlobs:    pickString(opts.exclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:        maxBytes,
		Threads:         pickInt(flagThreads, lcfg.Threads, gcfg.Threads),
		DefaultExcludes: defaultExcludes,
		NoCache:         pickBool(flagNoCache, lcfg.NoCache, gcfg.NoCache),
		DryRun:          flagDryRun,
		Detail:          opts.detail,
		Dictionary:      dict,
		Logger:          log,
	}
	return cfg, noColor(lcfg, gcfg), nil
}

func noColor(local, global config.FileConfig) bool {
	return pickBool(flagNoColor, local.NoColor, global.NoColor) || !isTerminal(os.Stdout)
}

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickInt(cli int, local, global *int) int {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickInt64(cli int64, local, global *int64) int64 {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}
