package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	doublestar "github.com/bmatcuk/doublestar/v4"
	xxhash "github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/trebuchet/trebuchet/internal/cache"
	"github.com/trebuchet/trebuchet/internal/calibrate"
	"github.com/trebuchet/trebuchet/internal/digits"
	"github.com/trebuchet/trebuchet/internal/ignore"
	"github.com/trebuchet/trebuchet/internal/types"
)

// IgnoreFile is the per-root ignore list consulted by Walk.
const IgnoreFile = ".trebuchetignore"

// StdinPath names standard input in SumFiles.
const StdinPath = "-"

// ErrStdinRepeated is returned by SumFiles when StdinPath is named more than once.
var ErrStdinRepeated = errors.New("standard input named more than once")

// Config controls scanning behavior including scope, performance, and filters.
type Config struct {
	Root            string
	IncludeGlobs    string
	ExcludeGlobs    string
	MaxBytes        int64
	Threads         int
	DefaultExcludes bool
	NoCache         bool
	DryRun          bool

	// Detail keeps per-line values in every FileResult.
	Detail bool

	// Dictionary defaults to digits.Default().
	Dictionary *digits.Dictionary

	// Logger receives debug diagnostics; nil discards them.
	Logger logrus.FieldLogger

	// Progress is called once per processed file. Calls are serialized.
	Progress func()

	// Stdin is read for StdinPath in SumFiles; nil means os.Stdin.
	Stdin io.Reader
}

// Result contains per-file results and basic scan statistics.
type Result struct {
	Files        []types.FileResult
	Total        int64
	FilesScanned int
	CacheHits    int
	Duration     time.Duration
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func determineWorkers(threads int) int {
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	if threads > 64 {
		threads = 64
	}
	return threads
}

func (cfg Config) normalized() Config {
	if cfg.Dictionary == nil {
		cfg.Dictionary = digits.Default()
	}
	if cfg.Logger == nil {
		cfg.Logger = discardLogger()
	}
	if cfg.Stdin == nil {
		cfg.Stdin = os.Stdin
	}
	cfg.Threads = determineWorkers(cfg.Threads)
	return cfg
}

// Words returns the dictionary entries the configuration scans with.
func Words(cfg Config) []digits.Entry {
	return cfg.normalized().Dictionary.Words()
}

// Scan runs a scan and returns only per-file results (without stats).
func Scan(ctx context.Context, cfg Config) ([]types.FileResult, error) {
	res, err := ScanWithStats(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return res.Files, nil
}

// collector gathers per-file results from concurrent workers.
type collector struct {
	mu       sync.Mutex
	files    []types.FileResult
	updated  map[string]cache.Entry
	hits     int
	progress func()
}

func (c *collector) add(res types.FileResult, hash string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files = append(c.files, res)
	if res.Cached {
		c.hits++
	}
	if hash != "" {
		c.updated[res.Path] = cache.Entry{Hash: hash, Result: res}
	}
	if c.progress != nil {
		c.progress()
	}
}

// ScanWithStats sums every eligible file under cfg.Root concurrently and
// returns per-file results sorted by path along with timing and counts.
func ScanWithStats(ctx context.Context, cfg Config) (Result, error) {
	var result Result
	cfg = cfg.normalized()
	log := cfg.Logger.WithField("root", cfg.Root)
	fingerprint := cfg.Dictionary.Fingerprint()

	db := cache.DB{Entries: map[string]cache.Entry{}}
	if !cfg.NoCache {
		if loaded, err := cache.Load(cfg.Root); err == nil {
			db = loaded
		} else {
			log.WithError(err).Debug("no usable cache")
		}
	}

	ign, err := ignore.Load(filepath.Join(cfg.Root, IgnoreFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		log.WithError(err).Warn("reading ignore file")
	}

	started := time.Now()
	col := &collector{updated: map[string]cache.Entry{}, progress: cfg.Progress}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Threads)

	walkErr := Walk(gctx, cfg, ign, func(p string, data []byte) {
		if cfg.DryRun {
			col.add(types.FileResult{Path: p}, "")
			return
		}
		h := fastHash(data)
		if !cfg.NoCache {
			if r, ok := db.Lookup(fingerprint, p, h); ok && (!cfg.Detail || len(r.Values) == r.Lines) {
				log.WithField("path", p).Debug("cache hit")
				r.Cached = true
				col.add(r, "")
				return
			}
		}
		g.Go(func() error {
			res, err := calibrate.File(p, bytes.NewReader(data), cfg.Dictionary, cfg.Detail)
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			col.add(res, h)
			return nil
		})
	})
	if err := g.Wait(); err != nil {
		return result, err
	}
	if walkErr != nil {
		return result, walkErr
	}

	sortByPath(col.files)
	result.Files = col.files
	result.Total = types.Total(col.files)
	result.FilesScanned = len(col.files)
	result.CacheHits = col.hits
	result.Duration = time.Since(started)

	if !cfg.NoCache && !cfg.DryRun && len(col.updated) > 0 {
		if db.Dictionary != fingerprint || db.Entries == nil {
			db = cache.DB{Dictionary: fingerprint, Entries: map[string]cache.Entry{}}
		}
		for k, v := range col.updated {
			db.Entries[k] = v
		}
		if err := cache.Save(cfg.Root, db); err != nil {
			log.WithError(err).Debug("saving cache")
		}
	}
	return result, nil
}

// SumFiles sums explicitly named streams concurrently. StdinPath reads
// cfg.Stdin. Unlike ScanWithStats, any open or read failure aborts the run.
// Results keep the order of paths.
func SumFiles(ctx context.Context, cfg Config, paths []string) (Result, error) {
	var result Result
	stdin := 0
	for _, p := range paths {
		if p == StdinPath {
			stdin++
		}
	}
	if stdin > 1 {
		return result, ErrStdinRepeated
	}
	cfg = cfg.normalized()
	started := time.Now()
	files := make([]types.FileResult, len(paths))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Threads)
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := sumPath(cfg, p)
			if err != nil {
				return err
			}
			files[i] = res
			if cfg.Progress != nil {
				mu.Lock()
				cfg.Progress()
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}
	result.Files = files
	result.Total = types.Total(files)
	result.FilesScanned = len(files)
	result.Duration = time.Since(started)
	return result, nil
}

func sumPath(cfg Config, p string) (types.FileResult, error) {
	if p == StdinPath {
		res, err := calibrate.File(p, cfg.Stdin, cfg.Dictionary, cfg.Detail)
		if err != nil {
			return res, fmt.Errorf("stdin: %w", err)
		}
		return res, nil
	}
	f, err := os.Open(p)
	if err != nil {
		return types.FileResult{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	cfg.Logger.WithField("path", p).Debug("summing")
	res, err := calibrate.File(p, f, cfg.Dictionary, cfg.Detail)
	if err != nil {
		return res, fmt.Errorf("%s: %w", p, err)
	}
	return res, nil
}

func sortByPath(fs []types.FileResult) {
	sort.Slice(fs, func(i, j int) bool { return fs[i].Path < fs[j].Path })
}

func fastHash(b []byte) string {
	if len(b) == 0 {
		return "0000000000000000"
	}
	sum := xxhash.Sum64(b)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}

// allowedByGlobs returns true if the given path is allowed by the include/exclude
// glob configuration. Include globs are comma-separated and, if provided, act as
// a positive filter. Exclude globs are subtracted last.
func allowedByGlobs(relPath string, cfg Config) bool {
	rp := strings.ReplaceAll(relPath, "\\", "/")
	includes := parseGlobsList(cfg.IncludeGlobs)
	excludes := parseGlobsList(cfg.ExcludeGlobs)
	if len(includes) > 0 {
		matched := matchAnyGlob(rp, includes)
		if !matched {
			return false
		}
	}
	if len(excludes) > 0 && matchAnyGlob(rp, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
			out = append(out, trimGlobPrefix(p))
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(pathToMatch)); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}
