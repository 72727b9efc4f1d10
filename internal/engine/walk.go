package engine

import (
	"context"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/trebuchet/trebuchet/internal/ignore"
)

// inlineIgnore excludes a file from scanning when it appears in its content.
const inlineIgnore = "trebuchet:ignore-file"

// Walk traverses the working tree and invokes handle for each eligible file.
// handle is called sequentially from the walking goroutine.
func Walk(ctx context.Context, cfg Config, ign ignore.Matcher, handle func(path string, data []byte)) error {
	if cfg.Logger == nil {
		cfg.Logger = discardLogger()
	}
	return filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err != nil {
			cfg.Logger.WithError(err).WithField("path", p).Debug("walk error")
			return nil
		}
		if d.IsDir() {
			name := d.Name()
			if p != cfg.Root && skipDir(name, cfg) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, _ := filepath.Rel(cfg.Root, p)
		if rel == "." {
			rel = filepath.Base(p)
		}
		rel = filepath.ToSlash(rel)
		log := cfg.Logger.WithField("path", rel)
		if !eligible(rel, d, cfg, ign) {
			log.Debug("skipped by filters")
			return nil
		}
		b, err := os.ReadFile(p)
		if err != nil {
			log.WithError(err).Debug("read failed")
			return nil
		}
		if strings.Contains(string(b), inlineIgnore) {
			log.Debug("inline ignore directive")
			return nil
		}
		if looksBinary(b) || looksNonTextMIME(rel, b) {
			log.Debug("binary content")
			return nil
		}
		handle(rel, b)
		return nil
	})
}

// skipDir reports whether a directory below the root is pruned. Git
// metadata holds trebuchet state and is never summed.
func skipDir(name string, cfg Config) bool {
	return name == ".git" || (cfg.DefaultExcludes && isDefaultDirExcluded(name))
}

// eligible applies the path and size filters shared by Walk and CountTargets.
func eligible(rel string, d fs.DirEntry, cfg Config, ign ignore.Matcher) bool {
	if !allowedByGlobs(rel, cfg) {
		return false
	}
	if ign.Match(rel) || filepath.Base(rel) == IgnoreFile {
		return false
	}
	if isStateFile(filepath.Base(rel)) {
		return false
	}
	if cfg.MaxBytes > 0 {
		info, _ := d.Info()
		if info != nil && info.Size() > cfg.MaxBytes {
			return false
		}
	}
	if cfg.DefaultExcludes && isDefaultFileExcluded(strings.ToLower(rel)) {
		return false
	}
	return true
}

func looksBinary(b []byte) bool {
	const sniff = 800
	n := sniff
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if b[i] == 0 {
			return true
		}
	}
	return false
}

// looksNonTextMIME uses the file extension and a tiny content sniff to skip
// clearly non-text content (e.g., images) in addition to NUL-byte detection.
func looksNonTextMIME(path string, b []byte) bool {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		if strings.HasPrefix(ct, "image/") || strings.HasPrefix(ct, "video/") || strings.HasPrefix(ct, "audio/") {
			return true
		}
		if strings.Contains(ct, "zip") || strings.Contains(ct, "tar") || strings.Contains(ct, "gzip") {
			return true
		}
	}
	if len(b) >= 4 {
		// PNG signature
		if len(b) >= 8 && string(b[:8]) == "\x89PNG\r\n\x1a\n" {
			return true
		}
		// ZIP (PK) header
		if b[0] == 'P' && b[1] == 'K' {
			return true
		}
	}
	return false
}

// CountTargets estimates the number of files to process based on cfg.
// It mirrors the selection logic of Walk but avoids reading contents.
func CountTargets(cfg Config) (int, error) {
	ign, _ := ignore.Load(filepath.Join(cfg.Root, IgnoreFile))
	count := 0
	err := filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != cfg.Root && skipDir(d.Name(), cfg) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, _ := filepath.Rel(cfg.Root, p)
		if rel == "." {
			rel = filepath.Base(p)
		}
		if eligible(filepath.ToSlash(rel), d, cfg, ign) {
			count++
		}
		return nil
	})
	return count, err
}
