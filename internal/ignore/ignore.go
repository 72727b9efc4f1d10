package ignore

import (
	"bufio"
	"os"
	"path"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// Matcher answers whether a slash-separated relative path is ignored.
type Matcher struct {
	patterns []string
}

// Load reads a gitignore-like file: one pattern per line, '#' comments,
// a trailing '/' marks a directory prefix, and patterns without '/' match
// the base name at any depth. A missing file yields an empty Matcher and the
// open error.
func Load(file string) (Matcher, error) {
	f, err := os.Open(file)
	if err != nil {
		return Matcher{}, err
	}
	defer f.Close()
	var m Matcher
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m.patterns = append(m.patterns, line)
	}
	return m, sc.Err()
}

// New builds a Matcher from in-memory patterns.
func New(patterns ...string) Matcher {
	return Matcher{patterns: append([]string(nil), patterns...)}
}

// Match reports whether rel is covered by any pattern.
func (m Matcher) Match(rel string) bool {
	rel = strings.TrimPrefix(strings.ReplaceAll(rel, "\\", "/"), "./")
	for _, p := range m.patterns {
		p = strings.TrimPrefix(p, "/")
		if strings.HasSuffix(p, "/") {
			dir := strings.TrimSuffix(p, "/")
			if strings.HasPrefix(rel, dir+"/") || strings.Contains(rel, "/"+dir+"/") {
				return true
			}
			continue
		}
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		if !strings.Contains(p, "/") {
			if ok, _ := doublestar.Match(p, path.Base(rel)); ok {
				return true
			}
		}
	}
	return false
}

// Len is the number of patterns loaded.
func (m Matcher) Len() int { return len(m.patterns) }

// Append adds pattern to the ignore file, creating it if missing. It reports
// whether the file changed; a pattern already present is left alone.
func Append(file, pattern string) (bool, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return false, nil
	}
	b, err := os.ReadFile(file)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}
	for _, line := range strings.Split(string(b), "\n") {
		if strings.TrimSpace(line) == pattern {
			return false, nil
		}
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return false, err
	}
	defer f.Close()
	// keep the previous last line intact
	if len(b) > 0 && b[len(b)-1] != '\n' {
		pattern = "\n" + pattern
	}
	if _, err := f.WriteString(pattern + "\n"); err != nil {
		return false, err
	}
	return true, nil
}
