package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/trebuchet/trebuchet/internal/digits"
)

// ErrNoConfig is returned when no config file exists at the searched locations.
var ErrNoConfig = errors.New("no config file")

// FileConfig is the on-disk YAML configuration shape for trebuchet.
type FileConfig struct {
	Include         *string `yaml:"include,omitempty"`
	Exclude         *string `yaml:"exclude,omitempty"`
	MaxBytes        *int64  `yaml:"max_bytes,omitempty"`
	Threads         *int    `yaml:"threads,omitempty"`
	NoColor         *bool   `yaml:"no_color,omitempty"`
	NoCache         *bool   `yaml:"no_cache,omitempty"`
	DefaultExcludes *bool   `yaml:"default_excludes,omitempty"`

	// DigitsOnly disables spelled-out words; only '0'-'9' are recognized.
	DigitsOnly *bool `yaml:"digits_only,omitempty"`

	// Words replaces the built-in English dictionary, e.g. {uno: 1, dos: 2}.
	Words map[string]int `yaml:"words,omitempty"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
// It supports .trebuchet.yml/.yaml and trebuchet.yml/.yaml.
func LoadLocal(repoRoot string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".trebuchet.yml", ".trebuchet.yaml", "trebuchet.yml", "trebuchet.yaml"} {
		p := filepath.Join(repoRoot, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, fmt.Errorf("local: %w", ErrNoConfig)
}

// Dir returns the per-user configuration directory for trebuchet.
func Dir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return ""
	}
	return filepath.Join(base, "trebuchet")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	dir := Dir()
	if dir == "" {
		return cfg, fmt.Errorf("no config dir: %w", ErrNoConfig)
	}
	p := filepath.Join(dir, "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, fmt.Errorf("global: %w", ErrNoConfig)
}

// Dictionary resolves the word dictionary described by the config.
// digits_only wins over words; without either the English words are used.
func (fc FileConfig) Dictionary() (*digits.Dictionary, error) {
	if fc.DigitsOnly != nil && *fc.DigitsOnly {
		return digits.Literal(), nil
	}
	if len(fc.Words) == 0 {
		return digits.Default(), nil
	}
	entries := make([]digits.Entry, 0, len(fc.Words))
	for w, v := range fc.Words {
		entries = append(entries, digits.Entry{Word: w, Value: v})
	}
	d, err := digits.New(entries...)
	if err != nil {
		return nil, fmt.Errorf("config words: %w", err)
	}
	return d, nil
}
