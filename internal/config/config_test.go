package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/trebuchet/trebuchet/internal/digits"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func TestLoadFile_Basic(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "trebuchet.yaml", "threads: 4\nmax_bytes: 123\ndigits_only: true\ninclude: \"**/*.txt\"\n")
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Threads == nil || *cfg.Threads != 4 {
		t.Fatalf("expected threads=4, got %#v", cfg.Threads)
	}
	if cfg.MaxBytes == nil || *cfg.MaxBytes != 123 {
		t.Fatalf("expected max_bytes=123, got %#v", cfg.MaxBytes)
	}
	if cfg.DigitsOnly == nil || *cfg.DigitsOnly != true {
		t.Fatalf("expected digits_only=true")
	}
	if cfg.Include == nil || *cfg.Include != "**/*.txt" {
		t.Fatalf("expected include=**/*.txt, got %#v", cfg.Include)
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "trebuchet.yaml", "threads: [oops\n")
	if _, err := LoadFile(p); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadLocal_PrefersDotfile(t *testing.T) {
	dir := t.TempDir()
	// place both, expect the dotfile to be picked first by search order
	writeTemp(t, dir, "trebuchet.yaml", "threads: 1\n")
	writeTemp(t, dir, ".trebuchet.yaml", "threads: 7\n")
	cfg, err := LoadLocal(dir)
	if err != nil {
		t.Fatalf("LoadLocal: %v", err)
	}
	if cfg.Threads == nil || *cfg.Threads != 7 {
		t.Fatalf("expected threads=7 from .trebuchet.yaml, got %#v", cfg.Threads)
	}
}

func TestLoadLocal_NoConfig(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadLocal(dir); !errors.Is(err, ErrNoConfig) {
		t.Fatalf("expected ErrNoConfig when no local config exists, got %v", err)
	}
}

func TestLoadGlobal_XDG_Config(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "trebuchet")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	p := filepath.Join(cfgDir, "config.yml")
	if err := os.WriteFile(p, []byte("threads: 9\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if cfg.Threads == nil || *cfg.Threads != 9 {
		t.Fatalf("expected threads=9 from global config, got %#v", cfg.Threads)
	}
}

func TestLoadGlobal_NoConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	// Simulate no HOME as well by clearing HOME; LoadGlobal should error
	t.Setenv("HOME", "")
	if _, err := LoadGlobal(); !errors.Is(err, ErrNoConfig) {
		t.Fatalf("expected ErrNoConfig when no global config dir exists, got %v", err)
	}
}

func TestDictionary(t *testing.T) {
	yes := true
	if d, err := (FileConfig{}).Dictionary(); err != nil || d != digits.Default() {
		t.Fatalf("expected default dictionary, got %v, %v", d, err)
	}
	if d, err := (FileConfig{DigitsOnly: &yes, Words: map[string]int{"uno": 1}}).Dictionary(); err != nil || d != digits.Literal() {
		t.Fatalf("expected digits_only to win, got %v, %v", d, err)
	}
	d, err := (FileConfig{Words: map[string]int{"uno": 1, "dos": 2}}).Dictionary()
	if err != nil {
		t.Fatalf("Dictionary: %v", err)
	}
	if d.Len() != 2 || d.Fingerprint() != "uno=1,dos=2" {
		t.Fatalf("unexpected dictionary %q", d.Fingerprint())
	}
}

func TestDictionary_InvalidWords(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, ".trebuchet.yml", "words:\n  one: 1\n  bone: 2\n")
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if _, err := cfg.Dictionary(); !errors.Is(err, digits.ErrCollision) {
		t.Fatalf("expected collision error, got %v", err)
	}
}
