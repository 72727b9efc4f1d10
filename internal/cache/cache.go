package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/trebuchet/trebuchet/internal/types"
)

// Entry is the cached result for one file.
type Entry struct {
	// xxhash of the file content, 16 hex digits
	Hash   string           `json:"hash"`
	Result types.FileResult `json:"result"`
}

type DB struct {
	// Fingerprint of the dictionary the entries were computed with. Entries
	// are only valid for the same dictionary.
	Dictionary string `json:"dictionary"`
	// Path relative to root -> entry
	Entries map[string]Entry `json:"entries"`
}

func defaultPath(root string) string {
	// Prefer storing cache under .git to avoid accidental commits
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "trebuchetcache.json")
	}
	return filepath.Join(root, ".trebuchetcache.json")
}

func Load(root string) (DB, error) {
	var db DB
	p := defaultPath(root)
	f, err := os.ReadFile(p)
	if err != nil {
		return DB{Entries: map[string]Entry{}}, err
	}
	if err := json.Unmarshal(f, &db); err != nil {
		return DB{Entries: map[string]Entry{}}, err
	}
	if db.Entries == nil {
		db.Entries = map[string]Entry{}
	}
	return db, nil
}

// Lookup returns the cached result for path when both the dictionary and
// content hash still match.
func (db DB) Lookup(dictionary, path, hash string) (types.FileResult, bool) {
	if db.Dictionary != dictionary || db.Entries == nil {
		return types.FileResult{}, false
	}
	e, ok := db.Entries[path]
	if !ok || e.Hash != hash {
		return types.FileResult{}, false
	}
	return e.Result, true
}

func Save(root string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	p := defaultPath(root)
	b, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0644)
}
