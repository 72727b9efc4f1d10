package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/trebuchet/trebuchet/internal/types"
)

// RunResults stores the per-file results and total of the last scan
type RunResults struct {
	Files     []types.FileResult `json:"files"`
	Total     int64              `json:"total"`
	Timestamp time.Time          `json:"timestamp"`
	Root      string             `json:"root"`
	Count     int                `json:"count"`
}

func resultsPath(root string) string {
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "trebuchet_last_scan.json")
	}
	return filepath.Join(root, ".trebuchet_last_scan.json")
}

// SaveResults saves scan results to cache
func SaveResults(root string, files []types.FileResult) error {
	p := resultsPath(root)
	results := RunResults{
		Files:     files,
		Total:     types.Total(files),
		Timestamp: time.Now(),
		Root:      root,
		Count:     len(files),
	}
	b, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0644)
}

// LoadResults loads the last scan results from cache
func LoadResults(root string) (RunResults, error) {
	var results RunResults
	p := resultsPath(root)
	f, err := os.ReadFile(p)
	if err != nil {
		return results, err
	}
	if err := json.Unmarshal(f, &results); err != nil {
		return results, err
	}
	return results, nil
}
