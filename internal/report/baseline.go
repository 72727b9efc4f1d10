package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/trebuchet/trebuchet/internal/types"
)

// BaselineFile is the default baseline location relative to the scan root.
const BaselineFile = "trebuchet.baseline.json"

// Baseline records the expected sum of every file.
type Baseline struct {
	Items map[string]int64 `json:"items"`
}

// DriftItem describes a file whose sum differs from the baseline. Added
// files have no Expected value and removed files no Actual value.
type DriftItem struct {
	Path     string `json:"path"`
	Expected *int64 `json:"expected,omitempty"`
	Actual   *int64 `json:"actual,omitempty"`
}

func (d DriftItem) String() string {
	switch {
	case d.Expected == nil:
		return fmt.Sprintf("%s: new file, sum %d", d.Path, *d.Actual)
	case d.Actual == nil:
		return fmt.Sprintf("%s: missing, expected %d", d.Path, *d.Expected)
	default:
		return fmt.Sprintf("%s: expected %d, got %d", d.Path, *d.Expected, *d.Actual)
	}
}

func LoadBaseline(path string) (Baseline, error) {
	b := Baseline{Items: map[string]int64{}}
	f, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	if err := json.Unmarshal(f, &b); err != nil {
		return b, fmt.Errorf("parse baseline %s: %w", path, err)
	}
	if b.Items == nil {
		b.Items = map[string]int64{}
	}
	return b, nil
}

func SaveBaseline(path string, results []types.FileResult) error {
	b := Baseline{Items: map[string]int64{}}
	for _, r := range results {
		b.Items[r.Path] = r.Sum
	}
	buf, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

// Drift compares results against base and returns the differences sorted by path.
func Drift(results []types.FileResult, base Baseline) []DriftItem {
	var out []DriftItem
	seen := make(map[string]bool, len(results))
	for _, r := range results {
		seen[r.Path] = true
		actual := r.Sum
		want, ok := base.Items[r.Path]
		if !ok {
			out = append(out, DriftItem{Path: r.Path, Actual: &actual})
			continue
		}
		if want != actual {
			out = append(out, DriftItem{Path: r.Path, Expected: &want, Actual: &actual})
		}
	}
	for p, want := range base.Items {
		if !seen[p] {
			out = append(out, DriftItem{Path: p, Expected: &want})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func ShouldFail(drift []DriftItem) bool {
	return len(drift) > 0
}
