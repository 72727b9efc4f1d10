package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/trebuchet/trebuchet/internal/types"
)

// ErrRunNotFound is returned by DeleteRun for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// RunRecord is one line of the audit log.
type RunRecord struct {
	Timestamp  time.Time     `json:"timestamp"`
	RunID      string        `json:"run_id"`
	Root       string        `json:"root"`
	Total      int64         `json:"total"`
	Files      int           `json:"files"`
	Lines      int           `json:"lines"`
	CacheHits  int           `json:"cache_hits,omitempty"`
	Dictionary string        `json:"dictionary"`
	Duration   string        `json:"duration"`
	TopFiles   []FileSummary `json:"top_files,omitempty"`
}

type FileSummary struct {
	Path string `json:"path"`
	Sum  int64  `json:"sum"`
}

type AuditLog struct {
	logPath string
}

func NewAuditLog(root string) *AuditLog {
	gitDir := filepath.Join(root, ".git")
	logPath := filepath.Join(root, ".trebuchet_audit.jsonl")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		logPath = filepath.Join(gitDir, "trebuchet_audit.jsonl")
	}
	return &AuditLog{logPath: logPath}
}

// Path returns the file backing the log.
func (a *AuditLog) Path() string { return a.logPath }

// LoadHistory returns all records, newest first. Malformed lines are skipped.
func (a *AuditLog) LoadHistory() ([]RunRecord, error) {
	f, err := os.Open(a.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var records []RunRecord
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var record RunRecord
		if err := decoder.Decode(&record); err != nil {
			break
		}
		records = append(records, record)
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

func (a *AuditLog) LogRun(record RunRecord) error {
	if record.RunID == "" {
		record.RunID = fmt.Sprintf("run_%d", time.Now().UnixNano())
	}

	f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(record); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

// DeleteRecord removes the record at index in LoadHistory order.
func (a *AuditLog) DeleteRecord(index int) error {
	records, err := a.LoadHistory()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(records) {
		return fmt.Errorf("invalid index: %d", index)
	}
	records = append(records[:index], records[index+1:]...)

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	f, err := os.Create(a.logPath)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("failed to write audit record: %w", err)
		}
	}
	return nil
}

// DeleteRun removes the record with the given run ID.
func (a *AuditLog) DeleteRun(runID string) error {
	records, err := a.LoadHistory()
	if err != nil {
		return err
	}
	for i, r := range records {
		if r.RunID == runID {
			return a.DeleteRecord(i)
		}
	}
	return fmt.Errorf("run %q: %w", runID, ErrRunNotFound)
}

// NewRunRecord summarizes a finished run. TopFiles keeps the ten largest sums.
func NewRunRecord(root, dictionary string, results []types.FileResult, cacheHits int, duration time.Duration) RunRecord {
	lines := 0
	for _, r := range results {
		lines += r.Lines
	}
	ranked := append([]types.FileResult(nil), results...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Sum > ranked[j].Sum })
	top := make([]FileSummary, 0, 10)
	for i, r := range ranked {
		if i >= 10 {
			break
		}
		top = append(top, FileSummary{Path: r.Path, Sum: r.Sum})
	}
	return RunRecord{
		Timestamp:  time.Now(),
		Root:       root,
		Total:      types.Total(results),
		Files:      len(results),
		Lines:      lines,
		CacheHits:  cacheHits,
		Dictionary: dictionary,
		Duration:   duration.String(),
		TopFiles:   top,
	}
}
