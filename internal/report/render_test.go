package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/trebuchet/trebuchet/internal/types"
)

var sample = []types.FileResult{
	{Path: "b.txt", Sum: 142, Lines: 4},
	{Path: "a.txt", Sum: 281, Lines: 7, Cached: true},
}

func TestPrintText_NoResults_ShowsFooter(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, nil, PrintOptions{Duration: 1200 * time.Millisecond, FilesScanned: 10})
	out := buf.String()
	if !strings.Contains(out, "No input files found") {
		t.Fatalf("expected friendly empty message; got: %q", out)
	}
	if !strings.Contains(out, "Files scanned: 10") {
		t.Fatalf("expected footer with files scanned; got: %q", out)
	}
}

func TestPrintText_WithResults(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, append([]types.FileResult(nil), sample...), PrintOptions{NoColor: true})
	out := buf.String()
	if !strings.Contains(out, "Total: 423") {
		t.Fatalf("expected total line; got: %q", out)
	}
	if strings.Index(out, "a.txt") > strings.Index(out, "b.txt") {
		t.Fatalf("expected rows sorted by path; got: %q", out)
	}
	if !strings.Contains(out, "(cached)") {
		t.Fatalf("expected cached marker; got: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no ANSI escapes with NoColor; got: %q", out)
	}
}

func TestPrintTable_WithResults(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, append([]types.FileResult(nil), sample...), PrintOptions{NoColor: true, FilesScanned: 2, CacheHits: 1})
	out := buf.String()
	if !strings.Contains(out, "FILE") || !strings.Contains(out, "SUM") {
		t.Fatalf("expected table header; got: %q", out)
	}
	if !strings.Contains(out, "423") {
		t.Fatalf("expected total in footer; got: %q", out)
	}
	if !strings.Contains(out, "│") {
		t.Fatalf("expected table borders; got: %q", out)
	}
	if !strings.Contains(out, "Cache hits: 1") {
		t.Fatalf("expected cache hits in footer; got: %q", out)
	}
}

func TestPrintTable_NoResults(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, nil, PrintOptions{})
	if !strings.Contains(buf.String(), "No input files found") {
		t.Fatalf("expected friendly empty message; got: %q", buf.String())
	}
}

func TestPrintLines(t *testing.T) {
	var buf bytes.Buffer
	results := []types.FileResult{
		{Path: "x.txt", Sum: 77, Lines: 1, Values: []types.LineValue{{Line: 3, First: 7, Last: 7, Value: 77}}},
		{Path: "y.txt"},
	}
	PrintLines(&buf, results)
	out := buf.String()
	if !strings.Contains(out, "x.txt") || !strings.Contains(out, "77") {
		t.Fatalf("expected x.txt detail; got: %q", out)
	}
	if strings.Contains(out, "y.txt") {
		t.Fatalf("files without values should be omitted; got: %q", out)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sample); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var env Envelope
	if err := json.Unmarshal(buf.Bytes(), &env); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if env.Total != 423 || len(env.Files) != 2 {
		t.Fatalf("unexpected envelope: %+v", env)
	}

	buf.Reset()
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.Contains(buf.String(), `"files": []`) {
		t.Fatalf("expected empty files array; got: %q", buf.String())
	}
}
