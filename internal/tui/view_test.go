package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/trebuchet/trebuchet/internal/types"
)

func TestView_Rendering(t *testing.T) {
	m := NewModel("", sampleFiles(), nil)
	if m.View() != "Initializing..." {
		t.Errorf("expected placeholder before the first resize")
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	output := m.View()
	if !strings.Contains(output, "Total: 435") {
		t.Errorf("expected stats header with total; got %q", output)
	}

	m.showHelp = true
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("expected help overlay")
	}
	m.showHelp = false

	m.scanning = true
	if !strings.Contains(m.View(), "Rescanning") {
		t.Error("expected scanning popup")
	}
	m.scanning = false

	m.searchQuery = "nothing-matches"
	m.refresh()
	if !strings.Contains(m.View(), "No files match") {
		t.Error("expected empty search message")
	}
}

func TestView_Cached(t *testing.T) {
	m := NewModel("", nil, nil)
	m.viewingCached = true
	m.lastScanTime = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	out := m.View()
	if !strings.Contains(out, "Cached: Mar 1, 09:30") {
		t.Errorf("expected cached timestamp; got %q", out)
	}
	if !strings.Contains(out, "No files were scanned") {
		t.Errorf("expected empty message; got %q", out)
	}
}

func TestDetailText(t *testing.T) {
	f := types.FileResult{Path: "cal.txt", Sum: 106, Lines: 2, Values: []types.LineValue{
		{Line: 1, First: 2, Last: 9, Value: 29},
		{Line: 3, First: 7, Last: 7, Value: 77},
	}}
	out := detailText(f, []string{"two1nine", "", "treb7uchet"}, false)
	for _, want := range []string{"cal.txt", "106", "two1nine", "treb7uchet", "77"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in detail; got %q", want, out)
		}
	}

	out = detailText(types.FileResult{Path: "x", Sum: 5, Lines: 1}, nil, false)
	if !strings.Contains(out, "not recorded") {
		t.Errorf("expected hint about missing values; got %q", out)
	}
}

func TestDetailPane_ReadsSource(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "cal.txt"), []byte("a1b\nzzz\nseven\n"), 0644); err != nil {
		t.Fatal(err)
	}
	files := []types.FileResult{{Path: "cal.txt", Sum: 88, Lines: 2, Values: []types.LineValue{
		{Line: 1, First: 1, Last: 1, Value: 11},
		{Line: 3, First: 7, Last: 7, Value: 77},
	}}}
	m := NewModel(dir, files, nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if got := m.sources["cal.txt"]; len(got) != 3 {
		t.Fatalf("expected source to be loaded, got %q", got)
	}
	if !strings.Contains(m.viewport.View(), "seven") {
		t.Errorf("expected source line in detail pane; got %q", m.viewport.View())
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[time.Duration]string{
		5 * time.Second:  "5s",
		3 * time.Minute:  "3m",
		2 * time.Hour:    "2h",
		50 * time.Hour:   "2d",
		59 * time.Second: "59s",
	}
	for d, want := range cases {
		if got := formatDuration(d); got != want {
			t.Errorf("formatDuration(%v) = %q, want %q", d, got, want)
		}
	}
}
