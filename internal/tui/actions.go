package tui

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/trebuchet/trebuchet/internal/types"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

func (m Model) rescan() tea.Cmd {
	fn := m.rescanFunc
	return func() tea.Msg {
		files, err := fn()
		if err != nil {
			return statusMsg(fmt.Sprintf("Scan error: %v", err))
		}
		return filesMsg(files)
	}
}

// copyToClipboard copies the selected file's per-line breakdown as plain text.
func (m Model) copyToClipboard() tea.Cmd {
	f := m.selected()
	if f == nil {
		return func() tea.Msg { return statusMsg("No file selected") }
	}
	text := plainDetail(*f)
	path := f.Path
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			return statusMsg(fmt.Sprintf("Clipboard error: %v", err))
		}
		return statusMsg("Copied: " + path)
	}
}

func plainDetail(f types.FileResult) string {
	out := fmt.Sprintf("%s\nsum: %d\nlines: %d\n", f.Path, f.Sum, f.Lines)
	for _, v := range f.Values {
		out += fmt.Sprintf("%d: %d%d = %d\n", v.Line, v.First, v.Last, v.Value)
	}
	return out
}

// source returns the lines of path under the model root, cached per rescan.
func (m *Model) source(path string) []string {
	if lines, ok := m.sources[path]; ok {
		return lines
	}
	lines, _ := readLines(filepath.Join(m.root, path))
	m.sources[path] = lines
	return lines
}

// readLines splits a file into physical lines the way the scanner counts
// them. Lines longer than 200 bytes are cut.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(splitLines)
	for sc.Scan() {
		line := sc.Text()
		if len(line) > 200 {
			line = line[:200]
		}
		lines = append(lines, line)
	}
	return lines, sc.Err()
}

// splitLines is bufio.ScanLines extended to treat a lone '\r' as a terminator.
func splitLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if !atEOF {
			return 0, nil, nil
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
