package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/trebuchet/trebuchet/internal/types"
)

// Run opens the viewer over freshly scanned results.
func Run(root string, files []types.FileResult, rescanFunc RescanFunc) error {
	m := NewModel(root, files, rescanFunc)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

// RunCached opens the viewer over results saved by an earlier scan.
func RunCached(root string, files []types.FileResult, rescanFunc RescanFunc, timestamp time.Time) error {
	m := NewModel(root, files, rescanFunc)
	m.viewingCached = true
	m.lastScanTime = timestamp
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
