package tui

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/trebuchet/trebuchet/internal/types"
)

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

// highlightLine colors one source line for its file type. Unknown types
// are returned unchanged.
func highlightLine(line string, filename string) string {
	lexer := lexers.Match(filename)
	if lexer == nil {
		return line
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return line
	}

	iterator, err := lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return line
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// detailText renders the per-line breakdown of f. source holds the file's
// lines (may be nil when the file cannot be read).
func detailText(f types.FileResult, source []string, highlight bool) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.Path))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s %d\n", keyStyle.Render("Sum:"), f.Sum))
	b.WriteString(fmt.Sprintf("%s %d\n", keyStyle.Render("Lines:"), f.Lines))
	if f.Cached {
		b.WriteString(keyStyle.Render("Cached result") + "\n")
	}
	if len(f.Values) == 0 {
		if f.Lines > 0 {
			b.WriteString("\nPer-line values were not recorded; press r to rescan.\n")
		}
		return b.String()
	}
	b.WriteString("\n")
	for _, v := range f.Values {
		src := ""
		if v.Line-1 < len(source) {
			src = source[v.Line-1]
			if highlight {
				src = highlightLine(src, filepath.Base(f.Path))
			}
		}
		b.WriteString(fmt.Sprintf("%5d  %d%d = %s  %s\n", v.Line, v.First, v.Last, valueStyle.Render(fmt.Sprintf("%2d", v.Value)), src))
	}
	return b.String()
}

func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}
	f := m.selected()
	if f == nil {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(detailText(*f, m.source(f.Path), true))
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}

	if m.scanning {
		msgContent := fmt.Sprintf("%s  Rescanning...\n\nPlease wait", m.spinner.View())
		popupBox := popupStyle.
			Width(55).
			Align(lipgloss.Center).
			Render(msgContent)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, popupBox)
	}

	statsContent := fmt.Sprintf("Files: %d  |  Total: %d  |  Sort: %s",
		len(m.display), types.Total(m.display), m.sortColumn)
	if m.searchQuery != "" {
		statsContent += fmt.Sprintf("  [search:'%s' %d/%d]", m.searchQuery, len(m.display), len(m.files))
	}
	statsHeader := lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 2).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("237")).
		Render(statsContent)

	tableRender := tableBorderStyle.
		Width(m.width).
		Height(m.table.Height()).
		Render(m.table.View())

	var detailContent string
	if len(m.display) == 0 {
		emptyMsg := "No files were scanned.\n\nPress 'r' to rescan\nPress '?' for help"
		if len(m.files) > 0 {
			emptyMsg = "No files match the search.\n\nPress 'Esc' to clear it"
		}
		detailContent = lipgloss.Place(m.width, m.viewport.Height, lipgloss.Center, lipgloss.Center,
			emptyTextStyle.Render(emptyMsg))
	} else {
		detailContent = m.viewport.View()
	}
	detailRender := detailPaneBorderStyle.
		Width(m.width).
		Height(m.viewport.Height).
		Render(detailContent)

	var timeInfo string
	if m.viewingCached {
		timeInfo = fmt.Sprintf("Cached: %s", m.lastScanTime.Format("Jan 2, 15:04"))
	} else if !m.lastScanTime.IsZero() {
		timeInfo = fmt.Sprintf("Scanned: %s ago", formatDuration(time.Since(m.lastScanTime)))
	}
	spacer := m.width - 4 - lipgloss.Width(m.statusMessage) - lipgloss.Width(timeInfo)
	if spacer < 1 {
		spacer = 1
	}
	bottomBar := statusStyle.
		Width(m.width).
		Padding(0, 2).
		Render(m.statusMessage + strings.Repeat(" ", spacer) + timeInfo)
	if m.searchMode {
		bottomBar = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("15")).
			Width(m.width).
			Padding(0, 1).
			Render(m.searchInput.View() + fmt.Sprintf(" (%d matches)", len(m.display)))
	}

	mainView := lipgloss.JoinVertical(lipgloss.Left, statsHeader, tableRender, detailRender, bottomBar)
	if m.showHelp {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, popupStyle.Render(helpText()))
	}
	return mainView
}

func helpText() string {
	rows := [][2]string{
		{"j / k", "Move down / up"},
		{"/", "Search paths"},
		{"Esc", "Clear search"},
		{"s", "Cycle sort: path, sum, lines"},
		{"r", "Rescan"},
		{"y", "Copy file detail"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	keyColor := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render("Keyboard Shortcuts"), "")
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("  %s%s%s", keyColor.Render(r[0]), strings.Repeat(" ", 8-len(r[0])), r[1]))
	}
	return strings.Join(lines, "\n")
}
