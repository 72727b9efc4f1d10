package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/trebuchet/trebuchet/internal/types"
)

var (
	tableBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	detailPaneBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))

	emptyTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Align(lipgloss.Center)

	popupStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Background(lipgloss.Color("235")).
			Padding(1, 4)
)

// Sort orders cycled by the "s" key.
const (
	SortPath  = "path"
	SortSum   = "sum"
	SortLines = "lines"
)

const defaultStatus = "q: quit | ?: help | /: search | s: sort | r: rescan | y: copy"

// RescanFunc re-runs the scan behind the viewer.
type RescanFunc func() ([]types.FileResult, error)

// Model represents the main state of the TUI application.
type Model struct {
	table    table.Model
	viewport viewport.Model
	spinner  spinner.Model

	root    string
	files   []types.FileResult
	display []types.FileResult // files after search and sort
	sources map[string][]string

	quitting      bool
	ready         bool
	scanning      bool
	showHelp      bool
	viewingCached bool
	lastScanTime  time.Time
	height        int
	width         int
	statusMessage string
	statusTimeout *time.Time
	rescanFunc    RescanFunc

	searchMode  bool
	searchInput textinput.Model
	searchQuery string
	sortColumn  string
}

type filesMsg []types.FileResult

type statusMsg string

// NewModel initializes a viewer over results read relative to root.
func NewModel(root string, files []types.FileResult, rescanFunc RescanFunc) Model {
	columns := []table.Column{
		{Title: "Path", Width: 50},
		{Title: "Lines", Width: 8},
		{Title: "Sum", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("15")).
		Bold(true).
		Padding(0, 1).
		Align(lipgloss.Left)
	s.Selected = lipgloss.NewStyle().
		Foreground(lipgloss.Color("232")).
		Background(lipgloss.Color("208")).
		Bold(true).
		Padding(0, 1)
	s.Cell = lipgloss.NewStyle().
		Padding(0, 1)
	t.SetStyles(s)

	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	ti := textinput.New()
	ti.Placeholder = "Search path..."
	ti.CharLimit = 100
	ti.Width = 50
	ti.Prompt = "/ "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	m := Model{
		table:         t,
		spinner:       sp,
		root:          root,
		files:         files,
		sources:       map[string][]string{},
		rescanFunc:    rescanFunc,
		lastScanTime:  time.Now(),
		searchInput:   ti,
		sortColumn:    SortPath,
		statusMessage: defaultStatus,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// refresh rebuilds the display list and table rows from files.
func (m *Model) refresh() {
	query := strings.ToLower(m.searchQuery)
	display := make([]types.FileResult, 0, len(m.files))
	for _, f := range m.files {
		if query != "" && !strings.Contains(strings.ToLower(f.Path), query) {
			continue
		}
		display = append(display, f)
	}
	sortFiles(display, m.sortColumn)
	m.display = display

	rows := make([]table.Row, len(display))
	for i, f := range display {
		rows[i] = table.Row{f.Path, strconv.Itoa(f.Lines), strconv.FormatInt(f.Sum, 10)}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
	m.updateViewportContent()
}

func sortFiles(files []types.FileResult, column string) {
	sort.SliceStable(files, func(i, j int) bool {
		a, b := files[i], files[j]
		switch column {
		case SortSum:
			if a.Sum != b.Sum {
				return a.Sum > b.Sum
			}
		case SortLines:
			if a.Lines != b.Lines {
				return a.Lines > b.Lines
			}
		}
		return a.Path < b.Path
	})
}

func (m *Model) cycleSortColumn() {
	switch m.sortColumn {
	case SortPath:
		m.sortColumn = SortSum
	case SortSum:
		m.sortColumn = SortLines
	default:
		m.sortColumn = SortPath
	}
	m.refresh()
}

func (m Model) selected() *types.FileResult {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.display) {
		return nil
	}
	return &m.display[idx]
}

func (m *Model) setStatus(msg string) {
	timeout := time.Now().Add(3 * time.Second)
	m.statusTimeout = &timeout
	m.statusMessage = msg
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		if m.searchMode {
			switch msg.String() {
			case "enter":
				m.searchQuery = m.searchInput.Value()
				m.searchMode = false
				m.searchInput.Blur()
				return m, nil
			case "esc":
				m.searchMode = false
				m.searchInput.Blur()
				m.searchInput.SetValue("")
				m.searchQuery = ""
				m.refresh()
				return m, nil
			default:
				m.searchInput, cmd = m.searchInput.Update(msg)
				m.searchQuery = m.searchInput.Value()
				m.refresh()
				return m, cmd
			}
		}

		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case "/":
			m.searchMode = true
			m.searchInput.SetValue(m.searchQuery)
			m.searchInput.Focus()
			return m, textinput.Blink
		case "esc":
			if m.searchQuery != "" {
				m.searchQuery = ""
				m.searchInput.SetValue("")
				m.refresh()
				m.setStatus("Search cleared")
			}
			return m, nil
		case "s":
			m.cycleSortColumn()
			m.setStatus("Sorted by " + m.sortColumn)
			return m, nil
		case "r":
			if m.rescanFunc == nil {
				m.setStatus("Rescan not available")
				return m, nil
			}
			if !m.scanning {
				m.scanning = true
				m.statusMessage = "Rescanning..."
				return m, tea.Batch(m.spinner.Tick, m.rescan())
			}
			return m, nil
		case "y":
			return m, m.copyToClipboard()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		usableWidth := m.width - 10
		numWidth := 10
		pathWidth := usableWidth - 2*numWidth
		if pathWidth < 25 {
			pathWidth = 25
		}
		cols := m.table.Columns()
		cols[0].Width = pathWidth
		cols[1].Width = numWidth
		cols[2].Width = numWidth
		m.table.SetColumns(cols)

		statsHeaderHeight := 1
		availableHeight := m.height - lipgloss.Height(statusStyle.Render("")) - statsHeaderHeight
		tableHeight := int(float64(availableHeight) * 0.45)
		viewportHeight := availableHeight - tableHeight - detailPaneBorderStyle.GetVerticalFrameSize() - 1

		m.table.SetWidth(m.width)
		m.table.SetHeight(tableHeight)
		if m.viewport.Height == 0 {
			m.viewport = viewport.New(m.width, viewportHeight)
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = viewportHeight
		}
		m.updateViewportContent()
		return m, nil

	case filesMsg:
		m.files = msg
		m.sources = map[string][]string{}
		m.scanning = false
		m.viewingCached = false
		m.lastScanTime = time.Now()
		m.refresh()
		m.setStatus(fmt.Sprintf("Rescan complete: %d files, total %d", len(m.files), types.Total(m.files)))
		return m, nil

	case statusMsg:
		m.scanning = false
		m.setStatus(string(msg))
		return m, nil

	case spinner.TickMsg:
		var spinCmd tea.Cmd
		m.spinner, spinCmd = m.spinner.Update(msg)
		if m.statusTimeout != nil && time.Now().After(*m.statusTimeout) {
			m.statusTimeout = nil
			m.statusMessage = defaultStatus
		}
		return m, spinCmd
	}

	if !m.quitting && len(m.display) > 0 {
		m.table, cmd = m.table.Update(msg)
	}
	m.updateViewportContent()
	return m, cmd
}
