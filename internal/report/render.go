package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/trebuchet/trebuchet/internal/types"
)

type PrintOptions struct {
	NoColor      bool
	Duration     time.Duration
	FilesScanned int
	CacheHits    int
}

var (
	totalStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func sortResults(results []types.FileResult) {
	sort.SliceStable(results, func(i, j int) bool { return results[i].Path < results[j].Path })
}

func styled(s string, st lipgloss.Style, noColor bool) string {
	if noColor {
		return s
	}
	return st.Render(s)
}

// PrintTable renders a bordered FILE / LINES / SUM table with a total row.
func PrintTable(w io.Writer, results []types.FileResult, opts PrintOptions) {
	sortResults(results)
	if len(results) == 0 {
		fmt.Fprintln(w, "No input files found")
	} else {
		table := tablewriter.NewWriter(w)
		table.Header("FILE", "LINES", "SUM")
		lines := 0
		for _, r := range results {
			lines += r.Lines
			_ = table.Append([]string{r.Path, strconv.Itoa(r.Lines), strconv.FormatInt(r.Sum, 10)})
		}
		table.Footer("TOTAL", strconv.Itoa(lines), strconv.FormatInt(types.Total(results), 10))
		_ = table.Render()
	}
	printFooter(w, opts)
}

// PrintText renders one "path  lines  sum" row per file followed by the total.
func PrintText(w io.Writer, results []types.FileResult, opts PrintOptions) {
	sortResults(results)
	if len(results) == 0 {
		fmt.Fprintln(w, "No input files found")
		printFooter(w, opts)
		return
	}
	width := 4
	for _, r := range results {
		if l := len(r.Path); l > width {
			width = l
		}
	}
	for _, r := range results {
		mark := ""
		if r.Cached {
			mark = styled(" (cached)", dimStyle, opts.NoColor)
		}
		fmt.Fprintf(w, "%-*s  %6d  %d%s\n", width, r.Path, r.Lines, r.Sum, mark)
	}
	total := fmt.Sprintf("Total: %d", types.Total(results))
	fmt.Fprintln(w, styled(total, totalStyle, opts.NoColor))
	printFooter(w, opts)
}

// PrintLines renders the per-line values of every result that carries them.
func PrintLines(w io.Writer, results []types.FileResult) {
	sortResults(results)
	for _, r := range results {
		if len(r.Values) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s\n", r.Path)
		table := tablewriter.NewWriter(w)
		table.Header("LINE", "FIRST", "LAST", "VALUE")
		for _, v := range r.Values {
			_ = table.Append([]string{strconv.Itoa(v.Line), strconv.Itoa(v.First), strconv.Itoa(v.Last), strconv.Itoa(v.Value)})
		}
		_ = table.Render()
	}
}

func printFooter(w io.Writer, opts PrintOptions) {
	if opts.Duration <= 0 && opts.FilesScanned <= 0 {
		return
	}
	fmt.Fprintln(w)
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
	}
	if opts.FilesScanned > 0 {
		fmt.Fprintf(w, "Files scanned: %d\n", opts.FilesScanned)
	}
	if opts.CacheHits > 0 {
		fmt.Fprintf(w, "Cache hits: %d\n", opts.CacheHits)
	}
}

// Envelope is the JSON shape written by WriteJSON.
type Envelope struct {
	Total int64              `json:"total"`
	Files []types.FileResult `json:"files"`
}

func WriteJSON(w io.Writer, results []types.FileResult) error {
	if results == nil {
		results = []types.FileResult{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Envelope{Total: types.Total(results), Files: results})
}
