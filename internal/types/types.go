package types

// LineValue is the calibration value of one line: the first and last digit
// recognized on it and first*10+last.
type LineValue struct {
	Line  int `json:"line"`
	First int `json:"first"`
	Last  int `json:"last"`
	Value int `json:"value"`
}

// FileResult summarizes one input stream. Lines counts only lines that
// contributed a value; lines without digits are skipped, not valued at 0.
type FileResult struct {
	Path   string      `json:"path"`
	Sum    int64       `json:"sum"`
	Lines  int         `json:"lines"`
	Values []LineValue `json:"values,omitempty"`
	Cached bool        `json:"cached,omitempty"`
}

// Total adds up the sums of results.
func Total(results []FileResult) int64 {
	var sum int64
	for _, r := range results {
		sum += r.Sum
	}
	return sum
}
