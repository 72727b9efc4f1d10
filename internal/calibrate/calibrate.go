package calibrate

import (
	"fmt"
	"io"
	"strings"

	"github.com/trebuchet/trebuchet/internal/digits"
	"github.com/trebuchet/trebuchet/internal/scanner"
	"github.com/trebuchet/trebuchet/internal/types"
)

type state uint8

const (
	awaitFirst state = iota
	awaitLast
	done
)

// Sum returns the sum of the calibration values of every line read from r.
// A nil dict selects digits.Default(). The sum is an int64; it cannot
// overflow before roughly 9.3e16 contributing lines.
func Sum(r io.Reader, dict *digits.Dictionary) (int64, error) {
	return Walk(r, dict, nil)
}

// SumString is Sum over an in-memory string.
func SumString(s string, dict *digits.Dictionary) (int64, error) {
	return Sum(strings.NewReader(s), dict)
}

// Walk is Sum that also reports every contributing line to fn, in order.
// fn may be nil.
func Walk(r io.Reader, dict *digits.Dictionary, fn func(types.LineValue)) (int64, error) {
	sc := scanner.New(r, dict)
	var (
		sum         int64
		st          = awaitFirst
		first, last int
		line        int
	)
	flush := func() {
		v := first*10 + last
		sum += int64(v)
		if fn != nil {
			fn(types.LineValue{Line: line, First: first, Last: last, Value: v})
		}
	}
	for st != done {
		ev := sc.Next()
		switch st {
		case awaitFirst:
			switch ev.Kind {
			case scanner.Digit:
				first, last, line = ev.Digit, ev.Digit, sc.Line()
				st = awaitLast
			case scanner.EndOfInput:
				st = done
			}
		case awaitLast:
			switch ev.Kind {
			case scanner.Digit:
				last = ev.Digit
			case scanner.LineBreak:
				flush()
				st = awaitFirst
			case scanner.EndOfInput:
				flush()
				st = done
			}
		}
	}
	if err := sc.Err(); err != nil {
		return sum, fmt.Errorf("read input: %w", err)
	}
	return sum, nil
}

// File sums one stream into a FileResult. Per-line values are kept only
// when detail is true.
func File(path string, r io.Reader, dict *digits.Dictionary, detail bool) (types.FileResult, error) {
	res := types.FileResult{Path: path}
	sum, err := Walk(r, dict, func(lv types.LineValue) {
		res.Lines++
		if detail {
			res.Values = append(res.Values, lv)
		}
	})
	res.Sum = sum
	return res, err
}
