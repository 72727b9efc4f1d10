package scanner

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet/trebuchet/internal/digits"
)

func d(v int) Event { return Event{Kind: Digit, Digit: v} }

var (
	nl  = Event{Kind: LineBreak}
	end = Event{Kind: EndOfInput}
)

func collect(s *Scanner) []Event {
	var out []Event
	for {
		ev := s.Next()
		out = append(out, ev)
		if ev.Kind == EndOfInput {
			return out
		}
	}
}

func scan(input string) []Event {
	return collect(New(strings.NewReader(input), nil))
}

func TestNext_Events(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Event
	}{
		{name: "empty", input: "", want: []Event{end}},
		{name: "literal digits", input: "1abc2", want: []Event{d(1), d(2), end}},
		{name: "words", input: "two1nine", want: []Event{d(2), d(1), d(9), end}},
		{name: "overlap", input: "eightwothree", want: []Event{d(8), d(2), d(3), end}},
		{name: "shared letter", input: "zoneight234", want: []Event{d(1), d(8), d(2), d(3), d(4), end}},
		{name: "twone", input: "xtwone3four", want: []Event{d(2), d(1), d(3), d(4), end}},
		{name: "sixteen is six", input: "7pqrstsixteen", want: []Event{d(7), d(6), end}},
		{name: "digit resets words", input: "abc1wo", want: []Event{d(1), end}},
		{name: "digit splits word", input: "tw1o", want: []Event{d(1), end}},
		{name: "punctuation splits word", input: "on-e fi ve", want: []Event{end}},
		{name: "uppercase splits word", input: "oNe", want: []Event{end}},
		{name: "non ascii splits word", input: "twé o", want: []Event{end}},
		{name: "zero", input: "zero0", want: []Event{d(0), d(0), end}},
		{name: "repeated prefix", input: "sesevenn", want: []Event{d(7), end}},
		{name: "ninine", input: "nininenine", want: []Event{d(9), d(9), end}},
		{name: "two lines", input: "one\ntwo", want: []Event{d(1), nl, d(2), end}},
		{name: "crlf", input: "one\r\ntwo\r\n", want: []Event{d(1), nl, d(2), end}},
		{name: "lone cr", input: "one\rtwo", want: []Event{d(1), nl, d(2), end}},
		{name: "blank lines collapse", input: "1\n\n\r\n\n2", want: []Event{d(1), nl, d(2), end}},
		{name: "leading newlines", input: "\n\nabc", want: []Event{nl, end}},
		{name: "trailing newlines", input: "5\n\n\n", want: []Event{d(5), end}},
		{name: "word does not span lines", input: "on\ne", want: []Event{nl, end}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scan(tt.input))
		})
	}
}

func TestNext_Deterministic(t *testing.T) {
	input := "two1nine\neightwothree\nabcone2threexyz\nxtwone3four\n4nineeightseven2\nzoneight234\n7pqrstsixteen\n"
	assert.Equal(t, scan(input), scan(input))
}

func TestNext_EndIsSticky(t *testing.T) {
	s := New(strings.NewReader("1"), nil)
	assert.Equal(t, d(1), s.Next())
	assert.Equal(t, end, s.Next())
	assert.Equal(t, end, s.Next())
	assert.NoError(t, s.Err())
}

func TestNext_LiteralDictionary(t *testing.T) {
	s := New(strings.NewReader("two1nine\neightwothree"), digits.Literal())
	assert.Equal(t, []Event{d(1), nl, end}, collect(s))
}

func TestNext_CustomDictionary(t *testing.T) {
	dict := digits.MustNew(digits.Entry{Word: "uno", Value: 1}, digits.Entry{Word: "dos", Value: 2})
	s := New(strings.NewReader("unodos one"), dict)
	assert.Equal(t, []Event{d(1), d(2), end}, collect(s))
}

func TestNext_ActiveBound(t *testing.T) {
	s := New(strings.NewReader("ssssssssevenseven"), nil)
	dict := digits.Default()
	for {
		ev := s.Next()
		assert.LessOrEqual(t, s.inFlight(), dict.MaxWordLen()-1)
		if ev.Kind == EndOfInput {
			break
		}
	}
}

func TestLine(t *testing.T) {
	s := New(strings.NewReader("1\r\n\r\nx2\rthree\n"), nil)
	var lines []int
	for ev := s.Next(); ev.Kind != EndOfInput; ev = s.Next() {
		if ev.Kind == Digit {
			lines = append(lines, s.Line())
		}
	}
	assert.Equal(t, []int{1, 3, 4}, lines)
}

func TestErr_ReadFailure(t *testing.T) {
	boom := errors.New("boom")
	r := io.MultiReader(strings.NewReader("7"), iotest.ErrReader(boom))
	s := New(r, nil)
	events := collect(s)
	require.Equal(t, []Event{d(7), end}, events)
	assert.ErrorIs(t, s.Err(), boom)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "digit", Digit.String())
	assert.Equal(t, "linebreak", LineBreak.String())
	assert.Equal(t, "end", EndOfInput.String())
}

func BenchmarkNext(b *testing.B) {
	input := strings.Repeat("two1nine\neightwothree\nabcone2threexyz\nxtwone3four\n4nineeightseven2\nzoneight234\n7pqrstsixteen\n", 256)
	b.SetBytes(int64(len(input)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s := New(strings.NewReader(input), nil)
		for s.Next().Kind != EndOfInput {
		}
	}
}
