package scanner

import (
	"bufio"
	"errors"
	"io"

	"github.com/trebuchet/trebuchet/internal/digits"
)

// Kind classifies an Event.
type Kind uint8

const (
	EndOfInput Kind = iota
	Digit
	LineBreak
)

func (k Kind) String() string {
	switch k {
	case Digit:
		return "digit"
	case LineBreak:
		return "linebreak"
	default:
		return "end"
	}
}

// Event is one result of Scanner.Next. Digit is set only for Kind == Digit.
type Event struct {
	Kind  Kind
	Digit int
}

// Scanner recognizes literal and spelled-out digits in a single forward pass.
// It is not safe for concurrent use; the Dictionary it reads from is.
type Scanner struct {
	dict   *digits.Dictionary
	r      *bufio.Reader
	active []digits.Node
	spare  []digits.Node
	line   int
	done   bool
	err    error
}

// New returns a scanner reading from r. A nil dict selects digits.Default().
func New(r io.Reader, dict *digits.Dictionary) *Scanner {
	if dict == nil {
		dict = digits.Default()
	}
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	capacity := dict.MaxWordLen()
	return &Scanner{
		dict:   dict,
		r:      br,
		active: make([]digits.Node, 0, capacity),
		spare:  make([]digits.Node, 0, capacity),
		line:   1,
	}
}

// Next consumes input until one event is ready. After EndOfInput every call
// returns EndOfInput again.
func (s *Scanner) Next() Event {
	if s.done {
		return Event{Kind: EndOfInput}
	}
	for {
		c, err := s.r.ReadByte()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.err = err
			}
			s.done = true
			s.active = s.active[:0]
			return Event{Kind: EndOfInput}
		}
		switch {
		case c == '\r' || c == '\n':
			next, perr := s.r.Peek(1)
			if c == '\n' || perr != nil || next[0] != '\n' {
				s.line++
			}
			if perr != nil || next[0] == '\r' || next[0] == '\n' {
				continue
			}
			s.active = s.active[:0]
			return Event{Kind: LineBreak}
		case c >= '0' && c <= '9':
			s.active = s.active[:0]
			return Event{Kind: Digit, Digit: int(c - '0')}
		case c >= 'a' && c <= 'z':
			if v, ok := s.step(c); ok {
				return Event{Kind: Digit, Digit: v}
			}
		default:
			s.active = s.active[:0]
		}
	}
}

// step advances every in-flight match by c and starts a new one at the root.
// A dictionary without suffix collisions completes at most one word per byte.
func (s *Scanner) step(c byte) (int, bool) {
	var (
		found bool
		value int
	)
	next := s.spare[:0]
	for _, n := range s.active {
		child, ok := s.dict.Child(n, c)
		if !ok {
			continue
		}
		if v, ok := s.dict.Value(child); ok {
			found, value = true, v
			continue
		}
		next = append(next, child)
	}
	if child, ok := s.dict.Child(digits.Root, c); ok {
		if v, ok := s.dict.Value(child); ok {
			found, value = true, v
		} else {
			next = append(next, child)
		}
	}
	s.spare = s.active[:0]
	s.active = next
	return value, found
}

// Line is the 1-based line of the most recently consumed byte. "\r\n", "\n"
// and a lone "\r" each end one line.
func (s *Scanner) Line() int { return s.line }

// Err returns the first non-EOF read error, if any.
func (s *Scanner) Err() error { return s.err }

// inFlight reports how many candidate words are active.
func (s *Scanner) inFlight() int { return len(s.active) }
