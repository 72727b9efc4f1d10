package digits

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Node addresses a prefix position in a Dictionary. The zero value is the root.
type Node int32

// Root is the empty prefix every word starts from.
const Root Node = 0

const (
	alphabet = 26
	none     = Node(-1)
	noValue  = int8(-1)
)

var (
	ErrInvalidWord   = errors.New("invalid word")
	ErrInvalidValue  = errors.New("invalid digit value")
	ErrDuplicateWord = errors.New("duplicate word")
	ErrCollision     = errors.New("colliding words")
)

// Entry maps a spelled-out word to the digit it stands for.
type Entry struct {
	Word  string `json:"word" yaml:"word"`
	Value int    `json:"value" yaml:"value"`
}

type node struct {
	next  [alphabet]Node
	value int8
}

// Dictionary is an immutable trie over lowercase digit words. Once built it
// is never mutated, so any number of scanners may share one instance.
type Dictionary struct {
	nodes   []node
	entries []Entry
	maxLen  int
}

// English lists the ten spelled-out decimal digits.
var English = []Entry{
	{"zero", 0}, {"one", 1}, {"two", 2}, {"three", 3}, {"four", 4},
	{"five", 5}, {"six", 6}, {"seven", 7}, {"eight", 8}, {"nine", 9},
}

var (
	defaultDict = sync.OnceValue(func() *Dictionary { return MustNew(English...) })
	literalDict = sync.OnceValue(func() *Dictionary { return MustNew() })
)

// Default returns the process-wide dictionary of English digit words.
func Default() *Dictionary { return defaultDict() }

// Literal returns a dictionary without words; scanners using it only
// recognize the characters '0' to '9'.
func Literal() *Dictionary { return literalDict() }

// New builds a dictionary from entries. Words must be non-empty lowercase
// ASCII, values must be 0-9, and no word may be a prefix or a suffix of
// another: that keeps terminal nodes leaves and guarantees that at most one
// word completes on any input character.
func New(entries ...Entry) (*Dictionary, error) {
	d := &Dictionary{nodes: []node{newNode()}}
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.Word == "" {
			return nil, fmt.Errorf("%w: empty", ErrInvalidWord)
		}
		for i := 0; i < len(e.Word); i++ {
			if c := e.Word[i]; c < 'a' || c > 'z' {
				return nil, fmt.Errorf("%w: %q contains %q", ErrInvalidWord, e.Word, c)
			}
		}
		if e.Value < 0 || e.Value > 9 {
			return nil, fmt.Errorf("%w: %q -> %d", ErrInvalidValue, e.Word, e.Value)
		}
		if seen[e.Word] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateWord, e.Word)
		}
		seen[e.Word] = true
	}
	for _, a := range entries {
		for _, b := range entries {
			if a.Word == b.Word {
				continue
			}
			if strings.HasPrefix(b.Word, a.Word) {
				return nil, fmt.Errorf("%w: %q is a prefix of %q", ErrCollision, a.Word, b.Word)
			}
			if strings.HasSuffix(b.Word, a.Word) {
				return nil, fmt.Errorf("%w: %q is a suffix of %q", ErrCollision, a.Word, b.Word)
			}
		}
	}
	for _, e := range entries {
		d.insert(e)
	}
	d.entries = append([]Entry(nil), entries...)
	sort.Slice(d.entries, func(i, j int) bool {
		if d.entries[i].Value == d.entries[j].Value {
			return d.entries[i].Word < d.entries[j].Word
		}
		return d.entries[i].Value < d.entries[j].Value
	})
	return d, nil
}

// MustNew is like New but panics on invalid entries.
func MustNew(entries ...Entry) *Dictionary {
	d, err := New(entries...)
	if err != nil {
		panic(err)
	}
	return d
}

func newNode() node {
	n := node{value: noValue}
	for i := range n.next {
		n.next[i] = none
	}
	return n
}

func (d *Dictionary) insert(e Entry) {
	cur := Root
	for i := 0; i < len(e.Word); i++ {
		k := e.Word[i] - 'a'
		nxt := d.nodes[cur].next[k]
		if nxt == none {
			d.nodes = append(d.nodes, newNode())
			nxt = Node(len(d.nodes) - 1)
			d.nodes[cur].next[k] = nxt
		}
		cur = nxt
	}
	d.nodes[cur].value = int8(e.Value)
	if len(e.Word) > d.maxLen {
		d.maxLen = len(e.Word)
	}
}

// Child follows the transition for lowercase letter c out of n.
func (d *Dictionary) Child(n Node, c byte) (Node, bool) {
	if c < 'a' || c > 'z' {
		return none, false
	}
	nxt := d.nodes[n].next[c-'a']
	return nxt, nxt != none
}

// Value reports the digit completed at n, if any.
func (d *Dictionary) Value(n Node) (int, bool) {
	v := d.nodes[n].value
	return int(v), v != noValue
}

// Words returns the entries ordered by value, then word.
func (d *Dictionary) Words() []Entry {
	return append([]Entry(nil), d.entries...)
}

// Len is the number of words in the dictionary.
func (d *Dictionary) Len() int { return len(d.entries) }

// MaxWordLen is the length of the longest word, or 0 for Literal.
func (d *Dictionary) MaxWordLen() int { return d.maxLen }

// Fingerprint identifies the word set. Two dictionaries with the same
// entries share a fingerprint regardless of insertion order.
func (d *Dictionary) Fingerprint() string {
	if len(d.entries) == 0 {
		return "literal"
	}
	parts := make([]string, len(d.entries))
	for i, e := range d.entries {
		parts[i] = fmt.Sprintf("%s=%d", e.Word, e.Value)
	}
	return strings.Join(parts, ",")
}
