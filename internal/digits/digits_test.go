package digits

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookup(d *Dictionary, word string) (int, bool) {
	n := Root
	for i := 0; i < len(word); i++ {
		nxt, ok := d.Child(n, word[i])
		if !ok {
			return 0, false
		}
		n = nxt
	}
	return d.Value(n)
}

func TestDefault_AllWords(t *testing.T) {
	d := Default()
	for _, e := range English {
		v, ok := lookup(d, e.Word)
		require.True(t, ok, e.Word)
		assert.Equal(t, e.Value, v, e.Word)
	}
	assert.Equal(t, 10, d.Len())
	assert.Equal(t, 5, d.MaxWordLen())
}

func TestDefault_PrefixesAreNotTerminal(t *testing.T) {
	d := Default()
	for _, p := range []string{"z", "ze", "on", "th", "thre", "sev", "eigh", "nin"} {
		_, ok := lookup(d, p)
		assert.False(t, ok, p)
	}
	_, ok := lookup(d, "ten")
	assert.False(t, ok)
}

func TestChild_RejectsNonLowercase(t *testing.T) {
	d := Default()
	for _, c := range []byte{'O', '1', ' ', 0xC3, '{'} {
		_, ok := d.Child(Root, c)
		assert.False(t, ok, "byte %q", c)
	}
}

func TestDefault_IsMemoized(t *testing.T) {
	var wg sync.WaitGroup
	got := make([]*Dictionary, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = Default()
		}(i)
	}
	wg.Wait()
	for _, d := range got {
		assert.Same(t, got[0], d)
	}
}

func TestLiteral(t *testing.T) {
	d := Literal()
	assert.Equal(t, 0, d.Len())
	assert.Equal(t, 0, d.MaxWordLen())
	assert.Equal(t, "literal", d.Fingerprint())
	_, ok := d.Child(Root, 'o')
	assert.False(t, ok)
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		wantErr error
	}{
		{"empty word", []Entry{{"", 1}}, ErrInvalidWord},
		{"uppercase", []Entry{{"One", 1}}, ErrInvalidWord},
		{"non ascii", []Entry{{"unoé", 1}}, ErrInvalidWord},
		{"value too big", []Entry{{"ten", 10}}, ErrInvalidValue},
		{"negative value", []Entry{{"minus", -1}}, ErrInvalidValue},
		{"duplicate", []Entry{{"one", 1}, {"one", 1}}, ErrDuplicateWord},
		{"prefix", []Entry{{"six", 6}, {"sixty", 6}}, ErrCollision},
		{"suffix", []Entry{{"one", 1}, {"bone", 2}}, ErrCollision},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.entries...)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNew_CustomWords(t *testing.T) {
	d, err := New(Entry{"uno", 1}, Entry{"dos", 2}, Entry{"tres", 3})
	require.NoError(t, err)
	v, ok := lookup(d, "dos")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, []Entry{{"uno", 1}, {"dos", 2}, {"tres", 3}}, d.Words())
}

func TestFingerprint_OrderIndependent(t *testing.T) {
	a := MustNew(Entry{"uno", 1}, Entry{"dos", 2})
	b := MustNew(Entry{"dos", 2}, Entry{"uno", 1})
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), Default().Fingerprint())
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() { MustNew(Entry{"x", 42}) })
}
