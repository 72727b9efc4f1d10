package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trebuchet/trebuchet/internal/types"
)

func TestBaseline_SaveLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), BaselineFile)
	require.NoError(t, SaveBaseline(p, sample))
	b, err := LoadBaseline(p)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"a.txt": 281, "b.txt": 142}, b.Items)
}

func TestLoadBaseline_Missing(t *testing.T) {
	b, err := LoadBaseline(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
	assert.NotNil(t, b.Items)
}

func TestDrift(t *testing.T) {
	base := Baseline{Items: map[string]int64{"a.txt": 281, "b.txt": 100, "gone.txt": 5}}
	results := []types.FileResult{
		{Path: "a.txt", Sum: 281},
		{Path: "b.txt", Sum: 142},
		{Path: "new.txt", Sum: 12},
	}
	drift := Drift(results, base)
	require.Len(t, drift, 3)
	assert.True(t, ShouldFail(drift))

	assert.Equal(t, "b.txt: expected 100, got 142", drift[0].String())
	assert.Equal(t, "gone.txt: missing, expected 5", drift[1].String())
	assert.Equal(t, "new.txt: new file, sum 12", drift[2].String())
}

func TestDrift_None(t *testing.T) {
	base := Baseline{Items: map[string]int64{"a.txt": 281}}
	drift := Drift([]types.FileResult{{Path: "a.txt", Sum: 281}}, base)
	assert.Empty(t, drift)
	assert.False(t, ShouldFail(drift))
}
