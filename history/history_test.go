package history

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Axion/expr"
)

func TestAddHistoryAt_AppendsAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	require.NoError(t, AddHistoryAt(path, "2+3*4", expr.Addition{
		Left:  expr.Number{Value: 2},
		Right: expr.Multiplication{Left: expr.Number{Value: 3}, Right: expr.Number{Value: 4}},
	}, 14))
	require.NoError(t, AddHistoryAt(path, "10/2", expr.Division{
		Left: expr.Number{Value: 10}, Right: expr.Number{Value: 2},
	}, 5))

	entries, err := loadEntries(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2+3*4", entries[0].Expression)
	assert.Equal(t, "2+3*4", entries[0].Normalized)
	assert.Equal(t, 14.0, float64(entries[0].Result))
	assert.Equal(t, "10/2", entries[1].Expression)
	assert.Equal(t, 5.0, float64(entries[1].Result))
}

func TestAddHistoryAt_NilParsedOmitsNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, AddHistoryAt(path, "raw", nil, 1))

	entries, err := loadEntries(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "", entries[0].Normalized)
}

func TestShowHistoryAt_MissingFile(t *testing.T) {
	err := ShowHistoryAt(filepath.Join(t.TempDir(), "absent.json"))
	assert.NoError(t, err)
}

func TestJsonFloat_SpecialValues(t *testing.T) {
	tests := []struct {
		name string
		v    JsonFloat
		want string
	}{
		{"positive infinity", JsonFloat(math.Inf(1)), `"+∞"`},
		{"negative infinity", JsonFloat(math.Inf(-1)), `"-∞"`},
		{"NaN", JsonFloat(math.NaN()), `"NaN"`},
		{"finite", JsonFloat(2.5), `2.5`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestAddHistoryAt_PreservesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"expression":"1+1","result":2}]`), 0o644))

	require.NoError(t, AddHistoryAt(path, "3+3", expr.Addition{
		Left: expr.Number{Value: 3}, Right: expr.Number{Value: 3},
	}, 6))

	entries, err := loadEntries(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "1+1", entries[0].Expression)
	assert.Equal(t, "3+3", entries[1].Expression)
}
