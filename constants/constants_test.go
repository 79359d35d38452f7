package constants

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Axion/store"
)

func TestDefaults(t *testing.T) {
	v, ok := Get("phi")
	require.True(t, ok)
	assert.InDelta(t, 1.618033988749895, v, 1e-12)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	t.Cleanup(func() {
		Table = make(map[string]float64, len(defaults))
		for name, value := range defaults {
			Table[name] = value
		}
	})

	dir := t.TempDir()
	path := filepath.Join(dir, "constants.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"phi": 1.5, "avogadro": 6.02214076e23}`), 0o644))

	require.NoError(t, Load(path))

	v, ok := Get("phi")
	require.True(t, ok)
	assert.Equal(t, 1.5, v)

	v, ok = Get("avogadro")
	require.True(t, ok)
	assert.Equal(t, 6.02214076e23, v)

	_, ok = Get("c")
	assert.True(t, ok, "unrelated defaults survive a merge")
}

func TestLoadMissingFile(t *testing.T) {
	err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestSeedInto(t *testing.T) {
	st := store.New()
	SeedInto(st)
	v, ok := st.Symbol("phi")
	require.True(t, ok)
	assert.InDelta(t, 1.618033988749895, v, 1e-12)
}
