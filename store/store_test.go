package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Axion/expr"
)

func TestStore_SymbolRoundTrip(t *testing.T) {
	s := New()
	_, ok := s.Symbol("x")
	assert.False(t, ok)

	s.SetSymbol("x", 42)
	v, ok := s.Symbol("x")
	require.True(t, ok)
	assert.Equal(t, 42.0, v)

	s.SetSymbol("x", 7)
	v, ok = s.Symbol("x")
	require.True(t, ok)
	assert.Equal(t, 7.0, v)
}

func TestStore_FunctionRoundTrip(t *testing.T) {
	s := New()
	_, ok := s.Function("square")
	assert.False(t, ok)

	body := expr.Power{Left: expr.Symbol{Name: "x"}, Right: expr.Number{Value: 2}}
	s.SetFunction("square", "x", body)

	got, ok := s.Function("square")
	require.True(t, ok)
	assert.Equal(t, "x", got.Param)
	assert.True(t, body.Equal(got.Body))
}

func TestStore_SaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vars.json")

	s := New()
	s.SetSymbol("x", 1)
	s.SetSymbol("y", 2.5)
	require.NoError(t, s.Save(path))

	loaded := New()
	require.NoError(t, loaded.Load(path))

	v, ok := loaded.Symbol("x")
	require.True(t, ok)
	assert.Equal(t, 1.0, v)

	v, ok = loaded.Symbol("y")
	require.True(t, ok)
	assert.Equal(t, 2.5, v)
}

func TestStore_LoadMissingFileIsNotAnError(t *testing.T) {
	s := New()
	err := s.Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	assert.NoError(t, err)
}
