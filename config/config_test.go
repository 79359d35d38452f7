package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 6, cfg.Precision)
	assert.Equal(t, Degrees, cfg.AngleUnit)
}

func TestSetPrecision(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.SetPrecision(0))
	assert.NoError(t, cfg.SetPrecision(20))
	assert.Error(t, cfg.SetPrecision(-1))
	assert.Error(t, cfg.SetPrecision(21))
}

func TestSetAngleUnit(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.SetAngleUnit(Radians))
	assert.Equal(t, Radians, cfg.AngleUnit)
	assert.Error(t, cfg.SetAngleUnit("gradians"))
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	require.NoError(t, cfg.SetPrecision(3))
	require.NoError(t, cfg.SetAngleUnit(Radians))
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Precision)
	assert.Equal(t, Radians, loaded.AngleUnit)
	assert.Equal(t, cfg.MaxRecursionDepth, loaded.MaxRecursionDepth)
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
