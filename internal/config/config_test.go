package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validPaths creates a shapefile stand-in and an archive directory.
func validPaths(t *testing.T) (shp, dir string) {
	t.Helper()
	base := t.TempDir()
	shp = filepath.Join(base, "basins.shp")
	require.NoError(t, os.WriteFile(shp, []byte("stub"), 0o644))
	dir = filepath.Join(base, "daymet")
	require.NoError(t, os.Mkdir(dir, 0o755))
	return shp, dir
}

func TestNew_Defaults(t *testing.T) {
	cfg := New("a.shp", "in", "out", DefaultIDColumn)

	assert.Equal(t, "a.shp", cfg.ShapefilePath)
	assert.Equal(t, "in", cfg.NetCDFDirectory)
	assert.Equal(t, "out", cfg.OutputDirectory)
	assert.Equal(t, "Subbasin", cfg.IDColumn)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestNew_CustomEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")

	cfg := New("a.shp", "in", "out", "Name")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "Name", cfg.IDColumn)
}

func TestValidate(t *testing.T) {
	shp, dir := validPaths(t)

	t.Run("valid", func(t *testing.T) {
		cfg := New(shp, dir, filepath.Join(dir, "out"), DefaultIDColumn)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing flags", func(t *testing.T) {
		for _, cfg := range []*Config{
			New("", dir, "out", DefaultIDColumn),
			New(shp, "", "out", DefaultIDColumn),
			New(shp, dir, "", DefaultIDColumn),
			New(shp, dir, "out", ""),
		} {
			assert.Error(t, cfg.Validate())
		}
	})

	t.Run("shapefile does not exist", func(t *testing.T) {
		cfg := New(filepath.Join(dir, "nope.shp"), dir, "out", DefaultIDColumn)
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "shapefile not found")
	})

	t.Run("shapefile is a directory", func(t *testing.T) {
		cfg := New(dir, dir, "out", DefaultIDColumn)
		assert.Error(t, cfg.Validate())
	})

	t.Run("archive path is a file", func(t *testing.T) {
		cfg := New(shp, shp, "out", DefaultIDColumn)
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "NetCDF directory not found")
	})
}

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("SOME_SETTING", "set")
	assert.Equal(t, "set", EnvOrDefault("SOME_SETTING", "fallback"))
	assert.Equal(t, "fallback", EnvOrDefault("SOME_OTHER_SETTING", "fallback"))
}
