package ioconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Point the search away from any real config file.
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)

	res, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, res.Config)

	assert.Equal(t, "trends_up_to_*.csv", res.Config.Input.TrendsGlob)
	assert.Equal(t, "results", res.Config.Output.Dir)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trendshift.yaml")
	content := []byte(`
input:
  dir: /data/study
  trends_glob: "trends*.csv"
output:
  dir: /data/out
  plots: false
log:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	res, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file", res.Source)
	assert.Equal(t, path, res.SourcePath)
	assert.Equal(t, "/data/study", res.Config.Input.Dir)
	assert.Equal(t, "trends*.csv", res.Config.Input.TrendsGlob)
	assert.Equal(t, "/data/out", res.Config.Output.Dir)
	assert.False(t, res.Config.Output.Plots)
	assert.Equal(t, "debug", res.Config.Log.Level)

	// Keys absent from the file keep defaults.
	assert.Equal(t, "id_name_link.csv", res.Config.Input.LinkFile)
	assert.True(t, res.Config.Output.SQLite)
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("TRENDSHIFT_INPUT_DIR", "/env/data")
	t.Setenv("TRENDSHIFT_LOG_LEVEL", "warn")

	res, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "defaults+env", res.Source)
	assert.Equal(t, "/env/data", res.Config.Input.Dir)
	assert.Equal(t, "warn", res.Config.Log.Level)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input: ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestGenerateConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	written, err := generateConfigAt(path)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	res, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "trends_up_to_*.csv", res.Config.Input.TrendsGlob)
	assert.Equal(t, "results", res.Config.Output.Dir)

	// A second generation must not clobber the existing file.
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: error\n"), 0o644))
	_, err = generateConfigAt(path)
	require.NoError(t, err)
	res, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", res.Config.Log.Level)
}
