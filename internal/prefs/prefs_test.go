package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", FileName)

	p := Default()
	assert.True(t, p.ToggleDarkMode())
	require.NoError(t, p.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "dark_mode: true\n", string(data))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, loaded.DarkMode)

	assert.False(t, loaded.ToggleDarkMode())
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("dark_mode: [oops"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parse preferences")
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "kanban", FileName), path)
}
