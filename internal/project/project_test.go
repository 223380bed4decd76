package project

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kitchen.planproj")

	proj := New("kitchen")
	proj.Scale = 2.5
	proj.Settings.Use45Deg = true
	proj.SetTrace(path, filepath.Join(dir, "traces", "kitchen.json"))
	require.NoError(t, proj.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "kitchen", loaded.Name)
	assert.Equal(t, 2.5, loaded.Scale)
	assert.True(t, loaded.Settings.Use45Deg)
	assert.Equal(t, filepath.Join("traces", "kitchen.json"), loaded.TracePath)
	assert.Equal(t, filepath.Join(dir, "traces", "kitchen.json"), loaded.GetTracePath(path))
}

func TestFile_DefaultResultPath(t *testing.T) {
	proj := New("attic")
	got := proj.GetResultPath("/plans/attic.planproj")
	assert.Equal(t, "/plans/attic_result.json", got)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.planproj"))
	assert.Error(t, err)
}
