package manifest_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tekdi/tekdi-cursor-rules/pkg/filesystem"
	"github.com/tekdi/tekdi-cursor-rules/pkg/manifest"
	"github.com/tekdi/tekdi-cursor-rules/pkg/types"
)

func TestLoad_MissingManifest(t *testing.T) {
	fs := filesystem.NewMemory()

	m, err := manifest.Load(fs, "/project/.cursor/rules")
	require.NoError(t, err)
	assert.True(t, m.Empty())
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	fs := filesystem.NewMemory()
	targetDir := "/project/.cursor/rules"
	require.NoError(t, fs.MkdirAll(targetDir, 0755))

	original := &manifest.Manifest{
		Version: "1.2.3",
		Source: manifest.Source{
			URL:      "https://example.com/rules.git",
			Revision: "deadbeef",
		},
		Selection:   types.Selection{Type: "backend", Language: "python", Framework: "fastapi"},
		InstalledAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Files: []manifest.File{
			{Path: "general.mdc", Hash: manifest.Hash([]byte("a")), Layer: "common"},
			{Path: "style.mdc", Hash: manifest.Hash([]byte("b")), Layer: "language"},
		},
	}
	require.NoError(t, original.Save(fs, targetDir))

	loaded, err := manifest.Load(fs, targetDir)
	require.NoError(t, err)
	assert.Equal(t, original.Version, loaded.Version)
	assert.Equal(t, original.Source, loaded.Source)
	assert.Equal(t, original.Selection, loaded.Selection)
	assert.True(t, original.InstalledAt.Equal(loaded.InstalledAt))
	assert.Equal(t, original.Files, loaded.Files)
}

func TestLoad_Corrupt(t *testing.T) {
	fs := filesystem.NewMemory()
	targetDir := "/rules"
	require.NoError(t, fs.MkdirAll(targetDir, 0755))
	require.NoError(t, fs.WriteFile(filepath.Join(targetDir, manifest.FileName), []byte("not [valid toml"), 0644))

	_, err := manifest.Load(fs, targetDir)
	require.Error(t, err)
}

func TestTracked(t *testing.T) {
	m := &manifest.Manifest{Files: []manifest.File{
		{Path: "a.mdc", Hash: "h1", Layer: "common"},
	}}

	f, ok := m.Tracked("a.mdc")
	assert.True(t, ok)
	assert.Equal(t, "h1", f.Hash)

	_, ok = m.Tracked("b.mdc")
	assert.False(t, ok)
}

func TestHash_Stable(t *testing.T) {
	assert.Equal(t, manifest.Hash([]byte("content")), manifest.Hash([]byte("content")))
	assert.NotEqual(t, manifest.Hash([]byte("content")), manifest.Hash([]byte("other")))
	assert.Len(t, manifest.Hash(nil), 64)
}
