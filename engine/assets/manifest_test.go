package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/aurora/engine/core"
)

func TestLoadTextureManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.toml")
	content := `
[textures]
background = "assets/textures/field.png"
model_diffuse = "assets/textures/cube.png"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	manifest, err := LoadTextureManifest(path)
	require.NoError(t, err)

	resolved, err := manifest.Resolve("background")
	require.NoError(t, err)
	assert.Equal(t, "assets/textures/field.png", resolved)

	resolved, err = manifest.Resolve("model_diffuse")
	require.NoError(t, err)
	assert.Equal(t, "assets/textures/cube.png", resolved)
}

func TestLoadTextureManifestMissingFile(t *testing.T) {
	_, err := LoadTextureManifest(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)

	var ioErr *core.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestLoadTextureManifestMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.toml")
	require.NoError(t, os.WriteFile(path, []byte("[textures\nbroken"), 0o644))

	_, err := LoadTextureManifest(path)
	assert.Error(t, err)
}

func TestManifestResolveUnknownName(t *testing.T) {
	manifest := NewTextureManifest(map[string]string{"bg": "bg.png"})

	_, err := manifest.Resolve("missing")
	assert.ErrorIs(t, err, core.ErrNameNotInManifest)
}

func TestLoadTextureManifestEmptyDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	manifest, err := LoadTextureManifest(path)
	require.NoError(t, err)

	_, err = manifest.Resolve("anything")
	assert.ErrorIs(t, err, core.ErrNameNotInManifest)
}
