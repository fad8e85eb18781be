package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
)

func TestDefaultApplicationConfig(t *testing.T) {
	config := DefaultApplicationConfig()

	assert.Equal(t, uint32(1280), config.StartWidth)
	assert.Equal(t, uint32(720), config.StartHeight)
	assert.Equal(t, "Aurora", config.Name)
	// The default background slot matches the name the texture system
	// resolves through the manifest.
	assert.Equal(t, metadata.BACKGROUND_TEXTURE_NAME, config.BackgroundTexture)
}

func TestLoadApplicationConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.toml")
	content := `
name = "Field Demo"
start_width = 1920
start_height = 1080
background_texture = "sky"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadApplicationConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Field Demo", config.Name)
	assert.Equal(t, uint32(1920), config.StartWidth)
	assert.Equal(t, "sky", config.BackgroundTexture)
	// Fields the file omits keep their defaults.
	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, "assets/manifest.toml", config.ManifestPath)
}

func TestLoadApplicationConfigMissingFile(t *testing.T) {
	_, err := LoadApplicationConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)

	var ioErr *core.IOError
	assert.ErrorAs(t, err, &ioErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
