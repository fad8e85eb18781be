package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetManagerRejectsWatchAfterShutdown(t *testing.T) {
	am, err := NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(""))
	require.NoError(t, am.Shutdown())

	err = am.addRecursive(t.TempDir())
	assert.ErrorContains(t, err, "closed")
}

func TestAssetManagerShutdownIsIdempotent(t *testing.T) {
	am, err := NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(""))

	require.NoError(t, am.Shutdown())
	require.NoError(t, am.Shutdown())
}

func TestAssetManagerWatchesDirectories(t *testing.T) {
	am, err := NewAssetManager()
	require.NoError(t, err)
	t.Cleanup(func() { _ = am.Shutdown() })

	require.NoError(t, am.Initialize(""))
	assert.NoError(t, am.addRecursive(t.TempDir()))
}
