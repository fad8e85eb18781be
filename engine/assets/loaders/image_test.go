package loaders

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
)

func writeTestPNG(t *testing.T, path string, width, height int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()
	require.NoError(t, png.Encode(file, img))
}

func TestImageLoaderDecodesToRGBA(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.png")
	writeTestPNG(t, path, 4, 3)

	loader := &ImageLoader{}
	resource, err := loader.Load(path, metadata.ResourceTypeImage, nil)
	require.NoError(t, err)

	data, ok := resource.Data.(*metadata.ImageResourceData)
	require.True(t, ok)
	assert.Equal(t, uint32(4), data.Width)
	assert.Equal(t, uint32(3), data.Height)
	assert.Equal(t, uint8(4), data.ChannelCount)
	assert.Len(t, data.Pixels, 4*3*4)

	// Pixel (1,2): R=x, G=y, B=128, A=255, rows from the top.
	offset := (2*4 + 1) * 4
	assert.Equal(t, uint8(1), data.Pixels[offset])
	assert.Equal(t, uint8(2), data.Pixels[offset+1])
	assert.Equal(t, uint8(128), data.Pixels[offset+2])
	assert.Equal(t, uint8(255), data.Pixels[offset+3])
}

func TestImageLoaderMissingFile(t *testing.T) {
	loader := &ImageLoader{}
	_, err := loader.Load(filepath.Join(t.TempDir(), "missing.png"), metadata.ResourceTypeImage, nil)
	require.Error(t, err)

	var ioErr *core.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestImageLoaderUndecodableFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(path, []byte("definitely not an image"), 0o644))

	loader := &ImageLoader{}
	_, err := loader.Load(path, metadata.ResourceTypeImage, nil)
	require.Error(t, err)

	var decodeErr *core.DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}
