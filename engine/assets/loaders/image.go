package loaders

import (
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
)

type ImageLoader struct{}

// Load opens and decodes the image at path, expanding whatever the
// source format carries into tightly packed RGBA rows.
func (il *ImageLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &core.IOError{Path: path, Err: err}
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, &core.DecodeError{Path: path, Err: err}
	}
	core.LogDebug("decoded image %s (%s)", path, format)

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	width := uint32(bounds.Dx())
	height := uint32(bounds.Dy())

	// NewRGBA allocates a stride of exactly 4*width, so Pix is already
	// the tightly packed layout texture uploads expect.
	return &metadata.Resource{
		Name:     filepath.Base(path),
		FullPath: path,
		DataSize: uint64(len(rgba.Pix)),
		Data: &metadata.ImageResourceData{
			ChannelCount: 4,
			Width:        width,
			Height:       height,
			Pixels:       rgba.Pix,
		},
	}, nil
}

func (il *ImageLoader) Unload(*metadata.Resource) error {
	return nil
}
