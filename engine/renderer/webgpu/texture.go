package webgpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
)

// textureData is the backend payload stored in a texture's
// InternalData.
type textureData struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
}

// TextureCreate uploads pixels as an RGBA texture and attaches the GPU
// handles to texture.InternalData.
func (r *Renderer) TextureCreate(pixels []uint8, texture *metadata.Texture) error {
	expected := int(texture.Width) * int(texture.Height) * 4
	if len(pixels) != expected {
		return fmt.Errorf("texture %s: %d bytes of pixel data, want %d", texture.Name, len(pixels), expected)
	}

	size := wgpu.Extent3D{
		Width:              texture.Width,
		Height:             texture.Height,
		DepthOrArrayLayers: 1,
	}
	gpuTexture, err := r.context.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         texture.Name,
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return err
	}

	err = r.context.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Aspect:   wgpu.TextureAspectAll,
			Texture:  gpuTexture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
		},
		pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  4 * texture.Width,
			RowsPerImage: texture.Height,
		},
		&size,
	)
	if err != nil {
		gpuTexture.Release()
		return err
	}

	view, err := gpuTexture.CreateView(nil)
	if err != nil {
		gpuTexture.Release()
		return err
	}

	texture.InternalData = &textureData{
		texture: gpuTexture,
		view:    view,
	}
	return nil
}

func (r *Renderer) TextureDestroy(texture *metadata.Texture) error {
	data, ok := texture.InternalData.(*textureData)
	if !ok || data == nil {
		return nil
	}
	if data.view != nil {
		data.view.Release()
	}
	if data.texture != nil {
		data.texture.Release()
	}
	texture.InternalData = nil
	return nil
}
