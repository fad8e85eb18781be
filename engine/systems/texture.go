package systems

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/spaghettifunk/aurora/engine/assets"
	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
)

// TextureBackend is the slice of the rendering backend the texture
// system needs: upload and teardown.
type TextureBackend interface {
	TextureCreate(pixels []uint8, texture *metadata.Texture) error
	TextureDestroy(texture *metadata.Texture) error
}

/**
 * @brief Owns every texture loaded from the manifest. Lookups are by
 * logical name; the first Acquire for a name decodes and uploads, every
 * later one returns the same texture. The cache grows monotonically, no
 * eviction. A failed load is not cached, so fixing the file on disk and
 * acquiring again succeeds.
 */
type TextureSystem struct {
	manifest     *assets.TextureManifest
	assetManager *assets.AssetManager
	backend      TextureBackend

	mutex              sync.Mutex
	registeredTextures map[string]*metadata.Texture
}

func NewTextureSystem(manifest *assets.TextureManifest, assetManager *assets.AssetManager, backend TextureBackend) *TextureSystem {
	return &TextureSystem{
		manifest:           manifest,
		assetManager:       assetManager,
		backend:            backend,
		registeredTextures: make(map[string]*metadata.Texture),
	}
}

// Acquire returns the texture registered under name, loading it on
// first use. A name absent from the manifest fails with
// core.ErrNameNotInManifest before any disk access.
func (ts *TextureSystem) Acquire(name string) (*metadata.Texture, error) {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()

	if texture, exists := ts.registeredTextures[name]; exists {
		return texture, nil
	}

	path, err := ts.manifest.Resolve(name)
	if err != nil {
		return nil, err
	}

	resource, err := ts.assetManager.LoadAsset(path, metadata.ResourceTypeImage, nil)
	if err != nil {
		return nil, err
	}
	imageData, ok := resource.Data.(*metadata.ImageResourceData)
	if !ok {
		return nil, fmt.Errorf("asset %s did not produce image data", path)
	}

	texture := &metadata.Texture{
		ID:           uuid.New(),
		Width:        imageData.Width,
		Height:       imageData.Height,
		ChannelCount: imageData.ChannelCount,
		Generation:   metadata.INVALID_GENERATION,
		Name:         name,
	}
	if err := ts.backend.TextureCreate(imageData.Pixels, texture); err != nil {
		return nil, err
	}
	texture.Generation = 0

	ts.registeredTextures[name] = texture
	core.LogInfo("texture %s loaded from %s (%dx%d)", name, path, texture.Width, texture.Height)
	return texture, nil
}

// IsLoaded reports whether name is already resident, without loading.
func (ts *TextureSystem) IsLoaded(name string) bool {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()
	_, exists := ts.registeredTextures[name]
	return exists
}

// Shutdown destroys every resident texture.
func (ts *TextureSystem) Shutdown() error {
	ts.mutex.Lock()
	defer ts.mutex.Unlock()

	for name, texture := range ts.registeredTextures {
		if err := ts.backend.TextureDestroy(texture); err != nil {
			core.LogError("failed to destroy texture %s: %s", name, err)
		}
		delete(ts.registeredTextures, name)
	}
	return nil
}
