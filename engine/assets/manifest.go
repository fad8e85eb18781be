package assets

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/aurora/engine/core"
)

/**
 * @brief Maps logical texture names to their source paths on disk. The
 * mapping is immutable after construction; a name absent from it is a
 * permanent lookup failure.
 */
type TextureManifest struct {
	Textures map[string]string `toml:"textures"`
}

// NewTextureManifest builds a manifest directly from a name to path
// mapping.
func NewTextureManifest(textures map[string]string) *TextureManifest {
	m := &TextureManifest{Textures: make(map[string]string, len(textures))}
	for name, path := range textures {
		m.Textures[name] = path
	}
	return m
}

// LoadTextureManifest reads and parses a manifest file.
func LoadTextureManifest(path string) (*TextureManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &core.IOError{Path: path, Err: err}
	}
	manifest := &TextureManifest{}
	if err := toml.Unmarshal(data, manifest); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if manifest.Textures == nil {
		manifest.Textures = make(map[string]string)
	}
	return manifest, nil
}

// Resolve returns the source path registered under name.
func (m *TextureManifest) Resolve(name string) (string, error) {
	path, ok := m.Textures[name]
	if !ok {
		return "", fmt.Errorf("%q: %w", name, core.ErrNameNotInManifest)
	}
	return path, nil
}
