package metadata

import (
	"github.com/google/uuid"
)

const (
	/** @brief The name of the background texture slot in the manifest. */
	BACKGROUND_TEXTURE_NAME string = "background"
	/** @brief The generation of a texture whose data has never been uploaded. */
	INVALID_GENERATION uint32 = 0xFFFFFFFF
)

/**
 * @brief Represents a texture owned by the texture system. The pixel data
 * lives on the GPU; InternalData holds the backend-specific handle.
 */
type Texture struct {
	/** @brief The unique texture identifier. */
	ID uuid.UUID
	/** @brief The texture Width in pixels. */
	Width uint32
	/** @brief The texture Height in pixels. */
	Height uint32
	/** @brief The number of channels in the texture. Always 4 after decode. */
	ChannelCount uint8
	/** @brief The texture Generation. Incremented every time the data is reloaded. */
	Generation uint32
	/** @brief The manifest name this texture was loaded under. */
	Name string
	/** @brief Backend-specific texture data. */
	InternalData interface{}
}
