package metadata

/** @brief The types of assets the asset manager knows how to load. */
type ResourceType int

const (
	/** @brief Image resource type. */
	ResourceTypeImage ResourceType = iota
	/** @brief Scene description resource type. */
	ResourceTypeScene
)

/**
 * @brief A generic structure for a loaded asset. The Data field holds
 * the loader-specific payload.
 */
type Resource struct {
	/** @brief The name of the resource. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The size of the resource data in bytes. */
	DataSize uint64
	/** @brief The resource data. */
	Data interface{}
}

/** @brief A resource data payload of decoded image pixels. */
type ImageResourceData struct {
	/** @brief The number of channels. Decoding always expands to 4. */
	ChannelCount uint8
	/** @brief The width of the image in pixels. */
	Width uint32
	/** @brief The height of the image in pixels. */
	Height uint32
	/** @brief The pixel data, tightly packed RGBA rows from the top. */
	Pixels []uint8
}
