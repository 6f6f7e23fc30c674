package resources

import "path/filepath"

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Not a resource the engine knows how to load. */
	ResourceTypeNone ResourceType = iota
	/** @brief GLSL source for one shader stage. */
	ResourceTypeShader
	/** @brief Raster image resource type. */
	ResourceTypeImage
)

func (r ResourceType) String() string {
	switch r {
	case ResourceTypeShader:
		return "shader"
	case ResourceTypeImage:
		return "image"
	default:
		return "none"
	}
}

// ResourceTypeFromPath classifies a file by its extension.
func ResourceTypeFromPath(path string) ResourceType {
	switch filepath.Ext(path) {
	case ".vert", ".frag", ".glsl":
		return ResourceTypeShader
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".webp":
		return ResourceTypeImage
	default:
		return ResourceTypeNone
	}
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The logical name the resource was requested by. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The resource type. */
	Type ResourceType
	/** @brief The size of the resource on disk in bytes. */
	DataSize uint64
	/**
	 * @brief The resource data: a string for text and shaders,
	 * an *image.RGBA for images.
	 */
	Data interface{}
}
