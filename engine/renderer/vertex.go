package renderer

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

/**
 * @brief Represents a single vertex in 3D space. The field order and widths
 * are uploaded byte-for-byte and must match VertexAttributes.
 */
type Vertex struct {
	/** @brief The position of the vertex */
	Position mgl32.Vec3
	/** @brief The normal of the vertex. */
	Normal mgl32.Vec3
	/** @brief The colour of the vertex. */
	Color mgl32.Vec3
	/** @brief The texture coordinate of the vertex. */
	TexCoord mgl32.Vec2
}

// VertexStride is the size of one Vertex in bytes.
const VertexStride = int32(unsafe.Sizeof(Vertex{}))

/** @brief Describes one shader input sourced from a vertex buffer. */
type VertexAttribute struct {
	/** @brief The shader input slot. */
	Slot uint32
	/** @brief Number of components, 1 to 4. */
	Components int32
	/** @brief The component type. */
	Type ComponentType
	/** @brief Byte offset within the vertex record. */
	Offset int
}

// Size returns the attribute footprint in bytes.
func (a VertexAttribute) Size() int {
	return int(a.Components) * a.Type.Size()
}

// VertexAttributes is the layout of Vertex: position, normal, color and
// texcoord at slots 0 to 3.
var VertexAttributes = []VertexAttribute{
	{Slot: 0, Components: 3, Type: ComponentTypeFloat32, Offset: int(unsafe.Offsetof(Vertex{}.Position))},
	{Slot: 1, Components: 3, Type: ComponentTypeFloat32, Offset: int(unsafe.Offsetof(Vertex{}.Normal))},
	{Slot: 2, Components: 3, Type: ComponentTypeFloat32, Offset: int(unsafe.Offsetof(Vertex{}.Color))},
	{Slot: 3, Components: 2, Type: ComponentTypeFloat32, Offset: int(unsafe.Offsetof(Vertex{}.TexCoord))},
}
