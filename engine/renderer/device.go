package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

/** @brief The binding point a buffer is attached to. */
type BufferTarget uint8

const (
	/** @brief Vertex attribute data. */
	BufferTargetArray BufferTarget = iota
	/** @brief Vertex indices. */
	BufferTargetElementArray
)

func (t BufferTarget) String() string {
	switch t {
	case BufferTargetArray:
		return "array"
	case BufferTargetElementArray:
		return "element_array"
	default:
		return "unknown"
	}
}

/** @brief The type of one component of a vertex attribute. */
type ComponentType uint8

const (
	ComponentTypeFloat32 ComponentType = iota
	ComponentTypeInt32
	ComponentTypeUint32
	ComponentTypeUint8
)

// Size returns the size of one component in bytes.
func (c ComponentType) Size() int {
	switch c {
	case ComponentTypeUint8:
		return 1
	default:
		return 4
	}
}

/** @brief Shader stages available in the system. */
type ShaderStage uint8

const (
	ShaderStageVertex ShaderStage = iota
	ShaderStageFragment
)

func (s ShaderStage) String() string {
	switch s {
	case ShaderStageVertex:
		return "vertex"
	case ShaderStageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// Device is the stateful graphics device every GPU resource wrapper talks to.
// All calls must be issued from the thread owning the graphics context. Handles
// are opaque; 0 is never a valid object and binding 0 clears a binding point.
type Device interface {
	// CreateBuffer allocates a buffer of len(data) bytes and uploads data
	// synchronously. Binding state is left as it was found.
	CreateBuffer(target BufferTarget, data []byte) uint32
	DeleteBuffer(id uint32)
	BindBuffer(target BufferTarget, id uint32)

	CreateVertexArray() uint32
	DeleteVertexArray(id uint32)
	BindVertexArray(id uint32)
	// VertexAttribute describes one attribute of the currently bound vertex
	// array, sourced from the currently bound array buffer, and enables it.
	VertexAttribute(slot uint32, components int32, typ ComponentType, stride int32, offset int)

	// CompileShader returns the compiler diagnostic as the error on failure.
	CompileShader(stage ShaderStage, source string) (uint32, error)
	DeleteShader(id uint32)
	// LinkProgram returns the linker diagnostic as the error on failure.
	LinkProgram(shaders ...uint32) (uint32, error)
	DeleteProgram(id uint32)
	UseProgram(id uint32)
	UniformLocation(program uint32, name string) int32
	Uniform1i(location int32, value int32)
	Uniform1f(location int32, value float32)
	Uniform3f(location int32, value mgl32.Vec3)
	UniformMatrix4f(location int32, value mgl32.Mat4)

	// CreateTexture2D uploads RGBA8 pixels as a 2D texture with linear
	// filtering, repeat wrapping and a generated mipmap chain.
	CreateTexture2D(width, height int, pixels []uint8) uint32
	DeleteTexture(id uint32)
	ActiveTexture(unit uint32)
	BindTexture2D(id uint32)

	// DrawTriangles issues one indexed triangle-list draw of count uint32
	// indices from the bound vertex array.
	DrawTriangles(count int32)
}
