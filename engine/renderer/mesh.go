package renderer

import (
	"github.com/google/uuid"
	"github.com/spaghettifunk/ember/engine/core"
)

// Mesh owns a vertex layout, its vertex and index buffers and an ordered list
// of textures, and draws all of it in one call. Geometry is immutable once
// created.
type Mesh struct {
	/** @brief Process-unique identifier, released on Destroy. */
	UniqueID uint32
	/** @brief Stable identifier used to correlate log lines. */
	ID uuid.UUID

	device   Device
	layout   *VertexLayout
	vertices *Buffer
	indices  *Buffer
	textures []*Texture
}

// NewMesh uploads vertices and indices and takes ownership of textures. The
// textures are bound in slice order when drawing.
func NewMesh(device Device, vertices []Vertex, indices []uint32, textures []*Texture) *Mesh {
	m := &Mesh{
		ID:       uuid.New(),
		device:   device,
		vertices: NewVertexBuffer(device, vertices),
		indices:  NewIndexBuffer(device, indices),
		textures: append([]*Texture(nil), textures...),
	}

	m.layout = NewVertexLayout(device)
	for _, a := range VertexAttributes {
		m.layout.AddAttribute(a.Slot, a.Components, a.Type, a.Offset)
	}
	m.layout.
		AttachVertexBuffer(m.vertices, VertexStride).
		AttachIndexBuffer(m.indices)

	m.UniqueID = core.IdentifierAcquireNewID(m)
	core.LogDebug("created mesh %d (%s): %d vertices, %d indices, %d textures",
		m.UniqueID, m.ID, len(vertices), len(indices), len(m.textures))
	return m
}

// Draw binds the layout and every texture, issues one indexed triangle draw
// covering all indices, then unbinds in reverse.
func (m *Mesh) Draw() {
	m.layout.Bind()
	for _, t := range m.textures {
		t.Bind()
	}

	m.device.DrawTriangles(int32(m.indices.Count()))

	for _, t := range m.textures {
		t.Unbind()
	}
	m.layout.Unbind()
}

func (m *Mesh) IndexCount() int {
	return m.indices.Count()
}

func (m *Mesh) VertexCount() int {
	return m.vertices.Count()
}

func (m *Mesh) Textures() []*Texture {
	return append([]*Texture(nil), m.textures...)
}

// Destroy releases the layout, both buffers and every owned texture.
// Further calls are no-ops.
func (m *Mesh) Destroy() {
	if m.UniqueID == core.InvalidID {
		return
	}
	core.LogDebug("destroying mesh %d (%s)", m.UniqueID, m.ID)

	m.layout.Destroy()
	m.vertices.Destroy()
	m.indices.Destroy()
	for _, t := range m.textures {
		t.Destroy()
	}

	if err := core.IdentifierReleaseID(m.UniqueID); err != nil {
		core.LogWarn("mesh %s: %s", m.ID, err)
	}
	m.UniqueID = core.InvalidID
}
