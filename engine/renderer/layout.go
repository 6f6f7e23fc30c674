package renderer

import (
	"fmt"

	"github.com/spaghettifunk/ember/engine/core"
)

// VertexLayout describes how the bytes of one vertex buffer map to shader
// input slots, and ties that vertex buffer to one index buffer.
//
// Configure it first (AddAttribute, AttachVertexBuffer, AttachIndexBuffer),
// then use Bind/Unbind around draw calls. Contract violations panic.
type VertexLayout struct {
	device     Device
	id         uint32
	attributes []VertexAttribute
	vertices   *Buffer
	indices    *Buffer
	stride     int32
}

func NewVertexLayout(device Device) *VertexLayout {
	l := &VertexLayout{
		device: device,
		id:     device.CreateVertexArray(),
	}
	core.LogDebug("created vertex layout %d", l.id)
	return l
}

// AddAttribute registers one attribute. If a vertex buffer is already attached
// the attribute is applied immediately, otherwise when it gets attached.
func (l *VertexLayout) AddAttribute(slot uint32, components int32, typ ComponentType, offset int) *VertexLayout {
	l.mustBeAlive()
	attr := VertexAttribute{Slot: slot, Components: components, Type: typ, Offset: offset}
	if components < 1 || components > 4 {
		panic(fmt.Sprintf("renderer: attribute slot %d has %d components, want 1 to 4", slot, components))
	}
	if offset < 0 {
		panic(fmt.Sprintf("renderer: attribute slot %d has negative offset %d", slot, offset))
	}
	for _, a := range l.attributes {
		if a.Slot == slot {
			panic(fmt.Sprintf("renderer: attribute slot %d registered twice", slot))
		}
	}
	if l.vertices != nil {
		l.checkFits(attr)
		l.checkFootprint(append(l.attributes, attr))
		l.device.BindVertexArray(l.id)
		l.vertices.Bind()
		l.device.VertexAttribute(attr.Slot, attr.Components, attr.Type, l.stride, attr.Offset)
		l.device.BindVertexArray(0)
		l.vertices.Unbind()
	}
	l.attributes = append(l.attributes, attr)
	return l
}

// AttachVertexBuffer sources every attribute from buffer, with stride bytes
// between consecutive vertices.
func (l *VertexLayout) AttachVertexBuffer(buffer *Buffer, stride int32) *VertexLayout {
	l.mustBeAlive()
	if buffer.Target() != BufferTargetArray {
		panic(fmt.Sprintf("renderer: cannot attach %s buffer as vertex buffer", buffer.Target()))
	}
	if stride <= 0 {
		panic(fmt.Sprintf("renderer: invalid vertex stride %d", stride))
	}
	l.vertices = buffer
	l.stride = stride
	for _, a := range l.attributes {
		l.checkFits(a)
	}
	l.checkFootprint(l.attributes)

	l.device.BindVertexArray(l.id)
	buffer.Bind()
	for _, a := range l.attributes {
		l.device.VertexAttribute(a.Slot, a.Components, a.Type, stride, a.Offset)
	}
	l.device.BindVertexArray(0)
	buffer.Unbind()
	return l
}

// AttachIndexBuffer records buffer as the index source of the layout.
func (l *VertexLayout) AttachIndexBuffer(buffer *Buffer) *VertexLayout {
	l.mustBeAlive()
	if buffer.Target() != BufferTargetElementArray {
		panic(fmt.Sprintf("renderer: cannot attach %s buffer as index buffer", buffer.Target()))
	}
	l.indices = buffer

	l.device.BindVertexArray(l.id)
	buffer.Bind()
	l.device.BindVertexArray(0)
	buffer.Unbind()
	return l
}

// Bind makes the layout and its attached buffers the input of subsequent draws.
func (l *VertexLayout) Bind() {
	l.mustBeAlive()
	l.device.BindVertexArray(l.id)
	if l.vertices != nil {
		l.vertices.Bind()
	}
	if l.indices != nil {
		l.indices.Bind()
	}
}

// Unbind clears the vertex array binding first so the index buffer stays
// attached to the layout, then the buffer bindings.
func (l *VertexLayout) Unbind() {
	l.device.BindVertexArray(0)
	if l.vertices != nil {
		l.vertices.Unbind()
	}
	if l.indices != nil {
		l.indices.Unbind()
	}
}

func (l *VertexLayout) Attributes() []VertexAttribute {
	return append([]VertexAttribute(nil), l.attributes...)
}

func (l *VertexLayout) Stride() int32 {
	return l.stride
}

func (l *VertexLayout) VertexBuffer() *Buffer {
	return l.vertices
}

func (l *VertexLayout) IndexBuffer() *Buffer {
	return l.indices
}

// Destroy releases the vertex array object. Attached buffers are owned by the
// caller and are not released.
func (l *VertexLayout) Destroy() {
	if l.id == 0 {
		return
	}
	core.LogDebug("destroying vertex layout %d", l.id)
	l.device.DeleteVertexArray(l.id)
	l.id = 0
}

func (l *VertexLayout) checkFits(a VertexAttribute) {
	if a.Offset+a.Size() > int(l.stride) {
		panic(fmt.Sprintf("renderer: attribute slot %d (offset %d, %d bytes) exceeds vertex stride %d",
			a.Slot, a.Offset, a.Size(), l.stride))
	}
}

func (l *VertexLayout) checkFootprint(attributes []VertexAttribute) {
	total := 0
	for _, a := range attributes {
		total += a.Size()
	}
	if total > int(l.stride) {
		panic(fmt.Sprintf("renderer: attributes use %d bytes, more than vertex stride %d", total, l.stride))
	}
}

func (l *VertexLayout) mustBeAlive() {
	if l.id == 0 {
		panic("renderer: use of destroyed vertex layout")
	}
}
