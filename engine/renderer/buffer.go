package renderer

import (
	"fmt"
	"unsafe"

	"github.com/spaghettifunk/ember/engine/core"
)

// Buffer owns one immutable device-side block of vertex or index data.
// It is created from a CPU-side slice and released exactly once by Destroy.
type Buffer struct {
	device Device
	target BufferTarget
	id     uint32
	count  int
	size   int
}

// NewBuffer uploads data to a new device buffer sized len(data) * sizeof(T).
// T must be a fixed-size value type without pointers.
func NewBuffer[T any](device Device, target BufferTarget, data []T) *Buffer {
	var zero T
	size := len(data) * int(unsafe.Sizeof(zero))

	var raw []byte
	if size > 0 {
		raw = unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), size)
	}

	b := &Buffer{
		device: device,
		target: target,
		id:     device.CreateBuffer(target, raw),
		count:  len(data),
		size:   size,
	}
	core.LogDebug("created %s buffer %d (%d records, %d bytes)", target, b.id, b.count, b.size)
	return b
}

// NewVertexBuffer uploads vertices to a new array buffer.
func NewVertexBuffer(device Device, vertices []Vertex) *Buffer {
	return NewBuffer(device, BufferTargetArray, vertices)
}

// NewIndexBuffer uploads indices to a new element array buffer.
func NewIndexBuffer(device Device, indices []uint32) *Buffer {
	return NewBuffer(device, BufferTargetElementArray, indices)
}

func (b *Buffer) Bind() {
	b.mustBeAlive()
	b.device.BindBuffer(b.target, b.id)
}

func (b *Buffer) Unbind() {
	b.device.BindBuffer(b.target, 0)
}

// Count returns the number of records uploaded.
func (b *Buffer) Count() int {
	return b.count
}

// Size returns the allocation size in bytes.
func (b *Buffer) Size() int {
	return b.size
}

func (b *Buffer) Target() BufferTarget {
	return b.target
}

// Destroy releases the device allocation. Further calls are no-ops.
func (b *Buffer) Destroy() {
	if b.id == 0 {
		return
	}
	core.LogDebug("destroying %s buffer %d", b.target, b.id)
	b.device.DeleteBuffer(b.id)
	b.id = 0
}

func (b *Buffer) mustBeAlive() {
	if b.id == 0 {
		panic(fmt.Sprintf("renderer: use of destroyed %s buffer", b.target))
	}
}
