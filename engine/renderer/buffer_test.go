package renderer_test

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/ember/engine/renderer"
	"github.com/spaghettifunk/ember/engine/renderer/rendertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexRecordLayout(t *testing.T) {
	assert.Equal(t, int32(44), renderer.VertexStride)
	assert.Equal(t, uintptr(0), unsafe.Offsetof(renderer.Vertex{}.Position))
	assert.Equal(t, uintptr(12), unsafe.Offsetof(renderer.Vertex{}.Normal))
	assert.Equal(t, uintptr(24), unsafe.Offsetof(renderer.Vertex{}.Color))
	assert.Equal(t, uintptr(36), unsafe.Offsetof(renderer.Vertex{}.TexCoord))

	require.Len(t, renderer.VertexAttributes, 4)
	for i, want := range []int{0, 12, 24, 36} {
		a := renderer.VertexAttributes[i]
		assert.Equal(t, uint32(i), a.Slot)
		assert.Equal(t, want, a.Offset)
	}
	assert.Equal(t, 8, renderer.VertexAttributes[3].Size())
}

func TestNewVertexBufferUploadsRecords(t *testing.T) {
	dev := rendertest.NewDevice()
	vertices := []renderer.Vertex{
		{Position: mgl32.Vec3{1.5, 2, 3}, TexCoord: mgl32.Vec2{0.25, 1}},
		{Position: mgl32.Vec3{-1, 0, 0}},
	}

	buf := renderer.NewVertexBuffer(dev, vertices)
	defer buf.Destroy()

	assert.Equal(t, 2, buf.Count())
	assert.Equal(t, 88, buf.Size())
	assert.Equal(t, renderer.BufferTargetArray, buf.Target())

	data := dev.BufferData(1)
	require.Len(t, data, 88)
	assert.Equal(t, float32(1.5), math.Float32frombits(binary.LittleEndian.Uint32(data[0:4])))
	assert.Equal(t, float32(0.25), math.Float32frombits(binary.LittleEndian.Uint32(data[36:40])))
	assert.Equal(t, float32(-1), math.Float32frombits(binary.LittleEndian.Uint32(data[44:48])))
}

func TestNewIndexBuffer(t *testing.T) {
	dev := rendertest.NewDevice()
	buf := renderer.NewIndexBuffer(dev, []uint32{0, 1, 2, 2, 3, 0})

	assert.Equal(t, 6, buf.Count())
	assert.Equal(t, 24, buf.Size())
	assert.Equal(t, renderer.BufferTargetElementArray, buf.Target())
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(dev.BufferData(1)[16:20]))
}

func TestBufferBindUnbind(t *testing.T) {
	dev := rendertest.NewDevice()
	buf := renderer.NewVertexBuffer(dev, []renderer.Vertex{{}})

	buf.Bind()
	assert.Equal(t, uint32(1), dev.ArrayBuffer())
	buf.Unbind()
	assert.Equal(t, uint32(0), dev.ArrayBuffer())
}

func TestBufferDestroyReleasesOnce(t *testing.T) {
	dev := rendertest.NewDevice()
	buf := renderer.NewIndexBuffer(dev, []uint32{0})

	buf.Destroy()
	buf.Destroy()

	assert.Equal(t, 1, dev.Deletes(1))
	assert.Equal(t, 0, dev.Live(rendertest.ObjectBuffer))
	assert.Empty(t, dev.Misuse)
	assert.Panics(t, buf.Bind)
}
