package renderer_test

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/ember/engine/renderer"
	"github.com/spaghettifunk/ember/engine/renderer/rendertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitQuad() ([]renderer.Vertex, []uint32) {
	up := mgl32.Vec3{0, 1, 0}
	white := mgl32.Vec3{1, 1, 1}
	return []renderer.Vertex{
		{Position: mgl32.Vec3{0, 0, 0}, Normal: up, Color: white, TexCoord: mgl32.Vec2{0, 0}},
		{Position: mgl32.Vec3{1, 0, 0}, Normal: up, Color: white, TexCoord: mgl32.Vec2{1, 0}},
		{Position: mgl32.Vec3{1, 0, 1}, Normal: up, Color: white, TexCoord: mgl32.Vec2{1, 1}},
		{Position: mgl32.Vec3{0, 0, 1}, Normal: up, Color: white, TexCoord: mgl32.Vec2{0, 1}},
	}, []uint32{0, 1, 2, 2, 3, 0}
}

func TestMeshDrawQuad(t *testing.T) {
	dev := rendertest.NewDevice()
	vertices, indices := unitQuad()
	mesh := renderer.NewMesh(dev, vertices, indices, nil) // vbo 1, ibo 2, vao 3
	defer mesh.Destroy()

	assert.Equal(t, 6, mesh.IndexCount())
	assert.Equal(t, 4, mesh.VertexCount())
	assert.NotZero(t, mesh.UniqueID)

	attrs := dev.Attributes(3)
	require.Len(t, attrs, 4)
	for i, want := range []int{0, 12, 24, 36} {
		assert.Equal(t, want, attrs[i].Offset)
		assert.Equal(t, int32(44), attrs[i].Stride)
	}

	dev.ResetCalls()
	mesh.Draw()

	require.Len(t, dev.Draws, 1)
	draw := dev.Draws[0]
	assert.Equal(t, int32(6), draw.Count)
	assert.Equal(t, uint32(3), draw.VertexArray)
	assert.Equal(t, uint32(1), draw.ArrayBuffer)
	assert.Equal(t, uint32(2), draw.ElementBuffer)
	assert.Empty(t, draw.Textures)

	assert.Equal(t, uint32(0), dev.VertexArray())
	assert.Equal(t, uint32(0), dev.ArrayBuffer())
	assert.Equal(t, uint32(0), dev.ElementBuffer())
	assert.Empty(t, dev.Misuse)
}

func TestMeshDrawBindsTexturesInOrder(t *testing.T) {
	dev := rendertest.NewDevice()
	diffuse := renderer.NewTexture(dev, solidImage(1, 1, color.RGBA{R: 255, A: 255}), renderer.TextureKindDiffuse)    // 1
	specular := renderer.NewTexture(dev, solidImage(1, 1, color.RGBA{G: 255, A: 255}), renderer.TextureKindSpecular) // 2
	vertices, indices := unitQuad()
	mesh := renderer.NewMesh(dev, vertices, indices, []*renderer.Texture{diffuse, specular})

	dev.ResetCalls()
	mesh.Draw()

	require.Len(t, dev.Draws, 1)
	assert.Equal(t, map[uint32]uint32{0: 1, 1: 2}, dev.Draws[0].Textures)
	assert.Empty(t, dev.BoundTextureUnits())
	assert.Less(t, indexOf(dev.Calls, "BindTexture2D 1"), indexOf(dev.Calls, "BindTexture2D 2"))
	assert.Less(t, indexOf(dev.Calls, "BindTexture2D 2"), indexOf(dev.Calls, "DrawTriangles 6"))
	assert.Empty(t, dev.Misuse)
}

func TestMeshDestroyReleasesEverything(t *testing.T) {
	dev := rendertest.NewDevice()
	tex := renderer.NewTexture(dev, solidImage(1, 1, color.RGBA{A: 255}), renderer.TextureKindDiffuse)
	vertices, indices := unitQuad()
	mesh := renderer.NewMesh(dev, vertices, indices, []*renderer.Texture{tex})

	mesh.Destroy()
	mesh.Destroy()

	for _, kind := range []rendertest.ObjectKind{
		rendertest.ObjectBuffer, rendertest.ObjectVertexArray, rendertest.ObjectTexture,
	} {
		assert.Equal(t, 0, dev.Live(kind), kind.String())
	}
	for id := uint32(1); id <= 4; id++ {
		assert.Equal(t, 1, dev.Deletes(id), "handle %d", id)
	}
	assert.Panics(t, mesh.Draw)
	assert.Empty(t, dev.Misuse)
}
