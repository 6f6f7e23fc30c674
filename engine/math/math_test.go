package math

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const standardTol = float32(1e-5)

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(89.9), Clamp(float32(120), -89.9, 89.9))
	assert.Equal(t, float32(-89.9), Clamp(float32(-90), -89.9, 89.9))
	assert.Equal(t, float32(10), Clamp(float32(10), -89.9, 89.9))
	assert.Equal(t, 3, Clamp(7, 0, 3))
}

func TestDirectionFromYawPitch(t *testing.T) {
	forward := DirectionFromYawPitch(180, 0)
	assert.True(t, Vec3ApproxEqual(forward, mgl32.Vec3{0, 0, -1}, standardTol), forward)

	up := DirectionFromYawPitch(0, 90)
	assert.True(t, Vec3ApproxEqual(up, mgl32.Vec3{0, 1, 0}, standardTol), up)

	right := DirectionFromYawPitch(90, 0)
	assert.True(t, Vec3ApproxEqual(right, mgl32.Vec3{1, 0, 0}, standardTol), right)

	for yaw := float32(-1000); yaw < 1000; yaw += 37.5 {
		for pitch := float32(-89.9); pitch <= 89.9; pitch += 11.3 {
			d := DirectionFromYawPitch(yaw, pitch)
			assert.InDelta(t, 1.0, d.Len(), 1e-5)
		}
	}
}

func TestTransformModel(t *testing.T) {
	tr := TransformFromPositionScale(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0.2, 0.2, 0.2})
	p := tr.Model().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.True(t, p.ApproxEqualThreshold(mgl32.Vec4{1.2, 2, 3, 1}, standardTol), p)

	var nilTransform *Transform
	assert.Equal(t, mgl32.Ident4(), nilTransform.Model())

	tr = TransformCreate()
	tr.Translate(mgl32.Vec3{0, 1, 0})
	tr.Translate(mgl32.Vec3{0, 1, 0})
	assert.Equal(t, mgl32.Vec3{0, 2, 0}, tr.Position)
}

func TestVec3ApproxEqual(t *testing.T) {
	assert.True(t, Vec3ApproxEqual(mgl32.Vec3{-8.742278e-08, 0, -1}, mgl32.Vec3{0, 0, -1}, standardTol))
	assert.False(t, Vec3ApproxEqual(mgl32.Vec3{0.1, 0, -1}, mgl32.Vec3{0, 0, -1}, standardTol))
}

func TestMat4ApproxEqual(t *testing.T) {
	a := mgl32.Ident4()
	b := mgl32.Ident4()
	b[5] += 1e-7
	assert.True(t, Mat4ApproxEqual(a, b, standardTol))
	b[5] += 1
	assert.False(t, Mat4ApproxEqual(a, b, standardTol))
}
