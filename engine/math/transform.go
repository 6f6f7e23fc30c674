package math

import "github.com/go-gl/mathgl/mgl32"

/**
 * @brief Represents the placement of an object in the world.
 * Rotation is not needed by any drawable yet.
 */
type Transform struct {
	/** @brief The position in the world. */
	Position mgl32.Vec3
	/** @brief The scale in the world. */
	Scale mgl32.Vec3
}

func TransformCreate() *Transform {
	return &Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

func TransformFromPosition(position mgl32.Vec3) *Transform {
	return &Transform{Position: position, Scale: mgl32.Vec3{1, 1, 1}}
}

func TransformFromPositionScale(position, scale mgl32.Vec3) *Transform {
	return &Transform{Position: position, Scale: scale}
}

func (t *Transform) SetPosition(position mgl32.Vec3) {
	t.Position = position
}

func (t *Transform) Translate(translation mgl32.Vec3) {
	t.Position = t.Position.Add(translation)
}

func (t *Transform) SetScale(scale mgl32.Vec3) {
	t.Scale = scale
}

// Model returns translate(Position) x scale(Scale).
func (t *Transform) Model() mgl32.Mat4 {
	if t == nil {
		return mgl32.Ident4()
	}
	translation := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return translation.Mul4(scale)
}
