package components

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/ember/engine/math"
	"github.com/spaghettifunk/ember/engine/renderer"
)

// PointLightScale is the uniform scale applied to the unit cube marking a light.
const PointLightScale float32 = 0.2

// cube corners, bottom face then top face
var pointLightVertices = []renderer.Vertex{
	{Position: mgl32.Vec3{-0.5, -0.5, -0.5}},
	{Position: mgl32.Vec3{0.5, -0.5, -0.5}},
	{Position: mgl32.Vec3{0.5, -0.5, 0.5}},
	{Position: mgl32.Vec3{-0.5, -0.5, 0.5}},
	{Position: mgl32.Vec3{-0.5, 0.5, -0.5}},
	{Position: mgl32.Vec3{0.5, 0.5, -0.5}},
	{Position: mgl32.Vec3{0.5, 0.5, 0.5}},
	{Position: mgl32.Vec3{-0.5, 0.5, 0.5}},
}

var pointLightIndices = []uint32{
	0, 1, 2, 2, 3, 0, // bottom
	0, 1, 5, 5, 4, 0, // back
	1, 2, 6, 6, 5, 1, // right
	2, 3, 7, 7, 6, 2, // front
	3, 0, 4, 4, 7, 3, // left
	4, 5, 6, 6, 7, 4, // top
}

/**
 * @brief A point light drawn as a small unlit cube. Owns its mesh and shader;
 * other drawables follow the same shape: own a Mesh and a Shader and expose
 * Draw(camera).
 */
type PointLight struct {
	/** @brief The colour emitted by the light. */
	Color mgl32.Vec3

	mesh      *renderer.Mesh
	shader    *renderer.Shader
	transform *math.Transform
}

// NewPointLight builds the cube mesh and compiles the unlit shader from the
// given sources. The light starts at the origin and is white.
func NewPointLight(device renderer.Device, vertexSource, fragmentSource string) (*PointLight, error) {
	shader, err := renderer.NewShader(device, vertexSource, fragmentSource)
	if err != nil {
		return nil, err
	}
	return &PointLight{
		Color:  mgl32.Vec3{1, 1, 1},
		mesh:   renderer.NewMesh(device, pointLightVertices, pointLightIndices, nil),
		shader: shader,
		transform: math.TransformFromPositionScale(
			mgl32.Vec3{},
			mgl32.Vec3{PointLightScale, PointLightScale, PointLightScale},
		),
	}, nil
}

// Draw renders the cube with uMVP = camera view-projection x model.
func (l *PointLight) Draw(camera *Camera) {
	mvp := camera.ViewProjection().Mul4(l.transform.Model())

	l.shader.Bind()
	l.shader.SetUniformMat4("uMVP", mvp)
	l.shader.SetUniformVec3("uLightColor", l.Color)
	l.mesh.Draw()
	l.shader.Unbind()
}

func (l *PointLight) SetPosition(position mgl32.Vec3) {
	l.transform.SetPosition(position)
}

func (l *PointLight) Position() mgl32.Vec3 {
	return l.transform.Position
}

// Model returns translate(position) x scale(0.2).
func (l *PointLight) Model() mgl32.Mat4 {
	return l.transform.Model()
}

func (l *PointLight) Destroy() {
	l.mesh.Destroy()
	l.shader.Destroy()
}
